package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/placard/pkg/input"
)

// listRowPoint is a pointer position inside row ri of the data area.
func listRowPoint(d *List, ri int) (float64, float64) {
	x := d.listX + d.checkCol + d.checkGap + 5
	y := d.dataY + (float64(ri)-d.vsb.Offset())*listRowHeight + 5
	return x, y
}

func clickListRow(d *List, ri int) {
	x, y := listRowPoint(d, ri)
	clickAt(d, x, y)
}

func TestListKeyboardSelectAndConfirm(t *testing.T) {
	d := NewList(ListOptions{
		Columns: []string{"Name"},
		Rows:    [][]string{{"Alpha"}, {"Beta"}, {"Gamma"}},
	}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyDown))
	assert.Equal(t, 0, d.cursor, "first down lands on the first row")

	d.Handle(keyPress(input.KeyDown))
	d.Handle(keyPress(input.KeyEnter))

	o := requireDone(t, d)
	assert.Equal(t, StateConfirmed, o.State)
	assert.Equal(t, "Beta", o.Payload)
}

func TestListEnterWithoutSelectionCancels(t *testing.T) {
	d := NewList(ListOptions{
		Columns: []string{"Name"},
		Rows:    [][]string{{"Alpha"}},
	}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyEnter))

	assert.Equal(t, StateCancelled, requireDone(t, d).State)
}

func TestListEscapeCancels(t *testing.T) {
	d := NewList(ListOptions{
		Columns: []string{"Name"},
		Rows:    [][]string{{"Alpha"}},
	}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyEscape))

	assert.Equal(t, StateCancelled, requireDone(t, d).State)
}

func TestListClickSelectsClickAgainConfirms(t *testing.T) {
	d := NewList(ListOptions{
		Columns: []string{"Name"},
		Rows:    [][]string{{"Alpha"}, {"Beta"}},
	}, testPalette(), testFace(t))

	clickListRow(d, 1)
	assert.Equal(t, 1, d.cursor)
	requireActive(t, d)

	clickListRow(d, 1)
	assert.Equal(t, "Beta", requireDone(t, d).Payload)
}

func TestListChecklistConsumesStateColumn(t *testing.T) {
	d := NewList(ListOptions{
		Columns: []string{"Pick", "Name", "Size"},
		Mode:    ListChecklist,
		Rows: [][]string{
			{"TRUE", "alpha", "1"},
			{"false", "beta", "2"},
			{"True", "gamma", "3"},
		},
	}, testPalette(), testFace(t))

	require.Equal(t, []string{"Name", "Size"}, d.columns)
	require.Equal(t, "Pick", d.checkHeader)
	assert.Equal(t, []bool{true, false, true}, d.checked)

	d.Handle(keyPress(input.KeyEnter))

	assert.Equal(t, "alpha|gamma", requireDone(t, d).Payload)
}

func TestListChecklistSpaceTogglesHoveredRow(t *testing.T) {
	d := NewList(ListOptions{
		Columns: []string{"Pick", "Name"},
		Mode:    ListChecklist,
		Rows:    [][]string{{"false", "alpha"}, {"false", "beta"}},
	}, testPalette(), testFace(t))

	x, y := listRowPoint(d, 1)
	d.Handle(moveTo(x, y))
	require.Equal(t, 1, d.hovered)

	d.Handle(runePress(' '))
	assert.Equal(t, []bool{false, true}, d.checked)

	d.Handle(runePress(' '))
	assert.Equal(t, []bool{false, false}, d.checked)
}

func TestListChecklistClickTogglesRow(t *testing.T) {
	d := NewList(ListOptions{
		Columns: []string{"Pick", "Name"},
		Mode:    ListChecklist,
		Rows:    [][]string{{"false", "alpha"}, {"true", "beta"}},
	}, testPalette(), testFace(t))

	clickListRow(d, 0)
	clickListRow(d, 1)

	assert.Equal(t, []bool{true, false}, d.checked)
	requireActive(t, d)
}

func TestListRadiolistExclusiveChoice(t *testing.T) {
	d := NewList(ListOptions{
		Columns: []string{"Pick", "Name"},
		Mode:    ListRadiolist,
		Rows:    [][]string{{"true", "alpha"}, {"false", "beta"}},
	}, testPalette(), testFace(t))

	clickListRow(d, 1)
	assert.Equal(t, []bool{false, true}, d.checked)

	d.Handle(keyPress(input.KeyEnter))
	assert.Equal(t, "beta", requireDone(t, d).Payload)
}

func TestListMultipleCtrlTogglesPlainClickReplaces(t *testing.T) {
	d := NewList(ListOptions{
		Columns: []string{"Name"},
		Mode:    ListMultiple,
		Rows:    [][]string{{"alpha"}, {"beta"}, {"gamma"}},
	}, testPalette(), testFace(t))

	clickListRow(d, 0)
	assert.Equal(t, []bool{true, false, false}, d.checked)

	x, y := listRowPoint(d, 2)
	d.Handle(moveTo(x, y))
	d.Handle(input.ButtonPress{Button: input.ButtonLeft, X: x, Y: y, Mods: input.Modifiers{Ctrl: true}})
	d.Handle(leftRelease(x, y))
	assert.Equal(t, []bool{true, false, true}, d.checked)

	d.Handle(keyPress(input.KeyEnter))
	assert.Equal(t, "alpha|gamma", requireDone(t, d).Payload)
}

func TestListMultiplePlainClickClearsOthers(t *testing.T) {
	d := NewList(ListOptions{
		Columns: []string{"Name"},
		Mode:    ListMultiple,
		Rows:    [][]string{{"alpha"}, {"beta"}},
	}, testPalette(), testFace(t))

	clickListRow(d, 0)
	clickListRow(d, 1)

	assert.Equal(t, []bool{false, true}, d.checked)
}

func TestListHiddenColumnProjection(t *testing.T) {
	d := NewList(ListOptions{
		Columns:    []string{"ID", "Name"},
		HiddenCols: []int{1},
		Rows:       [][]string{{"17", "Alpha"}},
	}, testPalette(), testFace(t))

	require.Equal(t, []string{"Name"}, d.columns)
	require.Equal(t, [][]string{{"Alpha"}}, d.display)

	d.Handle(keyPress(input.KeyDown))
	d.Handle(keyPress(input.KeyEnter))

	assert.Equal(t, "Alpha", requireDone(t, d).Payload)
}

func TestListChecklistHiddenColumnCountsCheckColumn(t *testing.T) {
	d := NewList(ListOptions{
		Columns:    []string{"Pick", "ID", "Name"},
		Mode:       ListChecklist,
		HiddenCols: []int{2},
		Rows:       [][]string{{"true", "9", "alpha"}},
	}, testPalette(), testFace(t))

	require.Equal(t, []string{"Name"}, d.columns)

	d.Handle(keyPress(input.KeyEnter))
	assert.Equal(t, "alpha", requireDone(t, d).Payload)
}

func TestListCustomSeparator(t *testing.T) {
	d := NewList(ListOptions{
		Columns:   []string{"Pick", "Name"},
		Mode:      ListChecklist,
		Separator: ",",
		Rows:      [][]string{{"true", "a"}, {"true", "b"}},
	}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyEnter))
	assert.Equal(t, "a,b", requireDone(t, d).Payload)
}

func TestListStreamedCellsGroupIntoRows(t *testing.T) {
	f := openFeedOf("1", "alpha", "2")
	d := NewList(ListOptions{
		Columns: []string{"ID", "Name"},
		Feed:    f,
	}, testPalette(), testFace(t))

	assert.True(t, d.Tick())
	require.Len(t, d.rows, 1)
	assert.Equal(t, []string{"1", "alpha"}, d.rows[0])
	assert.Equal(t, []string{"2"}, d.pending)

	f.lines = []string{"beta"}
	f.done = true
	d.Tick()

	require.Len(t, d.rows, 2)
	assert.Equal(t, []string{"2", "beta"}, d.rows[1])
	assert.Nil(t, d.feed, "feed detaches at EOF")
}

func TestListPartialTrailingGroupDropped(t *testing.T) {
	d := NewList(ListOptions{
		Columns: []string{"ID", "Name"},
		Feed:    feedOf("1", "alpha", "stray"),
	}, testPalette(), testFace(t))

	d.Tick()

	require.Len(t, d.rows, 1)
	assert.Nil(t, d.pending)
	assert.Nil(t, d.feed)
}

func TestListEditableCommitRewritesCell(t *testing.T) {
	d := NewList(ListOptions{
		Columns:  []string{"Name"},
		Editable: true,
		Rows:     [][]string{{"Old"}},
	}, testPalette(), testFace(t))

	clickListRow(d, 0)
	require.False(t, d.editing)

	clickListRow(d, 0)
	require.True(t, d.editing, "clicking the selected row opens the editor")

	typeString(d, "New")
	d.Handle(keyPress(input.KeyEnter))

	assert.False(t, d.editing)
	assert.Equal(t, "New", d.display[0][0])
	assert.Equal(t, "New", d.rows[0][0])

	d.Handle(keyPress(input.KeyEnter))
	assert.Equal(t, "New", requireDone(t, d).Payload)
}

func TestListEditableEscapeDiscardsEdit(t *testing.T) {
	d := NewList(ListOptions{
		Columns:  []string{"Name"},
		Editable: true,
		Rows:     [][]string{{"Old"}},
	}, testPalette(), testFace(t))

	clickListRow(d, 0)
	clickListRow(d, 0)
	typeString(d, "New")
	d.Handle(keyPress(input.KeyEscape))

	assert.False(t, d.editing)
	assert.Equal(t, "Old", d.display[0][0])
	requireActive(t, d)
}

func TestListEditableIgnoredOutsideSingleMode(t *testing.T) {
	d := NewList(ListOptions{
		Columns:  []string{"Pick", "Name"},
		Mode:     ListChecklist,
		Editable: true,
		Rows:     [][]string{{"true", "a"}},
	}, testPalette(), testFace(t))

	assert.False(t, d.editable)
}

func TestListWheelScrolls(t *testing.T) {
	rows := make([][]string, 20)
	for i := range rows {
		rows[i] = []string{"row"}
	}
	d := NewList(ListOptions{Columns: []string{"Name"}, Rows: rows}, testPalette(), testFace(t))

	require.True(t, d.vsb.Scrollable())

	d.Handle(input.ButtonPress{Button: input.ButtonWheelDown})
	assert.Equal(t, 2.0, d.vsb.Offset())

	d.Handle(input.ButtonPress{Button: input.ButtonWheelUp})
	assert.Equal(t, 0.0, d.vsb.Offset())
}

func TestListHideHeaderDropsHeaderRow(t *testing.T) {
	with := NewList(ListOptions{
		Columns: []string{"Name"},
		Rows:    [][]string{{"a"}},
	}, testPalette(), testFace(t))
	without := NewList(ListOptions{
		Columns:    []string{"Name"},
		HideHeader: true,
		Rows:       [][]string{{"a"}},
	}, testPalette(), testFace(t))

	assert.True(t, with.hasHeader)
	assert.False(t, without.hasHeader)
	assert.Equal(t, without.listY, without.dataY)
	assert.Greater(t, with.dataY, with.listY)
}

func TestListOKAndCancelButtons(t *testing.T) {
	d := NewList(ListOptions{
		Columns: []string{"Name"},
		Rows:    [][]string{{"Alpha"}},
	}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyDown))
	clickOn(d, d.ok.Bounds())
	assert.Equal(t, "Alpha", requireDone(t, d).Payload)

	d = NewList(ListOptions{
		Columns: []string{"Name"},
		Rows:    [][]string{{"Alpha"}},
	}, testPalette(), testFace(t))

	clickOn(d, d.cancel.Bounds())
	assert.Equal(t, StateCancelled, requireDone(t, d).State)
}
