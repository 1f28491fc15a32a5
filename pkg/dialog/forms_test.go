package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/placard/pkg/input"
)

func TestFormsEnterAdvancesThenConfirms(t *testing.T) {
	d := NewForms(FormsOptions{
		Fields: []FormField{{Label: "Name"}, {Label: "Email"}},
	}, testPalette(), testFace(t))

	typeString(d, "Ann")
	d.Handle(keyPress(input.KeyEnter))
	requireActive(t, d)

	typeString(d, "ann@example.com")
	d.Handle(keyPress(input.KeyEnter))

	o := requireDone(t, d)
	assert.Equal(t, StateConfirmed, o.State)
	assert.Equal(t, "Ann|ann@example.com", o.Payload)
}

func TestFormsCustomSeparator(t *testing.T) {
	d := NewForms(FormsOptions{
		Fields:    []FormField{{Label: "A"}, {Label: "B"}},
		Separator: ",",
	}, testPalette(), testFace(t))

	typeString(d, "x")
	d.Handle(keyPress(input.KeyEnter))
	typeString(d, "y")
	d.Handle(keyPress(input.KeyEnter))

	assert.Equal(t, "x,y", requireDone(t, d).Payload)
}

func TestFormsTabCyclesFocus(t *testing.T) {
	d := NewForms(FormsOptions{
		Fields: []FormField{{Label: "A"}, {Label: "B"}, {Label: "C"}},
	}, testPalette(), testFace(t))

	require.Equal(t, 0, d.focused)

	d.Handle(keyPress(input.KeyTab))
	assert.Equal(t, 1, d.focused)

	d.Handle(keyPress(input.KeyTab))
	d.Handle(keyPress(input.KeyTab))
	assert.Equal(t, 0, d.focused, "tab wraps past the last field")

	d.Handle(input.KeyPress{Key: input.KeyTab, Mods: input.Modifiers{Shift: true}})
	assert.Equal(t, 2, d.focused, "shift-tab wraps backwards")
}

func TestFormsTypingFollowsFocus(t *testing.T) {
	d := NewForms(FormsOptions{
		Fields: []FormField{{Label: "A"}, {Label: "B"}},
	}, testPalette(), testFace(t))

	typeString(d, "first")
	d.Handle(keyPress(input.KeyTab))
	typeString(d, "second")

	assert.Equal(t, "first", d.inputs[0].Text())
	assert.Equal(t, "second", d.inputs[1].Text())
}

func TestFormsClickFocusesField(t *testing.T) {
	d := NewForms(FormsOptions{
		Fields: []FormField{{Label: "A"}, {Label: "B"}},
	}, testPalette(), testFace(t))

	b := d.inputs[1].Bounds()
	d.Handle(leftPress(b.X+5, b.Y+5))

	assert.Equal(t, 1, d.focused)
	assert.True(t, d.inputs[1].Focused())
	assert.False(t, d.inputs[0].Focused())
}

func TestFormsPasswordFieldPayloadIsClear(t *testing.T) {
	d := NewForms(FormsOptions{
		Fields: []FormField{{Label: "User"}, {Label: "Password", Password: true}},
	}, testPalette(), testFace(t))

	typeString(d, "root")
	d.Handle(keyPress(input.KeyEnter))
	typeString(d, "hunter2")
	d.Handle(keyPress(input.KeyEnter))

	assert.Equal(t, "root|hunter2", requireDone(t, d).Payload)
}

func TestFormsEmptyValuesKeepPositions(t *testing.T) {
	d := NewForms(FormsOptions{
		Fields: []FormField{{Label: "A"}, {Label: "B"}, {Label: "C"}},
	}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyEnter))
	typeString(d, "mid")
	d.Handle(keyPress(input.KeyEnter))
	d.Handle(keyPress(input.KeyEnter))

	assert.Equal(t, "|mid|", requireDone(t, d).Payload)
}

func TestFormsEscapeCancels(t *testing.T) {
	d := NewForms(FormsOptions{
		Fields: []FormField{{Label: "A"}},
	}, testPalette(), testFace(t))

	typeString(d, "typed")
	d.Handle(keyPress(input.KeyEscape))

	o := requireDone(t, d)
	assert.Equal(t, StateCancelled, o.State)
	assert.Empty(t, o.Payload)
}

func TestFormsWithoutFieldsConfirmsImmediately(t *testing.T) {
	d := NewForms(FormsOptions{}, testPalette(), testFace(t))

	o := requireDone(t, d)
	assert.Equal(t, StateConfirmed, o.State)
	assert.Empty(t, o.Payload)

	assert.False(t, d.Handle(keyPress(input.KeyEscape)), "input after the fact is ignored")
}

func TestFormsCancelButton(t *testing.T) {
	d := NewForms(FormsOptions{
		Fields: []FormField{{Label: "A"}},
	}, testPalette(), testFace(t))

	clickOn(d, d.cancel.Bounds())

	assert.Equal(t, StateCancelled, requireDone(t, d).State)
}
