package dialog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/placard/pkg/input"
)

func longContent(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("line\n")
	}
	return b.String()
}

func TestTextInfoEnterConfirms(t *testing.T) {
	d := NewTextInfo(TextInfoOptions{Content: "terms"}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyEnter))

	o := requireDone(t, d)
	assert.Equal(t, StateConfirmed, o.State)
	assert.Empty(t, o.Payload)
}

func TestTextInfoEscapeCancels(t *testing.T) {
	d := NewTextInfo(TextInfoOptions{Content: "terms"}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyEscape))

	assert.Equal(t, StateCancelled, requireDone(t, d).State)
}

func TestTextInfoCheckboxGatesConfirm(t *testing.T) {
	d := NewTextInfo(TextInfoOptions{
		Content:  "license",
		Checkbox: "I have read and agree",
	}, testPalette(), testFace(t))

	require.NotNil(t, d.checkbox)
	assert.False(t, d.ok.Enabled())

	d.Handle(keyPress(input.KeyEnter))
	requireActive(t, d)

	d.Handle(runePress(' '))
	assert.True(t, d.checkbox.Checked())
	assert.True(t, d.ok.Enabled())

	d.Handle(keyPress(input.KeyEnter))
	assert.Equal(t, StateConfirmed, requireDone(t, d).State)
}

func TestTextInfoCheckboxClickEnablesOK(t *testing.T) {
	d := NewTextInfo(TextInfoOptions{
		Content:  "license",
		Checkbox: "Agree",
	}, testPalette(), testFace(t))

	clickOn(d, d.checkbox.Bounds())
	assert.True(t, d.checkbox.Checked())
	assert.True(t, d.ok.Enabled())

	clickOn(d, d.ok.Bounds())
	assert.Equal(t, StateConfirmed, requireDone(t, d).State)
}

func TestTextInfoEscapeCancelsEvenWhenGated(t *testing.T) {
	d := NewTextInfo(TextInfoOptions{
		Content:  "license",
		Checkbox: "Agree",
	}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyEscape))
	assert.Equal(t, StateCancelled, requireDone(t, d).State)
}

func TestTextInfoScrollKeys(t *testing.T) {
	d := NewTextInfo(TextInfoOptions{Content: longContent(200)}, testPalette(), testFace(t))

	require.Greater(t, len(d.lines), d.visible, "content must overflow the view")
	maxOffset := float64(len(d.lines) - d.visible)

	d.Handle(keyPress(input.KeyDown))
	d.Handle(keyPress(input.KeyDown))
	assert.Equal(t, 2.0, d.sb.Offset())

	d.Handle(keyPress(input.KeyUp))
	assert.Equal(t, 1.0, d.sb.Offset())

	d.Handle(keyPress(input.KeyPageDown))
	assert.Equal(t, 1.0+float64(d.visible), d.sb.Offset())

	d.Handle(keyPress(input.KeyEnd))
	assert.Equal(t, maxOffset, d.sb.Offset())

	d.Handle(keyPress(input.KeyHome))
	assert.Equal(t, 0.0, d.sb.Offset())
}

func TestTextInfoWheelScrolls(t *testing.T) {
	d := NewTextInfo(TextInfoOptions{Content: longContent(200)}, testPalette(), testFace(t))

	d.Handle(input.ButtonPress{Button: input.ButtonWheelDown})
	assert.Equal(t, 3.0, d.sb.Offset())

	d.Handle(input.ButtonPress{Button: input.ButtonWheelUp})
	assert.Equal(t, 0.0, d.sb.Offset())
}

func TestTextInfoScrollClampsAtTop(t *testing.T) {
	d := NewTextInfo(TextInfoOptions{Content: longContent(200)}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyUp))
	assert.Equal(t, 0.0, d.sb.Offset())
}

func TestTextInfoHighlightProducesLines(t *testing.T) {
	d := NewTextInfo(TextInfoOptions{
		Content:   "package main\n",
		Filename:  "main.go",
		Highlight: true,
	}, testPalette(), testFace(t))

	require.NotEmpty(t, d.lines)
}
