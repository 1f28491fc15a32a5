package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/placard/pkg/input"
)

func TestMessageDefaultsToSingleOK(t *testing.T) {
	d := NewMessage(MessageOptions{Title: "Info", Text: "All good."}, testPalette(), testFace(t))

	require.Len(t, d.buttons, 1)
	assert.Equal(t, "OK", d.buttons[0].Label())

	clickOn(d, d.buttons[0].Bounds())

	o := requireDone(t, d)
	assert.Equal(t, StateConfirmed, o.State)
	assert.Equal(t, 0, o.Button)
	assert.Empty(t, o.Payload)
	assert.Equal(t, 0, o.ExitCode())
}

func TestMessageButtonIndexSetsExitCode(t *testing.T) {
	d := NewMessage(MessageOptions{
		Title:   "Question",
		Text:    "Proceed?",
		Icon:    IconQuestion,
		Buttons: []string{"Yes", "No"},
	}, testPalette(), testFace(t))

	clickOn(d, d.buttons[1].Bounds())

	o := requireDone(t, d)
	assert.Equal(t, StateConfirmed, o.State)
	assert.Equal(t, 1, o.Button)
	assert.Equal(t, 1, o.ExitCode())
}

func TestMessageMinimumWidth(t *testing.T) {
	d := NewMessage(MessageOptions{Text: "hi"}, testPalette(), testFace(t))

	w, h := d.Size()
	assert.GreaterOrEqual(t, w, messageMinWidth)
	assert.Greater(t, h, 0)
}

func TestMessageBodyDragRequestsMove(t *testing.T) {
	d := NewMessage(MessageOptions{Text: "Drag me"}, testPalette(), testFace(t))

	// Press the body well away from the button row, then move.
	d.Handle(leftPress(5, 5))
	d.Handle(moveTo(40, 40))

	assert.True(t, d.WantsMove())
	assert.False(t, d.WantsMove(), "move request must be consumed")
	requireActive(t, d)
}

func TestMessagePressOnButtonDoesNotArmMove(t *testing.T) {
	d := NewMessage(MessageOptions{Text: "Click me"}, testPalette(), testFace(t))

	b := d.buttons[0].Bounds()
	d.Handle(moveTo(b.X+b.W/2, b.Y+b.H/2))
	d.Handle(leftPress(b.X+b.W/2, b.Y+b.H/2))
	d.Handle(moveTo(b.X+b.W/2+2, b.Y+b.H/2+2))

	assert.False(t, d.WantsMove())
}

func TestMessageReleaseDisarmsMove(t *testing.T) {
	d := NewMessage(MessageOptions{Text: "Still here"}, testPalette(), testFace(t))

	d.Handle(leftPress(5, 5))
	d.Handle(leftRelease(5, 5))
	d.Handle(moveTo(40, 40))

	assert.False(t, d.WantsMove())
}

func TestMessageIgnoresKeys(t *testing.T) {
	d := NewMessage(MessageOptions{Text: "hi", Buttons: []string{"Yes", "No"}}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyEnter))
	d.Handle(keyPress(input.KeyEscape))

	requireActive(t, d)
}
