package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odvcencio/placard/pkg/display"
	"github.com/odvcencio/placard/pkg/input"
)

func TestEntryTypeAndConfirm(t *testing.T) {
	d := NewEntry(EntryOptions{Text: "Name:"}, testPalette(), testFace(t))

	typeString(d, "hello")
	d.Handle(keyPress(input.KeyEnter))

	o := requireDone(t, d)
	assert.Equal(t, StateConfirmed, o.State)
	assert.Equal(t, "hello", o.Payload)
}

func TestEntryPresetIsAppendedTo(t *testing.T) {
	d := NewEntry(EntryOptions{Preset: "abc"}, testPalette(), testFace(t))

	typeString(d, "d")
	d.Handle(keyPress(input.KeyEnter))

	assert.Equal(t, "abcd", requireDone(t, d).Payload)
}

func TestEntryMaskedPayloadIsClear(t *testing.T) {
	d := NewEntry(EntryOptions{Masked: true}, testPalette(), testFace(t))

	typeString(d, "s3cret")
	d.Handle(keyPress(input.KeyEnter))

	o := requireDone(t, d)
	assert.Equal(t, "s3cret", o.Payload, "masking is display-only")
}

func TestEntryOKButtonConfirms(t *testing.T) {
	d := NewEntry(EntryOptions{}, testPalette(), testFace(t))

	typeString(d, "via button")
	clickOn(d, d.ok.Bounds())

	o := requireDone(t, d)
	assert.Equal(t, StateConfirmed, o.State)
	assert.Equal(t, "via button", o.Payload)
}

func TestEntryCancelButton(t *testing.T) {
	d := NewEntry(EntryOptions{}, testPalette(), testFace(t))

	typeString(d, "discarded")
	clickOn(d, d.cancel.Bounds())

	o := requireDone(t, d)
	assert.Equal(t, StateCancelled, o.State)
	assert.Empty(t, o.Payload)
	assert.Equal(t, 1, o.ExitCode())
}

func TestEntryEmptySubmitConfirmsEmpty(t *testing.T) {
	d := NewEntry(EntryOptions{}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyEnter))

	o := requireDone(t, d)
	assert.Equal(t, StateConfirmed, o.State)
	assert.Empty(t, o.Payload)
}

func TestEntryCursorShapeOverInput(t *testing.T) {
	d := NewEntry(EntryOptions{}, testPalette(), testFace(t))

	b := d.inp.Bounds()
	d.Handle(moveTo(b.X+5, b.Y+5))
	assert.Equal(t, display.CursorText, d.CursorShape())

	d.Handle(moveTo(1, 1))
	assert.Equal(t, display.CursorDefault, d.CursorShape())
}

func TestEntryDefaultTitle(t *testing.T) {
	d := NewEntry(EntryOptions{}, testPalette(), testFace(t))
	assert.Equal(t, "Entry", d.Title())

	d = NewEntry(EntryOptions{Title: "Your name"}, testPalette(), testFace(t))
	assert.Equal(t, "Your name", d.Title())
}
