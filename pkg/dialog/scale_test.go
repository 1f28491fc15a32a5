package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odvcencio/placard/pkg/input"
)

func TestScaleArrowStepsAndConfirm(t *testing.T) {
	d := NewScale(ScaleOptions{Min: 0, Max: 100, Step: 5, Value: 50}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyUp))
	d.Handle(keyPress(input.KeyRight))
	d.Handle(keyPress(input.KeyDown))
	d.Handle(keyPress(input.KeyEnter))

	o := requireDone(t, d)
	assert.Equal(t, StateConfirmed, o.State)
	assert.Equal(t, "55", o.Payload)
}

func TestScaleClampsToRange(t *testing.T) {
	d := NewScale(ScaleOptions{Min: 0, Max: 10, Step: 3, Value: 9}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyUp))
	assert.Equal(t, 10, d.slider.Value())

	d.Handle(keyPress(input.KeyHome))
	assert.Equal(t, 0, d.slider.Value())

	d.Handle(keyPress(input.KeyDown))
	assert.Equal(t, 0, d.slider.Value())

	d.Handle(keyPress(input.KeyEnd))
	assert.Equal(t, 10, d.slider.Value())
}

func TestScaleConfirmsPresetValue(t *testing.T) {
	d := NewScale(ScaleOptions{Min: 0, Max: 100, Value: 33}, testPalette(), testFace(t))

	clickOn(d, d.ok.Bounds())

	assert.Equal(t, "33", requireDone(t, d).Payload)
}

func TestScaleEscapeCancels(t *testing.T) {
	d := NewScale(ScaleOptions{Min: 0, Max: 100}, testPalette(), testFace(t))

	d.Handle(keyPress(input.KeyEscape))

	assert.Equal(t, StateCancelled, requireDone(t, d).State)
}

func TestScaleCancelButton(t *testing.T) {
	d := NewScale(ScaleOptions{Min: 0, Max: 100, Value: 40}, testPalette(), testFace(t))

	clickOn(d, d.cancel.Bounds())

	o := requireDone(t, d)
	assert.Equal(t, StateCancelled, o.State)
	assert.Empty(t, o.Payload)
}
