package sim

import (
	"testing"
	"time"

	"github.com/odvcencio/placard/pkg/display"
	"github.com/odvcencio/placard/pkg/input"
)

func drain(t *testing.T, c *Conn) []input.RawEvent {
	t.Helper()
	var out []input.RawEvent
	for {
		select {
		case ev, ok := <-c.Events():
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-time.After(50 * time.Millisecond):
			return out
		}
	}
}

func TestConn_CreateSurface(t *testing.T) {
	c := New(400, 200)
	defer c.Close()

	surf, err := c.CreateSurface(display.SurfaceOptions{Title: "Question"})
	if err != nil {
		t.Fatalf("CreateSurface failed: %v", err)
	}

	w, h := surf.Size()
	if w != 400 || h != 200 {
		t.Errorf("Expected 400x200, got %dx%d", w, h)
	}
	if c.Title() != "Question" {
		t.Errorf("Expected title to be recorded, got %q", c.Title())
	}
	if len(surf.Buffer()) != 400*200*4 {
		t.Errorf("Buffer length = %d, want %d", len(surf.Buffer()), 400*200*4)
	}

	if _, err := c.CreateSurface(display.SurfaceOptions{Title: "again"}); err == nil {
		t.Error("Expected second CreateSurface to fail")
	}
}

func TestConn_Scale(t *testing.T) {
	c := NewWithScale(100, 50, 2)
	defer c.Close()

	surf, err := c.CreateSurface(display.SurfaceOptions{Title: "hidpi"})
	if err != nil {
		t.Fatalf("CreateSurface failed: %v", err)
	}
	if surf.Scale() != 2 {
		t.Errorf("Scale = %d, want 2", surf.Scale())
	}
	if len(surf.Buffer()) != 100*2*50*2*4 {
		t.Errorf("Buffer length = %d for 2x scale", len(surf.Buffer()))
	}
}

func TestConn_InjectKeyString(t *testing.T) {
	c := New(100, 100)
	defer c.Close()

	c.InjectKeyString("Hi 5!")

	km, err := c.Keymap()
	if err != nil {
		t.Fatalf("Keymap failed: %v", err)
	}
	tr := input.NewTranslator(km)

	var typed []rune
	for _, raw := range drain(t, c) {
		for _, ev := range tr.Translate(raw) {
			if kp, ok := ev.(input.KeyPress); ok && kp.Rune != 0 {
				typed = append(typed, kp.Rune)
			}
		}
	}
	if string(typed) != "Hi 5!" {
		t.Errorf("Typed %q, want %q", string(typed), "Hi 5!")
	}
}

func TestConn_InjectNamedKey(t *testing.T) {
	c := New(100, 100)
	defer c.Close()

	c.InjectKey(input.KeyEnter)
	events := drain(t, c)
	if len(events) != 2 {
		t.Fatalf("Expected press+release, got %d events", len(events))
	}
	down, ok := events[0].(input.RawKeyDown)
	if !ok || down.Code != codeReturn {
		t.Errorf("Expected RawKeyDown for Return, got %#v", events[0])
	}
	if _, ok := events[1].(input.RawKeyUp); !ok {
		t.Errorf("Expected RawKeyUp, got %#v", events[1])
	}

	km, _ := c.Keymap()
	tr := input.NewTranslator(km)
	var key input.Key
	for _, raw := range events {
		for _, ev := range tr.Translate(raw) {
			if kp, ok := ev.(input.KeyPress); ok {
				key = kp.Key
			}
		}
	}
	if key != input.KeyEnter {
		t.Errorf("Translated key = %v, want KeyEnter", key)
	}
}

func TestConn_InjectClick(t *testing.T) {
	c := New(100, 100)
	defer c.Close()

	c.InjectClick(input.ButtonLeft, 30, 40)
	events := drain(t, c)
	if len(events) != 3 {
		t.Fatalf("Expected move+down+up, got %d events", len(events))
	}
	downEv, ok := events[1].(input.RawButtonDown)
	if !ok || downEv.Button != input.ButtonLeft || downEv.X != 30 || downEv.Y != 40 {
		t.Errorf("Unexpected button down: %#v", events[1])
	}
}

func TestConn_InjectResize(t *testing.T) {
	c := New(200, 100)
	defer c.Close()

	surf, err := c.CreateSurface(display.SurfaceOptions{Title: "resize"})
	if err != nil {
		t.Fatalf("CreateSurface failed: %v", err)
	}

	c.InjectResize(320, 240)

	events := drain(t, c)
	if len(events) != 1 {
		t.Fatalf("Expected one configure event, got %d", len(events))
	}
	cfg, ok := events[0].(input.RawConfigure)
	if !ok || cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("Unexpected configure: %#v", events[0])
	}

	w, h := surf.Size()
	if w != 320 || h != 240 {
		t.Errorf("Surface size = %dx%d after resize", w, h)
	}
	if len(surf.Buffer()) != 320*240*4 {
		t.Errorf("Buffer not reallocated: len = %d", len(surf.Buffer()))
	}
}

func TestSurface_PresentAndPixels(t *testing.T) {
	c := New(10, 10)
	defer c.Close()

	surf, err := c.CreateSurface(display.SurfaceOptions{Title: "px"})
	if err != nil {
		t.Fatalf("CreateSurface failed: %v", err)
	}

	sim := surf.(*Surface)
	buf := sim.Buffer()
	i := (2*10 + 3) * 4
	buf[i+0] = 0   // blue
	buf[i+1] = 0   // green
	buf[i+2] = 255 // red
	buf[i+3] = 255

	if sim.PresentCount() != 0 {
		t.Fatalf("PresentCount before present = %d", sim.PresentCount())
	}
	if err := sim.Present(); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	if sim.PresentCount() != 1 {
		t.Errorf("PresentCount = %d, want 1", sim.PresentCount())
	}

	r, g, b, a := sim.PixelAt(3, 2)
	if r != 255 || g != 0 || b != 0 || a != 255 {
		t.Errorf("PixelAt(3,2) = %d,%d,%d,%d, want opaque red", r, g, b, a)
	}
}

func TestConn_SetKeymap(t *testing.T) {
	c := New(50, 50)
	defer c.Close()

	custom := input.NewKeymap()
	custom.SetLevels(9, 0xff1b, 0xff1b)
	c.SetKeymap(custom)

	events := drain(t, c)
	if len(events) != 1 {
		t.Fatalf("Expected keymap-change event, got %d", len(events))
	}
	if _, ok := events[0].(input.RawKeymapChange); !ok {
		t.Errorf("Expected RawKeymapChange, got %#v", events[0])
	}
	km, _ := c.Keymap()
	if km != custom {
		t.Error("Keymap() should return the installed layout")
	}
}

func TestConn_CloseIdempotent(t *testing.T) {
	c := New(50, 50)
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Second close failed: %v", err)
	}
	// Injection after close must not panic.
	c.Inject(input.RawExpose{})
	if _, ok := <-c.Events(); ok {
		t.Error("Events channel should be closed")
	}
}

func TestConn_CursorAndMove(t *testing.T) {
	c := New(50, 50)
	defer c.Close()

	c.SetCursor(display.CursorText)
	if c.Cursor() != display.CursorText {
		t.Errorf("Cursor = %v, want CursorText", c.Cursor())
	}
	c.BeginMove()
	c.BeginMove()
	if c.MoveCount() != 2 {
		t.Errorf("MoveCount = %d, want 2", c.MoveCount())
	}
}
