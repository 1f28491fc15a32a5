// Package input normalizes raw display-protocol events into logical input
// events. The two-stage design exists because the same physical key must
// yield different codepoints depending on shift/caps-lock/layout, and lock
// keys are edge-triggered in the underlying protocols: the wire reports the
// transition, not the resulting lock state.
package input

// Button identifies a pointer button. Wheel notches are delivered as
// press/release pairs of the wheel buttons.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
)

// Key identifies a non-printable key controllers act on. Printable input
// arrives as the Rune field of KeyPress.
type Key uint8

const (
	KeyNone Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// Modifiers is the logical modifier state. Shift/Ctrl/Alt are level-held;
// CapsLock/NumLock are lock bits maintained by the Translator.
type Modifiers struct {
	Shift    bool
	Ctrl     bool
	Alt      bool
	CapsLock bool
	NumLock  bool
}

// RawEvent is what a transport backend emits. Coordinates are logical
// (surface-local) units; key codes are the protocol's physical codes
// (X11 keycodes, or evdev+8 on Wayland so both resolve through one table).
type RawEvent interface{ isRawEvent() }

type RawKeyDown struct {
	Code   uint32
	Repeat bool
}

type RawKeyUp struct {
	Code uint32
}

type RawPointerMove struct {
	X, Y float64
}

type RawButtonDown struct {
	Button Button
	X, Y   float64
}

type RawButtonUp struct {
	Button Button
	X, Y   float64
}

type RawConfigure struct {
	Width  int
	Height int
	Scale  int
}

type RawExpose struct{}

type RawFocus struct {
	In bool
}

type RawClose struct{}

// RawKeymapChange asks the session to rebuild the keymap from the backend.
type RawKeymapChange struct{}

// RawLockSeed carries the server's authoritative lock-key state; emitted
// before key events and again whenever the server reports a change.
type RawLockSeed struct {
	Caps bool
	Num  bool
}

// RawError surfaces a protocol failure through the event stream.
type RawError struct {
	Err error
}

func (RawKeyDown) isRawEvent()      {}
func (RawKeyUp) isRawEvent()        {}
func (RawPointerMove) isRawEvent()  {}
func (RawButtonDown) isRawEvent()   {}
func (RawButtonUp) isRawEvent()     {}
func (RawConfigure) isRawEvent()    {}
func (RawExpose) isRawEvent()       {}
func (RawFocus) isRawEvent()        {}
func (RawClose) isRawEvent()        {}
func (RawKeymapChange) isRawEvent() {}
func (RawLockSeed) isRawEvent()     {}
func (RawError) isRawEvent()        {}

// Event is a normalized input event, consumed by the active dialog
// controller.
type Event interface{ isEvent() }

type KeyPress struct {
	Key  Key
	Rune rune
	Sym  uint32
	Mods Modifiers
}

type KeyRelease struct {
	Key  Key
	Sym  uint32
	Mods Modifiers
}

type PointerMove struct {
	X, Y float64
}

type ButtonPress struct {
	Button Button
	X, Y   float64
	Mods   Modifiers
}

type ButtonRelease struct {
	Button Button
	X, Y   float64
	Mods   Modifiers
}

type Resize struct {
	Width  int
	Height int
	Scale  int
}

type FocusChange struct {
	Focused bool
}

type Close struct{}

func (KeyPress) isEvent()      {}
func (KeyRelease) isEvent()    {}
func (PointerMove) isEvent()   {}
func (ButtonPress) isEvent()   {}
func (ButtonRelease) isEvent() {}
func (Resize) isEvent()        {}
func (FocusChange) isEvent()   {}
func (Close) isEvent()         {}
