package input

// Translator normalizes raw backend events into logical Events and owns
// the ModifierState. Lock keys toggle exactly once per press-then-release
// pair: a press toggles only while the key is not already held, repeats
// never toggle, release clears the held mark.
type Translator struct {
	keymap *Keymap
	mods   Modifiers
	held   map[uint32]bool
}

// NewTranslator wraps a keymap. A nil keymap resolves everything to the
// null codepoint but still passes press/release events through.
func NewTranslator(km *Keymap) *Translator {
	if km == nil {
		km = NewKeymap()
	}
	return &Translator{
		keymap: km,
		held:   make(map[uint32]bool),
	}
}

// SetKeymap swaps in a freshly built keymap after a layout change. Held
// keys are forgotten; the server re-reports anything still relevant.
func (t *Translator) SetKeymap(km *Keymap) {
	if km == nil {
		return
	}
	t.keymap = km
	t.held = make(map[uint32]bool)
}

// Modifiers returns the current logical modifier state.
func (t *Translator) Modifiers() Modifiers {
	return t.mods
}

// Translate converts one raw event into zero or more logical events.
// Expose, keymap-change and error events are session concerns and produce
// nothing here.
func (t *Translator) Translate(raw RawEvent) []Event {
	switch ev := raw.(type) {
	case RawKeyDown:
		return t.keyDown(ev)
	case RawKeyUp:
		return t.keyUp(ev)
	case RawPointerMove:
		return []Event{PointerMove{X: ev.X, Y: ev.Y}}
	case RawButtonDown:
		return []Event{ButtonPress{Button: ev.Button, X: ev.X, Y: ev.Y, Mods: t.mods}}
	case RawButtonUp:
		return []Event{ButtonRelease{Button: ev.Button, X: ev.X, Y: ev.Y, Mods: t.mods}}
	case RawConfigure:
		return []Event{Resize{Width: ev.Width, Height: ev.Height, Scale: ev.Scale}}
	case RawFocus:
		if !ev.In {
			// Releases for held keys will never arrive; drop the level
			// modifiers so nothing sticks. Lock bits stay.
			t.mods.Shift = false
			t.mods.Ctrl = false
			t.mods.Alt = false
			t.held = make(map[uint32]bool)
		}
		return []Event{FocusChange{Focused: ev.In}}
	case RawClose:
		return []Event{Close{}}
	case RawLockSeed:
		t.mods.CapsLock = ev.Caps
		t.mods.NumLock = ev.Num
		return nil
	}
	return nil
}

func (t *Translator) keyDown(ev RawKeyDown) []Event {
	base := t.keymap.BaseSym(ev.Code)
	repeat := ev.Repeat || t.held[ev.Code]

	switch base {
	case symShiftL, symShiftR:
		t.mods.Shift = true
	case symControlL, symControlR:
		t.mods.Ctrl = true
	case symAltL, symAltR, symMetaL, symMetaR:
		t.mods.Alt = true
	case symCapsLock:
		if !repeat {
			t.mods.CapsLock = !t.mods.CapsLock
		}
	case symNumLock:
		if !repeat {
			t.mods.NumLock = !t.mods.NumLock
		}
	}
	t.held[ev.Code] = true

	key, r, sym := t.keymap.Resolve(ev.Code, t.mods)
	return []Event{KeyPress{Key: key, Rune: r, Sym: sym, Mods: t.mods}}
}

func (t *Translator) keyUp(ev RawKeyUp) []Event {
	base := t.keymap.BaseSym(ev.Code)

	switch base {
	case symShiftL, symShiftR:
		t.mods.Shift = false
	case symControlL, symControlR:
		t.mods.Ctrl = false
	case symAltL, symAltR, symMetaL, symMetaR:
		t.mods.Alt = false
	}
	delete(t.held, ev.Code)

	key, _, sym := t.keymap.Resolve(ev.Code, t.mods)
	return []Event{KeyRelease{Key: key, Sym: sym, Mods: t.mods}}
}
