package input

// Keymap maps physical key codes to keysym levels. Built once per
// connection from the server-advertised layout, rebuilt in full on a
// layout-change event.
type Keymap struct {
	levels map[uint32][2]uint32
}

// NewKeymap returns an empty keymap; unknown codes resolve to the null
// codepoint.
func NewKeymap() *Keymap {
	return &Keymap{levels: make(map[uint32][2]uint32)}
}

// SetLevels records the plain and shifted keysyms for a physical code.
func (k *Keymap) SetLevels(code, plain, shifted uint32) {
	if shifted == symNoSymbol {
		shifted = plain
	}
	k.levels[code] = [2]uint32{plain, shifted}
}

// Len reports how many physical codes have bindings.
func (k *Keymap) Len() int {
	return len(k.levels)
}

// BaseSym returns the unshifted keysym for a code, NoSymbol when unbound.
// The translator uses it to recognize modifier and lock keys regardless of
// the current modifier state.
func (k *Keymap) BaseSym(code uint32) uint32 {
	return k.levels[code][0]
}

// Resolve maps (physical code, modifier state) to the logical key, the
// typed codepoint, and the chosen keysym. It is a pure function of its
// inputs: same code and state, same result.
//
// Level selection: shift picks the shifted level; caps-lock applies only to
// letter keys and is inverted by shift; on keypad keys num-lock picks the
// digit level and shift inverts that.
func (k *Keymap) Resolve(code uint32, mods Modifiers) (Key, rune, uint32) {
	lv, ok := k.levels[code]
	if !ok {
		return KeyNone, 0, symNoSymbol
	}

	shifted := mods.Shift
	if isKeypadSym(lv[1]) || isKeypadSym(lv[0]) {
		shifted = mods.NumLock != mods.Shift
	} else if mods.CapsLock && symIsLetter(lv[0]) {
		shifted = !mods.Shift
	}

	sym := lv[0]
	if shifted {
		sym = lv[1]
	}
	if sym == symNoSymbol {
		sym = lv[0]
	}

	key := navKey(sym)
	r := symRune(sym)
	if mods.Ctrl {
		// Ctrl chords are commands, not text.
		r = 0
	}
	if IsModifierSym(sym) {
		r = 0
	}
	return key, r, sym
}

// NewKeymapFromKeysyms builds a keymap from an X11 GetKeyboardMapping
// reply: keysyms laid out per keycode starting at minCode, perCode entries
// each, group-0 plain and shifted in the first two slots.
func NewKeymapFromKeysyms(minCode uint32, perCode int, syms []uint32) *Keymap {
	k := NewKeymap()
	if perCode <= 0 {
		return k
	}
	count := len(syms) / perCode
	for i := 0; i < count; i++ {
		base := i * perCode
		plain := syms[base]
		shifted := uint32(symNoSymbol)
		if perCode > 1 {
			shifted = syms[base+1]
		}
		if plain == symNoSymbol && shifted == symNoSymbol {
			continue
		}
		k.SetLevels(minCode+uint32(i), plain, shifted)
	}
	return k
}
