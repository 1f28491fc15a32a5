package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureKeymap mirrors the shape of a compiled keymap as wlroots and
// mutter hand it out: keycodes, types, compatibility, then symbols with a
// mix of bare bracket lists and explicit symbols[Group1]= assignments.
const fixtureKeymap = `xkb_keymap {
xkb_keycodes "(unnamed)" {
	minimum = 8;
	maximum = 255;
	<ESC>  = 9;
	<AE01> = 10;
	<AE02> = 11;
	<AD01> = 24;
	<AC01> = 38;
	<LFSH> = 50;
	<LCTL> = 37;
	<CAPS> = 66;
	<NMLK> = 77;
	<KP7>  = 79;
	<RTRN> = 36;
	<SPCE> = 65;
	<LEFT> = 113;
	<I252> = 252;
	alias <AC11> = <AC01>;
	indicator 1 = "Caps Lock";
};
xkb_types "(unnamed)" {
	type "TWO_LEVEL" {
		modifiers= Shift;
		map[Shift]= Level2;
		level_name[Level1]= "Base";
		level_name[Level2]= "Shift";
	};
};
xkb_compatibility "(unnamed)" {
	interpret Shift_L+AnyOf(all) {
		action= SetMods(modifiers=modMapMods,clearLocks);
	};
};
xkb_symbols "(unnamed)" {
	name[group1]="English (US)";

	key <ESC>  { [ Escape ] };
	key <AE01> { [ 1, exclam ] };
	key <AE02> { [ 2, at ] };
	key <AD01> { [ q, Q ] };
	key <AC01> { [ a, A ] };
	key <LFSH> { [ Shift_L ] };
	key <LCTL> {
		type= "ONE_LEVEL",
		actions[Group1]= [ SetMods(modifiers=Control) ],
		symbols[Group1]= [ Control_L ]
	};
	key <CAPS> { [ Caps_Lock ] };
	key <NMLK> { [ Num_Lock ] };
	key <KP7>  { [ KP_Home, KP_7 ] };
	key <RTRN> { [ Return ] };
	key <SPCE> { [ space ] };
	key <LEFT> { [ Left ] };
	key <I252> { [ U20AC, 0x01000024 ] };
	modifier_map Shift { <LFSH> };
	modifier_map Lock { <CAPS> };
};
xkb_geometry "(unnamed)" {
	width= 470;
	height= 180;
};
};`

func TestParseXKBFixture(t *testing.T) {
	km, err := ParseXKB([]byte(fixtureKeymap + "\x00"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		code     uint32
		mods     Modifiers
		wantKey  Key
		wantRune rune
	}{
		{name: "escape", code: 9, wantKey: KeyEscape},
		{name: "plain letter", code: 38, wantRune: 'a'},
		{name: "shifted letter", code: 38, mods: Modifiers{Shift: true}, wantRune: 'A'},
		{name: "digit row", code: 10, wantRune: '1'},
		{name: "shifted digit", code: 10, mods: Modifiers{Shift: true}, wantRune: '!'},
		{name: "return", code: 36, wantKey: KeyEnter},
		{name: "space", code: 65, wantRune: ' '},
		{name: "left arrow", code: 113, wantKey: KeyLeft},
		{name: "keypad nav", code: 79, wantKey: KeyHome},
		{name: "keypad digit", code: 79, mods: Modifiers{NumLock: true}, wantRune: '7'},
		{name: "unicode euro", code: 252, wantRune: '€'},
		{name: "hex keysym", code: 252, mods: Modifiers{Shift: true}, wantRune: '$'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, r, _ := km.Resolve(tt.code, tt.mods)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantRune, r)
		})
	}
}

func TestParseXKBActionsNotMistakenForSymbols(t *testing.T) {
	km, err := ParseXKB([]byte(fixtureKeymap))
	require.NoError(t, err)

	// <LCTL> carries an actions list before its symbols list; the parser
	// must bind Control_L, not the SetMods action text.
	assert.Equal(t, uint32(symControlL), km.BaseSym(37))
}

func TestParseXKBModifierKeys(t *testing.T) {
	km, err := ParseXKB([]byte(fixtureKeymap))
	require.NoError(t, err)

	assert.Equal(t, uint32(symShiftL), km.BaseSym(50))
	assert.Equal(t, uint32(symCapsLock), km.BaseSym(66))
	assert.Equal(t, uint32(symNumLock), km.BaseSym(77))
}

func TestParseXKBErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "no keycodes", text: "xkb_keymap { xkb_symbols \"x\" { key <A> { [ a ] }; }; };"},
		{name: "no symbols", text: "xkb_keymap { xkb_keycodes \"x\" { <A> = 10; }; };"},
		{name: "unterminated", text: "xkb_keymap { xkb_keycodes { <A> = 10;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseXKB([]byte(tt.text))
			assert.Error(t, err)
		})
	}
}

func TestKeymapFromKeysyms(t *testing.T) {
	// GetKeyboardMapping layout: 4 syms per keycode, starting at code 38.
	syms := []uint32{
		'a', 'A', 0, 0,
		's', 'S', 0, 0,
		symNoSymbol, symNoSymbol, 0, 0,
		'f', 'F', 0, 0,
	}
	km := NewKeymapFromKeysyms(38, 4, syms)

	_, r, _ := km.Resolve(38, Modifiers{})
	assert.Equal(t, 'a', r)
	_, r, _ = km.Resolve(39, Modifiers{Shift: true})
	assert.Equal(t, 'S', r)
	_, r, _ = km.Resolve(41, Modifiers{})
	assert.Equal(t, 'f', r)

	// The all-NoSymbol slot stays unbound.
	key, r, sym := km.Resolve(40, Modifiers{})
	assert.Equal(t, KeyNone, key)
	assert.Equal(t, rune(0), r)
	assert.Equal(t, uint32(symNoSymbol), sym)
}
