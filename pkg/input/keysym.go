package input

// X keysym values. Both backends resolve to these: X11 hands them over
// directly in the keyboard mapping, Wayland keymaps name them and the xkb
// parser resolves the names through symNames below.
const (
	symNoSymbol   = 0x000000
	symVoidSymbol = 0xffffff

	symBackSpace  = 0xff08
	symTab        = 0xff09
	symISOLeftTab = 0xfe20
	symReturn     = 0xff0d
	symEscape     = 0xff1b
	symDelete     = 0xffff

	symHome  = 0xff50
	symLeft  = 0xff51
	symUp    = 0xff52
	symRight = 0xff53
	symDown  = 0xff54
	symPrior = 0xff55
	symNext  = 0xff56
	symEnd   = 0xff57
	symInsert = 0xff63

	symShiftL    = 0xffe1
	symShiftR    = 0xffe2
	symControlL  = 0xffe3
	symControlR  = 0xffe4
	symCapsLock  = 0xffe5
	symShiftLock = 0xffe6
	symMetaL     = 0xffe7
	symMetaR     = 0xffe8
	symAltL      = 0xffe9
	symAltR      = 0xffea
	symSuperL    = 0xffeb
	symSuperR    = 0xffec
	symNumLock   = 0xff7f

	symKPSpace     = 0xff80
	symKPTab       = 0xff89
	symKPEnter     = 0xff8d
	symKPHome      = 0xff95
	symKPLeft      = 0xff96
	symKPUp        = 0xff97
	symKPRight     = 0xff98
	symKPDown      = 0xff99
	symKPPrior     = 0xff9a
	symKPNext      = 0xff9b
	symKPEnd       = 0xff9c
	symKPBegin     = 0xff9d
	symKPInsert    = 0xff9e
	symKPDelete    = 0xff9f
	symKPEqual     = 0xffbd
	symKPMultiply  = 0xffaa
	symKPAdd       = 0xffab
	symKPSeparator = 0xffac
	symKPSubtract  = 0xffad
	symKPDecimal   = 0xffae
	symKPDivide    = 0xffaf
	symKP0         = 0xffb0
	symKP9         = 0xffb9

	symF1 = 0xffbe

	// Unicode keysyms are the codepoint plus this offset.
	symUnicodeBase = 0x01000000
)

// IsModifierSym reports whether the keysym is a modifier or lock key.
func IsModifierSym(sym uint32) bool {
	switch sym {
	case symShiftL, symShiftR, symControlL, symControlR,
		symCapsLock, symShiftLock, symMetaL, symMetaR,
		symAltL, symAltR, symSuperL, symSuperR, symNumLock:
		return true
	}
	return false
}

func isKeypadSym(sym uint32) bool {
	return sym >= symKPSpace && sym <= symKPEqual
}

// navKey maps a keysym to the logical Key enum, KeyNone for everything else.
func navKey(sym uint32) Key {
	switch sym {
	case symReturn, symKPEnter:
		return KeyEnter
	case symEscape:
		return KeyEscape
	case symBackSpace:
		return KeyBackspace
	case symDelete, symKPDelete:
		return KeyDelete
	case symTab, symISOLeftTab:
		return KeyTab
	case symLeft, symKPLeft:
		return KeyLeft
	case symRight, symKPRight:
		return KeyRight
	case symUp, symKPUp:
		return KeyUp
	case symDown, symKPDown:
		return KeyDown
	case symHome, symKPHome:
		return KeyHome
	case symEnd, symKPEnd:
		return KeyEnd
	case symPrior, symKPPrior:
		return KeyPageUp
	case symNext, symKPNext:
		return KeyPageDown
	}
	return KeyNone
}

// symRune maps a keysym to the codepoint it types, 0 for non-printables.
func symRune(sym uint32) rune {
	switch {
	case sym >= 0x20 && sym <= 0x7e:
		return rune(sym)
	case sym >= 0xa0 && sym <= 0xff:
		return rune(sym)
	case sym >= symKP0 && sym <= symKP9:
		return rune('0' + (sym - symKP0))
	case sym >= symUnicodeBase:
		return rune(sym - symUnicodeBase)
	}
	switch sym {
	case symKPSpace:
		return ' '
	case symKPMultiply:
		return '*'
	case symKPAdd:
		return '+'
	case symKPSeparator:
		return ','
	case symKPSubtract:
		return '-'
	case symKPDecimal:
		return '.'
	case symKPDivide:
		return '/'
	case symKPEqual:
		return '='
	}
	return 0
}

// symIsLetter reports whether caps-lock applies to the keysym.
func symIsLetter(sym uint32) bool {
	r := symRune(sym)
	if r == 0 {
		return false
	}
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= 0xc0 && r <= 0xff && r != 0xd7 && r != 0xf7)
}

// symNames resolves xkb keysym names to values. Layout files also use raw
// hex (0x10020ac) and Unicode (U20AC) spellings, handled by the parser.
var symNames = map[string]uint32{
	"NoSymbol":   symNoSymbol,
	"VoidSymbol": symVoidSymbol,

	"BackSpace": symBackSpace,
	"Tab":       symTab,
	"Return":    symReturn,
	"Escape":    symEscape,
	"Delete":    symDelete,
	"Insert":    symInsert,
	"Home":      symHome,
	"Left":      symLeft,
	"Up":        symUp,
	"Right":     symRight,
	"Down":      symDown,
	"Prior":     symPrior,
	"Page_Up":   symPrior,
	"Next":      symNext,
	"Page_Down": symNext,
	"End":       symEnd,

	"Shift_L":    symShiftL,
	"Shift_R":    symShiftR,
	"Control_L":  symControlL,
	"Control_R":  symControlR,
	"Caps_Lock":  symCapsLock,
	"Shift_Lock": symShiftLock,
	"Meta_L":     symMetaL,
	"Meta_R":     symMetaR,
	"Alt_L":      symAltL,
	"Alt_R":      symAltR,
	"Super_L":    symSuperL,
	"Super_R":    symSuperR,
	"Hyper_L":    0xffed,
	"Hyper_R":    0xffee,
	"Num_Lock":   symNumLock,
	"Scroll_Lock": 0xff14,
	"Menu":        0xff67,
	"Pause":       0xff13,
	"Print":       0xff61,
	"Sys_Req":     0xff15,
	"Break":       0xff6b,
	"Mode_switch": 0xff7e,
	"Multi_key":   0xff20,

	"ISO_Left_Tab":    0xfe20,
	"ISO_Level3_Shift": 0xfe03,

	"dead_grave":      0xfe50,
	"dead_acute":      0xfe51,
	"dead_circumflex": 0xfe52,
	"dead_tilde":      0xfe53,
	"dead_diaeresis":  0xfe57,
	"dead_abovering":  0xfe58,
	"dead_caron":      0xfe5a,
	"dead_cedilla":    0xfe5b,

	"KP_Space":     symKPSpace,
	"KP_Tab":       symKPTab,
	"KP_Enter":     symKPEnter,
	"KP_Home":      symKPHome,
	"KP_Left":      symKPLeft,
	"KP_Up":        symKPUp,
	"KP_Right":     symKPRight,
	"KP_Down":      symKPDown,
	"KP_Prior":     symKPPrior,
	"KP_Page_Up":   symKPPrior,
	"KP_Next":      symKPNext,
	"KP_Page_Down": symKPNext,
	"KP_End":       symKPEnd,
	"KP_Begin":     symKPBegin,
	"KP_Insert":    symKPInsert,
	"KP_Delete":    symKPDelete,
	"KP_Equal":     symKPEqual,
	"KP_Multiply":  symKPMultiply,
	"KP_Add":       symKPAdd,
	"KP_Separator": symKPSeparator,
	"KP_Subtract":  symKPSubtract,
	"KP_Decimal":   symKPDecimal,
	"KP_Divide":    symKPDivide,
	"KP_0":         symKP0,
	"KP_1":         symKP0 + 1,
	"KP_2":         symKP0 + 2,
	"KP_3":         symKP0 + 3,
	"KP_4":         symKP0 + 4,
	"KP_5":         symKP0 + 5,
	"KP_6":         symKP0 + 6,
	"KP_7":         symKP0 + 7,
	"KP_8":         symKP0 + 8,
	"KP_9":         symKP0 + 9,

	"F1":  symF1,
	"F2":  symF1 + 1,
	"F3":  symF1 + 2,
	"F4":  symF1 + 3,
	"F5":  symF1 + 4,
	"F6":  symF1 + 5,
	"F7":  symF1 + 6,
	"F8":  symF1 + 7,
	"F9":  symF1 + 8,
	"F10": symF1 + 9,
	"F11": symF1 + 10,
	"F12": symF1 + 11,

	"space":        0x20,
	"exclam":       0x21,
	"quotedbl":     0x22,
	"numbersign":   0x23,
	"dollar":       0x24,
	"percent":      0x25,
	"ampersand":    0x26,
	"apostrophe":   0x27,
	"parenleft":    0x28,
	"parenright":   0x29,
	"asterisk":     0x2a,
	"plus":         0x2b,
	"comma":        0x2c,
	"minus":        0x2d,
	"period":       0x2e,
	"slash":        0x2f,
	"colon":        0x3a,
	"semicolon":    0x3b,
	"less":         0x3c,
	"equal":        0x3d,
	"greater":      0x3e,
	"question":     0x3f,
	"at":           0x40,
	"bracketleft":  0x5b,
	"backslash":    0x5c,
	"bracketright": 0x5d,
	"asciicircum":  0x5e,
	"underscore":   0x5f,
	"grave":        0x60,
	"braceleft":    0x7b,
	"bar":          0x7c,
	"braceright":   0x7d,
	"asciitilde":   0x7e,

	"nobreakspace": 0xa0,
	"exclamdown":   0xa1,
	"cent":         0xa2,
	"sterling":     0xa3,
	"currency":     0xa4,
	"yen":          0xa5,
	"section":      0xa7,
	"diaeresis":    0xa8,
	"degree":       0xb0,
	"plusminus":    0xb1,
	"acute":        0xb4,
	"mu":           0xb5,
	"questiondown": 0xbf,
	"multiply":     0xd7,
	"division":     0xf7,

	"Agrave":     0xc0,
	"Aacute":     0xc1,
	"Adiaeresis": 0xc4,
	"Aring":      0xc5,
	"AE":         0xc6,
	"Ccedilla":   0xc7,
	"Egrave":     0xc8,
	"Eacute":     0xc9,
	"Ntilde":     0xd1,
	"Odiaeresis": 0xd6,
	"Ooblique":   0xd8,
	"Udiaeresis": 0xdc,
	"ssharp":     0xdf,
	"agrave":     0xe0,
	"aacute":     0xe1,
	"adiaeresis": 0xe4,
	"aring":      0xe5,
	"ae":         0xe6,
	"ccedilla":   0xe7,
	"egrave":     0xe8,
	"eacute":     0xe9,
	"ntilde":     0xf1,
	"odiaeresis": 0xf6,
	"oslash":     0xf8,
	"udiaeresis": 0xfc,
}

func init() {
	for c := uint32('0'); c <= '9'; c++ {
		symNames[string(rune(c))] = c
	}
	for c := uint32('a'); c <= 'z'; c++ {
		symNames[string(rune(c))] = c
	}
	for c := uint32('A'); c <= 'Z'; c++ {
		symNames[string(rune(c))] = c
	}
}
