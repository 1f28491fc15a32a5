package sim

import "github.com/odvcencio/placard/pkg/input"

// keystroke is how to type one rune: which physical code, and whether the
// shifted level is needed.
type keystroke struct {
	code  uint32
	shift bool
}

// Physical codes follow the usual pc105 numbering so traces read like real
// X11 ones.
const (
	codeEscape    = 9
	codeBackspace = 22
	codeTab       = 23
	codeReturn    = 36
	codeCtrl      = 37
	codeShift     = 50
	codeAlt       = 64
	codeSpace     = 65
	codeCaps      = 66
	codeNumLock   = 77
	codeHome      = 110
	codeUp        = 111
	codePageUp    = 112
	codeLeft      = 113
	codeRight     = 114
	codeEnd       = 115
	codeDown      = 116
	codePageDown  = 117
	codeDelete    = 119
)

var namedKeyCodes = map[input.Key]uint32{
	input.KeyEnter:     codeReturn,
	input.KeyEscape:    codeEscape,
	input.KeyBackspace: codeBackspace,
	input.KeyDelete:    codeDelete,
	input.KeyTab:       codeTab,
	input.KeyLeft:      codeLeft,
	input.KeyRight:     codeRight,
	input.KeyUp:        codeUp,
	input.KeyDown:      codeDown,
	input.KeyHome:      codeHome,
	input.KeyEnd:       codeEnd,
	input.KeyPageUp:    codePageUp,
	input.KeyPageDown:  codePageDown,
}

// printableRows is the US layout's printable surface. ASCII keysyms equal
// their codepoints, so one table serves both the keymap and the reverse
// rune index.
var printableRows = []struct {
	code           uint32
	plain, shifted rune
}{
	{10, '1', '!'}, {11, '2', '@'}, {12, '3', '#'}, {13, '4', '$'},
	{14, '5', '%'}, {15, '6', '^'}, {16, '7', '&'}, {17, '8', '*'},
	{18, '9', '('}, {19, '0', ')'}, {20, '-', '_'}, {21, '=', '+'},

	{24, 'q', 'Q'}, {25, 'w', 'W'}, {26, 'e', 'E'}, {27, 'r', 'R'},
	{28, 't', 'T'}, {29, 'y', 'Y'}, {30, 'u', 'U'}, {31, 'i', 'I'},
	{32, 'o', 'O'}, {33, 'p', 'P'}, {34, '[', '{'}, {35, ']', '}'},

	{38, 'a', 'A'}, {39, 's', 'S'}, {40, 'd', 'D'}, {41, 'f', 'F'},
	{42, 'g', 'G'}, {43, 'h', 'H'}, {44, 'j', 'J'}, {45, 'k', 'K'},
	{46, 'l', 'L'}, {47, ';', ':'}, {48, '\'', '"'}, {49, '`', '~'},
	{51, '\\', '|'},

	{52, 'z', 'Z'}, {53, 'x', 'X'}, {54, 'c', 'C'}, {55, 'v', 'V'},
	{56, 'b', 'B'}, {57, 'n', 'N'}, {58, 'm', 'M'}, {59, ',', '<'},
	{60, '.', '>'}, {61, '/', '?'},
}

var specialRows = []struct {
	code uint32
	sym  uint32
}{
	{codeEscape, 0xff1b},
	{codeBackspace, 0xff08},
	{codeTab, 0xff09},
	{codeReturn, 0xff0d},
	{codeCtrl, 0xffe3},
	{codeShift, 0xffe1},
	{codeAlt, 0xffe9},
	{codeCaps, 0xffe5},
	{codeNumLock, 0xff7f},
	{codeHome, 0xff50},
	{codeUp, 0xff52},
	{codePageUp, 0xff55},
	{codeLeft, 0xff51},
	{codeRight, 0xff53},
	{codeEnd, 0xff57},
	{codeDown, 0xff54},
	{codePageDown, 0xff56},
	{codeDelete, 0xffff},
}

func newUSKeymap() (*input.Keymap, map[rune]keystroke) {
	k := input.NewKeymap()
	strokes := make(map[rune]keystroke, len(printableRows)*2+1)

	for _, row := range printableRows {
		k.SetLevels(row.code, uint32(row.plain), uint32(row.shifted))
		strokes[row.plain] = keystroke{code: row.code}
		if row.shifted != row.plain {
			strokes[row.shifted] = keystroke{code: row.code, shift: true}
		}
	}
	k.SetLevels(codeSpace, ' ', ' ')
	strokes[' '] = keystroke{code: codeSpace}

	for _, row := range specialRows {
		k.SetLevels(row.code, row.sym, row.sym)
	}
	return k, strokes
}
