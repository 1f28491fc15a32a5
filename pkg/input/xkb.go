package input

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/odvcencio/placard/pkg/errors"
)

// ParseXKB builds a Keymap from the xkb_v1 keymap text a Wayland
// compositor advertises through wl_keyboard's keymap event. Only the
// keycode table and the first two symbol levels of group 1 are consumed;
// that is exactly the slice of the format dialog input needs.
func ParseXKB(data []byte) (*Keymap, error) {
	text := string(data)
	// The blob is NUL-terminated per protocol.
	if i := strings.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}

	keycodes, err := section(text, "xkb_keycodes")
	if err != nil {
		return nil, err
	}
	symbols, err := section(text, "xkb_symbols")
	if err != nil {
		return nil, err
	}

	codes := parseKeycodes(keycodes)
	if len(codes) == 0 {
		return nil, errors.New(errors.ErrCodeKeymap, "keymap has no keycode bindings")
	}

	k := NewKeymap()
	for name, syms := range parseSymbols(symbols) {
		code, ok := codes[name]
		if !ok {
			continue
		}
		plain := syms[0]
		shifted := uint32(symNoSymbol)
		if len(syms) > 1 {
			shifted = syms[1]
		}
		if plain == symNoSymbol && shifted == symNoSymbol {
			continue
		}
		k.SetLevels(code, plain, shifted)
	}

	if k.Len() == 0 {
		return nil, errors.New(errors.ErrCodeKeymap, "keymap has no symbol bindings")
	}
	return k, nil
}

// section returns the brace-delimited body following the named keyword.
func section(text, name string) (string, error) {
	idx := strings.Index(text, name)
	if idx < 0 {
		return "", errors.Newf(errors.ErrCodeKeymap, "keymap missing %s section", name)
	}
	open := strings.IndexByte(text[idx:], '{')
	if open < 0 {
		return "", errors.Newf(errors.ErrCodeKeymap, "unterminated %s section", name)
	}
	start := idx + open + 1
	depth := 1
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start:i], nil
			}
		}
	}
	return "", errors.Newf(errors.ErrCodeKeymap, "unterminated %s section", name)
}

var (
	keycodeRe = regexp.MustCompile(`<([A-Za-z0-9+_-]+)>\s*=\s*(\d+)`)
	aliasRe   = regexp.MustCompile(`alias\s*<([A-Za-z0-9+_-]+)>\s*=\s*<([A-Za-z0-9+_-]+)>`)
	keyRe     = regexp.MustCompile(`key\s*<([A-Za-z0-9+_-]+)>\s*\{`)

	actionsRe       = regexp.MustCompile(`actions\[\w+\]\s*=\s*\[[^\]]*\]`)
	symbolsAssignRe = regexp.MustCompile(`symbols\[\w+\]\s*=\s*\[([^\]]*)\]`)
	bracketRe       = regexp.MustCompile(`\[([^\]]*)\]`)
)

func parseKeycodes(body string) map[string]uint32 {
	codes := make(map[string]uint32)
	for _, m := range keycodeRe.FindAllStringSubmatch(body, -1) {
		n, err := strconv.ParseUint(m[2], 10, 32)
		if err != nil {
			continue
		}
		codes[m[1]] = uint32(n)
	}
	for _, m := range aliasRe.FindAllStringSubmatch(body, -1) {
		if code, ok := codes[m[2]]; ok {
			codes[m[1]] = code
		}
	}
	return codes
}

func parseSymbols(body string) map[string][]uint32 {
	out := make(map[string][]uint32)
	for _, loc := range keyRe.FindAllStringSubmatchIndex(body, -1) {
		name := body[loc[2]:loc[3]]
		block, ok := braceBody(body, loc[1]-1)
		if !ok {
			continue
		}
		group, ok := symbolGroup(block)
		if !ok {
			continue
		}
		var syms []uint32
		for _, tok := range strings.Split(group, ",") {
			syms = append(syms, resolveSymName(strings.TrimSpace(tok)))
		}
		if len(syms) > 0 {
			out[name] = syms
		}
	}
	return out
}

// braceBody returns the body of the brace block opening at text[open].
func braceBody(text string, open int) (string, bool) {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[open+1 : i], true
			}
		}
	}
	return "", false
}

// symbolGroup extracts the group-1 level list of a key block. Compiled
// keymaps spell it either as a bare bracket group or behind an explicit
// symbols[GroupN]= assignment; action lists must not be mistaken for it.
func symbolGroup(block string) (string, bool) {
	block = actionsRe.ReplaceAllString(block, "")
	if m := symbolsAssignRe.FindStringSubmatch(block); m != nil {
		return m[1], true
	}
	if m := bracketRe.FindStringSubmatch(block); m != nil {
		return m[1], true
	}
	return "", false
}

// resolveSymName turns one xkb keysym spelling into its value.
func resolveSymName(name string) uint32 {
	if name == "" {
		return symNoSymbol
	}
	if v, ok := symNames[name]; ok {
		return v
	}
	if strings.HasPrefix(name, "0x") || strings.HasPrefix(name, "0X") {
		if v, err := strconv.ParseUint(name[2:], 16, 32); err == nil {
			return uint32(v)
		}
	}
	if len(name) > 1 && name[0] == 'U' {
		if v, err := strconv.ParseUint(name[1:], 16, 32); err == nil {
			return symUnicodeBase + uint32(v)
		}
	}
	return symNoSymbol
}
