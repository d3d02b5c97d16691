package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Code identifies a physical key by its macOS virtual key code.
type Code uint16

// Arrow keys.
const (
	CodeLeftArrow  Code = 123
	CodeRightArrow Code = 124
	CodeDownArrow  Code = 125
	CodeUpArrow    Code = 126
)

// Special keys
const (
	CodeReturn        Code = 36
	CodeTab           Code = 48
	CodeSpace         Code = 49
	CodeDelete        Code = 51
	CodeEscape        Code = 53
	CodeHelp          Code = 114
	CodeHome          Code = 115
	CodePageUp        Code = 116
	CodeForwardDelete Code = 117
	CodeEnd           Code = 119
	CodePageDown      Code = 121
)

// Function keys
const (
	CodeF1  Code = 122
	CodeF2  Code = 120
	CodeF3  Code = 99
	CodeF4  Code = 118
	CodeF5  Code = 96
	CodeF6  Code = 97
	CodeF7  Code = 98
	CodeF8  Code = 100
	CodeF9  Code = 101
	CodeF10 Code = 109
	CodeF11 Code = 103
	CodeF12 Code = 111
)

// IsArrowCode reports whether code is one of the four arrow keys.
func IsArrowCode(code Code) bool {
	switch code {
	case CodeLeftArrow, CodeRightArrow, CodeDownArrow, CodeUpArrow:
		return true
	}
	return false
}

// IsArrow is the method form of IsArrowCode.
func (c Code) IsArrow() bool {
	return IsArrowCode(c)
}

// IsFunctionKey returns true if this is F1-F12.
func (c Code) IsFunctionKey() bool {
	_, ok := functionKeyNumber[c]
	return ok
}

// IsNavigationKey returns true for arrows, Home, End, PageUp and PageDown.
func (c Code) IsNavigationKey() bool {
	return c.IsArrow() || c == CodeHome || c == CodeEnd || c == CodePageUp || c == CodePageDown
}

var functionKeyNumber = map[Code]int{
	CodeF1: 1, CodeF2: 2, CodeF3: 3, CodeF4: 4, CodeF5: 5, CodeF6: 6,
	CodeF7: 7, CodeF8: 8, CodeF9: 9, CodeF10: 10, CodeF11: 11, CodeF12: 12,
}

// codeNames holds display names for non-character keys.
var codeNames = map[Code]string{
	CodeLeftArrow:     "Left",
	CodeRightArrow:    "Right",
	CodeDownArrow:     "Down",
	CodeUpArrow:       "Up",
	CodeReturn:        "Return",
	CodeTab:           "Tab",
	CodeSpace:         "Space",
	CodeDelete:        "Delete",
	CodeEscape:        "Escape",
	CodeHelp:          "Help",
	CodeHome:          "Home",
	CodePageUp:        "PageUp",
	CodeForwardDelete: "ForwardDelete",
	CodeEnd:           "End",
	CodePageDown:      "PageDown",
}

// String returns a human-readable name for the key code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	if n, ok := functionKeyNumber[c]; ok {
		return fmt.Sprintf("F%d", n)
	}
	if r, ok := runeForCode[c]; ok {
		return strings.ToUpper(string(r))
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}

// codeNameMap maps key names (lowercase) to codes.
var codeNameMap = map[string]Code{
	"left":          CodeLeftArrow,
	"leftarrow":     CodeLeftArrow,
	"right":         CodeRightArrow,
	"rightarrow":    CodeRightArrow,
	"down":          CodeDownArrow,
	"downarrow":     CodeDownArrow,
	"up":            CodeUpArrow,
	"uparrow":       CodeUpArrow,
	"return":        CodeReturn,
	"enter":         CodeReturn,
	"cr":            CodeReturn,
	"tab":           CodeTab,
	"space":         CodeSpace,
	"delete":        CodeDelete,
	"backspace":     CodeDelete,
	"bs":            CodeDelete,
	"escape":        CodeEscape,
	"esc":           CodeEscape,
	"help":          CodeHelp,
	"home":          CodeHome,
	"pageup":        CodePageUp,
	"pgup":          CodePageUp,
	"forwarddelete": CodeForwardDelete,
	"del":           CodeForwardDelete,
	"end":           CodeEnd,
	"pagedown":      CodePageDown,
	"pgdn":          CodePageDown,
	"f1":            CodeF1,
	"f2":            CodeF2,
	"f3":            CodeF3,
	"f4":            CodeF4,
	"f5":            CodeF5,
	"f6":            CodeF6,
	"f7":            CodeF7,
	"f8":            CodeF8,
	"f9":            CodeF9,
	"f10":           CodeF10,
	"f11":           CodeF11,
	"f12":           CodeF12,
}

// CodeFromName returns the Code for a key name (case-insensitive).
func CodeFromName(name string) (Code, bool) {
	c, ok := codeNameMap[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// runeForCode is the ANSI US layout for character keys.
var runeForCode = map[Code]rune{
	0: 'a', 1: 's', 2: 'd', 3: 'f', 4: 'h', 5: 'g', 6: 'z', 7: 'x',
	8: 'c', 9: 'v', 11: 'b', 12: 'q', 13: 'w', 14: 'e', 15: 'r',
	16: 'y', 17: 't', 18: '1', 19: '2', 20: '3', 21: '4', 22: '6',
	23: '5', 24: '=', 25: '9', 26: '7', 27: '-', 28: '8', 29: '0',
	30: ']', 31: 'o', 32: 'u', 33: '[', 34: 'i', 35: 'p', 37: 'l',
	38: 'j', 39: '\'', 40: 'k', 41: ';', 42: '\\', 43: ',', 44: '/',
	45: 'n', 46: 'm', 47: '.', 50: '`',
}

var codeForRune = func() map[rune]Code {
	m := make(map[rune]Code, len(runeForCode))
	for c, r := range runeForCode {
		m[r] = c
	}
	return m
}()

// CodeForRune returns the ANSI US key code that produces r without Shift.
// Upper-case letters map to their letter key.
func CodeForRune(r rune) (Code, bool) {
	if r == ' ' {
		return CodeSpace, true
	}
	c, ok := codeForRune[unicode.ToLower(r)]
	return c, ok
}
