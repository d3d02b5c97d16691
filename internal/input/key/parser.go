package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnsupportedKey   = errors.New("key produces no character")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// Binding is a key combination an event can be matched against.
// Arrow bindings carry an arrow Code and no Char; every other binding
// carries the character the host resolves for the combination.
type Binding struct {
	// Modifiers held in addition to the key. For arrow bindings this
	// excludes the NumericPad and Function artifact.
	Modifiers Modifier

	// Code is the key code. Informational for character bindings.
	Code Code

	// Char is the required character, empty for arrow bindings.
	Char string
}

// IsArrow returns true if the binding names an arrow key.
func (b Binding) IsArrow() bool {
	return b.Char == "" && b.Code.IsArrow()
}

// Matches reports whether ev triggers the binding. Modifier comparison is
// exact in both cases.
func (b Binding) Matches(ev Event) bool {
	if b.IsArrow() {
		return ev.MatchesModifiersAndArrow(b.Modifiers, b.Code)
	}
	return ev.MatchesModifiersAndCharacter(b.Modifiers, b.Char)
}

// String returns the canonical "Mods+Key" form.
func (b Binding) String() string {
	keyName := b.Char
	switch {
	case b.IsArrow():
		keyName = b.Code.String()
	case keyName != "" && keyCharacters[b.Code] == keyName:
		keyName = b.Code.String()
	}
	if b.Modifiers.IsEmpty() {
		return keyName
	}
	return b.Modifiers.String() + "+" + keyName
}

// ParseBinding parses a key combination.
//
// Supported formats:
//   - Single key: "s", "S", "Up", "Space"
//   - With modifiers: "Shift+Up", "Cmd+Shift+S", "Opt+s"
//   - Vim-style: "<S-Up>", "<D-s>", "<C-A-Left>"
//
// The character is taken as written; "Cmd+Shift+S" and "Cmd+Shift+s"
// are different bindings.
func ParseBinding(spec string) (Binding, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Binding{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") {
		if !strings.HasSuffix(spec, ">") || len(spec) < 3 {
			return Binding{}, ErrUnmatchedBracket
		}
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	return parseKeyWithModifiers(spec, ModNone)
}

// parseVimStyle parses Vim-style notation like "S-Up" or "D-s".
func parseVimStyle(inner string) (Binding, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Binding{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")
	if strings.HasSuffix(inner, "--") {
		// "<C-->" binds the minus key.
		parts = append(strings.Split(strings.TrimSuffix(inner, "--"), "-"), "-")
	}

	var mods Modifier
	keyPart := parts[len(parts)-1]
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods = mods.With(ModCtrl)
		case "a":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		case "m", "d": // same meaning as in ModifierFromName
			mods = mods.With(ModMeta)
		default:
			return Binding{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	return parseKeyWithModifiers(keyPart, mods)
}

// parseModifierStyle parses "Cmd+Shift+S" style notation.
func parseModifierStyle(spec string) (Binding, error) {
	keyPart := ""
	if strings.HasSuffix(spec, "++") {
		keyPart = "+"
		spec = strings.TrimSuffix(spec, "++")
	} else {
		idx := strings.LastIndex(spec, "+")
		keyPart = spec[idx+1:]
		spec = spec[:idx]
	}

	var mods Modifier
	for _, p := range strings.Split(spec, "+") {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Binding{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}

	return parseKeyWithModifiers(strings.TrimSpace(keyPart), mods)
}

// parseKeyWithModifiers resolves the key part of a specification.
func parseKeyWithModifiers(keyPart string, mods Modifier) (Binding, error) {
	if keyPart == "" {
		return Binding{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}

	if IsSingleCharacter(keyPart) {
		code, _ := CodeForRune([]rune(keyPart)[0])
		return Binding{Modifiers: mods, Code: code, Char: keyPart}, nil
	}

	code, ok := CodeFromName(keyPart)
	if !ok {
		return Binding{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}

	if code.IsArrow() {
		return Binding{Modifiers: mods, Code: code}, nil
	}
	if char, ok := keyCharacters[code]; ok {
		return Binding{Modifiers: mods, Code: code, Char: char}, nil
	}
	return Binding{}, fmt.Errorf("%w: %s", ErrUnsupportedKey, code)
}

// keyCharacters holds the text the host resolves for named control keys.
var keyCharacters = map[Code]string{
	CodeSpace:  " ",
	CodeReturn: "\r",
	CodeTab:    "\t",
	CodeEscape: "\x1b",
	CodeDelete: "\x7f",
}
