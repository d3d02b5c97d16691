package key

import (
	"strings"
	"unicode"
)

// Event is a single key press as delivered by the host event system.
// The classifier only reads events; it never retains them.
type Event struct {
	// Modifiers is the raw modifier flag set reported with the key.
	Modifiers Modifier

	// Code is the virtual key code of the physical key.
	Code Code

	// Characters is the host-resolved text ignoring modifiers other than
	// Shift. Empty when the key produces no text.
	Characters string
}

// NewEvent creates an event from raw host values.
func NewEvent(mods Modifier, code Code, chars string) Event {
	return Event{
		Modifiers:  mods,
		Code:       code,
		Characters: chars,
	}
}

// NewArrowEvent creates an arrow key event. The NumericPad and Function
// flags the host sets on every arrow press are added to mods.
func NewArrowEvent(code Code, mods Modifier) Event {
	return Event{
		Modifiers: mods | modArrow,
		Code:      code,
	}
}

// NewRuneEvent creates a character key event on the ANSI US layout.
// The rune must already reflect Shift (Shift+s is 'S').
func NewRuneEvent(r rune, mods Modifier) Event {
	code, _ := CodeForRune(r)
	return Event{
		Modifiers:  mods,
		Code:       code,
		Characters: string(r),
	}
}

// Screened returns the event's modifiers with device-dependent bits cleared.
func (e Event) Screened() Modifier {
	return ScreenedFlags(e.Modifiers)
}

// HasCharacters returns true if the host resolved any text for the key.
func (e Event) HasCharacters() bool {
	return e.Characters != ""
}

// MatchesAnyArrow reports an arrow key pressed with no user-held modifier:
// the screened flags are exactly NumericPad+Function.
func (e Event) MatchesAnyArrow() bool {
	return IsArrowCode(e.Code) && e.Screened() == modArrow
}

// ContainsAnyArrow reports an arrow key pressed with or without extra
// modifiers. NumericPad and Function must both be present.
func (e Event) ContainsAnyArrow() bool {
	return IsArrowCode(e.Code) && e.Screened().Contains(modArrow)
}

// MatchesArrowUp reports a bare Up arrow press.
func (e Event) MatchesArrowUp() bool {
	return e.matchesArrow(CodeUpArrow)
}

// MatchesArrowDown reports a bare Down arrow press.
func (e Event) MatchesArrowDown() bool {
	return e.matchesArrow(CodeDownArrow)
}

// MatchesArrowLeft reports a bare Left arrow press.
func (e Event) MatchesArrowLeft() bool {
	return e.matchesArrow(CodeLeftArrow)
}

// MatchesArrowRight reports a bare Right arrow press.
func (e Event) MatchesArrowRight() bool {
	return e.matchesArrow(CodeRightArrow)
}

func (e Event) matchesArrow(code Code) bool {
	return e.MatchesAnyArrow() && e.Code == code
}

// MatchesModifiersAndCharacter reports whether the screened modifiers are
// exactly mods and the resolved characters equal char.
//
// char must be a single character in the case the host resolves for mods:
// Shift+S resolves to "S", Opt+S to "s". No case folding is done.
func (e Event) MatchesModifiersAndCharacter(mods Modifier, char string) bool {
	if e.Screened() != mods {
		return false
	}
	return sameCharacter(e.Characters, char)
}

// MatchesModifiersAndArrow reports whether the event is the arrow key code
// with exactly mods held. NumericPad and Function must be present and are
// not part of mods; pass ModShift to match Shift+Up.
func (e Event) MatchesModifiersAndArrow(mods Modifier, code Code) bool {
	screened := e.Screened()
	if !screened.Contains(modArrow) {
		return false
	}
	return screened.Without(modArrow) == mods && e.Code == code
}

// String returns a representation like "Shift+Up" or "Cmd+s".
// The NumericPad and Function artifact is omitted for arrow keys.
func (e Event) String() string {
	mods := e.Screened()
	if e.Code.IsArrow() {
		mods = mods.Without(modArrow)
	}

	keyName := e.Characters
	switch {
	case keyName == " ":
		keyName = "Space"
	case keyName == "" || isControlText(keyName) || e.Code.IsNavigationKey() || e.Code.IsFunctionKey():
		keyName = e.Code.String()
	}

	if mods.IsEmpty() {
		return keyName
	}
	return strings.Join([]string{mods.String(), keyName}, "+")
}

// isControlText reports text such as "\r" or "\x1b" that has no printable form.
func isControlText(s string) bool {
	for _, r := range s {
		if !unicode.IsControl(r) {
			return false
		}
	}
	return true
}
