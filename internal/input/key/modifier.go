package key

import "strings"

// Modifier is a set of modifier flags as reported by the host toolkit.
//
// Bit positions follow the macOS event flag layout: the low 16 bits are
// device-dependent (left/right side bits and reserved values) and the
// high bits carry the device-independent flags.
type Modifier uint64

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCapsLock indicates Caps Lock is engaged.
	ModCapsLock Modifier = 1 << 16

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << 17

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << 18

	// ModAlt indicates the Option key (Alt elsewhere).
	ModAlt Modifier = 1 << 19

	// ModMeta indicates the Command key.
	ModMeta Modifier = 1 << 20

	// ModNumericPad is set for keys on the numeric keypad and for the arrow keys.
	ModNumericPad Modifier = 1 << 21

	// ModHelp indicates the Help key.
	ModHelp Modifier = 1 << 22

	// ModFunction is set for function keys, navigation keys and the arrow keys.
	ModFunction Modifier = 1 << 23

	// ModDeviceIndependent masks off device-dependent and reserved bits.
	ModDeviceIndependent Modifier = 0xffff0000
)

// modArrow is the pseudo-modifier pair the host sets on every arrow key press.
const modArrow = ModNumericPad | ModFunction

// ScreenedFlags returns m with device-dependent and reserved bits cleared.
// Modifier comparisons are only meaningful on screened values.
func ScreenedFlags(m Modifier) Modifier {
	return m & ModDeviceIndependent
}

// Screened is the method form of ScreenedFlags.
func (m Modifier) Screened() Modifier {
	return ScreenedFlags(m)
}

// Has returns true if m shares any bit with mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// Contains returns true if every bit of mod is set in m.
func (m Modifier) Contains(mod Modifier) bool {
	return m&mod == mod
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Option/Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Command is pressed.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

type modifierName struct {
	mod   Modifier
	long  string
	short string
}

// modifierOrder fixes the rendering order of String and ShortString.
var modifierOrder = []modifierName{
	{ModCtrl, "Ctrl", "C"},
	{ModAlt, "Opt", "A"},
	{ModShift, "Shift", "S"},
	{ModMeta, "Cmd", "D"},
	{ModCapsLock, "CapsLock", "L"},
	{ModNumericPad, "NumPad", "N"},
	{ModHelp, "Help", "H"},
	{ModFunction, "Fn", "F"},
}

// String returns a human-readable representation like "Ctrl+Opt".
// Only screened bits are rendered.
func (m Modifier) String() string {
	return m.join(false, "+")
}

// ShortString returns a compact representation like "C-A-S".
func (m Modifier) ShortString() string {
	return m.join(true, "-")
}

func (m Modifier) join(short bool, sep string) string {
	var parts []string
	for _, n := range modifierOrder {
		if !m.Has(n.mod) {
			continue
		}
		if short {
			parts = append(parts, n.short)
		} else {
			parts = append(parts, n.long)
		}
	}
	return strings.Join(parts, sep)
}

// Names returns the names of the screened flags set in m, in rendering order.
func (m Modifier) Names() []string {
	var names []string
	for _, n := range modifierOrder {
		if m.Has(n.mod) {
			names = append(names, n.long)
		}
	}
	return names
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":       ModCtrl,
	"control":    ModCtrl,
	"c":          ModCtrl,
	"alt":        ModAlt,
	"a":          ModAlt,
	"option":     ModAlt,
	"opt":        ModAlt,
	"shift":      ModShift,
	"s":          ModShift,
	"meta":       ModMeta,
	"m":          ModMeta,
	"cmd":        ModMeta,
	"command":    ModMeta,
	"super":      ModMeta,
	"d":          ModMeta, // Vim uses D for command
	"capslock":   ModCapsLock,
	"caps":       ModCapsLock,
	"numpad":     ModNumericPad,
	"numericpad": ModNumericPad,
	"help":       ModHelp,
	"fn":         ModFunction,
	"function":   ModFunction,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}

// ParseModifiers parses a modifier list like "Ctrl+Opt", "C-A" or "shift,numpad".
// Unknown names are ignored.
func ParseModifiers(s string) Modifier {
	s = strings.ToLower(s)
	var result Modifier

	var parts []string
	switch {
	case strings.Contains(s, "+"):
		parts = strings.Split(s, "+")
	case strings.Contains(s, ","):
		parts = strings.Split(s, ",")
	case strings.Contains(s, "-"):
		parts = strings.Split(s, "-")
	default:
		parts = []string{s}
	}

	for _, part := range parts {
		if mod := ModifierFromName(part); mod != ModNone {
			result = result.With(mod)
		}
	}

	return result
}
