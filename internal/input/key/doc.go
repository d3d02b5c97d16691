// Package key classifies keyboard events by modifier flags and key code.
//
// This package defines the fundamental types:
//
//   - Modifier: the host's modifier flag set (Shift, Ctrl, Opt, Cmd, CapsLock,
//     NumericPad, Help, Function) with device-dependent bits in the low word
//   - Code: a macOS virtual key code
//   - Event: a read-only key press (modifiers, code, resolved characters)
//   - Binding: a parsed key combination such as "Shift+Up"
//
// # Screening
//
// Every comparison is made on screened flags: ScreenedFlags clears the
// device-dependent and reserved bits the host reports alongside the
// modifiers. Raw flags are never compared directly.
//
// # Arrow keys
//
// The host sets NumericPad and Function on every arrow key press, even when
// no modifier is held. Two families of predicates exist:
//
//   - Matches*: the screened flags equal the required set exactly
//   - Contains*: the screened flags include the required set
//
// so Shift+Up satisfies ContainsAnyArrow but not MatchesAnyArrow.
//
// All predicates are pure and safe for concurrent use.
package key
