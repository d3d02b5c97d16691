// Package termkey adapts terminal key events from tcell into key.Event
// values, reproducing the flags a desktop host reports for the same keys.
package termkey

import (
	"context"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyscreen/internal/input/key"
)

// arrowFlags is set by the host on every arrow key press.
const arrowFlags = key.ModNumericPad | key.ModFunction

// Convert translates a tcell key event into a key.Event.
// It returns false for keys that have no host equivalent.
func Convert(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())

	switch k := ev.Key(); k {
	case tcell.KeyUp:
		return key.NewEvent(mods|arrowFlags, key.CodeUpArrow, ""), true
	case tcell.KeyDown:
		return key.NewEvent(mods|arrowFlags, key.CodeDownArrow, ""), true
	case tcell.KeyLeft:
		return key.NewEvent(mods|arrowFlags, key.CodeLeftArrow, ""), true
	case tcell.KeyRight:
		return key.NewEvent(mods|arrowFlags, key.CodeRightArrow, ""), true

	case tcell.KeyEnter:
		return key.NewEvent(mods, key.CodeReturn, "\r"), true
	case tcell.KeyTab:
		return key.NewEvent(mods, key.CodeTab, "\t"), true
	case tcell.KeyBacktab:
		return key.NewEvent(mods|key.ModShift, key.CodeTab, "\t"), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewEvent(mods, key.CodeDelete, "\x7f"), true
	case tcell.KeyEscape:
		return key.NewEvent(mods, key.CodeEscape, "\x1b"), true

	case tcell.KeyRune:
		return convertRune(ev.Rune(), mods), true

	default:
		if code, ok := functionKeys[k]; ok {
			return key.NewEvent(mods|key.ModFunction, code, ""), true
		}
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			// tcell resolves the letter's case from Shift.
			return convertRune(ev.Rune(), mods|key.ModCtrl), true
		}
		return key.Event{}, false
	}
}

// functionKeys holds keys the host reports with the Function flag.
var functionKeys = map[tcell.Key]key.Code{
	tcell.KeyHome:   key.CodeHome,
	tcell.KeyEnd:    key.CodeEnd,
	tcell.KeyPgUp:   key.CodePageUp,
	tcell.KeyPgDn:   key.CodePageDown,
	tcell.KeyDelete: key.CodeForwardDelete,
	tcell.KeyHelp:   key.CodeHelp,
	tcell.KeyF1:     key.CodeF1,
	tcell.KeyF2:     key.CodeF2,
	tcell.KeyF3:     key.CodeF3,
	tcell.KeyF4:     key.CodeF4,
	tcell.KeyF5:     key.CodeF5,
	tcell.KeyF6:     key.CodeF6,
	tcell.KeyF7:     key.CodeF7,
	tcell.KeyF8:     key.CodeF8,
	tcell.KeyF9:     key.CodeF9,
	tcell.KeyF10:    key.CodeF10,
	tcell.KeyF11:    key.CodeF11,
	tcell.KeyF12:    key.CodeF12,
}

// convertRune builds a character event. Terminals do not report Shift
// for printable keys, so an upper-case letter implies it.
func convertRune(r rune, mods key.Modifier) key.Event {
	if unicode.IsUpper(r) {
		mods |= key.ModShift
	}
	return key.NewRuneEvent(r, mods)
}

// convertMod converts a tcell modifier mask to host modifier flags.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

// Source delivers converted key events from a tcell screen.
type Source struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewSource creates a source reading from an initialized screen.
func NewSource(screen tcell.Screen) *Source {
	return &Source{screen: screen}
}

// Run polls the screen and calls handle for each converted key event
// until handle returns false, ctx is cancelled, or the screen is finalized.
// Keys with no host equivalent are skipped.
func (s *Source) Run(ctx context.Context, handle func(key.Event) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			// Wake PollEvent so the loop observes cancellation.
			_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			e, ok := Convert(ev)
			if !ok {
				continue
			}
			if !handle(e) {
				return nil
			}
		}
	}
}
