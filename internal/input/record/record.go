// Package record reads recorded key events from JSON lines.
//
// A record looks like:
//
//	{"modifiers":["Shift","NumPad","Fn"],"flags":"0x102","keyCode":126,"characters":"","bind":"Shift+Up"}
//
// modifiers (names) and flags (raw, number or "0x" string) are ORed into
// the event's modifier set. bind is an optional binding to test.
package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/keyscreen/internal/input/key"
)

// Errors returned while decoding records.
var (
	// ErrInvalidRecord indicates a line that is not a JSON object.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrInvalidField indicates a field with an unusable value.
	ErrInvalidField = errors.New("invalid record field")

	// ErrLineTooLong indicates a line longer than MaxLineLength.
	ErrLineTooLong = errors.New("record line too long")
)

// Record is one decoded line.
type Record struct {
	// Line is the 1-based line number in the source.
	Line int

	// Event is the recorded key event.
	Event key.Event

	// Bind is the binding specification to test, if any.
	Bind string
}

// Decode parses a single JSON record.
func Decode(line []byte) (Record, error) {
	if !gjson.ValidBytes(line) {
		return Record{}, ErrInvalidRecord
	}
	doc := gjson.ParseBytes(line)
	if !doc.IsObject() {
		return Record{}, ErrInvalidRecord
	}

	var rec Record
	var err error

	rec.Event.Modifiers, err = decodeModifiers(doc)
	if err != nil {
		return Record{}, err
	}

	code := doc.Get("keyCode")
	if !code.Exists() {
		return Record{}, fmt.Errorf("%w: keyCode is required", ErrInvalidField)
	}
	n, err := parseUint(code)
	if err != nil || n > 0xffff {
		return Record{}, fmt.Errorf("%w: keyCode %s", ErrInvalidField, code.Raw)
	}
	rec.Event.Code = key.Code(n)

	if chars := doc.Get("characters"); chars.Exists() {
		if chars.Type != gjson.String {
			return Record{}, fmt.Errorf("%w: characters must be a string", ErrInvalidField)
		}
		rec.Event.Characters = chars.String()
	}

	rec.Bind = doc.Get("bind").String()
	return rec, nil
}

func decodeModifiers(doc gjson.Result) (key.Modifier, error) {
	var mods key.Modifier

	if flags := doc.Get("flags"); flags.Exists() {
		n, err := parseUint(flags)
		if err != nil {
			return 0, fmt.Errorf("%w: flags %s", ErrInvalidField, flags.Raw)
		}
		mods |= key.Modifier(n)
	}

	names := doc.Get("modifiers")
	if !names.Exists() {
		return mods, nil
	}

	var err error
	add := func(name string) {
		mod := key.ModifierFromName(name)
		if mod == key.ModNone && err == nil {
			err = fmt.Errorf("%w: unknown modifier %q", ErrInvalidField, name)
		}
		mods |= mod
	}

	switch {
	case names.IsArray():
		names.ForEach(func(_, v gjson.Result) bool {
			add(v.String())
			return err == nil
		})
	case names.Type == gjson.String:
		for _, name := range strings.Split(names.String(), ",") {
			if strings.TrimSpace(name) != "" {
				add(name)
			}
		}
	default:
		return 0, fmt.Errorf("%w: modifiers must be a list", ErrInvalidField)
	}

	return mods, err
}

// parseUint accepts a JSON number or a numeric string ("0x20102").
func parseUint(v gjson.Result) (uint64, error) {
	switch v.Type {
	case gjson.Number:
		if v.Num < 0 || v.Num != float64(uint64(v.Num)) {
			return 0, strconv.ErrRange
		}
		return v.Uint(), nil
	case gjson.String:
		return strconv.ParseUint(strings.TrimSpace(v.Str), 0, 64)
	default:
		return 0, strconv.ErrSyntax
	}
}

// MaxLineLength is the longest record line a Scanner decodes, excluding
// the newline.
const MaxLineLength = 1 << 20

// Scanner reads records line by line. Blank lines and lines starting
// with '#' are skipped.
type Scanner struct {
	r       *bufio.Reader
	max     int
	line    int
	rec     Record
	err     error
	readErr error
	done    bool
}

// NewScanner creates a scanner over r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r), max: MaxLineLength}
}

// Scan advances to the next record. It returns false at end of input or
// on a read error. A decode error, including ErrLineTooLong, is reported
// by Err for that record and does not stop scanning.
func (s *Scanner) Scan() bool {
	for !s.done {
		line, tooLong, err := s.readLine()
		if err != nil {
			s.done = true
			if err != io.EOF {
				s.readErr = err
				break
			}
			if len(line) == 0 && !tooLong {
				break
			}
		}
		s.line++

		if tooLong {
			s.rec = Record{Line: s.line}
			s.err = fmt.Errorf("line %d: %w (limit %d bytes)", s.line, ErrLineTooLong, s.max)
			return true
		}

		text := strings.TrimSpace(string(line))
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		s.rec, s.err = Decode([]byte(text))
		s.rec.Line = s.line
		if s.err != nil {
			s.err = fmt.Errorf("line %d: %w", s.line, s.err)
		}
		return true
	}
	s.err = s.readErr
	return false
}

// readLine returns the next line without its newline. A line longer than
// s.max is consumed in full but not kept, and reported as tooLong.
func (s *Scanner) readLine() (line []byte, tooLong bool, err error) {
	for {
		var chunk []byte
		chunk, err = s.r.ReadSlice('\n')
		if err == nil {
			chunk = chunk[:len(chunk)-1]
		}
		if !tooLong {
			if len(line)+len(chunk) > s.max {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		return line, tooLong, err
	}
}

// Record returns the most recently scanned record.
func (s *Scanner) Record() Record {
	return s.rec
}

// Err returns the decode error for the current record, or the read error
// after Scan returns false.
func (s *Scanner) Err() error {
	return s.err
}
