// Package report evaluates every key classification for an event and
// renders the results as text or JSON.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/keyscreen/internal/input/key"
)

// Classification names, in report order.
const (
	IsArrow           = "is_arrow"
	MatchesAnyArrow   = "matches_any_arrow"
	ContainsAnyArrow  = "contains_any_arrow"
	MatchesArrowUp    = "matches_arrow_up"
	MatchesArrowDown  = "matches_arrow_down"
	MatchesArrowLeft  = "matches_arrow_left"
	MatchesArrowRight = "matches_arrow_right"
)

// Result is one named classification.
type Result struct {
	Name  string
	Value bool
}

// BindingResult records a binding tested against the event.
type BindingResult struct {
	Binding key.Binding
	Matches bool
}

// Report holds every classification of one event.
type Report struct {
	Event   key.Event
	Results []Result
	Binding *BindingResult
}

// Classify evaluates all predicates for ev. If binding is non-nil it is
// tested too.
func Classify(ev key.Event, binding *key.Binding) Report {
	r := Report{
		Event: ev,
		Results: []Result{
			{IsArrow, key.IsArrowCode(ev.Code)},
			{MatchesAnyArrow, ev.MatchesAnyArrow()},
			{ContainsAnyArrow, ev.ContainsAnyArrow()},
			{MatchesArrowUp, ev.MatchesArrowUp()},
			{MatchesArrowDown, ev.MatchesArrowDown()},
			{MatchesArrowLeft, ev.MatchesArrowLeft()},
			{MatchesArrowRight, ev.MatchesArrowRight()},
		},
	}
	if binding != nil {
		r.Binding = &BindingResult{Binding: *binding, Matches: binding.Matches(ev)}
	}
	return r
}

// Get returns the named result.
func (r Report) Get(name string) (bool, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res.Value, true
		}
	}
	return false, false
}

type field struct {
	path  string
	value any
}

// JSON encodes the report as a single-line JSON object.
func (r Report) JSON() ([]byte, error) {
	ev := r.Event
	screened := ev.Screened()

	names := screened.Names()
	if names == nil {
		names = []string{}
	}

	fields := []field{
		{"event.keyCode", uint16(ev.Code)},
		{"event.key", ev.Code.String()},
		{"event.flags", fmt.Sprintf("%#x", uint64(ev.Modifiers))},
		{"event.screened", fmt.Sprintf("%#x", uint64(screened))},
		{"event.modifiers", names},
		{"event.characters", ev.Characters},
		{"event.display", ev.String()},
	}
	for _, res := range r.Results {
		fields = append(fields, field{"results." + res.Name, res.Value})
	}
	if r.Binding != nil {
		fields = append(fields,
			field{"binding.spec", r.Binding.Binding.String()},
			field{"binding.matches", r.Binding.Matches},
		)
	}

	out := []byte("{}")
	var err error
	for _, f := range fields {
		out, err = sjson.SetBytes(out, f.path, f.value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.path, err)
		}
	}
	return out, nil
}

// PrettyJSON encodes the report as indented JSON.
func (r Report) PrettyJSON() ([]byte, error) {
	out, err := r.JSON()
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(out), nil
}

// WriteText renders the report as an aligned table.
func (r Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	ev := r.Event
	fmt.Fprintf(tw, "event\t%s\n", ev.String())
	fmt.Fprintf(tw, "key code\t%d (%s)\n", uint16(ev.Code), ev.Code)
	fmt.Fprintf(tw, "flags\t%#x\n", uint64(ev.Modifiers))
	fmt.Fprintf(tw, "screened\t%#x [%s]\n", uint64(ev.Screened()), strings.Join(ev.Screened().Names(), " "))
	fmt.Fprintf(tw, "characters\t%q\n", ev.Characters)
	for _, res := range r.Results {
		fmt.Fprintf(tw, "%s\t%t\n", res.Name, res.Value)
	}
	if r.Binding != nil {
		fmt.Fprintf(tw, "binding %s\t%t\n", r.Binding.Binding, r.Binding.Matches)
	}

	return tw.Flush()
}
