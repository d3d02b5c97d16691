package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/keyscreen/internal/config"
	"github.com/dshills/keyscreen/internal/input/key"
)

func newTestApp(t *testing.T, opts Options) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, logs bytes.Buffer
	opts.Output = &out
	opts.LogOutput = &logs
	a, err := New(opts)
	require.NoError(t, err)
	return a, &out, &logs
}

func TestNewAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyscreen.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output]\nformat = \"json\"\npretty = true\n"), 0o644))

	a, _, _ := newTestApp(t, Options{ConfigPath: path, ConfigRequired: true, LogLevel: "debug"})
	assert.Equal(t, "json", a.Config().Output.Format)
	assert.True(t, a.Config().Output.Pretty)
	assert.Equal(t, "debug", a.Config().Logging.Level)

	a, _, _ = newTestApp(t, Options{ConfigPath: path, Format: "text"})
	assert.Equal(t, "text", a.Config().Output.Format)
}

func TestNewLoggerUsesConfig(t *testing.T) {
	t.Setenv("KEYSCREEN_LOG_FORMAT", "json")
	a, _, logs := newTestApp(t, Options{LogLevel: "debug"})

	a.Logger().Debug("ready")
	doc := gjson.Parse(logs.String())
	require.True(t, doc.IsObject(), logs.String())
	assert.Equal(t, "keyscreen", doc.Get("app").String())
	assert.Equal(t, "debug", doc.Get("level").String())
}

func TestNewRejectsInvalidOverride(t *testing.T) {
	_, err := New(Options{Format: "yaml", Output: &bytes.Buffer{}})
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestNewMissingRequiredConfig(t *testing.T) {
	_, err := New(Options{ConfigPath: filepath.Join(t.TempDir(), "none.toml"), ConfigRequired: true})
	assert.ErrorIs(t, err, config.ErrFileNotFound)
}

func TestClassifyBindingError(t *testing.T) {
	a, _, _ := newTestApp(t, Options{})
	_, err := a.Classify(key.NewArrowEvent(key.CodeUpArrow, key.ModNone), "Hyper+Up")
	assert.ErrorIs(t, err, key.ErrInvalidSpec)
}

func TestMatch(t *testing.T) {
	a, out, _ := newTestApp(t, Options{Format: "json"})

	err := a.Match(key.NewArrowEvent(key.CodeUpArrow, key.ModShift), "Shift+Up")
	require.NoError(t, err)
	assert.True(t, gjson.Get(out.String(), "binding.matches").Bool())

	out.Reset()
	err = a.Match(key.NewArrowEvent(key.CodeUpArrow, key.ModShift|key.ModAlt), "Shift+Up")
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.False(t, gjson.Get(out.String(), "binding.matches").Bool())

	assert.ErrorIs(t, a.Match(key.Event{}, " "), key.ErrEmptySpec)
}

func TestWriteText(t *testing.T) {
	a, out, _ := newTestApp(t, Options{})
	rep, err := a.Classify(key.NewRuneEvent('S', key.ModShift), "Shift+S")
	require.NoError(t, err)
	require.NoError(t, a.Write(rep))

	assert.Contains(t, out.String(), "Shift+S")
	assert.Regexp(t, `binding Shift\+S\s+true`, out.String())
}

func TestReplay(t *testing.T) {
	a, out, logs := newTestApp(t, Options{Format: "json"})

	input := strings.Join([]string{
		`{"modifiers":["numpad","fn"],"keyCode":126}`,
		`{"modifiers":["shift","opt","numpad","fn"],"keyCode":126}`,
		`{"modifiers":["shift"],"keyCode":1,"characters":"S","bind":"Shift+S"}`,
	}, "\n")

	require.NoError(t, a.Replay(context.Background(), strings.NewReader(input), "test"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, gjson.Get(lines[0], "results.matches_arrow_up").Bool())
	assert.False(t, gjson.Get(lines[1], "results.matches_any_arrow").Bool())
	assert.True(t, gjson.Get(lines[1], "results.contains_any_arrow").Bool())
	assert.True(t, gjson.Get(lines[2], "binding.matches").Bool())
	assert.Contains(t, logs.String(), "replayed 3 records")
}

func TestReplaySkipsInvalidRecords(t *testing.T) {
	a, out, logs := newTestApp(t, Options{Format: "json"})

	input := strings.Join([]string{
		`garbage`,
		`{"keyCode":126,"bind":"Hyper+Up"}`,
		`{"keyCode":53,"characters":"\u001b"}`,
	}, "\n")

	err := a.Replay(context.Background(), strings.NewReader(input), "test")
	assert.ErrorIs(t, err, ErrInvalidRecords)
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 1)
	assert.Contains(t, logs.String(), "skipping record")
}

func TestReplayCancelled(t *testing.T) {
	a, _, _ := newTestApp(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.Replay(ctx, strings.NewReader(`{"keyCode":1}`), "test")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatch(t *testing.T) {
	a, _, _ := newTestApp(t, Options{})

	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 25)

	screen.InjectKey(tcell.KeyLeft, 0, tcell.ModShift)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- a.Watch(context.Background(), screen) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop on Escape")
	}

	cells, width, _ := screen.GetContents()
	var first strings.Builder
	for x := 0; x < width; x++ {
		if len(cells[x].Runes) > 0 {
			first.WriteRune(cells[x].Runes[0])
		}
	}
	assert.Contains(t, first.String(), "Shift+Left")
}
