package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/keyscreen/internal/input/key"
)

func execute(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := execute(t, "", "version")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "keyscreen dev")
	assert.Contains(t, out, "Commit: unknown")
}

func TestClassify(t *testing.T) {
	code, out, errOut := execute(t, "", "classify", "--format", "json", "--mods", "numpad,fn", "--code", "up")
	require.Equal(t, 0, code, errOut)

	assert.True(t, gjson.Get(out, "results.matches_arrow_up").Bool())
	assert.True(t, gjson.Get(out, "results.matches_any_arrow").Bool())
	assert.False(t, gjson.Get(out, "results.matches_arrow_down").Bool())
}

func TestClassifyRawFlags(t *testing.T) {
	code, out, errOut := execute(t, "", "classify", "--format", "json", "--flags", "0xa00100", "--code", "0x7e")
	require.Equal(t, 0, code, errOut)

	assert.Equal(t, int64(key.CodeUpArrow), gjson.Get(out, "event.keyCode").Int())
	assert.True(t, gjson.Get(out, "results.matches_any_arrow").Bool())
}

func TestClassifyWithBinding(t *testing.T) {
	code, out, errOut := execute(t, "", "classify", "--mods", "shift", "--code", "s", "--chars", "S", "--bind", "Shift+S")
	require.Equal(t, 0, code, errOut)
	assert.Regexp(t, `binding Shift\+S\s+true`, out)
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad code", []string{"classify", "--code", "nope"}, "invalid --code"},
		{"code too large", []string{"classify", "--code", "70000"}, "invalid --code"},
		{"bad flags", []string{"classify", "--code", "up", "--flags", "zz"}, "invalid --flags"},
		{"missing code", []string{"classify"}, "code"},
		{"bad binding", []string{"classify", "--code", "up", "--bind", "Hyper+Up"}, "Hyper"},
		{"bad format", []string{"classify", "--code", "up", "--format", "yaml"}, "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := execute(t, "", tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestMatch(t *testing.T) {
	code, out, errOut := execute(t, "", "match", "Shift+Up", "--format", "json", "--mods", "shift,numpad,fn", "--code", "up")
	require.Equal(t, 0, code, errOut)
	assert.True(t, gjson.Get(out, "binding.matches").Bool())

	// Arrow bindings require the numeric pad and function flags.
	code, out, errOut = execute(t, "", "match", "Shift+Up", "--format", "json", "--mods", "shift", "--code", "up")
	assert.Equal(t, 1, code)
	assert.Empty(t, errOut)
	assert.False(t, gjson.Get(out, "binding.matches").Bool())
}

func TestMatchRequiresBinding(t *testing.T) {
	code, _, errOut := execute(t, "", "match", "--code", "up")
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, errOut)
}

func TestReplayStdin(t *testing.T) {
	input := `{"modifiers":"numpad,fn","keyCode":123}` + "\n" +
		`{"modifiers":["cmd"],"keyCode":1,"characters":"s","bind":"Cmd+s"}` + "\n"

	code, out, errOut := execute(t, input, "replay", "--format", "json", "-")
	require.Equal(t, 0, code, errOut)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, gjson.Get(lines[0], "results.matches_arrow_left").Bool())
	assert.True(t, gjson.Get(lines[1], "binding.matches").Bool())
}

func TestReplayMissingFile(t *testing.T) {
	code, _, errOut := execute(t, "", "replay", t.TempDir()+"/missing.jsonl")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "missing.jsonl")
}

func TestMissingConfigFile(t *testing.T) {
	code, _, errOut := execute(t, "", "--config", t.TempDir()+"/none.toml", "version")
	assert.Equal(t, 0, code, "version does not load configuration")
	assert.Empty(t, errOut)

	code, _, errOut = execute(t, "", "--config", t.TempDir()+"/none.toml", "classify", "--code", "up")
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, errOut)
}
