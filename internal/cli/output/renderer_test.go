package output

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTestRenderer(mode OutputMode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestMode(t *testing.T) {
	tests := []struct {
		input string
		want  OutputMode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"TEXT", ModeText},
		{"md", ModeMarkdown},
		{"markdown", ModeMarkdown},
		{"json", ModeJSON},
		{"yaml", ModeAuto},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Mode(tt.input))
		})
	}

	assert.True(t, IsValidMode("json"))
	assert.True(t, IsValidMode(""))
	assert.False(t, IsValidMode("yaml"))
}

func TestRenderer_EffectiveMode(t *testing.T) {
	r, _, _ := newTestRenderer(ModeAuto, true)
	assert.Equal(t, ModeText, r.EffectiveMode())

	r, _, _ = newTestRenderer(ModeAuto, false)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())

	r, _, _ = newTestRenderer(ModeJSON, true)
	assert.Equal(t, ModeJSON, r.EffectiveMode())

	r, _, _ = newTestRenderer("", false)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestRenderer_Markdown(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown, false)

	r.Header(1, "Reviews")
	r.KeyValue("Count", "2")
	r.Table([]string{"id", "text"}, [][]string{{"1", "Great"}, {"2", "Solid"}})

	got := out.String()
	assert.False(t, ansiPattern.MatchString(got))
	assert.Contains(t, got, "# Reviews")
	assert.Contains(t, got, "- **Count**: 2")
	assert.Contains(t, got, "| 1 | Great |")
	assert.Contains(t, got, "| 2 | Solid |")
}

func TestRenderer_TextTable(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText, false)

	r.Table([]string{"id", "name"}, [][]string{{"1", "Ada"}})

	got := out.String()
	assert.Contains(t, got, "Ada")
	assert.Contains(t, got, "┌", "text tables use the light box style")
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)

	require.NoError(t, r.JSON(map[string]any{"id": 1, "text": "Great"}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "Great", got["text"])
	assert.True(t, strings.HasPrefix(out.String(), "{\n  "), "JSON output is indented")
}

func TestRenderer_Messages(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText, false)

	r.Success("saved")
	r.StatusLine("reviews", "success", "created")
	r.StatusLine("employees", "failed", "")
	r.Warning("nothing to do")
	r.Error("Error: boom")

	assert.Contains(t, out.String(), "saved")
	assert.Contains(t, out.String(), "[ok] reviews  created")
	assert.Contains(t, out.String(), "[fail] employees")
	assert.Contains(t, errOut.String(), "Warning: nothing to do")
	assert.Contains(t, errOut.String(), "Error: boom")
	assert.NotContains(t, errOut.String(), "Error: Error:")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Summary", FormatHeader(2, "Summary"))
	assert.Equal(t, "# Top", FormatHeader(0, "Top"))
	assert.Equal(t, "- **Driver**: sqlite", FormatKeyValue("Driver", "sqlite"))
	assert.Equal(t, "```sql\nSELECT 1\n```", FormatCodeBlock("sql", "SELECT 1\n"))
}
