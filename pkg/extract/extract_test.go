package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectPlainJSON(t *testing.T) {
	out, err := Object(`{"ideas": [{"name": "A"}]}`)
	require.NoError(t, err)

	ideas, ok := out["ideas"].([]any)
	require.True(t, ok)
	require.Len(t, ideas, 1)
	first := ideas[0].(map[string]any)
	require.Equal(t, "A", first["name"])
}

func TestObjectFencedVariants(t *testing.T) {
	payload := `{"ideas": [{"name": "A"}]}`
	want, err := Object(payload)
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{"json tagged fence", "```json\n" + payload + "\n```"},
		{"bare fence", "```\n" + payload + "\n```"},
		{"fence without trailing newline", "```json\n" + payload + "```"},
		{"doubled fence", "```\n```json\n" + payload + "\n```\n```"},
		{"surrounding whitespace", "  \n```json\n" + payload + "\n```  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Object(tt.raw)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestObjectSurroundingProse(t *testing.T) {
	out, err := Object("Here is the result:\n{\"x\": 1}\nHope this helps!")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"x": float64(1)}, out)
}

func TestObjectProseAndFence(t *testing.T) {
	raw := "```json\nSure, here you go: {\"score\": 7} done\n```"
	out, err := Object(raw)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"score": float64(7)}, out)
}

func TestObjectFailures(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Object("")
		require.Error(t, err)
		pe, ok := AsParseError(err)
		require.True(t, ok)
		require.Equal(t, ReasonMalformedJSON, pe.Reason)
		require.Empty(t, pe.Snippet)
	})

	t.Run("not json at all", func(t *testing.T) {
		_, err := Object("not json at all")
		require.Error(t, err)
		pe, ok := AsParseError(err)
		require.True(t, ok)
		require.Equal(t, ReasonMalformedJSON, pe.Reason)
		require.Equal(t, "not json at all", pe.Snippet)
	})

	t.Run("truncated object", func(t *testing.T) {
		_, err := Object(`{"x": 1`)
		pe, ok := AsParseError(err)
		require.True(t, ok)
		require.Equal(t, ReasonMalformedJSON, pe.Reason)
		require.Equal(t, `{"x": 1`, pe.Snippet)
	})

	t.Run("reversed braces", func(t *testing.T) {
		_, err := Object("} nonsense {")
		pe, ok := AsParseError(err)
		require.True(t, ok)
		require.Equal(t, ReasonMalformedJSON, pe.Reason)
	})

	t.Run("top-level array is not searched", func(t *testing.T) {
		_, err := Object(`[{"x": 1}]`)
		// The brace span slices to the embedded object, which decodes, but a
		// bare array without braces fails.
		require.NoError(t, err)

		_, err = Object(`[1, 2, 3]`)
		require.Error(t, err)
	})
}

func TestSnippetTruncation(t *testing.T) {
	t.Run("short input unchanged", func(t *testing.T) {
		require.Equal(t, "abc", Snippet("abc"))
	})

	t.Run("exactly at limit", func(t *testing.T) {
		in := strings.Repeat("a", SnippetLimit)
		require.Equal(t, in, Snippet(in))
	})

	t.Run("over limit gains ellipsis", func(t *testing.T) {
		in := strings.Repeat("a", SnippetLimit+1)
		got := Snippet(in)
		require.Equal(t, strings.Repeat("a", SnippetLimit)+"...", got)
	})

	t.Run("failure retains original unsliced text", func(t *testing.T) {
		prose := strings.Repeat("x", SnippetLimit) + ` {"broken": `
		_, err := Object(prose)
		pe, ok := AsParseError(err)
		require.True(t, ok)
		require.Equal(t, strings.Repeat("x", SnippetLimit)+"...", pe.Snippet)
	})
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		`{"x": 1}`,
		"```json\n{\"x\": 1}\n```",
		"prose {\"x\": 1} prose",
		"",
		"no braces here",
	}
	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestStripFenceIdempotent(t *testing.T) {
	stripped := stripFence("```json\n{\"x\": 1}\n```")
	require.Equal(t, `{"x": 1}`, stripped)
	require.Equal(t, stripped, stripFence(stripped))
}

func TestDecodeTyped(t *testing.T) {
	type idea struct {
		Name string `json:"name"`
	}
	type ideaSet struct {
		Ideas []idea `json:"ideas"`
	}

	t.Run("nil target", func(t *testing.T) {
		err := Decode(`{"ideas": []}`, nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "cannot be nil")
	})

	t.Run("non-pointer target", func(t *testing.T) {
		var set ideaSet
		err := Decode(`{"ideas": []}`, set)
		require.Error(t, err)
		require.Contains(t, err.Error(), "pointer")
	})

	t.Run("fenced payload into struct", func(t *testing.T) {
		var set ideaSet
		err := Decode("```json\n{\"ideas\": [{\"name\": \"A\"}]}\n```", &set)
		require.NoError(t, err)
		require.Len(t, set.Ideas, 1)
		require.Equal(t, "A", set.Ideas[0].Name)
	})
}

func TestSchemaMismatch(t *testing.T) {
	cause := errors.New("swot is required")

	err := SchemaMismatch(`{"score": 99}`, cause)
	require.Equal(t, ReasonSchemaMismatch, err.Reason)
	require.Equal(t, `{"score": 99}`, err.Snippet)
	require.ErrorIs(t, err, cause)

	var pe *ParseError
	require.ErrorAs(t, error(err), &pe)
}
