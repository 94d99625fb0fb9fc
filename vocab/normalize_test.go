package vocab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ListFields(t *testing.T) {
	e, err := Normalize(map[string]any{
		"id":          "hasValue",
		"comment":     "A value.",
		"upper_value": "ex:Base",
		"domain":      []any{"ex:A", "ex:B"},
		"context":     "vocab",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ex:Base"}, e.Upper)
	assert.Equal(t, []string{"ex:A", "ex:B"}, e.Domain)
	assert.Equal(t, []string{}, e.Range)
	assert.Equal(t, []string{}, e.DefinedBy)
	assert.Equal(t, []string{"vocab"}, e.Context)
	assert.Equal(t, []Link{}, e.SeeAlso)
	assert.Equal(t, []Example{}, e.Examples)
}

func TestNormalize_SeeAlsoAndExamples(t *testing.T) {
	t.Run("single block", func(t *testing.T) {
		e, err := Normalize(map[string]any{
			"id":       "x",
			"see_also": map[string]any{"label": "Spec", "url": "https://example.org/spec"},
			"example":  map[string]any{"label": "Basic", "json": `{"a": 1}`},
		})
		require.NoError(t, err)
		assert.Equal(t, []Link{{Label: "Spec", URL: "https://example.org/spec"}}, e.SeeAlso)
		assert.Equal(t, []Example{{Label: "Basic", JSON: `{"a": 1}`}}, e.Examples)
	})

	t.Run("list with bare url", func(t *testing.T) {
		e, err := Normalize(map[string]any{
			"id":       "x",
			"see_also": []any{"https://a.example/", map[string]any{"url": "https://b.example/"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []Link{{URL: "https://a.example/"}, {URL: "https://b.example/"}}, e.SeeAlso)
	})

	t.Run("structured json", func(t *testing.T) {
		e, err := Normalize(map[string]any{
			"id":      "x",
			"example": []any{map[string]any{"json": map[string]any{"a": 1}}},
		})
		require.NoError(t, err)
		require.Len(t, e.Examples, 1)
		assert.JSONEq(t, `{"a": 1}`, e.Examples[0].JSON)
	})
}

func TestCleanComment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"trailing\n", "trailing"},
		{"trailing crlf\r\n", "trailing crlf"},
		{"only one\n\n", "only one\n"},
		{`"quoted"`, "quoted"},
		{`'single'`, "single"},
		{"“curly”", "curly"},
		{"‘curly single’", "curly single"},
		{"\"quoted with newline\"\n", "quoted with newline"},
		{`""double""`, `"double"`},
		{`"unbalanced`, `"unbalanced`},
		{`"`, `"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanComment(tt.in))
		})
	}
}

func TestDefaultLabel(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"hasValue", "Has value"},
		{"Thing", "Thing"},
		{"verificationMethodType", "Verification method type"},
		{"name", "Name"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultLabel(tt.id))
		})
	}
}

func TestNormalize_Label(t *testing.T) {
	e, err := Normalize(map[string]any{"id": "ex:hasValue"})
	require.NoError(t, err)
	assert.Equal(t, "Has value", e.Label)

	e, err = Normalize(map[string]any{"id": "hasValue", "label": "Custom"})
	require.NoError(t, err)
	assert.Equal(t, "Custom", e.Label)
}

func TestNormalize_Status(t *testing.T) {
	tests := []struct {
		name           string
		raw            map[string]any
		wantStatus     Status
		wantDeprecated bool
	}{
		{"default", map[string]any{}, StatusStable, false},
		{"deprecated flag", map[string]any{"deprecated": true}, StatusDeprecated, true},
		{"deprecated false", map[string]any{"deprecated": false}, StatusStable, false},
		{"status drives flag", map[string]any{"status": "deprecated"}, StatusDeprecated, true},
		{"status overrides flag", map[string]any{"status": "reserved", "deprecated": true}, StatusReserved, false},
		{"string flag", map[string]any{"deprecated": "true"}, StatusDeprecated, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.raw["id"] = "x"
			e, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, e.Status)
			assert.Equal(t, tt.wantDeprecated, e.Deprecated)
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"missing id", map[string]any{"label": "x"}},
		{"bad status", map[string]any{"id": "x", "status": "frozen"}},
		{"bad container", map[string]any{"id": "x", "container": "bag"}},
		{"bad flag", map[string]any{"id": "x", "dataset": 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchemaValidation))
		})
	}
}

func TestNormalize_PropertyFields(t *testing.T) {
	e, err := Normalize(map[string]any{
		"id":          "p",
		"container":   "list",
		"dataset":     true,
		"range_union": true,
		"known_as":    "alias",
		"one_of":      []any{"ex:a", "ex:b"},
	})
	require.NoError(t, err)
	assert.Equal(t, ContainerList, e.Container)
	assert.True(t, e.Dataset)
	assert.True(t, e.RangeUnion)
	assert.Equal(t, "alias", e.KnownAs)
	assert.Equal(t, []string{"ex:a", "ex:b"}, e.OneOf)
}
