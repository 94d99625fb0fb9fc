package source_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semvocab/source"
	"github.com/c360studio/semvocab/vocab"
)

const sample = `
vocab:
  id: ex
  value: http://example.org/
  context: https://example.org/ctx/v1

ontology:
  - property: dc:title
    value: Example vocabulary
  - property: dc:date
    value: 2024-03-01

prefix:
  - id: sec
    value: https://w3id.org/security#

class:
  - id: Thing
    comment: |
      "A thing."

property:
  - id: name
    comment: The name.
    domain: Thing
    range: xsd:string
    see_also:
      label: Spec
      url: https://example.org/spec
`

func TestLoad(t *testing.T) {
	raw, err := source.Load([]byte(sample))
	require.NoError(t, err)

	require.Len(t, raw.Vocab, 1)
	assert.Equal(t, "ex", raw.Vocab[0]["id"])
	require.Len(t, raw.Ontology, 2)
	assert.Equal(t, "2024-03-01", raw.Ontology[1]["value"])
	require.Len(t, raw.Prefix, 1)
	require.Len(t, raw.Class, 1)
	require.Len(t, raw.Property, 1)
	assert.Empty(t, raw.Individual)
	assert.Empty(t, raw.Datatype)
}

func TestLoad_BuildsVocabulary(t *testing.T) {
	raw, err := source.Load([]byte(sample))
	require.NoError(t, err)

	v, err := vocab.Build(raw)
	require.NoError(t, err)

	require.Len(t, v.Classes, 1)
	assert.Equal(t, "A thing.", v.Classes[0].Comment)
	assert.Equal(t, []string{"name"}, v.Classes[0].DomainOf)
	assert.Equal(t, []string{"ex:name", "ex:Thing"}, v.Contexts.Terms("https://example.org/ctx/v1"))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "missing vocab",
			doc:     "ontology:\n  - property: dc:title\n    value: x\n",
			wantErr: vocab.ErrMissingSection,
		},
		{
			name:    "missing ontology",
			doc:     "vocab:\n  id: ex\n  value: http://example.org/\n",
			wantErr: vocab.ErrMissingSection,
		},
		{
			name: "two vocab entries",
			doc: `vocab:
  - id: ex
    value: http://example.org/
  - id: ex2
    value: http://example.org/2/
ontology:
  - property: dc:title
    value: x
`,
			wantErr: vocab.ErrAmbiguousVocabulary,
		},
		{
			name: "unknown entry key",
			doc: `vocab:
  id: ex
  value: http://example.org/
ontology:
  - property: dc:title
    value: x
class:
  - id: C
    comment: x
    colour: blue
`,
			wantErr: vocab.ErrSchemaValidation,
		},
		{
			name: "bad status",
			doc: `vocab:
  id: ex
  value: http://example.org/
ontology:
  - property: dc:title
    value: x
class:
  - id: C
    status: frozen
`,
			wantErr: vocab.ErrSchemaValidation,
		},
		{
			name: "entry without id",
			doc: `vocab:
  id: ex
  value: http://example.org/
ontology:
  - property: dc:title
    value: x
property:
  - comment: nameless
`,
			wantErr: vocab.ErrSchemaValidation,
		},
		{
			name: "unknown section",
			doc: `vocab:
  id: ex
  value: http://example.org/
ontology:
  - property: dc:title
    value: x
classes: []
`,
			wantErr: vocab.ErrSchemaValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := source.Load([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestValidate_ReportsViolations(t *testing.T) {
	doc := `vocab:
  id: ex
  value: http://example.org/
ontology:
  - property: dc:title
    value: x
class:
  - id: C
    colour: blue
  - id: D
    container: bag
`
	_, err := source.Load([]byte(doc))
	require.Error(t, err)

	var se *vocab.SchemaError
	require.True(t, errors.As(err, &se))
	assert.GreaterOrEqual(t, len(se.Violations), 2)
}

func TestDecode_NotMapping(t *testing.T) {
	_, err := source.Decode([]byte("- a\n- b\n"))
	assert.True(t, errors.Is(err, source.ErrNotMapping))
}

func TestDecode_Empty(t *testing.T) {
	doc, err := source.Decode(nil)
	require.NoError(t, err)
	assert.True(t, errors.Is(source.Validate(doc), vocab.ErrMissingSection))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	raw, err := source.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, raw.Class, 1)

	_, err = source.LoadFile(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
