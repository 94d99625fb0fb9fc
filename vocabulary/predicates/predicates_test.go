package predicates_test

import (
	"testing"
	"time"

	"github.com/c360studio/semstreams/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semvocab/vocab"
	"github.com/c360studio/semvocab/vocabulary/predicates"
)

func build(t *testing.T) *vocab.Vocab {
	t.Helper()
	v, err := vocab.Build(&vocab.Raw{
		Vocab:    []map[string]any{{"id": "predtest", "value": "https://predtest.example/"}},
		Ontology: []map[string]any{{"property": "dc:title", "value": "Predicates"}},
		Property: []map[string]any{
			{"id": "name", "label": "Name", "comment": "Display name.", "range": "xsd:string"},
			{"id": "age", "range": "xsd:integer"},
			{"id": "score", "range": "xsd:double"},
			{"id": "active", "range": "xsd:boolean"},
			{"id": "created", "range": "xsd:dateTime"},
			{"id": "owner", "range": "Agent"},
			{"id": "homepage", "range": "IRI"},
			{"id": "tags", "range": "xsd:string", "container": "set"},
			{"id": "either", "range": []any{"xsd:string", "xsd:integer"}},
			{"id": "schema:name", "external": true},
		},
		Class: []map[string]any{{"id": "Agent"}},
	}, vocab.WithDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	return v
}

func TestRegister(t *testing.T) {
	names := predicates.Register(build(t))

	assert.Equal(t, []string{
		"predtest.property.name",
		"predtest.property.age",
		"predtest.property.score",
		"predtest.property.active",
		"predtest.property.created",
		"predtest.property.owner",
		"predtest.property.homepage",
		"predtest.property.tags",
		"predtest.property.either",
	}, names)

	meta := vocabulary.GetPredicateMetadata("predtest.property.name")
	require.NotNil(t, meta)
	assert.Equal(t, "Name: Display name.", meta.Description)
	assert.Equal(t, "https://predtest.example/name", meta.StandardIRI)
}

func TestRegister_DataTypes(t *testing.T) {
	predicates.Register(build(t))

	tests := []struct {
		predicate string
		want      string
	}{
		{"predtest.property.name", predicates.TypeString},
		{"predtest.property.age", predicates.TypeInt},
		{"predtest.property.score", predicates.TypeFloat},
		{"predtest.property.active", predicates.TypeBool},
		{"predtest.property.created", predicates.TypeDateTime},
		{"predtest.property.owner", predicates.TypeEntityID},
		{"predtest.property.homepage", predicates.TypeEntityID},
		{"predtest.property.tags", predicates.TypeArray},
		{"predtest.property.either", predicates.TypeString},
	}
	for _, tt := range tests {
		t.Run(tt.predicate, func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(tt.predicate)
			require.NotNil(t, meta)
			assert.Equal(t, tt.want, meta.DataType)
		})
	}
}

func TestPredicateName(t *testing.T) {
	v := build(t)
	term, ok := v.Term("predtest:name")
	require.True(t, ok)
	assert.Equal(t, "predtest.property.name", predicates.PredicateName(term))

	assert.Equal(t, "ex.property.a_b", predicates.PredicateName(&vocab.Term{ID: "a.b", Prefix: "ex"}))
}

func TestTermPredicatesRegistered(t *testing.T) {
	tests := []struct {
		predicate string
		dataType  string
		iri       string
	}{
		{predicates.TermLabel, predicates.TypeString, "http://www.w3.org/2000/01/rdf-schema#label"},
		{predicates.TermStatus, predicates.TypeString, "http://www.w3.org/2003/06/sw-vocab-status/ns#term_status"},
		{predicates.RelSubClassOf, predicates.TypeEntityID, "http://www.w3.org/2000/01/rdf-schema#subClassOf"},
		{predicates.RelOneOf, predicates.TypeEntityID, "http://www.w3.org/2002/07/owl#oneOf"},
	}

	for _, tt := range tests {
		t.Run(tt.predicate, func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(tt.predicate)
			require.NotNil(t, meta)
			assert.Equal(t, tt.dataType, meta.DataType)
			assert.Equal(t, tt.iri, meta.StandardIRI)
		})
	}
}
