package source

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/c360studio/semvocab/vocab"
)

//go:embed schema.json
var schemaJSON string

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
})

// Validate checks the structure of a decoded document. Missing required
// sections and multiple vocabulary identities are reported with their own
// error types before the schema runs; every other violation is collected
// into a *vocab.SchemaError.
func Validate(doc *Document) error {
	for _, section := range []string{SectionVocab, SectionOntology} {
		if !doc.Has(section) {
			return &vocab.MissingSectionError{Section: section}
		}
	}
	if n := len(doc.tree[SectionVocab].([]any)); n > 1 {
		return &vocab.AmbiguousVocabularyError{Count: n}
	}

	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile vocabulary schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc.tree))
	if err != nil {
		return fmt.Errorf("validate document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return &vocab.SchemaError{Violations: violations}
}
