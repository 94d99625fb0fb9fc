// Package source loads YAML vocabulary descriptions and turns them into
// validated raw documents for the vocabulary builder.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semvocab/vocab"
)

// Section names of a vocabulary document.
const (
	SectionVocab      = "vocab"
	SectionOntology   = "ontology"
	SectionPrefix     = "prefix"
	SectionClass      = "class"
	SectionProperty   = "property"
	SectionIndividual = "individual"
	SectionDatatype   = "datatype"
)

// Sections lists every recognized top-level section in document order.
var Sections = []string{
	SectionVocab,
	SectionOntology,
	SectionPrefix,
	SectionClass,
	SectionProperty,
	SectionIndividual,
	SectionDatatype,
}

// ErrNotMapping is returned when the document root is not a YAML mapping.
var ErrNotMapping = errors.New("document root must be a mapping")

// Document is a decoded vocabulary source. Sections given as a single
// mapping are already wrapped into one element lists.
type Document struct {
	tree map[string]any
}

// Decode parses YAML into a Document without validating it.
func Decode(data []byte) (*Document, error) {
	var tree map[string]any
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&tree); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{tree: map[string]any{}}, nil
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("decode yaml: %w", ErrNotMapping)
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if tree == nil {
		tree = map[string]any{}
	}
	for _, name := range Sections {
		if m, ok := tree[name].(map[string]any); ok {
			tree[name] = []any{m}
		}
	}
	return &Document{tree: tree}, nil
}

// Has reports whether the document carries a non-empty section.
func (d *Document) Has(section string) bool {
	list, _ := d.tree[section].([]any)
	return len(list) > 0
}

// Entries returns the records of a section. Non-mapping items are skipped;
// Validate reports them.
func (d *Document) Entries(section string) []map[string]any {
	list, _ := d.tree[section].([]any)
	if len(list) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// Raw converts the document into the builder input.
func (d *Document) Raw() *vocab.Raw {
	return &vocab.Raw{
		Vocab:      d.Entries(SectionVocab),
		Ontology:   d.Entries(SectionOntology),
		Prefix:     d.Entries(SectionPrefix),
		Class:      d.Entries(SectionClass),
		Property:   d.Entries(SectionProperty),
		Individual: d.Entries(SectionIndividual),
		Datatype:   d.Entries(SectionDatatype),
	}
}

// Load decodes and validates a YAML vocabulary.
func Load(data []byte) (*vocab.Raw, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc.Raw(), nil
}

// LoadFile reads, decodes and validates a YAML vocabulary file.
func LoadFile(path string) (*vocab.Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	raw, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return raw, nil
}
