package export

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/semvocab/vocab"
)

// ContextEntry is the definition of one term in a JSON-LD context.
type ContextEntry struct {
	ID        string `json:"@id"`
	Type      string `json:"@type,omitempty"`
	Container string `json:"@container,omitempty"`
}

// ContextWriter builds a minimal JSON-LD context.
type ContextWriter struct {
	terms map[string]any
}

// NewContextWriter creates a context with the id and type aliases set.
func NewContextWriter() *ContextWriter {
	return &ContextWriter{
		terms: map[string]any{
			"@version":   1.1,
			"@protected": true,
			"id":         "@id",
			"type":       "@type",
		},
	}
}

// AddTerm defines t in the context. Deprecated terms are skipped.
func (w *ContextWriter) AddTerm(t *vocab.Term) {
	if t.Deprecated {
		return
	}
	name := t.KnownAs
	if name == "" {
		name = t.ID
	}

	p, ok := t.Property()
	if !ok {
		w.terms[name] = t.URL
		return
	}

	entry := ContextEntry{ID: t.URL}
	switch {
	case p.IRIValued:
		entry.Type = "@id"
	case len(p.Range) == 1:
		entry.Type = rangeType(p.Range[0])
	}
	switch {
	case p.Dataset || p.Container == vocab.ContainerGraph:
		entry.Container = "@graph"
	case p.Container == vocab.ContainerList:
		entry.Container = "@list"
	case p.Container == vocab.ContainerSet:
		entry.Container = "@set"
	}

	if entry.Type == "" && entry.Container == "" {
		w.terms[name] = t.URL
		return
	}
	w.terms[name] = entry
}

// rangeType maps a single range to the JSON-LD value type.
func rangeType(r *vocab.Term) string {
	switch {
	case r.Curie == "rdf:JSON":
		return "@json"
	case vocab.IsDatatypeCurie(r.Curie):
		return r.URL
	case r.Kind == vocab.KindDatatype:
		return r.URL
	case r.Kind == vocab.KindClass || r.Kind == vocab.KindFullURL:
		return "@id"
	default:
		return ""
	}
}

// Bytes returns the context document.
func (w *ContextWriter) Bytes() ([]byte, error) {
	data, err := json.MarshalIndent(map[string]any{"@context": w.terms}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal context: %w", err)
	}
	return append(data, '\n'), nil
}

// Context renders a context with every declared term of the vocabulary.
func Context(v *vocab.Vocab) ([]byte, error) {
	w := NewContextWriter()
	for _, t := range declared(v) {
		w.AddTerm(t)
	}
	return w.Bytes()
}

// ContextsFor renders one context per context identifier, holding the terms
// assigned to it.
func ContextsFor(v *vocab.Vocab) (map[string][]byte, error) {
	out := make(map[string][]byte, v.Contexts.Len())
	for _, id := range v.Contexts.Contexts() {
		w := NewContextWriter()
		for _, curie := range v.Contexts.Terms(id) {
			if t, ok := v.Term(curie); ok {
				w.AddTerm(t)
			}
		}
		data, err := w.Bytes()
		if err != nil {
			return nil, fmt.Errorf("context %s: %w", id, err)
		}
		out[id] = data
	}
	return out, nil
}

// declared lists all declared entries in output order.
func declared(v *vocab.Vocab) []*vocab.Term {
	var out []*vocab.Term
	out = append(out, classTerms(v)...)
	out = append(out, propertyTerms(v)...)
	out = append(out, individualTerms(v)...)
	return append(out, datatypeTerms(v)...)
}
