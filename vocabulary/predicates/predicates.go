// Package predicates registers the properties of a built vocabulary with the
// semstreams predicate registry.
//
// Each local property becomes a three-level dotted predicate
// (prefix.property.id) carrying its description, data type and the
// property URL as the standard IRI, so graph consumers can export triples
// that use the vocabulary without a separate mapping table.
package predicates

import (
	"strings"

	"github.com/c360studio/semstreams/vocabulary"

	"github.com/c360studio/semvocab/vocab"
)

// Category is the middle segment of every registered predicate.
const Category = "property"

// Data types attached to registered predicates.
const (
	TypeString   = "string"
	TypeInt      = "int"
	TypeFloat    = "float"
	TypeBool     = "bool"
	TypeDateTime = "datetime"
	TypeEntityID = "entity_id"
	TypeArray    = "array"
)

// PredicateName returns the dotted predicate name for a property term.
func PredicateName(t *vocab.Term) string {
	return t.Prefix + "." + Category + "." + strings.ReplaceAll(t.ID, ".", "_")
}

// Register registers every local property of v and returns the predicate
// names in declaration order.
func Register(v *vocab.Vocab) []string {
	names := make([]string, 0, len(v.Properties))
	for _, t := range v.Properties {
		if !t.IsLocal() {
			continue
		}
		p, ok := t.Property()
		if !ok {
			continue
		}
		name := PredicateName(t.Term)
		vocabulary.Register(name,
			vocabulary.WithDescription(description(t.Term)),
			vocabulary.WithDataType(DataType(p)),
			vocabulary.WithIRI(t.URL))
		names = append(names, name)
	}
	return names
}

// DataType maps a property range onto a predicate data type.
func DataType(p *vocab.Property) string {
	if p.Container == vocab.ContainerList || p.Container == vocab.ContainerSet {
		return TypeArray
	}
	if p.IRIValued {
		return TypeEntityID
	}
	if len(p.Range) != 1 {
		return TypeString
	}

	r := p.Range[0]
	switch r.Curie {
	case "xsd:integer", "xsd:int", "xsd:long", "xsd:short", "xsd:byte",
		"xsd:nonNegativeInteger", "xsd:positiveInteger",
		"xsd:nonPositiveInteger", "xsd:negativeInteger",
		"xsd:unsignedInt", "xsd:unsignedLong", "xsd:unsignedShort", "xsd:unsignedByte":
		return TypeInt
	case "xsd:decimal", "xsd:double", "xsd:float":
		return TypeFloat
	case "xsd:boolean":
		return TypeBool
	case "xsd:dateTime", "xsd:dateTimeStamp", "xsd:date":
		return TypeDateTime
	}
	if r.Kind == vocab.KindClass || r.Kind == vocab.KindFullURL {
		return TypeEntityID
	}
	return TypeString
}

func description(t *vocab.Term) string {
	if t.Comment == "" {
		return t.Label
	}
	return t.Label + ": " + t.Comment
}
