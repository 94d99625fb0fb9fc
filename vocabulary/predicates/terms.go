package predicates

import (
	"github.com/c360studio/semstreams/vocabulary"

	"github.com/c360studio/semvocab/vocabulary/w3c"
)

// Predicates describing vocabulary terms as graph entities.
const (
	// TermCurie is the compact name of the term.
	TermCurie = "vocab.term.curie"

	// TermURL is the expanded IRI of the term.
	TermURL = "vocab.term.url"

	// TermKind is one of class, property, individual or datatype.
	TermKind = "vocab.term.kind"

	// TermLabel is the human readable label.
	TermLabel = "vocab.term.label"

	// TermComment is the plain text description.
	TermComment = "vocab.term.comment"

	// TermStatus is stable, reserved or deprecated.
	TermStatus = "vocab.term.status"

	// TermDefinedBy points at the defining vocabulary.
	TermDefinedBy = "vocab.term.defined_by"
)

// Relations between term entities.
const (
	RelType          = "vocab.rel.type"
	RelSubClassOf    = "vocab.rel.subclass_of"
	RelSubPropertyOf = "vocab.rel.subproperty_of"
	RelDomain        = "vocab.rel.domain"
	RelRange         = "vocab.rel.range"
	RelOneOf         = "vocab.rel.one_of"
)

func init() {
	vocabulary.Register(TermCurie,
		vocabulary.WithDescription("Compact prefix:name form of the term"),
		vocabulary.WithDataType(TypeString))

	vocabulary.Register(TermURL,
		vocabulary.WithDescription("Expanded IRI of the term"),
		vocabulary.WithDataType(TypeString))

	vocabulary.Register(TermKind,
		vocabulary.WithDescription("Term kind: class, property, individual, datatype"),
		vocabulary.WithDataType(TypeString),
		vocabulary.WithIRI(w3c.RDF+"type"))

	vocabulary.Register(TermLabel,
		vocabulary.WithDescription("Human readable label"),
		vocabulary.WithDataType(TypeString),
		vocabulary.WithIRI(w3c.RDFS+"label"))

	vocabulary.Register(TermComment,
		vocabulary.WithDescription("Plain text description of the term"),
		vocabulary.WithDataType(TypeString),
		vocabulary.WithIRI(w3c.RDFS+"comment"))

	vocabulary.Register(TermStatus,
		vocabulary.WithDescription("Term status: stable, reserved, deprecated"),
		vocabulary.WithDataType(TypeString),
		vocabulary.WithIRI(w3c.VS+"term_status"))

	vocabulary.Register(TermDefinedBy,
		vocabulary.WithDescription("Vocabulary the term is defined by"),
		vocabulary.WithDataType(TypeString),
		vocabulary.WithIRI(w3c.RDFS+"isDefinedBy"))

	vocabulary.Register(RelType,
		vocabulary.WithDescription("Class an individual is an instance of"),
		vocabulary.WithDataType(TypeEntityID),
		vocabulary.WithIRI(w3c.RDF+"type"))

	vocabulary.Register(RelSubClassOf,
		vocabulary.WithDescription("Superclass of a class or base of a datatype"),
		vocabulary.WithDataType(TypeEntityID),
		vocabulary.WithIRI(w3c.RDFS+"subClassOf"))

	vocabulary.Register(RelSubPropertyOf,
		vocabulary.WithDescription("Super property of a property"),
		vocabulary.WithDataType(TypeEntityID),
		vocabulary.WithIRI(w3c.RDFS+"subPropertyOf"))

	vocabulary.Register(RelDomain,
		vocabulary.WithDescription("Class a property applies to"),
		vocabulary.WithDataType(TypeEntityID),
		vocabulary.WithIRI(w3c.RDFS+"domain"))

	vocabulary.Register(RelRange,
		vocabulary.WithDescription("Class or datatype of property values"),
		vocabulary.WithDataType(TypeEntityID),
		vocabulary.WithIRI(w3c.RDFS+"range"))

	vocabulary.Register(RelOneOf,
		vocabulary.WithDescription("Enumerated member of a class or property"),
		vocabulary.WithDataType(TypeEntityID),
		vocabulary.WithIRI(w3c.OWL+"oneOf"))
}
