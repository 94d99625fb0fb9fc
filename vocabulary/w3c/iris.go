// Package w3c provides namespace IRIs and compact names for the W3C
// vocabularies a generated vocabulary is expressed in.
package w3c

// Namespace IRIs of the default prefixes.
const (
	RDF    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS   = "http://www.w3.org/2000/01/rdf-schema#"
	OWL    = "http://www.w3.org/2002/07/owl#"
	XSD    = "http://www.w3.org/2001/XMLSchema#"
	DC     = "http://purl.org/dc/terms/"
	VS     = "http://www.w3.org/2003/06/sw-vocab-status/ns#"
	Schema = "http://schema.org/"
	JSONLD = "http://www.w3.org/ns/json-ld#"
)

// Structural types assigned to vocabulary entries.
const (
	// RDFSClass types every class entry.
	RDFSClass = "rdfs:Class"

	// RDFProperty types every property entry.
	RDFProperty = "rdf:Property"

	// RDFSDatatype types every datatype entry.
	RDFSDatatype = "rdfs:Datatype"

	// OWLDeprecatedClass replaces rdfs:Class for deprecated classes.
	OWLDeprecatedClass = "owl:DeprecatedClass"

	// OWLDeprecatedProperty replaces rdf:Property for deprecated properties.
	OWLDeprecatedProperty = "owl:DeprecatedProperty"

	// OWLObjectProperty marks properties whose value is an IRI.
	OWLObjectProperty = "owl:ObjectProperty"

	// OWLDatatypeProperty marks properties whose range is literal only.
	OWLDatatypeProperty = "owl:DatatypeProperty"

	// OWLOntology types the vocabulary itself.
	OWLOntology = "owl:Ontology"

	// OWLClass types anonymous union and enumeration classes.
	OWLClass = "owl:Class"
)

// Annotation and structure predicates used by the renderers.
const (
	RDFType            = "rdf:type"
	RDFSLabel          = "rdfs:label"
	RDFSComment        = "rdfs:comment"
	RDFSSubClassOf     = "rdfs:subClassOf"
	RDFSSubPropertyOf  = "rdfs:subPropertyOf"
	RDFSDomain         = "rdfs:domain"
	RDFSRange          = "rdfs:range"
	RDFSIsDefinedBy    = "rdfs:isDefinedBy"
	RDFSSeeAlso        = "rdfs:seeAlso"
	OWLDeprecated      = "owl:deprecated"
	OWLUnionOf         = "owl:unionOf"
	OWLOneOf           = "owl:oneOf"
	OWLOnDatatype      = "owl:onDatatype"
	OWLWithRestriction = "owl:withRestrictions"
	XSDPattern         = "xsd:pattern"
	VSTermStatus       = "vs:term_status"
	DCDate             = "dc:date"
	DCTitle            = "dc:title"
	DCDescription      = "dc:description"
)

// DefaultPrefix is a prefix declared for every vocabulary.
type DefaultPrefix struct {
	Prefix string
	URL    string
}

// DefaultPrefixes lists the prefixes added after the user declared ones,
// in declaration order.
var DefaultPrefixes = []DefaultPrefix{
	{Prefix: "dc", URL: DC},
	{Prefix: "owl", URL: OWL},
	{Prefix: "rdf", URL: RDF},
	{Prefix: "rdfs", URL: RDFS},
	{Prefix: "xsd", URL: XSD},
	{Prefix: "vs", URL: VS},
	{Prefix: "schema", URL: Schema},
	{Prefix: "jsonld", URL: JSONLD},
}

// CorePrefixes are the prefixes of the RDF language itself. Their terms are
// neither local nor external and are never redefined by a vocabulary.
var CorePrefixes = []string{"rdf", "rdfs", "owl"}

// ExtraDatatypes are the non-XSD datatypes that still make a property a
// datatype property.
var ExtraDatatypes = []string{
	"rdf:JSON",
	"rdf:HTML",
	"rdf:XMLLiteral",
	"rdf:PlainLiteral",
	"rdf:langString",
	"rdfs:Literal",
}

// IsCorePrefix reports whether prefix belongs to the RDF language.
func IsCorePrefix(prefix string) bool {
	for _, p := range CorePrefixes {
		if p == prefix {
			return true
		}
	}
	return false
}

// IsExtraDatatype reports whether curie is one of ExtraDatatypes.
func IsExtraDatatype(curie string) bool {
	for _, d := range ExtraDatatypes {
		if d == curie {
			return true
		}
	}
	return false
}
