package vocab

// Kind discriminates the variant held by a Term.
type Kind string

// Term kinds. A term starts as KindUnknown when it is first referenced and
// is promoted to a concrete kind at most once.
const (
	KindClass      Kind = "class"
	KindProperty   Kind = "property"
	KindIndividual Kind = "individual"
	KindDatatype   Kind = "datatype"
	KindCore       Kind = "core"
	KindUnknown    Kind = "unknown"
	KindFullURL    Kind = "full-url"
)

// Status is the term status published through vs:term_status.
type Status string

// Term statuses.
const (
	StatusStable     Status = "stable"
	StatusReserved   Status = "reserved"
	StatusDeprecated Status = "deprecated"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusStable, StatusReserved, StatusDeprecated:
		return true
	default:
		return false
	}
}

// Link is a labelled "see also" reference.
type Link struct {
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

// Example is a labelled JSON snippet illustrating a term.
type Example struct {
	Label string `json:"label,omitempty"`
	JSON  string `json:"json"`
}

// Term is the base record shared by every vocabulary element. The registry
// owns exactly one Term per curie; kind specific data lives in its variant.
type Term struct {
	// ID is the local name, or the full URL for KindFullURL terms.
	ID string

	// Prefix is the namespace prefix; empty for full URLs.
	Prefix string

	// URL is the expanded IRI.
	URL string

	// Curie is prefix:ID, or the URL itself for full URLs.
	Curie string

	// AnchorID is a stable identifier usable as an HTML fragment.
	AnchorID string

	// Kind selects the variant.
	Kind Kind

	// Types are the declared rdf:type curies.
	Types []string

	Label      string
	Comment    string
	DefinedBy  []string
	SeeAlso    []Link
	Status     Status
	Deprecated bool

	// External is set for terms defined outside the vocabulary being built.
	External bool

	Examples []Example

	// Context lists the JSON-LD context identifiers the term belongs to.
	Context []string

	// KnownAs is an alternative name used in the JSON-LD context.
	KnownAs string

	variant variant
}

// variant is implemented by the kind specific records.
type variant interface {
	kind() Kind
}

// Class returns the class variant of t.
func (t *Term) Class() (*Class, bool) {
	c, ok := t.variant.(*Class)
	return c, ok
}

// Property returns the property variant of t.
func (t *Term) Property() (*Property, bool) {
	p, ok := t.variant.(*Property)
	return p, ok
}

// Individual returns the individual variant of t.
func (t *Term) Individual() (*Individual, bool) {
	i, ok := t.variant.(*Individual)
	return i, ok
}

// Datatype returns the datatype variant of t.
func (t *Term) Datatype() (*Datatype, bool) {
	d, ok := t.variant.(*Datatype)
	return d, ok
}

// Equal compares terms by local name and prefix rather than by identity.
func (t *Term) Equal(other *Term) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.ID == other.ID && t.Prefix == other.Prefix
}

// IsLocal reports whether the term is defined by the vocabulary being built.
func (t *Term) IsLocal() bool {
	return !t.External && t.Kind != KindCore && t.Kind != KindFullURL
}

// String returns the curie.
func (t *Term) String() string {
	return t.Curie
}

// Class is an rdfs:Class together with its derived cross-references.
type Class struct {
	*Term

	SuperClasses []*Term

	// UpperUnion declares the superclasses as a union rather than an
	// intersection.
	UpperUnion bool

	// OneOf enumerates the individuals of the class.
	OneOf []*Term

	// Property IDs using this class as the single range or domain.
	RangeOf  []string
	DomainOf []string

	// Property IDs using this class among several ranges or domains.
	IncludesRangeOf    []string
	IncludedInDomainOf []string
}

func (*Class) kind() Kind { return KindClass }

// Container is the JSON-LD container kind of a property.
type Container string

// Container kinds.
const (
	ContainerNone  Container = ""
	ContainerList  Container = "list"
	ContainerSet   Container = "set"
	ContainerGraph Container = "graph"
)

// Property is an rdf:Property.
type Property struct {
	*Term

	SuperProperties []*Term
	Domain          []*Term

	// Range may mix classes and datatypes.
	Range []*Term

	// RangeUnion declares the range entries as a union.
	RangeUnion bool

	// OneOf enumerates the allowed values.
	OneOf []*Term

	// Dataset marks graph valued properties.
	Dataset bool

	Container Container

	// IRIValued is set when the range was given as the IRI or URL sentinel.
	IRIValued bool
}

func (*Property) kind() Kind { return KindProperty }

// Individual is a named instance.
type Individual struct {
	*Term
}

func (*Individual) kind() Kind { return KindIndividual }

// Datatype is an rdfs:Datatype.
type Datatype struct {
	*Term

	// SuperClasses are the base datatypes.
	SuperClasses []*Term
	UpperUnion   bool

	// OneOf enumerates literal values.
	OneOf []string

	// Pattern is an optional xsd:pattern restriction.
	Pattern string

	RangeOf         []string
	IncludesRangeOf []string
}

func (*Datatype) kind() Kind { return KindDatatype }

// Prefix binds a short name to a namespace URL.
type Prefix struct {
	Prefix string `json:"prefix"`
	URL    string `json:"url"`
}

// OntologyProperty is vocabulary level metadata such as dc:title.
type OntologyProperty struct {
	Property string `json:"property"`
	Value    string `json:"value"`

	// URL is set when Value is an absolute URL rather than a literal.
	URL bool `json:"url"`
}

// Vocab is the finished term graph. All lists keep insertion order and the
// graph must not be mutated once Build returns it.
type Vocab struct {
	// Prefix and URL of the vocabulary itself.
	Prefix string
	URL    string

	// DefaultContext is the JSON-LD context substituted for "vocab".
	DefaultContext string

	Prefixes           []Prefix
	OntologyProperties []OntologyProperty
	Classes            []*Class
	Properties         []*Property
	Individuals        []*Individual
	Datatypes          []*Datatype

	// Status tallies the entries by status.
	Status *StatusCounter

	// Contexts maps context identifiers to the curies assigned to them.
	Contexts *ContextIndex

	terms map[string]*Term
}

// Term looks up any term touched by the build, declared or referenced.
func (v *Vocab) Term(curie string) (*Term, bool) {
	t, ok := v.terms[curie]
	return t, ok
}

// Stats returns the number of declared entries per kind.
func (v *Vocab) Stats() map[Kind]int {
	return map[Kind]int{
		KindClass:      len(v.Classes),
		KindProperty:   len(v.Properties),
		KindIndividual: len(v.Individuals),
		KindDatatype:   len(v.Datatypes),
	}
}
