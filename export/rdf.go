// Package export renders a built vocabulary as Turtle, JSON-LD, a minimal
// JSON-LD context and an RDFa annotated HTML page.
//
// Turtle and JSON-LD share one triple model: Graph walks the vocabulary once
// and every serializer formats the resulting nodes. None of the renderers
// modify the vocabulary.
package export

import (
	"github.com/c360studio/semvocab/vocab"
	"github.com/c360studio/semvocab/vocabulary/w3c"
)

type objectKind int

const (
	objectIRI objectKind = iota
	objectLiteral
	objectList
	objectBlank
)

// Object is the object of a triple: an IRI, a literal, an RDF list or a
// blank node.
type Object struct {
	kind objectKind

	// Curie and URL identify IRI objects. Curie is empty when the IRI has
	// no prefixed form.
	Curie string
	URL   string

	// Value and Datatype describe literals. Datatype is a curie; empty
	// means a plain string.
	Value    string
	Datatype string

	// Items holds list members; Statements describes a blank node.
	Items      []Object
	Statements []Statement
}

// IRI creates an IRI object.
func IRI(curie, url string) Object {
	return Object{kind: objectIRI, Curie: curie, URL: url}
}

// Literal creates a plain string literal.
func Literal(value string) Object {
	return Object{kind: objectLiteral, Value: value}
}

// TypedLiteral creates a literal with a datatype curie.
func TypedLiteral(value, datatype string) Object {
	return Object{kind: objectLiteral, Value: value, Datatype: datatype}
}

// List creates an RDF collection.
func List(items ...Object) Object {
	return Object{kind: objectList, Items: items}
}

// Blank creates an anonymous node.
func Blank(statements ...Statement) Object {
	return Object{kind: objectBlank, Statements: statements}
}

// IsIRI reports whether o is an IRI.
func (o Object) IsIRI() bool { return o.kind == objectIRI }

// Statement is one predicate with its objects.
type Statement struct {
	Predicate string
	Objects   []Object
}

// Node is a subject with its statements in output order.
type Node struct {
	Subject    Object
	Statements []Statement
}

// Graph converts the vocabulary into triples: the ontology header first,
// then classes, properties, individuals and datatypes. External entries are
// left out; they are described by their own vocabularies.
func Graph(v *vocab.Vocab) []Node {
	g := &graph{v: v, prefixes: make(map[string]string, len(v.Prefixes))}
	for _, p := range v.Prefixes {
		g.prefixes[p.Prefix] = p.URL
	}

	nodes := []Node{g.ontology()}
	for _, c := range v.Classes {
		if !c.External {
			nodes = append(nodes, g.class(c))
		}
	}
	for _, p := range v.Properties {
		if !p.External {
			nodes = append(nodes, g.property(p))
		}
	}
	for _, i := range v.Individuals {
		if !i.External {
			nodes = append(nodes, g.node(i.Term))
		}
	}
	for _, d := range v.Datatypes {
		if !d.External {
			nodes = append(nodes, g.datatype(d))
		}
	}
	return nodes
}

type graph struct {
	v        *vocab.Vocab
	prefixes map[string]string
}

// ref turns a curie or URL into an IRI object, preferring the registered
// term when there is one.
func (g *graph) ref(curie string) Object {
	if t, ok := g.v.Term(curie); ok {
		return g.term(t)
	}
	if vocab.IsURL(curie) {
		return IRI("", curie)
	}
	prefix, local := vocab.SplitCurie(curie)
	return IRI(curie, g.prefixes[prefix]+local)
}

func (g *graph) term(t *vocab.Term) Object {
	if t.Kind == vocab.KindFullURL {
		return IRI("", t.URL)
	}
	return IRI(t.Curie, t.URL)
}

func (g *graph) terms(ts []*vocab.Term) []Object {
	out := make([]Object, 0, len(ts))
	for _, t := range ts {
		out = append(out, g.term(t))
	}
	return out
}

func (g *graph) union(members []Object) Object {
	return Blank(
		Statement{Predicate: w3c.RDFType, Objects: []Object{g.ref(w3c.OWLClass)}},
		Statement{Predicate: w3c.OWLUnionOf, Objects: []Object{List(members...)}},
	)
}

func (g *graph) ontology() Node {
	n := Node{Subject: IRI("", g.v.URL)}
	n.add(w3c.RDFType, g.ref(w3c.OWLOntology))
	for _, op := range g.v.OntologyProperties {
		if op.URL {
			n.add(op.Property, IRI("", op.Value))
		} else {
			n.add(op.Property, Literal(op.Value))
		}
	}
	return n
}

// node emits the statements shared by every kind of entry.
func (g *graph) node(t *vocab.Term) Node {
	n := Node{Subject: g.term(t)}
	for _, typ := range t.Types {
		n.add(w3c.RDFType, g.ref(typ))
	}
	n.add(w3c.RDFSLabel, Literal(t.Label))
	if t.Comment != "" {
		n.add(w3c.RDFSComment, Literal(PlainText(t.Comment)))
	}
	if len(t.DefinedBy) == 0 {
		n.add(w3c.RDFSIsDefinedBy, IRI("", g.v.URL))
	}
	for _, url := range t.DefinedBy {
		n.add(w3c.RDFSIsDefinedBy, IRI("", url))
	}
	for _, link := range t.SeeAlso {
		n.add(w3c.RDFSSeeAlso, IRI("", link.URL))
	}
	n.add(w3c.VSTermStatus, Literal(string(t.Status)))
	if t.Deprecated {
		n.add(w3c.OWLDeprecated, TypedLiteral("true", "xsd:boolean"))
	}
	return n
}

func (g *graph) class(c *vocab.Class) Node {
	n := g.node(c.Term)
	g.supers(&n, c.SuperClasses, c.UpperUnion)
	if len(c.OneOf) > 0 {
		n.add(w3c.OWLOneOf, List(g.terms(c.OneOf)...))
	}
	return n
}

func (g *graph) supers(n *Node, supers []*vocab.Term, union bool) {
	if union && len(supers) > 1 {
		n.add(w3c.RDFSSubClassOf, g.union(g.terms(supers)))
		return
	}
	for _, s := range supers {
		n.add(w3c.RDFSSubClassOf, g.term(s))
	}
}

func (g *graph) property(p *vocab.Property) Node {
	n := g.node(p.Term)
	for _, s := range p.SuperProperties {
		n.add(w3c.RDFSSubPropertyOf, g.term(s))
	}

	switch len(p.Domain) {
	case 0:
	case 1:
		n.add(w3c.RDFSDomain, g.term(p.Domain[0]))
	default:
		n.add(w3c.RDFSDomain, g.union(g.terms(p.Domain)))
	}

	switch {
	case len(p.OneOf) > 0:
		n.add(w3c.RDFSRange, Blank(
			Statement{Predicate: w3c.RDFType, Objects: []Object{g.ref(w3c.OWLClass)}},
			Statement{Predicate: w3c.OWLOneOf, Objects: []Object{List(g.terms(p.OneOf)...)}},
		))
	case len(p.Range) == 1:
		n.add(w3c.RDFSRange, g.term(p.Range[0]))
	case len(p.Range) > 1 && p.RangeUnion:
		n.add(w3c.RDFSRange, g.union(g.terms(p.Range)))
	default:
		for _, r := range p.Range {
			n.add(w3c.RDFSRange, g.term(r))
		}
	}
	return n
}

func (g *graph) datatype(d *vocab.Datatype) Node {
	n := g.node(d.Term)
	if d.Pattern != "" {
		base := g.ref("xsd:string")
		if len(d.SuperClasses) > 0 {
			base = g.term(d.SuperClasses[0])
		}
		n.add(w3c.OWLOnDatatype, base)
		n.add(w3c.OWLWithRestriction, List(Blank(
			Statement{Predicate: w3c.XSDPattern, Objects: []Object{Literal(d.Pattern)}},
		)))
	} else {
		g.supers(&n, d.SuperClasses, d.UpperUnion)
	}
	if len(d.OneOf) > 0 {
		values := make([]Object, 0, len(d.OneOf))
		for _, v := range d.OneOf {
			values = append(values, Literal(v))
		}
		n.add(w3c.OWLOneOf, List(values...))
	}
	return n
}

// add appends o to the statement for predicate, creating it on first use.
func (n *Node) add(predicate string, o Object) {
	for i := range n.Statements {
		if n.Statements[i].Predicate == predicate {
			n.Statements[i].Objects = append(n.Statements[i].Objects, o)
			return
		}
	}
	n.Statements = append(n.Statements, Statement{Predicate: predicate, Objects: []Object{o}})
}
