package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/c360studio/semvocab/vocab"
	"github.com/c360studio/semvocab/vocabulary/w3c"
)

// HTMLWriter renders the vocabulary as an RDFa annotated HTML document.
type HTMLWriter struct {
	v *vocab.Vocab

	// anchors maps declared curies to their fragment identifiers.
	anchors map[string]string

	// properties maps property IDs to their fragment identifiers.
	properties map[string]string
}

// NewHTMLWriter creates a writer for v.
func NewHTMLWriter(v *vocab.Vocab) *HTMLWriter {
	w := &HTMLWriter{
		v:          v,
		anchors:    make(map[string]string),
		properties: make(map[string]string, len(v.Properties)),
	}
	for _, t := range declared(v) {
		w.anchors[t.Curie] = t.AnchorID
	}
	for _, p := range v.Properties {
		w.properties[p.ID] = p.AnchorID
	}
	return w
}

// Render writes the document to out.
func (w *HTMLWriter) Render(out io.Writer) error {
	if err := html.Render(out, w.document()); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// HTML renders the vocabulary as an HTML page.
func HTML(v *vocab.Vocab) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewHTMLWriter(v).Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *HTMLWriter) document() *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "en"), attr("prefix", w.prefixAttr()))
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), w.title()))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(w.header())
	body.AppendChild(w.prefixTable())

	var deprecated []*vocab.Term
	categories := []struct {
		id    string
		title string
		terms []*vocab.Term
	}{
		{"classes", "Classes", classTerms(w.v)},
		{"properties", "Properties", propertyTerms(w.v)},
		{"individuals", "Individuals", individualTerms(w.v)},
		{"datatypes", "Datatypes", datatypeTerms(w.v)},
	}
	for _, cat := range categories {
		var current []*vocab.Term
		for _, t := range cat.terms {
			if t.Deprecated {
				deprecated = append(deprecated, t)
			} else {
				current = append(current, t)
			}
		}
		if len(current) > 0 {
			body.AppendChild(w.category(cat.id, cat.title, current))
		}
	}
	if len(deprecated) > 0 {
		body.AppendChild(w.category("deprecated", "Deprecated terms", deprecated))
	}
	return doc
}

func (w *HTMLWriter) prefixAttr() string {
	parts := make([]string, 0, len(w.v.Prefixes))
	for _, p := range w.v.Prefixes {
		parts = append(parts, p.Prefix+": "+p.URL)
	}
	return strings.Join(parts, " ")
}

func (w *HTMLWriter) title() string {
	for _, op := range w.v.OntologyProperties {
		if op.Property == w3c.DCTitle {
			return op.Value
		}
	}
	return w.v.Prefix + " vocabulary"
}

func (w *HTMLWriter) header() *html.Node {
	header := element(atom.Header, attr("resource", w.v.URL), attr("typeof", w3c.OWLOntology))
	header.AppendChild(withText(element(atom.H1), w.title()))

	dl := element(atom.Dl)
	for _, op := range w.v.OntologyProperties {
		dl.AppendChild(withText(element(atom.Dt), op.Property))
		dd := element(atom.Dd)
		if op.URL {
			dd.AppendChild(withText(element(atom.A, attr("property", op.Property), attr("href", op.Value)), op.Value))
		} else {
			dd.AppendChild(withText(element(atom.Span, attr("property", op.Property)), op.Value))
		}
		dl.AppendChild(dd)
	}
	header.AppendChild(dl)

	s := w.v.Status
	header.AppendChild(withText(element(atom.P, attr("class", "status")), fmt.Sprintf(
		"%d terms: %d stable, %d reserved, %d deprecated",
		s.Total(), s.Count(vocab.StatusStable), s.Count(vocab.StatusReserved), s.Count(vocab.StatusDeprecated))))
	return header
}

func (w *HTMLWriter) prefixTable() *html.Node {
	section := element(atom.Section, attr("id", "prefixes"))
	section.AppendChild(withText(element(atom.H2), "Namespaces"))
	table := element(atom.Table)
	for _, p := range w.v.Prefixes {
		tr := element(atom.Tr)
		tr.AppendChild(withText(element(atom.Td), p.Prefix))
		tr.AppendChild(withText(element(atom.Td), p.URL))
		table.AppendChild(tr)
	}
	section.AppendChild(table)
	return section
}

func (w *HTMLWriter) category(id, title string, terms []*vocab.Term) *html.Node {
	section := element(atom.Section, attr("id", id))
	section.AppendChild(withText(element(atom.H2), title))
	for _, t := range terms {
		section.AppendChild(w.termSection(t))
	}
	return section
}

func (w *HTMLWriter) termSection(t *vocab.Term) *html.Node {
	resource := t.Curie
	if t.Kind == vocab.KindFullURL {
		resource = t.URL
	}
	section := element(atom.Section,
		attr("id", t.AnchorID),
		attr("resource", resource),
		attr("typeof", strings.Join(t.Types, " ")))

	h3 := element(atom.H3)
	h3.AppendChild(withText(element(atom.Code), t.Curie))
	h3.AppendChild(text(" "))
	h3.AppendChild(withText(element(atom.Span, attr("property", w3c.RDFSLabel)), t.Label))
	section.AppendChild(h3)

	if t.External {
		section.AppendChild(withText(element(atom.P, attr("class", "external")), "Defined outside this vocabulary."))
	}
	if t.Comment != "" {
		section.AppendChild(commentNode(t.Comment))
	}

	dl := element(atom.Dl)
	w.row(dl, "Status", withText(element(atom.Span, attr("property", w3c.VSTermStatus)), string(t.Status)))

	switch t.Kind {
	case vocab.KindClass:
		c, _ := t.Class()
		w.termRow(dl, "Subclass of", w3c.RDFSSubClassOf, c.SuperClasses)
		w.termRow(dl, "One of", w3c.OWLOneOf, c.OneOf)
		w.propertyRow(dl, "Domain of", c.DomainOf)
		w.propertyRow(dl, "Included in the domain of", c.IncludedInDomainOf)
		w.propertyRow(dl, "Range of", c.RangeOf)
		w.propertyRow(dl, "Included in the range of", c.IncludesRangeOf)
	case vocab.KindProperty:
		p, _ := t.Property()
		w.termRow(dl, "Subproperty of", w3c.RDFSSubPropertyOf, p.SuperProperties)
		w.termRow(dl, "Domain", w3c.RDFSDomain, p.Domain)
		if p.IRIValued {
			w.row(dl, "Range", text("IRI"))
		} else {
			w.termRow(dl, "Range", w3c.RDFSRange, p.Range)
		}
		w.termRow(dl, "One of", w3c.OWLOneOf, p.OneOf)
		if p.Container != vocab.ContainerNone {
			w.row(dl, "Container", text(string(p.Container)))
		}
		if p.Dataset {
			w.row(dl, "Graph valued", text("yes"))
		}
	case vocab.KindDatatype:
		d, _ := t.Datatype()
		w.termRow(dl, "Based on", w3c.RDFSSubClassOf, d.SuperClasses)
		if d.Pattern != "" {
			w.row(dl, "Pattern", withText(element(atom.Code), d.Pattern))
		}
		if len(d.OneOf) > 0 {
			w.row(dl, "One of", text(strings.Join(d.OneOf, ", ")))
		}
		w.propertyRow(dl, "Range of", d.RangeOf)
		w.propertyRow(dl, "Included in the range of", d.IncludesRangeOf)
	}

	if len(t.DefinedBy) > 0 {
		nodes := make([]*html.Node, 0, len(t.DefinedBy))
		for _, url := range t.DefinedBy {
			nodes = append(nodes, withText(element(atom.A, attr("property", w3c.RDFSIsDefinedBy), attr("href", url)), url))
		}
		w.row(dl, "Defined by", nodes...)
	}
	if len(t.SeeAlso) > 0 {
		nodes := make([]*html.Node, 0, len(t.SeeAlso))
		for _, link := range t.SeeAlso {
			label := link.Label
			if label == "" {
				label = link.URL
			}
			nodes = append(nodes, withText(element(atom.A, attr("property", w3c.RDFSSeeAlso), attr("href", link.URL)), label))
		}
		w.row(dl, "See also", nodes...)
	}
	section.AppendChild(dl)

	for _, ex := range t.Examples {
		fig := element(atom.Figure, attr("class", "example"))
		if ex.Label != "" {
			fig.AppendChild(withText(element(atom.Figcaption), ex.Label))
		}
		pre := element(atom.Pre)
		pre.AppendChild(withText(element(atom.Code, attr("class", "json")), ex.JSON))
		fig.AppendChild(pre)
		section.AppendChild(fig)
	}
	return section
}

// row appends a dt/dd pair; items are comma separated.
func (w *HTMLWriter) row(dl *html.Node, label string, items ...*html.Node) {
	if len(items) == 0 {
		return
	}
	dl.AppendChild(withText(element(atom.Dt), label))
	dd := element(atom.Dd)
	for i, item := range items {
		if i > 0 {
			dd.AppendChild(text(", "))
		}
		dd.AppendChild(item)
	}
	dl.AppendChild(dd)
}

func (w *HTMLWriter) termRow(dl *html.Node, label, predicate string, terms []*vocab.Term) {
	nodes := make([]*html.Node, 0, len(terms))
	for _, t := range terms {
		nodes = append(nodes, withText(element(atom.A, attr("property", predicate), attr("href", w.href(t))), t.Curie))
	}
	w.row(dl, label, nodes...)
}

func (w *HTMLWriter) propertyRow(dl *html.Node, label string, ids []string) {
	nodes := make([]*html.Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, withText(element(atom.A, attr("href", "#"+w.properties[id])), id))
	}
	w.row(dl, label, nodes...)
}

// href links declared terms within the page and everything else to its URL.
func (w *HTMLWriter) href(t *vocab.Term) string {
	if anchor, ok := w.anchors[t.Curie]; ok {
		return "#" + anchor
	}
	return t.URL
}

// commentNode parses the comment as an HTML fragment so markup written in
// the source survives; plain text is used when it does not parse.
func commentNode(comment string) *html.Node {
	div := element(atom.Div, attr("property", w3c.RDFSComment))
	nodes, err := html.ParseFragment(strings.NewReader(comment), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		div.AppendChild(text(comment))
		return div
	}
	for _, n := range nodes {
		div.AppendChild(n)
	}
	return div
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(text(s))
	return n
}

func classTerms(v *vocab.Vocab) []*vocab.Term {
	out := make([]*vocab.Term, 0, len(v.Classes))
	for _, c := range v.Classes {
		out = append(out, c.Term)
	}
	return out
}

func propertyTerms(v *vocab.Vocab) []*vocab.Term {
	out := make([]*vocab.Term, 0, len(v.Properties))
	for _, p := range v.Properties {
		out = append(out, p.Term)
	}
	return out
}

func individualTerms(v *vocab.Vocab) []*vocab.Term {
	out := make([]*vocab.Term, 0, len(v.Individuals))
	for _, i := range v.Individuals {
		out = append(out, i.Term)
	}
	return out
}

func datatypeTerms(v *vocab.Vocab) []*vocab.Term {
	out := make([]*vocab.Term, 0, len(v.Datatypes))
	for _, d := range v.Datatypes {
		out = append(out, d.Term)
	}
	return out
}
