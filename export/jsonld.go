package export

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/semvocab/vocab"
	"github.com/c360studio/semvocab/vocabulary/w3c"
)

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]any `json:"@context"`
	Graph   []JSONLDNode   `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string         `json:"@id"`
	Type       []string       `json:"@type,omitempty"`
	Properties map[string]any `json:"-"`
}

// MarshalJSON flattens Properties next to @id and @type. Keys come out
// sorted, which keeps the output stable.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+2)
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

// JSONLDWriter writes RDF in JSON-LD format.
type JSONLDWriter struct {
	doc JSONLDDocument
}

// NewJSONLDWriter creates a new JSON-LD writer.
func NewJSONLDWriter() *JSONLDWriter {
	return &JSONLDWriter{
		doc: JSONLDDocument{
			Context: make(map[string]any),
			Graph:   make([]JSONLDNode, 0),
		},
	}
}

// SetContext declares the prefixes in @context.
func (w *JSONLDWriter) SetContext(prefixes []vocab.Prefix) {
	for _, p := range prefixes {
		w.doc.Context[p.Prefix] = p.URL
	}
}

// AddNode adds a node to the graph.
func (w *JSONLDWriter) AddNode(n Node) {
	node := JSONLDNode{
		ID:         iriString(n.Subject),
		Properties: make(map[string]any),
	}
	for _, st := range n.Statements {
		if st.Predicate == w3c.RDFType {
			for _, o := range st.Objects {
				node.Type = append(node.Type, iriString(o))
			}
			continue
		}
		node.Properties[st.Predicate] = jsonldValues(st.Objects)
	}
	w.doc.Graph = append(w.doc.Graph, node)
}

// Bytes returns the indented JSON-LD document.
func (w *JSONLDWriter) Bytes() ([]byte, error) {
	data, err := json.MarshalIndent(w.doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json-ld: %w", err)
	}
	return append(data, '\n'), nil
}

// iriString prefers the compact form; every prefix is in @context.
func iriString(o Object) string {
	if o.Curie != "" {
		return o.Curie
	}
	return o.URL
}

func jsonldValues(objs []Object) any {
	if len(objs) == 1 {
		return jsonldValue(objs[0])
	}
	out := make([]any, 0, len(objs))
	for _, o := range objs {
		out = append(out, jsonldValue(o))
	}
	return out
}

func jsonldValue(o Object) any {
	switch o.kind {
	case objectIRI:
		return map[string]any{"@id": iriString(o)}
	case objectLiteral:
		if o.Datatype == "xsd:boolean" {
			return o.Value == "true"
		}
		if o.Datatype != "" {
			return map[string]any{"@value": o.Value, "@type": o.Datatype}
		}
		return o.Value
	case objectList:
		items := make([]any, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, jsonldValue(item))
		}
		return map[string]any{"@list": items}
	case objectBlank:
		m := make(map[string]any, len(o.Statements))
		for _, st := range o.Statements {
			if st.Predicate == w3c.RDFType {
				types := make([]string, 0, len(st.Objects))
				for _, t := range st.Objects {
					types = append(types, iriString(t))
				}
				m["@type"] = types
				continue
			}
			m[st.Predicate] = jsonldValues(st.Objects)
		}
		return m
	default:
		return nil
	}
}

// JSONLD serializes the vocabulary as a JSON-LD document.
func JSONLD(v *vocab.Vocab) ([]byte, error) {
	w := NewJSONLDWriter()
	w.SetContext(v.Prefixes)
	for _, n := range Graph(v) {
		w.AddNode(n)
	}
	return w.Bytes()
}
