package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/semvocab/vocab"
	"github.com/c360studio/semvocab/vocabulary/w3c"
)

// prefixedLocal matches local names that can be written as a Turtle
// prefixed name without escaping.
var prefixedLocal = regexp.MustCompile(`^([A-Za-z0-9_]([A-Za-z0-9_.-]*[A-Za-z0-9_-])?)?$`)

// TurtleWriter writes RDF in Turtle format.
type TurtleWriter struct {
	prefixes map[string]bool
	sb       strings.Builder
}

// NewTurtleWriter creates a Turtle writer.
func NewTurtleWriter() *TurtleWriter {
	return &TurtleWriter{prefixes: make(map[string]bool)}
}

// WritePrefixes writes prefix declarations in table order. Only declared
// prefixes are used for prefixed names afterwards.
func (w *TurtleWriter) WritePrefixes(prefixes []vocab.Prefix) {
	for _, p := range prefixes {
		w.prefixes[p.Prefix] = true
		w.sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", p.Prefix, p.URL))
	}
	w.sb.WriteString("\n")
}

// WriteNode writes one subject block followed by a blank line.
func (w *TurtleWriter) WriteNode(n Node) {
	w.sb.WriteString(w.object(n.Subject))
	w.sb.WriteString("\n")
	for i, st := range n.Statements {
		terminator := " ;"
		if i == len(n.Statements)-1 {
			terminator = " ."
		}
		w.sb.WriteString(fmt.Sprintf("    %s %s%s\n", w.predicate(st.Predicate), w.objects(st.Objects), terminator))
	}
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

func (w *TurtleWriter) predicate(p string) string {
	if p == w3c.RDFType {
		return "a"
	}
	if vocab.IsURL(p) {
		return "<" + p + ">"
	}
	return p
}

func (w *TurtleWriter) objects(objs []Object) string {
	parts := make([]string, 0, len(objs))
	for _, o := range objs {
		parts = append(parts, w.object(o))
	}
	return strings.Join(parts, ", ")
}

func (w *TurtleWriter) object(o Object) string {
	switch o.kind {
	case objectIRI:
		if o.Curie != "" {
			prefix, local := vocab.SplitCurie(o.Curie)
			if w.prefixes[prefix] && prefixedLocal.MatchString(local) {
				return o.Curie
			}
		}
		return "<" + o.URL + ">"
	case objectLiteral:
		lit := formatLiteral(o.Value)
		if o.Datatype != "" {
			lit += "^^" + o.Datatype
		}
		return lit
	case objectList:
		parts := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			parts = append(parts, w.object(item))
		}
		return "( " + strings.Join(parts, " ") + " )"
	case objectBlank:
		parts := make([]string, 0, len(o.Statements))
		for _, st := range o.Statements {
			parts = append(parts, w.predicate(st.Predicate)+" "+w.objects(st.Objects))
		}
		return "[ " + strings.Join(parts, " ; ") + " ]"
	default:
		return `""`
	}
}

// formatLiteral quotes a string, using the long form for multi-line text.
func formatLiteral(s string) string {
	if strings.Contains(s, "\n") {
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, `"""`, `\"\"\"`)
		if strings.HasSuffix(s, `"`) {
			s = s[:len(s)-1] + `\"`
		}
		return `"""` + s + `"""`
	}
	return `"` + escapeString(s) + `"`
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

// Turtle serializes the vocabulary as Turtle.
func Turtle(v *vocab.Vocab) string {
	w := NewTurtleWriter()
	w.WritePrefixes(v.Prefixes)
	for _, n := range Graph(v) {
		w.WriteNode(n)
	}
	return w.String()
}
