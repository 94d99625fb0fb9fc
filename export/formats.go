package export

import (
	"fmt"

	"github.com/c360studio/semvocab/vocab"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"

	// FormatHTML produces an RDFa annotated HTML page.
	FormatHTML Format = "html"

	// FormatContext produces a minimal JSON-LD context.
	FormatContext Format = "context"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
	FormatHTML: {
		Name:        FormatHTML,
		MIMEType:    "text/html",
		Extension:   ".html",
		Description: "HTML with RDFa annotations",
	},
	FormatContext: {
		Name:        FormatContext,
		MIMEType:    "application/ld+json",
		Extension:   ".context.jsonld",
		Description: "Minimal JSON-LD context",
	},
}

// AllFormats lists every format in the order outputs are produced.
var AllFormats = []Format{FormatTurtle, FormatJSONLD, FormatHTML, FormatContext}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(name)
	if _, ok := FormatRegistry[f]; !ok {
		return "", fmt.Errorf("unsupported format: %s", name)
	}
	return f, nil
}

// Render serializes v in the given format.
func Render(v *vocab.Vocab, format Format) ([]byte, error) {
	switch format {
	case FormatTurtle:
		return []byte(Turtle(v)), nil
	case FormatJSONLD:
		return JSONLD(v)
	case FormatHTML:
		return HTML(v)
	case FormatContext:
		return Context(v)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
