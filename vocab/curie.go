package vocab

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/c360studio/semvocab/vocabulary/w3c"
)

// urlSchemes are the schemes that mark an identifier as an absolute URL
// rather than a curie.
var urlSchemes = []string{
	"http:", "https:", "urn:", "doi:", "ftp:", "mailto:", "file:", "data:", "did:", "tag:",
}

// IsURL reports whether s starts with a recognized absolute URL scheme.
func IsURL(s string) bool {
	lower := strings.ToLower(s)
	for _, scheme := range urlSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// SplitCurie splits prefix:local on the first colon. A bare name returns an
// empty prefix.
func SplitCurie(curie string) (prefix, local string) {
	if i := strings.IndexByte(curie, ':'); i >= 0 {
		return curie[:i], curie[i+1:]
	}
	return "", curie
}

// IsDatatypeCurie reports whether curie names an xsd datatype or one of the
// RDF datatypes outside the xsd namespace.
func IsDatatypeCurie(curie string) bool {
	prefix, _ := SplitCurie(curie)
	return prefix == "xsd" || w3c.IsExtraDatatype(curie)
}

// hashAnchor derives an HTML safe anchor from a curie.
func hashAnchor(curie string) string {
	sum := sha256.Sum256([]byte(curie))
	return "x" + hex.EncodeToString(sum[:])[:12]
}
