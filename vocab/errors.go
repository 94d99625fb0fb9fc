package vocab

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, matchable with errors.Is on every typed error below.
var (
	ErrSchemaValidation    = errors.New("schema validation failed")
	ErrMissingSection      = errors.New("missing required section")
	ErrUnknownPrefix       = errors.New("unknown prefix")
	ErrTypeConflict        = errors.New("type conflict")
	ErrIncompleteTerm      = errors.New("incomplete term")
	ErrAmbiguousVocabulary = errors.New("ambiguous vocabulary identity")
)

// SchemaError reports a malformed input structure.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	if len(e.Violations) == 1 {
		return ErrSchemaValidation.Error() + ": " + e.Violations[0]
	}
	return fmt.Sprintf("%s:\n  - %s", ErrSchemaValidation, strings.Join(e.Violations, "\n  - "))
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchemaValidation }

// MissingSectionError reports an absent vocab or ontology section.
type MissingSectionError struct {
	Section string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingSection, e.Section)
}

func (e *MissingSectionError) Is(target error) bool { return target == ErrMissingSection }

// UnknownPrefixError reports a curie whose prefix is not in the prefix table.
type UnknownPrefixError struct {
	Curie  string
	Prefix string
}

func (e *UnknownPrefixError) Error() string {
	return fmt.Sprintf("%s %q in %q", ErrUnknownPrefix, e.Prefix, e.Curie)
}

func (e *UnknownPrefixError) Is(target error) bool { return target == ErrUnknownPrefix }

// TypeConflictError reports a curie requested as a kind incompatible with
// the kind it already has.
type TypeConflictError struct {
	Curie string
	Have  Kind
	Want  Kind
}

func (e *TypeConflictError) Error() string {
	return fmt.Sprintf("%s: %q is a %s, cannot be used as a %s", ErrTypeConflict, e.Curie, e.Have, e.Want)
}

func (e *TypeConflictError) Is(target error) bool { return target == ErrTypeConflict }

// IncompleteTermError reports a local entry with neither a comment nor a
// defined-by reference.
type IncompleteTermError struct {
	Curie string
	Kind  Kind
}

func (e *IncompleteTermError) Error() string {
	return fmt.Sprintf("%s: %s %q needs a comment or a defined_by reference", ErrIncompleteTerm, e.Kind, e.Curie)
}

func (e *IncompleteTermError) Is(target error) bool { return target == ErrIncompleteTerm }

// AmbiguousVocabularyError reports more than one vocabulary identity.
type AmbiguousVocabularyError struct {
	Count int
}

func (e *AmbiguousVocabularyError) Error() string {
	return fmt.Sprintf("%s: %d vocab entries, exactly one expected", ErrAmbiguousVocabulary, e.Count)
}

func (e *AmbiguousVocabularyError) Is(target error) bool { return target == ErrAmbiguousVocabulary }
