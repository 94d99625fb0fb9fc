package vocab

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/semvocab/vocabulary/w3c"
)

// Raw is a decoded, schema valid vocabulary document. Each section is a
// list of generic records as produced by the YAML decoder.
type Raw struct {
	Vocab      []map[string]any
	Ontology   []map[string]any
	Prefix     []map[string]any
	Class      []map[string]any
	Property   []map[string]any
	Individual []map[string]any
	Datatype   []map[string]any
}

// Range sentinels marking a property whose values are plain IRIs.
const (
	RangeIRI = "IRI"
	RangeURL = "URL"
)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithDate fixes the date used for the synthesized dc:date.
func WithDate(date time.Time) Option {
	return func(b *Builder) {
		b.date = date
	}
}

// WithBuildID sets the identifier attached to build log records. A random
// one is generated per build otherwise.
func WithBuildID(id string) Option {
	return func(b *Builder) {
		b.buildID = id
	}
}

// Builder turns raw documents into vocabularies. A Builder holds only
// configuration and is safe for concurrent use; every Build call gets its
// own registry and build context.
type Builder struct {
	logger  *slog.Logger
	date    time.Time
	buildID string
}

// NewBuilder creates a builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build converts raw with a default builder.
func Build(raw *Raw, opts ...Option) (*Vocab, error) {
	return NewBuilder(opts...).Build(raw)
}

// build is the state of one Build call.
type build struct {
	logger *slog.Logger
	ctx    *BuildContext
	reg    *Registry
	vocab  *Vocab
}

// Build converts raw into a finished vocabulary. The first error aborts the
// build and no vocabulary is returned.
func (b *Builder) Build(raw *Raw) (*Vocab, error) {
	if raw == nil || len(raw.Vocab) == 0 {
		return nil, &MissingSectionError{Section: "vocab"}
	}
	if len(raw.Ontology) == 0 {
		return nil, &MissingSectionError{Section: "ontology"}
	}

	identity := raw.Vocab[0]
	prefix, url := scalar(identity["id"]), scalar(identity["value"])
	if prefix == "" || url == "" {
		return nil, &SchemaError{Violations: []string{"vocab entry needs both id and value"}}
	}
	defaultContext := scalar(identity["context"])
	if defaultContext == ContextNone {
		defaultContext = ""
	}

	buildID := b.buildID
	if buildID == "" {
		buildID = uuid.NewString()
	}

	ctx := NewBuildContext(prefix, url, defaultContext)
	s := &build{
		logger: b.logger.With("build_id", buildID, "vocab", prefix),
		ctx:    ctx,
		reg:    NewRegistry(ctx),
		vocab: &Vocab{
			Prefix:             prefix,
			URL:                url,
			DefaultContext:     defaultContext,
			OntologyProperties: []OntologyProperty{},
			Classes:            []*Class{},
			Properties:         []*Property{},
			Individuals:        []*Individual{},
			Datatypes:          []*Datatype{},
		},
	}

	date := b.date
	if date.IsZero() {
		date = time.Now()
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"prefix", func() error { return s.prefixes(raw.Prefix) }},
		{"ontology", func() error { return s.ontology(raw.Ontology, date) }},
		{"property", func() error { return s.section("property", raw.Property, s.property) }},
		{"class", func() error { return s.section("class", raw.Class, s.class) }},
		{"individual", func() error { return s.section("individual", raw.Individual, s.individual) }},
		{"datatype", func() error { return s.section("datatype", raw.Datatype, s.datatype) }},
		{"promote", s.promoteReferences},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return nil, err
		}
	}

	v := s.vocab
	v.Prefixes = s.reg.Prefixes()
	v.Status = ctx.Status
	v.Contexts = ctx.Contexts
	v.terms = s.reg.terms

	s.logger.Debug("Vocabulary built",
		"classes", len(v.Classes),
		"properties", len(v.Properties),
		"individuals", len(v.Individuals),
		"datatypes", len(v.Datatypes),
		"terms", s.reg.Len())
	return v, nil
}

func (s *build) prefixes(entries []map[string]any) error {
	for i, entry := range entries {
		prefix, url := scalar(entry["id"]), scalar(entry["value"])
		if prefix == "" || url == "" {
			return &SchemaError{Violations: []string{fmt.Sprintf("prefix entry %d needs both id and value", i)}}
		}
		s.reg.AddPrefix(prefix, url)
	}
	for _, p := range w3c.DefaultPrefixes {
		s.reg.AddPrefix(p.Prefix, p.URL)
	}
	s.logger.Debug("Prefixes assembled", "category", "prefix", "count", len(s.reg.prefixOrder))
	return nil
}

func (s *build) ontology(entries []map[string]any, date time.Time) error {
	hasDate := false
	for i, entry := range entries {
		property, value := scalar(entry["property"]), scalar(entry["value"])
		if property == "" {
			return &SchemaError{Violations: []string{fmt.Sprintf("ontology entry %d without property", i)}}
		}
		if !IsURL(property) {
			prefix, _ := s.reg.split(property)
			if _, ok := s.reg.PrefixURL(prefix); !ok {
				return &UnknownPrefixError{Curie: property, Prefix: prefix}
			}
		}
		if property == w3c.DCDate {
			hasDate = true
		}
		s.vocab.OntologyProperties = append(s.vocab.OntologyProperties, OntologyProperty{
			Property: property,
			Value:    value,
			URL:      IsURL(value),
		})
	}
	if !hasDate {
		s.vocab.OntologyProperties = append(s.vocab.OntologyProperties, OntologyProperty{
			Property: w3c.DCDate,
			Value:    date.Format("2006-01-02"),
		})
	}
	return nil
}

// section normalizes and builds every entry of one category.
func (s *build) section(category string, entries []map[string]any, add func(Entry) error) error {
	seen := make(map[string]bool, len(entries))
	for i, raw := range entries {
		entry, err := Normalize(raw)
		if err != nil {
			return fmt.Errorf("normalize %s entry %d: %w", category, i, err)
		}
		key := s.reg.key(entry.ID)
		if seen[key] {
			return &SchemaError{Violations: []string{fmt.Sprintf("duplicate %s %q", category, key)}}
		}
		seen[key] = true
		if err := add(entry); err != nil {
			return err
		}
	}
	s.logger.Debug("Category built", "category", category, "count", len(entries))
	return nil
}

// fill copies the common fields of e onto t and records it in the build
// context.
func (s *build) fill(t *Term, e Entry, structural string) error {
	t.Label = e.Label
	t.Comment = e.Comment
	t.SeeAlso = e.SeeAlso
	t.Examples = e.Examples
	t.Status = e.Status
	t.Deprecated = e.Deprecated
	t.KnownAs = e.KnownAs
	t.External = t.External || e.External

	t.DefinedBy = make([]string, 0, len(e.DefinedBy))
	for _, ref := range e.DefinedBy {
		url, err := s.reg.Expand(ref)
		if err != nil {
			return err
		}
		t.DefinedBy = append(t.DefinedBy, url)
	}

	if !t.External && t.Comment == "" && len(t.DefinedBy) == 0 {
		return &IncompleteTermError{Curie: t.Curie, Kind: t.Kind}
	}

	t.Types = []string{}
	if structural != "" {
		appendType(t, structural)
	}
	for _, ref := range e.Types {
		typ, err := s.reg.Resolve(ref)
		if err != nil {
			return err
		}
		appendType(t, typ.Curie)
	}

	t.Context = s.ctx.ResolveContexts(e.Context)
	s.ctx.record(t)
	return nil
}

func appendType(t *Term, curie string) {
	for _, existing := range t.Types {
		if existing == curie {
			return
		}
	}
	t.Types = append(t.Types, curie)
}

// refs resolves references lazily. Placeholders stay unknown until their own
// declaration or the final promotion pass.
func (s *build) refs(ids []string) ([]*Term, error) {
	out := make([]*Term, 0, len(ids))
	for _, id := range ids {
		t, err := s.reg.Resolve(id)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// typedRefs resolves references and promotes placeholders to kind at once,
// for positions where only one kind makes sense.
func (s *build) typedRefs(ids []string, kind Kind) ([]*Term, error) {
	out := make([]*Term, 0, len(ids))
	for _, id := range ids {
		t, err := s.reg.Resolve(id)
		if err != nil {
			return nil, err
		}
		if t.Kind == KindUnknown {
			promote(t, kind)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *build) property(e Entry) error {
	p, err := s.reg.AsProperty(e.ID)
	if err != nil {
		return err
	}
	structural := w3c.RDFProperty
	if e.Deprecated {
		structural = w3c.OWLDeprecatedProperty
	}
	if err := s.fill(p.Term, e, structural); err != nil {
		return err
	}

	if p.SuperProperties, err = s.typedRefs(e.Upper, KindProperty); err != nil {
		return err
	}
	if p.Domain, err = s.refs(e.Domain); err != nil {
		return err
	}
	if p.OneOf, err = s.typedRefs(e.OneOf, KindIndividual); err != nil {
		return err
	}

	if len(e.Range) == 1 && (e.Range[0] == RangeIRI || e.Range[0] == RangeURL) {
		p.IRIValued = true
		p.Range = []*Term{}
		appendType(p.Term, w3c.OWLObjectProperty)
	} else {
		if p.Range, err = s.refs(e.Range); err != nil {
			return err
		}
		if len(p.Range) > 0 && allDatatypes(p.Range) {
			appendType(p.Term, w3c.OWLDatatypeProperty)
		}
	}

	p.RangeUnion = e.RangeUnion
	p.Dataset = e.Dataset
	p.Container = e.Container
	s.vocab.Properties = append(s.vocab.Properties, p)
	return nil
}

func allDatatypes(terms []*Term) bool {
	for _, t := range terms {
		if !IsDatatypeCurie(t.Curie) {
			return false
		}
	}
	return true
}

func (s *build) class(e Entry) error {
	c, err := s.reg.AsClass(e.ID)
	if err != nil {
		return err
	}
	structural := w3c.RDFSClass
	if e.Deprecated {
		structural = w3c.OWLDeprecatedClass
	}
	if err := s.fill(c.Term, e, structural); err != nil {
		return err
	}
	if c.SuperClasses, err = s.refs(e.Upper); err != nil {
		return err
	}
	if c.OneOf, err = s.typedRefs(e.OneOf, KindIndividual); err != nil {
		return err
	}
	c.UpperUnion = e.UpperUnion

	resolveClassUsage(c, s.vocab.Properties)
	s.vocab.Classes = append(s.vocab.Classes, c)
	return nil
}

func (s *build) individual(e Entry) error {
	i, err := s.reg.AsIndividual(e.ID)
	if err != nil {
		return err
	}
	if err := s.fill(i.Term, e, ""); err != nil {
		return err
	}
	s.vocab.Individuals = append(s.vocab.Individuals, i)
	return nil
}

func (s *build) datatype(e Entry) error {
	d, err := s.reg.AsDatatype(e.ID)
	if err != nil {
		return err
	}
	if err := s.fill(d.Term, e, w3c.RDFSDatatype); err != nil {
		return err
	}
	if d.SuperClasses, err = s.typedRefs(e.Upper, KindDatatype); err != nil {
		return err
	}
	d.UpperUnion = e.UpperUnion
	d.OneOf = e.OneOf
	d.Pattern = e.Pattern

	resolveDatatypeUsage(d, s.vocab.Properties)
	s.vocab.Datatypes = append(s.vocab.Datatypes, d)
	return nil
}

// promoteReferences gives every term known only by reference a concrete
// kind. Such terms are reachable through Vocab.Term but are not listed as
// declarations.
func (s *build) promoteReferences() error {
	for _, t := range s.reg.Unresolved() {
		if IsDatatypeCurie(t.Curie) {
			if _, err := s.reg.PromoteToDatatype(t); err != nil {
				return err
			}
			continue
		}
		if _, err := s.reg.PromoteToClass(t); err != nil {
			return err
		}
		if t.Prefix == s.ctx.VocabPrefix {
			s.logger.Warn("Term referenced but never declared", "curie", t.Curie)
		}
	}
	return nil
}
