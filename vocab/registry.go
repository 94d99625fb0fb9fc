package vocab

import (
	"strings"

	"github.com/c360studio/semvocab/vocabulary/w3c"
)

// Registry is the single authority mapping curies to terms within one
// build. Repeated references to the same curie return the same *Term.
type Registry struct {
	ctx *BuildContext

	prefixes    map[string]string
	prefixOrder []Prefix

	terms map[string]*Term
	order []*Term
}

// NewRegistry creates a registry for one build. The vocabulary's own prefix
// is registered first.
func NewRegistry(ctx *BuildContext) *Registry {
	r := &Registry{
		ctx:      ctx,
		prefixes: make(map[string]string),
		terms:    make(map[string]*Term),
	}
	if ctx.VocabPrefix != "" {
		r.AddPrefix(ctx.VocabPrefix, ctx.VocabURL)
	}
	return r
}

// AddPrefix registers a namespace. The first registration of a prefix wins;
// later ones are ignored and reported as false.
func (r *Registry) AddPrefix(prefix, url string) bool {
	if _, exists := r.prefixes[prefix]; exists {
		return false
	}
	r.prefixes[prefix] = url
	r.prefixOrder = append(r.prefixOrder, Prefix{Prefix: prefix, URL: url})
	return true
}

// Prefixes returns the prefix table in registration order.
func (r *Registry) Prefixes() []Prefix {
	out := make([]Prefix, len(r.prefixOrder))
	copy(out, r.prefixOrder)
	return out
}

// PrefixURL returns the namespace bound to prefix.
func (r *Registry) PrefixURL(prefix string) (string, bool) {
	url, ok := r.prefixes[prefix]
	return url, ok
}

// Expand turns a reference into an absolute URL without registering a term.
// URLs are returned unchanged.
func (r *Registry) Expand(ref string) (string, error) {
	if IsURL(ref) {
		return ref, nil
	}
	prefix, local := r.split(ref)
	url, ok := r.prefixes[prefix]
	if !ok {
		return "", &UnknownPrefixError{Curie: ref, Prefix: prefix}
	}
	return url + local, nil
}

// split resolves a bare name against the vocabulary's own prefix.
func (r *Registry) split(curie string) (prefix, local string) {
	prefix, local = SplitCurie(curie)
	if prefix == "" {
		prefix = r.ctx.VocabPrefix
	}
	return prefix, local
}

// key returns the registry key of a reference.
func (r *Registry) key(curie string) string {
	if IsURL(curie) {
		return curie
	}
	prefix, local := r.split(curie)
	return prefix + ":" + local
}

// Resolve returns the term for curie, creating an unknown placeholder on
// first reference.
func (r *Registry) Resolve(curie string) (*Term, error) {
	curie = strings.TrimSpace(curie)
	if curie == "" {
		return nil, &SchemaError{Violations: []string{"empty term reference"}}
	}

	key := r.key(curie)
	if t, ok := r.terms[key]; ok {
		return t, nil
	}

	if IsURL(curie) {
		t := &Term{
			ID:       curie,
			URL:      curie,
			Curie:    curie,
			AnchorID: hashAnchor(curie),
			Kind:     KindFullURL,
			Label:    curie,
			Status:   StatusStable,
			External: true,
		}
		r.register(key, t)
		return t, nil
	}

	prefix, local := r.split(curie)
	url, ok := r.prefixes[prefix]
	if !ok {
		return nil, &UnknownPrefixError{Curie: curie, Prefix: prefix}
	}

	t := &Term{
		ID:     local,
		Prefix: prefix,
		URL:    url + local,
		Curie:  key,
		Kind:   KindUnknown,
		Label:  DefaultLabel(local),
		Status: StatusStable,
	}
	switch {
	case prefix == r.ctx.VocabPrefix:
		t.AnchorID = local
	case w3c.IsCorePrefix(prefix):
		t.Kind = KindCore
		t.AnchorID = hashAnchor(key)
	default:
		t.External = true
		t.AnchorID = hashAnchor(key)
	}
	r.register(key, t)
	return t, nil
}

func (r *Registry) register(key string, t *Term) {
	r.terms[key] = t
	r.order = append(r.order, t)
}

// Lookup returns an already registered term without creating one.
func (r *Registry) Lookup(curie string) (*Term, bool) {
	t, ok := r.terms[r.key(strings.TrimSpace(curie))]
	return t, ok
}

// Len returns the number of registered terms.
func (r *Registry) Len() int {
	return len(r.order)
}

// Unresolved returns the terms still of unknown kind, in resolution order.
func (r *Registry) Unresolved() []*Term {
	var out []*Term
	for _, t := range r.order {
		if t.Kind == KindUnknown {
			out = append(out, t)
		}
	}
	return out
}

// AsClass resolves curie as a class, promoting an unknown placeholder.
func (r *Registry) AsClass(curie string) (*Class, error) {
	t, err := r.as(curie, KindClass)
	if err != nil {
		return nil, err
	}
	c, _ := t.Class()
	return c, nil
}

// AsProperty resolves curie as a property, promoting an unknown placeholder.
func (r *Registry) AsProperty(curie string) (*Property, error) {
	t, err := r.as(curie, KindProperty)
	if err != nil {
		return nil, err
	}
	p, _ := t.Property()
	return p, nil
}

// AsIndividual resolves curie as an individual, promoting an unknown
// placeholder.
func (r *Registry) AsIndividual(curie string) (*Individual, error) {
	t, err := r.as(curie, KindIndividual)
	if err != nil {
		return nil, err
	}
	i, _ := t.Individual()
	return i, nil
}

// AsDatatype resolves curie as a datatype, promoting an unknown placeholder.
func (r *Registry) AsDatatype(curie string) (*Datatype, error) {
	t, err := r.as(curie, KindDatatype)
	if err != nil {
		return nil, err
	}
	d, _ := t.Datatype()
	return d, nil
}

// PromoteToClass turns an unknown term into a class.
func (r *Registry) PromoteToClass(t *Term) (*Class, error) {
	if t.Kind != KindUnknown {
		return nil, &TypeConflictError{Curie: t.Curie, Have: t.Kind, Want: KindClass}
	}
	promote(t, KindClass)
	c, _ := t.Class()
	return c, nil
}

// PromoteToDatatype turns an unknown term into a datatype.
func (r *Registry) PromoteToDatatype(t *Term) (*Datatype, error) {
	if t.Kind != KindUnknown {
		return nil, &TypeConflictError{Curie: t.Curie, Have: t.Kind, Want: KindDatatype}
	}
	promote(t, KindDatatype)
	d, _ := t.Datatype()
	return d, nil
}

func (r *Registry) as(curie string, want Kind) (*Term, error) {
	t, err := r.Resolve(curie)
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case want:
		return t, nil
	case KindUnknown:
		promote(t, want)
		return t, nil
	default:
		return nil, &TypeConflictError{Curie: t.Curie, Have: t.Kind, Want: want}
	}
}

// promote attaches the variant for kind. The caller guarantees t is unknown.
func promote(t *Term, kind Kind) {
	switch kind {
	case KindClass:
		t.variant = &Class{
			Term:               t,
			SuperClasses:       []*Term{},
			OneOf:              []*Term{},
			RangeOf:            []string{},
			DomainOf:           []string{},
			IncludesRangeOf:    []string{},
			IncludedInDomainOf: []string{},
		}
	case KindProperty:
		t.variant = &Property{
			Term:            t,
			SuperProperties: []*Term{},
			Domain:          []*Term{},
			Range:           []*Term{},
			OneOf:           []*Term{},
		}
	case KindIndividual:
		t.variant = &Individual{Term: t}
	case KindDatatype:
		t.variant = &Datatype{
			Term:            t,
			SuperClasses:    []*Term{},
			OneOf:           []string{},
			RangeOf:         []string{},
			IncludesRangeOf: []string{},
		}
	}
	t.Kind = kind
}
