package vocab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semvocab/vocabulary/w3c"
)

func newTestRegistry() *Registry {
	r := NewRegistry(NewBuildContext("ex", "http://example.org/", ""))
	for _, p := range w3c.DefaultPrefixes {
		r.AddPrefix(p.Prefix, p.URL)
	}
	return r
}

func TestRegistry_ResolveIdentity(t *testing.T) {
	r := newTestRegistry()

	curies := []string{"ex:C", "xsd:integer", "rdfs:Class", "https://example.com/thing", "schema:Person"}
	for _, c := range curies {
		t.Run(c, func(t *testing.T) {
			first, err := r.Resolve(c)
			require.NoError(t, err)
			second, err := r.Resolve(c)
			require.NoError(t, err)
			assert.Same(t, first, second)
		})
	}
}

func TestRegistry_BareNameUsesVocabPrefix(t *testing.T) {
	r := newTestRegistry()

	bare, err := r.Resolve("C")
	require.NoError(t, err)
	qualified, err := r.Resolve("ex:C")
	require.NoError(t, err)

	assert.Same(t, bare, qualified)
	assert.Equal(t, "ex:C", bare.Curie)
	assert.Equal(t, "http://example.org/C", bare.URL)
	assert.Equal(t, "C", bare.AnchorID)
	assert.False(t, bare.External)
	assert.Equal(t, KindUnknown, bare.Kind)
}

func TestRegistry_ResolveKinds(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		curie        string
		wantKind     Kind
		wantExternal bool
	}{
		{"ex:Local", KindUnknown, false},
		{"xsd:integer", KindUnknown, true},
		{"schema:Person", KindUnknown, true},
		{"rdf:Property", KindCore, false},
		{"owl:Thing", KindCore, false},
		{"https://w3id.org/security#proof", KindFullURL, true},
		{"urn:uuid:1234", KindFullURL, true},
	}

	for _, tt := range tests {
		t.Run(tt.curie, func(t *testing.T) {
			term, err := r.Resolve(tt.curie)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, term.Kind)
			assert.Equal(t, tt.wantExternal, term.External)
		})
	}
}

func TestRegistry_AnchorIDs(t *testing.T) {
	r := newTestRegistry()
	r.AddPrefix("other", "http://other.example/")

	local, err := r.Resolve("ex:Person")
	require.NoError(t, err)
	schema, err := r.Resolve("schema:Person")
	require.NoError(t, err)
	other, err := r.Resolve("other:Person")
	require.NoError(t, err)
	full, err := r.Resolve("https://example.com/Person")
	require.NoError(t, err)

	assert.Equal(t, "Person", local.AnchorID)
	assert.NotEqual(t, schema.AnchorID, other.AnchorID)
	assert.Equal(t, hashAnchor("schema:Person"), schema.AnchorID)
	assert.Len(t, full.AnchorID, 13)
	assert.NotContains(t, full.AnchorID, ":")
}

func TestRegistry_UnknownPrefix(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Resolve("foo:Bar")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPrefix))

	var upe *UnknownPrefixError
	require.True(t, errors.As(err, &upe))
	assert.Equal(t, "foo", upe.Prefix)
	assert.Equal(t, "foo:Bar", upe.Curie)

	_, ok := r.Lookup("foo:Bar")
	assert.False(t, ok)
}

func TestRegistry_EmptyReference(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Resolve("  ")
	assert.True(t, errors.Is(err, ErrSchemaValidation))
}

func TestRegistry_AddPrefixFirstWins(t *testing.T) {
	r := NewRegistry(NewBuildContext("ex", "http://example.org/", ""))

	assert.True(t, r.AddPrefix("dc", "http://custom.example/dc/"))
	assert.False(t, r.AddPrefix("dc", "http://purl.org/dc/terms/"))

	url, ok := r.PrefixURL("dc")
	require.True(t, ok)
	assert.Equal(t, "http://custom.example/dc/", url)

	prefixes := r.Prefixes()
	require.Len(t, prefixes, 2)
	assert.Equal(t, "ex", prefixes[0].Prefix)
	assert.Equal(t, "dc", prefixes[1].Prefix)
}

func TestRegistry_Promotion(t *testing.T) {
	t.Run("same kind is idempotent", func(t *testing.T) {
		r := newTestRegistry()
		first, err := r.AsClass("ex:C")
		require.NoError(t, err)
		second, err := r.AsClass("ex:C")
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Equal(t, KindClass, first.Kind)
	})

	conflicts := []struct {
		name   string
		first  func(*Registry) error
		second func(*Registry) error
		have   Kind
		want   Kind
	}{
		{
			name:   "class then property",
			first:  func(r *Registry) error { _, err := r.AsClass("ex:X"); return err },
			second: func(r *Registry) error { _, err := r.AsProperty("ex:X"); return err },
			have:   KindClass,
			want:   KindProperty,
		},
		{
			name:   "property then datatype",
			first:  func(r *Registry) error { _, err := r.AsProperty("ex:X"); return err },
			second: func(r *Registry) error { _, err := r.AsDatatype("ex:X"); return err },
			have:   KindProperty,
			want:   KindDatatype,
		},
		{
			name:   "datatype then individual",
			first:  func(r *Registry) error { _, err := r.AsDatatype("ex:X"); return err },
			second: func(r *Registry) error { _, err := r.AsIndividual("ex:X"); return err },
			have:   KindDatatype,
			want:   KindIndividual,
		},
		{
			name:   "core term",
			first:  func(r *Registry) error { _, err := r.Resolve("rdfs:Class"); return err },
			second: func(r *Registry) error { _, err := r.AsClass("rdfs:Class"); return err },
			have:   KindCore,
			want:   KindClass,
		},
		{
			name:   "full url",
			first:  func(r *Registry) error { _, err := r.Resolve("https://example.com/x"); return err },
			second: func(r *Registry) error { _, err := r.AsProperty("https://example.com/x"); return err },
			have:   KindFullURL,
			want:   KindProperty,
		},
	}

	for _, tt := range conflicts {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry()
			require.NoError(t, tt.first(r))

			err := tt.second(r)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTypeConflict))

			var tce *TypeConflictError
			require.True(t, errors.As(err, &tce))
			assert.Equal(t, tt.have, tce.Have)
			assert.Equal(t, tt.want, tce.Want)

			// The failed attempt leaves the kind untouched.
			require.NoError(t, tt.first(r))
		})
	}
}

func TestRegistry_PromotePlaceholder(t *testing.T) {
	r := newTestRegistry()

	placeholder, err := r.Resolve("ex:C")
	require.NoError(t, err)
	require.Equal(t, []*Term{placeholder}, r.Unresolved())

	c, err := r.PromoteToClass(placeholder)
	require.NoError(t, err)
	assert.Same(t, placeholder, c.Term)
	assert.Equal(t, KindClass, placeholder.Kind)
	assert.Empty(t, r.Unresolved())

	got, ok := placeholder.Class()
	require.True(t, ok)
	assert.Same(t, c, got)

	_, err = r.PromoteToDatatype(placeholder)
	assert.True(t, errors.Is(err, ErrTypeConflict))

	_, err = r.PromoteToClass(placeholder)
	assert.True(t, errors.Is(err, ErrTypeConflict))
}

func TestRegistry_UnresolvedOrder(t *testing.T) {
	r := newTestRegistry()
	for _, c := range []string{"ex:B", "ex:A", "rdfs:Class", "ex:C"} {
		_, err := r.Resolve(c)
		require.NoError(t, err)
	}
	_, err := r.AsClass("ex:A")
	require.NoError(t, err)

	var got []string
	for _, term := range r.Unresolved() {
		got = append(got, term.Curie)
	}
	assert.Equal(t, []string{"ex:B", "ex:C"}, got)
	assert.Equal(t, 4, r.Len())
}

func TestRegistry_Expand(t *testing.T) {
	r := newTestRegistry()

	url, err := r.Expand("schema:name")
	require.NoError(t, err)
	assert.Equal(t, "http://schema.org/name", url)

	url, err = r.Expand("https://example.com/doc")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/doc", url)

	_, err = r.Expand("nope:x")
	assert.True(t, errors.Is(err, ErrUnknownPrefix))
	assert.Equal(t, 0, r.Len())
}

func TestTermEqual(t *testing.T) {
	a := &Term{ID: "C", Prefix: "ex"}
	b := &Term{ID: "C", Prefix: "ex", Label: "different record"}
	c := &Term{ID: "C", Prefix: "other"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}
