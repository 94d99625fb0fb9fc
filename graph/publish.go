// Package graph turns built vocabularies into knowledge graph entities and
// publishes them for ingestion.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/semvocab/export"
	"github.com/c360studio/semvocab/vocab"
	"github.com/c360studio/semvocab/vocabulary/predicates"
)

// IngestSubject is the default subject graph ingestion consumes entities from.
const IngestSubject = "graph.ingest.entity"

// StreamPublisher publishes to a JetStream subject.
type StreamPublisher interface {
	PublishToStream(ctx context.Context, subject string, data []byte) error
}

// EntityID returns the graph entity ID of a local term.
// Format: semvocab.local.vocab.<prefix>.<kind>.<id>
func EntityID(t *vocab.Term) string {
	return fmt.Sprintf("semvocab.local.vocab.%s.%s.%s", segment(t.Prefix), t.Kind, segment(t.ID))
}

// segment keeps dots inside names from adding ID levels.
func segment(s string) string {
	return strings.NewReplacer(".", "_", " ", "_").Replace(s)
}

// Entities returns one entity per declared local term of v.
func Entities(v *vocab.Vocab, source string, now time.Time) []*EntityPayload {
	var out []*EntityPayload
	add := func(t *vocab.Term, rels func(*entityBuilder)) {
		if !t.IsLocal() {
			return
		}
		b := newEntityBuilder(t, source, now)
		if rels != nil {
			rels(b)
		}
		out = append(out, b.payload())
	}

	for _, c := range v.Classes {
		add(c.Term, func(b *entityBuilder) {
			b.refs(predicates.RelSubClassOf, c.SuperClasses)
			b.refs(predicates.RelOneOf, c.OneOf)
		})
	}
	for _, p := range v.Properties {
		add(p.Term, func(b *entityBuilder) {
			b.refs(predicates.RelSubPropertyOf, p.SuperProperties)
			b.refs(predicates.RelDomain, p.Domain)
			b.refs(predicates.RelRange, p.Range)
			b.refs(predicates.RelOneOf, p.OneOf)
		})
	}
	for _, i := range v.Individuals {
		add(i.Term, func(b *entityBuilder) {
			for _, curie := range i.Types {
				if t, ok := v.Term(curie); ok && t.Kind != vocab.KindCore {
					b.ref(predicates.RelType, t)
				}
			}
		})
	}
	for _, d := range v.Datatypes {
		add(d.Term, func(b *entityBuilder) {
			b.refs(predicates.RelSubClassOf, d.SuperClasses)
		})
	}
	return out
}

// Publish sends each entity to subject and returns how many were published
// before the first failure.
func Publish(ctx context.Context, p StreamPublisher, subject, source string, entities []*EntityPayload) (int, error) {
	for i, e := range entities {
		data, err := json.Marshal(message.NewBaseMessage(EntityType, e, source))
		if err != nil {
			return i, fmt.Errorf("marshal entity %s: %w", e.ID, err)
		}
		if err := p.PublishToStream(ctx, subject, data); err != nil {
			return i, fmt.Errorf("publish entity %s: %w", e.ID, err)
		}
	}
	return len(entities), nil
}

type entityBuilder struct {
	id      string
	source  string
	now     time.Time
	triples []message.Triple
}

func newEntityBuilder(t *vocab.Term, source string, now time.Time) *entityBuilder {
	b := &entityBuilder{id: EntityID(t), source: source, now: now}
	b.add(predicates.TermCurie, t.Curie)
	b.add(predicates.TermURL, t.URL)
	b.add(predicates.TermKind, string(t.Kind))
	if t.Label != "" {
		b.add(predicates.TermLabel, t.Label)
	}
	if t.Comment != "" {
		b.add(predicates.TermComment, export.PlainText(t.Comment))
	}
	b.add(predicates.TermStatus, string(t.Status))
	for _, url := range t.DefinedBy {
		b.add(predicates.TermDefinedBy, url)
	}
	return b
}

func (b *entityBuilder) add(predicate string, object any) {
	b.triples = append(b.triples, message.Triple{
		Subject:    b.id,
		Predicate:  predicate,
		Object:     object,
		Source:     b.source,
		Timestamp:  b.now,
		Confidence: 1.0,
	})
}

// ref links to local terms by entity ID and to everything else by URL.
func (b *entityBuilder) ref(predicate string, t *vocab.Term) {
	if t.IsLocal() {
		b.add(predicate, EntityID(t))
		return
	}
	b.add(predicate, t.URL)
}

func (b *entityBuilder) refs(predicate string, terms []*vocab.Term) {
	for _, t := range terms {
		b.ref(predicate, t)
	}
}

func (b *entityBuilder) payload() *EntityPayload {
	return &EntityPayload{ID: b.id, TripleData: b.triples, UpdatedAt: b.now}
}
