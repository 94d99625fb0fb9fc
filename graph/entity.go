package graph

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "graph",
		Category:    "entity",
		Version:     "v1",
		Description: "Vocabulary term entity with triples for graph ingestion",
		Factory:     func() any { return &EntityPayload{} },
	})
	if err != nil {
		panic("failed to register EntityPayload: " + err.Error())
	}
}

// EntityType is the message type of term entities.
var EntityType = message.Type{Domain: "graph", Category: "entity", Version: "v1"}

// EntityPayload carries one vocabulary term and the triples describing it.
type EntityPayload struct {
	ID         string           `json:"id"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// EntityID returns the graph entity ID.
func (e *EntityPayload) EntityID() string { return e.ID }

// Triples returns the triples describing the entity.
func (e *EntityPayload) Triples() []message.Triple { return e.TripleData }

// Schema returns the payload message type.
func (e *EntityPayload) Schema() message.Type { return EntityType }

// Validate checks that the entity can be ingested.
func (e *EntityPayload) Validate() error {
	if e.ID == "" {
		return errors.New("entity ID is required")
	}
	for _, t := range e.TripleData {
		if t.Subject != e.ID {
			return errors.New("triple subject does not match entity ID")
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (e *EntityPayload) MarshalJSON() ([]byte, error) {
	type Alias EntityPayload
	return json.Marshal((*Alias)(e))
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *EntityPayload) UnmarshalJSON(data []byte) error {
	type Alias EntityPayload
	return json.Unmarshal(data, (*Alias)(e))
}
