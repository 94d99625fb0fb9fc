package vocabbuilder

import (
	"encoding/json"
	"errors"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	for _, reg := range []*component.PayloadRegistration{
		{
			Domain:      "vocab",
			Category:    "source",
			Version:     "v1",
			Description: "YAML vocabulary source to build",
			Factory:     func() any { return &SourcePayload{} },
		},
		{
			Domain:      "vocab",
			Category:    "export",
			Version:     "v1",
			Description: "Rendered vocabulary in one output format",
			Factory:     func() any { return &BuildResult{} },
		},
		{
			Domain:      "vocab",
			Category:    "failure",
			Version:     "v1",
			Description: "Vocabulary build failure",
			Factory:     func() any { return &BuildFailure{} },
		},
	} {
		if err := component.RegisterPayload(reg); err != nil {
			panic("failed to register " + reg.Category + " payload: " + err.Error())
		}
	}
}

// Message types for vocab-builder payloads.
var (
	SourceType  = message.Type{Domain: "vocab", Category: "source", Version: "v1"}
	ResultType  = message.Type{Domain: "vocab", Category: "export", Version: "v1"}
	FailureType = message.Type{Domain: "vocab", Category: "failure", Version: "v1"}
)

// SourcePayload carries a YAML vocabulary document.
type SourcePayload struct {
	Name    string `json:"name"`    // file name or other label for logs
	Content string `json:"content"` // YAML document
}

// Schema returns the message type for Payload interface.
func (p *SourcePayload) Schema() message.Type { return SourceType }

// Validate validates the payload for Payload interface.
func (p *SourcePayload) Validate() error {
	if p.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *SourcePayload) MarshalJSON() ([]byte, error) {
	type Alias SourcePayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *SourcePayload) UnmarshalJSON(data []byte) error {
	type Alias SourcePayload
	return json.Unmarshal(data, (*Alias)(p))
}

// BuildResult is one rendered output of a successful build.
type BuildResult struct {
	BuildID    string         `json:"build_id"`
	Source     string         `json:"source"`
	Vocab      string         `json:"vocab"`
	URL        string         `json:"url"`
	Format     string         `json:"format"`
	MIMEType   string         `json:"mime_type"`
	Content    string         `json:"content"`
	Terms      map[string]int `json:"terms"`
	Predicates []string       `json:"predicates,omitempty"`
}

// Schema returns the message type for Payload interface.
func (p *BuildResult) Schema() message.Type { return ResultType }

// Validate validates the payload for Payload interface.
func (p *BuildResult) Validate() error {
	if p.Vocab == "" {
		return errors.New("vocab is required")
	}
	if p.Format == "" {
		return errors.New("format is required")
	}
	if p.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *BuildResult) MarshalJSON() ([]byte, error) {
	type Alias BuildResult
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *BuildResult) UnmarshalJSON(data []byte) error {
	type Alias BuildResult
	return json.Unmarshal(data, (*Alias)(p))
}

// BuildFailure reports a source that could not be built.
type BuildFailure struct {
	BuildID string `json:"build_id"`
	Source  string `json:"source"`
	Error   string `json:"error"`
}

// Schema returns the message type for Payload interface.
func (p *BuildFailure) Schema() message.Type { return FailureType }

// Validate validates the payload for Payload interface.
func (p *BuildFailure) Validate() error {
	if p.Error == "" {
		return errors.New("error is required")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *BuildFailure) MarshalJSON() ([]byte, error) {
	type Alias BuildFailure
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *BuildFailure) UnmarshalJSON(data []byte) error {
	type Alias BuildFailure
	return json.Unmarshal(data, (*Alias)(p))
}
