package vocabbuilder

import (
	"fmt"
	"reflect"
	"time"

	"github.com/c360studio/semstreams/component"

	"github.com/c360studio/semvocab/export"
)

// vocabBuilderSchema defines the configuration schema.
var vocabBuilderSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the vocab-builder processor.
type Config struct {
	Ports              *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`
	Formats            []string              `json:"formats" schema:"type:array,description:Output formats (turtle/jsonld/html/context),category:basic,default:[turtle,jsonld,html,context]"`
	Date               string                `json:"date" schema:"type:string,description:Fixed dc:date for built vocabularies (YYYY-MM-DD; empty means today),category:advanced"`
	RegisterPredicates bool                  `json:"register_predicates" schema:"type:bool,description:Register built properties as platform predicates,category:basic,default:true"`
	StoreArtifacts     bool                  `json:"store_artifacts" schema:"type:bool,description:Keep rendered outputs and build records in NATS KV,category:advanced,default:false"`
	PublishGraph       bool                  `json:"publish_graph" schema:"type:bool,description:Publish built terms as graph entities,category:advanced,default:false"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	for _, f := range c.Formats {
		if _, err := export.ParseFormat(f); err != nil {
			return fmt.Errorf("%w (valid: turtle, jsonld, html, context)", err)
		}
	}
	if c.Date != "" {
		if _, err := time.Parse(time.DateOnly, c.Date); err != nil {
			return fmt.Errorf("invalid date %q: %w", c.Date, err)
		}
	}
	return nil
}

// GetFormats returns the configured formats, defaulting to all of them.
func (c *Config) GetFormats() []export.Format {
	if len(c.Formats) == 0 {
		return export.AllFormats
	}
	out := make([]export.Format, 0, len(c.Formats))
	for _, f := range c.Formats {
		out = append(out, export.Format(f))
	}
	return out
}

// GetDate returns the configured build date, or the zero time.
func (c *Config) GetDate() time.Time {
	d, err := time.Parse(time.DateOnly, c.Date)
	if err != nil {
		return time.Time{}
	}
	return d
}

// DefaultConfig returns the default configuration for vocab-builder.
func DefaultConfig() Config {
	return Config{
		Ports: &component.PortConfig{
			Inputs: []component.PortDefinition{
				{
					Name:        "sources_in",
					Type:        "jetstream",
					Subject:     "vocab.source.>",
					StreamName:  "VOCAB",
					Required:    true,
					Description: "YAML vocabulary sources to build",
				},
			},
			Outputs: []component.PortDefinition{
				{
					Name:        "exports_out",
					Type:        "jetstream",
					Subject:     "vocab.export",
					StreamName:  "VOCAB",
					Required:    true,
					Description: "Rendered vocabularies, one message per format on vocab.export.<format>",
				},
				{
					Name:        "failures_out",
					Type:        "jetstream",
					Subject:     "vocab.failure",
					StreamName:  "VOCAB",
					Required:    false,
					Description: "Build failures",
				},
				{
					Name:        "graph_out",
					Type:        "jetstream",
					Subject:     "graph.ingest.entity",
					StreamName:  "GRAPH",
					Required:    false,
					Description: "Term entities for graph ingestion when publish_graph is set",
				},
			},
		},
		Formats:            []string{"turtle", "jsonld", "html", "context"},
		RegisterPredicates: true,
	}
}
