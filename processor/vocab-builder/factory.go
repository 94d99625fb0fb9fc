package vocabbuilder

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface needed for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the vocab-builder processor with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        componentName,
		Factory:     NewComponent,
		Schema:      vocabBuilderSchema,
		Type:        "processor",
		Protocol:    "rdf",
		Domain:      "vocab",
		Description: "Builds YAML vocabularies into Turtle, JSON-LD, HTML and JSON-LD contexts",
		Version:     "1.0.0",
	})
}
