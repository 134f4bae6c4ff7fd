// Package lessonforge is the public entry point for working with
// exploration documents: versioned, branching interactive lessons made of
// states, interactions and gadgets.
//
// The heavy lifting lives in the subpackages: pkg/domain holds the object
// model and its validators, pkg/migrate upgrades serialized documents across
// schema versions, and pkg/registry carries the built-in interaction, gadget
// and trigger catalogs. This package just wires them together with sensible
// defaults.
package lessonforge

import (
	"log/slog"

	"github.com/lessonforge/lessonforge/internal/logging"
	"github.com/lessonforge/lessonforge/pkg/domain"
	"github.com/lessonforge/lessonforge/pkg/registry"
	"github.com/lessonforge/lessonforge/pkg/sanitize"
)

// Version of the library.
const Version = "0.1.0"

// DefaultCapabilities assembles the built-in registries, the HTML sanitizer
// and the given logger into the capability bundle the domain package
// consumes. A nil logger gets a no-op one.
func DefaultCapabilities(logger *slog.Logger) *domain.Capabilities {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &domain.Capabilities{
		Interactions: registry.DefaultInteractions(),
		Gadgets:      registry.DefaultGadgets(),
		Triggers:     registry.DefaultTriggers(),
		Panels:       registry.DefaultPanels(),
		Sanitizer:    sanitize.NewCleaner(),
		Logger:       logger,
	}
}

// Load deserializes a titled exploration document (schema version 10+) using
// the default capabilities, migrating it to the current schema.
func Load(id string, data []byte) (*domain.Exploration, error) {
	return domain.FromYAML(DefaultCapabilities(nil), id, data)
}

// LoadUntitled deserializes a document from the era when title and category
// were stored outside the serialized blob (schema version 9 or earlier).
func LoadUntitled(id, title, category string, data []byte) (*domain.Exploration, error) {
	return domain.FromUntitledYAML(DefaultCapabilities(nil), id, title, category, data)
}
