// Package loader reads model declarations from YAML and defines them in a
// model registry.
package loader

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/davesims/rhom-sti/internal/ports/primary"
)

// ModelsYAML represents the YAML file structure
type ModelsYAML struct {
	Version string       `yaml:"version,omitempty"`
	Models  []*ModelYAML `yaml:"models"`
}

// ModelYAML declares one model. A model with a parent is a child model
// sharing the parent's storage.
type ModelYAML struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent,omitempty"`
}

// LoadFile reads and parses a models file.
func LoadFile(path string) (*ModelsYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read models file: %w", err)
	}
	return Parse(data)
}

// Parse parses models YAML.
func Parse(data []byte) (*ModelsYAML, error) {
	var doc ModelsYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse models: %w", err)
	}

	for i, m := range doc.Models {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("model %d: name is required", i+1)
		}
	}
	return &doc, nil
}

// Apply defines every declared model in registry. Base models are defined
// first, then children in file order, so a child may appear before its
// parent in the file.
func Apply(registry primary.ModelRegistry, doc *ModelsYAML) error {
	for _, m := range doc.Models {
		if m.Parent != "" {
			continue
		}
		if _, err := registry.DefineBase(m.Name); err != nil {
			return fmt.Errorf("failed to define %s: %w", m.Name, err)
		}
	}

	pending := make([]*ModelYAML, 0, len(doc.Models))
	for _, m := range doc.Models {
		if m.Parent != "" {
			pending = append(pending, m)
		}
	}

	// Children of children resolve once their parent is defined.
	for len(pending) > 0 {
		var next []*ModelYAML
		for _, m := range pending {
			if _, err := registry.Lookup(m.Parent); err != nil {
				next = append(next, m)
				continue
			}
			if _, err := registry.DefineChild(m.Name, m.Parent); err != nil {
				return fmt.Errorf("failed to define %s: %w", m.Name, err)
			}
		}
		if len(next) == len(pending) {
			return fmt.Errorf("failed to define %s: parent %s is not declared", next[0].Name, next[0].Parent)
		}
		pending = next
	}

	return nil
}

// Marshal renders a models document as YAML.
func Marshal(doc *ModelsYAML) ([]byte, error) {
	return yaml.Marshal(doc)
}
