// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/davesims/rhom-sti/internal/ports/primary"
)

// ModelAdapter is a thin adapter that translates CLI operations to model calls.
// It depends only on the ModelRegistry interface, enabling easy testing with mocks.
type ModelAdapter struct {
	registry primary.ModelRegistry
	out      io.Writer
}

// NewModelAdapter creates a new ModelAdapter with the given registry.
func NewModelAdapter(registry primary.ModelRegistry, out io.Writer) *ModelAdapter {
	return &ModelAdapter{
		registry: registry,
		out:      out,
	}
}

// Models lists every defined model.
func (a *ModelAdapter) Models() error {
	models := a.registry.ListModels()
	if len(models) == 0 {
		fmt.Fprintln(a.out, "No models defined")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %-20s %-20s %s\n", "MODEL", "STORAGE", "PARENT", "TYPE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────")
	for _, m := range models {
		parent := "-"
		kind := color.New(color.FgBlue).Sprint("base")
		if m.Parent != "" {
			parent = m.Parent
			kind = color.New(color.FgGreen).Sprintf("type=%s", m.Discriminator)
		}
		fmt.Fprintf(a.out, "%-20s %-20s %-20s %s\n", m.Name, m.StorageName, parent, kind)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Find runs a find on the named model and prints the objects.
func (a *ModelAdapter) Find(ctx context.Context, model, scope string, opts *primary.FindOptions) error {
	m, err := a.registry.Lookup(model)
	if err != nil {
		return err
	}

	objects, err := m.Find(ctx, scope, opts)
	if err != nil {
		return err
	}

	if len(objects) == 0 {
		fmt.Fprintf(a.out, "No %s objects found\n", model)
		return nil
	}

	fmt.Fprintf(a.out, "Found %d %s object(s):\n\n", len(objects), model)
	for _, o := range objects {
		a.printObject(o)
	}
	return nil
}

// Create persists a new object through the named model.
func (a *ModelAdapter) Create(ctx context.Context, model string, attrs primary.Attributes) error {
	m, err := a.registry.Lookup(model)
	if err != nil {
		return err
	}

	obj, err := m.Create(ctx, attrs)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created %s %s\n", model, obj.ID)
	a.printObject(obj)
	return nil
}

// New builds an object through the named model, saving it when save is set.
func (a *ModelAdapter) New(ctx context.Context, model string, attrs primary.Attributes, save bool) error {
	m, err := a.registry.Lookup(model)
	if err != nil {
		return err
	}

	obj, err := m.New(attrs)
	if err != nil {
		return err
	}

	if save {
		if err := m.Save(ctx, obj); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "✓ Saved %s %s\n", model, obj.ID)
	} else {
		fmt.Fprintf(a.out, "%s %s (not saved)\n", color.New(color.FgYellow).Sprint("!"), model)
	}
	a.printObject(obj)
	return nil
}

func (a *ModelAdapter) printObject(o *primary.Object) {
	id := o.ID
	if id == "" {
		id = "(new)"
	}
	fmt.Fprintf(a.out, "  %s [%s]\n", id, o.Source)

	keys := make([]string, 0, len(o.Attributes))
	for k := range o.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "    %s: %s\n", k, o.Attributes[k])
	}
}
