package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/davesims/rhom-sti/internal/app"
	"github.com/davesims/rhom-sti/internal/core/sti"
	"github.com/davesims/rhom-sti/internal/ports/primary"
	"github.com/davesims/rhom-sti/internal/ports/secondary"
)

// nopBag satisfies secondary.PropertyBag; loader tests never touch storage.
type nopBag struct{ secondary.PropertyBag }

func newRegistry(opts app.RegistryOptions) *app.ModelRegistryImpl {
	opts.Logger = app.DiscardLogger()
	return app.NewModelRegistry(nopBag{}, opts)
}

const contactsYAML = `
version: "1"
models:
  - name: Customer
    parent: Contact
  - name: Contact
  - name: Vendor
    parent: Contact
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(contactsYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(doc.Models) != 3 {
		t.Fatalf("expected 3 models, got %d", len(doc.Models))
	}
	if doc.Models[0].Name != "Customer" || doc.Models[0].Parent != "Contact" {
		t.Errorf("unexpected first model %+v", *doc.Models[0])
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "missing name", yaml: "models:\n  - parent: Contact\n"},
		{name: "not yaml", yaml: "models: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestApply_ChildBeforeParent(t *testing.T) {
	doc, err := Parse([]byte(contactsYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	registry := newRegistry(app.RegistryOptions{})

	if err := Apply(registry, doc); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	customer, err := registry.Lookup("Customer")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if customer.Name() != "Contact" || !customer.IsChild() {
		t.Errorf("unexpected Customer model: name=%q child=%v", customer.Name(), customer.IsChild())
	}
	if d, _ := registry.Discriminator("Vendor"); d != "Vendor" {
		t.Errorf("expected Vendor discriminator, got %q", d)
	}
}

func TestApply_UndeclaredParent(t *testing.T) {
	doc := &ModelsYAML{Models: []*ModelYAML{{Name: "Customer", Parent: "Contact"}}}

	err := Apply(newRegistry(app.RegistryOptions{}), doc)
	if err == nil {
		t.Fatal("expected error for undeclared parent")
	}
}

func TestApply_Grandchild(t *testing.T) {
	doc := &ModelsYAML{Models: []*ModelYAML{
		{Name: "Contact"},
		{Name: "Customer", Parent: "Contact"},
		{Name: "PremiumCustomer", Parent: "Customer"},
	}}

	err := Apply(newRegistry(app.RegistryOptions{}), doc)
	if !errors.Is(err, sti.ErrMultiLevelInheritance) {
		t.Fatalf("expected ErrMultiLevelInheritance, got %v", err)
	}

	registry := newRegistry(app.RegistryOptions{AllowNestedChildren: true})
	if err := Apply(registry, doc); err != nil {
		t.Fatalf("Apply with nesting failed: %v", err)
	}
	var premium primary.Model
	if premium, err = registry.Lookup("PremiumCustomer"); err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if premium.Name() != "Contact" {
		t.Errorf("expected storage name 'Contact', got %q", premium.Name())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	if err := os.WriteFile(path, []byte(contactsYAML), 0644); err != nil {
		t.Fatalf("failed to write models: %v", err)
	}

	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(doc.Models) != 3 {
		t.Errorf("expected 3 models, got %d", len(doc.Models))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	doc := &ModelsYAML{Version: "1", Models: []*ModelYAML{{Name: "Contact"}, {Name: "Customer", Parent: "Contact"}}}

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(parsed.Models) != 2 || parsed.Models[1].Parent != "Contact" {
		t.Errorf("unexpected round trip %+v", parsed.Models)
	}
}
