package app

import (
	"context"
	"fmt"

	"github.com/davesims/rhom-sti/internal/core/sti"
	"github.com/davesims/rhom-sti/internal/ports/primary"
)

// ScopedModel implements primary.Model for a child model. It wraps the
// base model and injects the child's discriminator into every find,
// create and new before delegating.
type ScopedModel struct {
	base           primary.Model
	declaredName   string
	discriminators *sti.Registry
	strict         bool
}

// NewScopedModel creates a ScopedModel for declaredName on top of base.
// With strict set, find conditions of an unsupported shape are rejected;
// otherwise they are passed to base without a discriminator.
func NewScopedModel(base primary.Model, declaredName string, discriminators *sti.Registry, strict bool) *ScopedModel {
	return &ScopedModel{
		base:           base,
		declaredName:   declaredName,
		discriminators: discriminators,
		strict:         strict,
	}
}

// Name resolves to the base model's name so the child reads and writes the
// base model's storage.
func (m *ScopedModel) Name() string { return m.base.Name() }

// DeclaredName returns the child's own name.
func (m *ScopedModel) DeclaredName() string { return m.declaredName }

// IsChild always returns true.
func (m *ScopedModel) IsChild() bool { return true }

// Find scopes opts.Conditions to the discriminator and delegates.
// opts is modified in place; a nil opts is replaced by a new one. Every
// other option is left untouched.
func (m *ScopedModel) Find(ctx context.Context, scope string, opts *primary.FindOptions) ([]*primary.Object, error) {
	discriminator, err := m.discriminator()
	if err != nil {
		return nil, err
	}

	if opts == nil {
		opts = &primary.FindOptions{}
	}
	conditions, err := sti.ScopeConditions(opts.Conditions, discriminator, m.strict)
	if err != nil {
		return nil, fmt.Errorf("failed to scope find on %s: %w", m.declaredName, err)
	}
	opts.Conditions = conditions

	return m.base.Find(ctx, scope, opts)
}

// Create sets the discriminator on attrs and delegates.
func (m *ScopedModel) Create(ctx context.Context, attrs primary.Attributes) (*primary.Object, error) {
	discriminator, err := m.discriminator()
	if err != nil {
		return nil, err
	}
	return m.base.Create(ctx, sti.ScopeAttributes(attrs, discriminator))
}

// New sets the discriminator on attrs and delegates.
func (m *ScopedModel) New(attrs primary.Attributes) (*primary.Object, error) {
	discriminator, err := m.discriminator()
	if err != nil {
		return nil, err
	}
	return m.base.New(sti.ScopeAttributes(attrs, discriminator))
}

// Save delegates unchanged; objects built by New already carry the type.
func (m *ScopedModel) Save(ctx context.Context, obj *primary.Object) error {
	return m.base.Save(ctx, obj)
}

func (m *ScopedModel) discriminator() (string, error) {
	value, ok := m.discriminators.Get(m.declaredName)
	if !ok {
		return "", fmt.Errorf("%w for model %s", sti.ErrMissingDiscriminator, m.declaredName)
	}
	return value, nil
}

// Ensure ScopedModel implements the interface.
var _ primary.Model = (*ScopedModel)(nil)
