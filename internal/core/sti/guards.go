package sti

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Cause   error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Cause != nil {
		return fmt.Errorf("%s: %w", r.Reason, r.Cause)
	}
	return fmt.Errorf("%s", r.Reason)
}

// RegisterBaseContext provides context for base model registration guards.
type RegisterBaseContext struct {
	Name   string
	Exists bool
}

// RegisterChildContext provides context for child model registration guards.
type RegisterChildContext struct {
	ChildName     string
	ChildExists   bool
	ParentName    string
	ParentExists  bool
	ParentIsChild bool
	AllowNested   bool
}

// CanRegisterBase evaluates whether a base model can be defined.
// Rules:
// - Name must not be empty
// - Name must not already be defined
func CanRegisterBase(ctx RegisterBaseContext) GuardResult {
	if ctx.Name == "" {
		return GuardResult{Allowed: false, Reason: "model name is required"}
	}
	if ctx.Exists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot define %s", ctx.Name),
			Cause:   ErrModelExists,
		}
	}
	return GuardResult{Allowed: true}
}

// CanRegisterChild evaluates whether a child model can be declared.
// Rules:
// - Child name must not be empty and not already defined
// - Parent must exist
// - Parent must be a base model, unless nesting is explicitly allowed
func CanRegisterChild(ctx RegisterChildContext) GuardResult {
	if ctx.ChildName == "" {
		return GuardResult{Allowed: false, Reason: "model name is required"}
	}
	if ctx.ChildExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot define %s", ctx.ChildName),
			Cause:   ErrModelExists,
		}
	}
	if !ctx.ParentExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot define %s: parent %s", ctx.ChildName, ctx.ParentName),
			Cause:   ErrModelNotFound,
		}
	}
	if ctx.ParentIsChild && !ctx.AllowNested {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot define %s: parent %s is itself a child model", ctx.ChildName, ctx.ParentName),
			Cause:   ErrMultiLevelInheritance,
		}
	}
	return GuardResult{Allowed: true}
}
