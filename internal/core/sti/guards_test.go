package sti

import (
	"errors"
	"testing"
)

func TestCanRegisterBase(t *testing.T) {
	tests := []struct {
		name        string
		ctx         RegisterBaseContext
		wantAllowed bool
		wantReason  string
		wantCause   error
	}{
		{
			name:        "can define new base",
			ctx:         RegisterBaseContext{Name: "Contact"},
			wantAllowed: true,
		},
		{
			name:        "cannot define without name",
			ctx:         RegisterBaseContext{},
			wantAllowed: false,
			wantReason:  "model name is required",
		},
		{
			name:        "cannot define twice",
			ctx:         RegisterBaseContext{Name: "Contact", Exists: true},
			wantAllowed: false,
			wantReason:  "cannot define Contact",
			wantCause:   ErrModelExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanRegisterBase(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if tt.wantCause != nil && !errors.Is(result.Error(), tt.wantCause) {
				t.Errorf("Error() = %v, want cause %v", result.Error(), tt.wantCause)
			}
		})
	}
}

func TestCanRegisterChild(t *testing.T) {
	tests := []struct {
		name        string
		ctx         RegisterChildContext
		wantAllowed bool
		wantReason  string
		wantCause   error
	}{
		{
			name: "can define child of base",
			ctx: RegisterChildContext{
				ChildName:    "Customer",
				ParentName:   "Contact",
				ParentExists: true,
			},
			wantAllowed: true,
		},
		{
			name: "cannot define child without name",
			ctx: RegisterChildContext{
				ParentName:   "Contact",
				ParentExists: true,
			},
			wantAllowed: false,
			wantReason:  "model name is required",
		},
		{
			name: "cannot redefine child",
			ctx: RegisterChildContext{
				ChildName:    "Customer",
				ChildExists:  true,
				ParentName:   "Contact",
				ParentExists: true,
			},
			wantAllowed: false,
			wantReason:  "cannot define Customer",
			wantCause:   ErrModelExists,
		},
		{
			name: "cannot define child of unknown parent",
			ctx: RegisterChildContext{
				ChildName:  "Customer",
				ParentName: "Contact",
			},
			wantAllowed: false,
			wantReason:  "cannot define Customer: parent Contact",
			wantCause:   ErrModelNotFound,
		},
		{
			name: "cannot define grandchild",
			ctx: RegisterChildContext{
				ChildName:     "PremiumCustomer",
				ParentName:    "Customer",
				ParentExists:  true,
				ParentIsChild: true,
			},
			wantAllowed: false,
			wantReason:  "cannot define PremiumCustomer: parent Customer is itself a child model",
			wantCause:   ErrMultiLevelInheritance,
		},
		{
			name: "grandchild allowed when nesting enabled",
			ctx: RegisterChildContext{
				ChildName:     "PremiumCustomer",
				ParentName:    "Customer",
				ParentExists:  true,
				ParentIsChild: true,
				AllowNested:   true,
			},
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanRegisterChild(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if tt.wantCause != nil && !errors.Is(result.Error(), tt.wantCause) {
				t.Errorf("Error() = %v, want cause %v", result.Error(), tt.wantCause)
			}
			if tt.wantAllowed && result.Error() != nil {
				t.Errorf("Error() = %v, want nil", result.Error())
			}
		})
	}
}
