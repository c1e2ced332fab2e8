package sti

import (
	"errors"
	"reflect"
	"testing"
)

// otherConditions satisfies Conditions without being one of the known shapes.
type otherConditions struct{}

func (otherConditions) isConditions() {}
func (otherConditions) Value() any    { return nil }

func TestParseConditions(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    Conditions
		wantErr error
	}{
		{
			name:  "map becomes structured",
			input: map[string]any{"a": 1},
			want:  Structured{"a": 1},
		},
		{
			name:  "string map becomes structured",
			input: map[string]string{"name": "Acme"},
			want:  Structured{"name": "Acme"},
		},
		{
			name:  "string becomes textual",
			input: "a=1",
			want:  Textual("a=1"),
		},
		{
			name:  "union value passes through",
			input: Textual("b=2"),
			want:  Textual("b=2"),
		},
		{
			name:    "slice is unsupported",
			input:   []string{"a=1"},
			wantErr: ErrUnsupportedConditions,
		},
		{
			name:    "integer is unsupported",
			input:   42,
			wantErr: ErrUnsupportedConditions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConditions(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestMergeDiscriminator(t *testing.T) {
	tests := []struct {
		name  string
		input Conditions
		want  any
	}{
		{
			name:  "adds type to structured conditions",
			input: Structured{"a": 1},
			want:  map[string]any{"a": 1, "type": "Customer"},
		},
		{
			name:  "overwrites caller supplied type",
			input: Structured{"a": 1, "type": "Vendor"},
			want:  map[string]any{"a": 1, "type": "Customer"},
		},
		{
			name:  "nil structured conditions",
			input: Structured(nil),
			want:  map[string]any{"type": "Customer"},
		},
		{
			name:  "appends fragment without added whitespace",
			input: Textual("a=1"),
			want:  "a=1and type='Customer'",
		},
		{
			name:  "keeps trailing whitespace of caller text",
			input: Textual("name='Acme' "),
			want:  "name='Acme' and type='Customer'",
		},
		{
			name:  "empty text still gets fragment",
			input: Textual(""),
			want:  "and type='Customer'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MergeDiscriminator(tt.input, "Customer")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got.Value(), tt.want) {
				t.Errorf("got %#v, want %#v", got.Value(), tt.want)
			}
		})
	}
}

func TestMergeDiscriminator_MutatesStructuredInPlace(t *testing.T) {
	conds := Structured{"a": 1}

	if _, err := MergeDiscriminator(conds, "Customer"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if conds["type"] != "Customer" {
		t.Errorf("expected caller map to carry type, got %#v", conds)
	}
}

func TestMergeDiscriminator_UnsupportedShape(t *testing.T) {
	_, err := MergeDiscriminator(otherConditions{}, "Customer")
	if !errors.Is(err, ErrUnsupportedConditions) {
		t.Fatalf("err = %v, want ErrUnsupportedConditions", err)
	}
}

// The discriminator is concatenated without escaping, so a quote in the value
// ends the literal early.
func TestMergeDiscriminator_TextualIsNotEscaped(t *testing.T) {
	got, err := MergeDiscriminator(Textual("a=1"), "x' or '1'='1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "a=1and type='x' or '1'='1'"
	if got.Value() != want {
		t.Errorf("got %q, want %q", got.Value(), want)
	}
}

func TestTextualFragment(t *testing.T) {
	if got := TextualFragment("d"); got != "and type='d'" {
		t.Errorf("TextualFragment = %q", got)
	}
}
