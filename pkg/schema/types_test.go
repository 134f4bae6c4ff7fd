package schema

import (
	"reflect"
	"testing"
)

func TestStringNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    any
		wantErr bool
	}{
		{"valid string", "hello", "hello", false},
		{"empty string", "", "", false},
		{"int rejected", 42, nil, true},
		{"bool rejected", true, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := String().Normalize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Normalize(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIntNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    any
		wantErr bool
	}{
		{"plain int", 7, 7, false},
		{"int64", int64(7), 7, false},
		{"whole float", 7.0, 7, false},
		{"fractional float rejected", 7.5, nil, true},
		{"string rejected", "7", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Int().Normalize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Normalize(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloatNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    any
		wantErr bool
	}{
		{"float64", 1.5, 1.5, false},
		{"int promoted", 3, 3.0, false},
		{"string rejected", "1.5", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Float().Normalize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Normalize(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestListNormalize(t *testing.T) {
	got, err := List(String()).Normalize([]any{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := List(String()).Normalize([]any{"a", 1}); err == nil {
		t.Error("expected error for mixed element types")
	}
	if _, err := List(String()).Normalize("not a list"); err == nil {
		t.Error("expected error for non-list value")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantErr  bool
	}{
		{"string", "string", false},
		{"int", "int", false},
		{"float", "float", false},
		{"bool", "bool", false},
		{"[string]", "[string]", false},
		{"[[int]]", "[[int]]", false},
		{"widget", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.Name() != tt.wantName {
				t.Errorf("ParseType(%q).Name() = %q, want %q", tt.input, got.Name(), tt.wantName)
			}
		})
	}
}

func TestSchemaNormalize(t *testing.T) {
	s := Schema{"maxValue": Int(), "label": String()}

	got, err := s.Normalize(map[string]any{"maxValue": 5.0, "label": "hi", "extra": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["maxValue"] != 5 {
		t.Errorf("maxValue = %v, want 5", got["maxValue"])
	}
	if got["extra"] != true {
		t.Errorf("undeclared field should pass through, got %v", got["extra"])
	}

	_, err = s.Normalize(map[string]any{"maxValue": "nope"})
	if err == nil {
		t.Fatal("expected aggregated errors")
	}
	if errs := NormalizationErrors(err); len(errs) != 2 {
		t.Errorf("expected 2 errors (bad type + missing field), got %d", len(errs))
	}
}
