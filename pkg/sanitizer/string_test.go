package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Aurora", "Aurora"},
		{"leading and trailing spaces", "  Aurora  ", "Aurora"},
		{"internal runs collapse", "Floor   3,\tEast   wing", "Floor 3, East wing"},
		{"only whitespace", " \t\n ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNormalizeDescription(t *testing.T) {
	input := "Sprint   planning\n\n  agenda:  roadmap \n"
	expected := "Sprint planning\nagenda: roadmap"

	if got := NormalizeDescription(input); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestNormalizeEmails(t *testing.T) {
	input := []string{" Alice@Example.com ", "bob@example.com", "alice@example.com", "", "  "}
	expected := []string{"alice@example.com", "bob@example.com"}

	if got := NormalizeEmails(input); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestNormalizeStringSlice_Empty(t *testing.T) {
	got := NormalizeStringSlice(nil, TrimAndNormalize)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}
