package policy

import "testing"

func TestNewRegistry_LoadsEmbeddedPolicy(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	if reg.FallbackDepartment() == "" {
		t.Error("FallbackDepartment() is empty")
	}
	if reg.MetadataOverrideKey() == "" {
		t.Error("MetadataOverrideKey() is empty")
	}
}

func TestRegistry_IsPlaceholderDepartment(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"listed placeholder", "Unknown Department", true},
		{"case and padding insensitive", "  UNKNOWN  ", true},
		{"n/a marker", "n/a", true},
		{"real department", "Finance", false},
		{"name containing a placeholder word", "Unknown Futures Desk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reg.IsPlaceholderDepartment(tt.input); got != tt.want {
				t.Errorf("IsPlaceholderDepartment(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
