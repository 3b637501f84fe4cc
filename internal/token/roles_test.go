package token

import (
	"reflect"
	"sort"
	"testing"
)

func TestRoles(t *testing.T) {
	tests := []struct {
		name     string
		claims   map[string]any
		expected []string
	}{
		{
			name:     "scope string splits on spaces",
			claims:   map[string]any{"scope": "a b c"},
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "singular role claim",
			claims:   map[string]any{"role": "ADMIN"},
			expected: []string{"ADMIN"},
		},
		{
			name: "union across claim shapes deduplicates",
			claims: map[string]any{
				"roles":       []any{"ROLE_USER", "ROLE_ADMIN"},
				"authorities": []any{"ROLE_USER"},
				"scope":       "read write",
				"role":        "ROLE_ADMIN",
			},
			expected: []string{"ROLE_USER", "ROLE_ADMIN", "read", "write"},
		},
		{
			name:     "non-string values coerced",
			claims:   map[string]any{"role": float64(7)},
			expected: []string{"7"},
		},
		{
			name:     "empty values dropped",
			claims:   map[string]any{"scope": "a  b", "roles": []any{""}},
			expected: []string{"a", "b"},
		},
		{
			name:     "nil claims",
			claims:   nil,
			expected: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Roles(tt.claims)
			if got == nil {
				t.Fatal("Roles must never return nil")
			}
			sort.Strings(got)
			want := append([]string{}, tt.expected...)
			sort.Strings(want)
			if len(got) != len(want) || !reflect.DeepEqual(got, want) {
				t.Errorf("Expected %v, got %v", want, got)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		expected bool
	}{
		{"literal ADMIN", []string{"ADMIN"}, true},
		{"ROLE_ADMIN substring", []string{"ROLE_ADMIN_X"}, true},
		{"plain user", []string{"ROLE_USER"}, false},
		{"lowercase admin is not admin", []string{"admin"}, false},
		{"empty set", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAdmin(tt.roles); got != tt.expected {
				t.Errorf("IsAdmin(%v) = %v, expected %v", tt.roles, got, tt.expected)
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name     string
		claims   map[string]any
		expected string
	}{
		{"email first", map[string]any{"email": "a@x", "sub": "s", "username": "u"}, "a@x"},
		{"sub fallback", map[string]any{"sub": "s", "username": "u"}, "s"},
		{"username fallback", map[string]any{"username": "u"}, "u"},
		{"none", map[string]any{}, ""},
		{"nil claims", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identity(tt.claims); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
