// Package policy loads the reconciliation policy that tunes how document
// ownership metadata is normalized: which declared department names count
// as placeholders, the fallback department for unresolvable documents, and
// the metadata key that overrides category display labels.
package policy

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// ReconciliationPolicy is the parsed policy file.
type ReconciliationPolicy struct {
	FallbackDepartment     string   `yaml:"fallback_department"`
	MetadataOverrideKey    string   `yaml:"metadata_override_key"`
	PlaceholderDepartments []string `yaml:"placeholder_departments"`
}

// Registry holds the loaded policy with normalized lookup structures.
type Registry struct {
	policy       ReconciliationPolicy
	placeholders map[string]struct{}
}

// NewRegistry loads the embedded reconciliation policy file.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/reconciliation.yaml")
	if err != nil {
		return nil, fmt.Errorf("read reconciliation policy: %w", err)
	}

	var p ReconciliationPolicy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal reconciliation policy: %w", err)
	}

	if strings.TrimSpace(p.FallbackDepartment) == "" {
		return nil, fmt.Errorf("reconciliation policy: fallback_department must not be empty")
	}
	if strings.TrimSpace(p.MetadataOverrideKey) == "" {
		return nil, fmt.Errorf("reconciliation policy: metadata_override_key must not be empty")
	}

	placeholders := make(map[string]struct{}, len(p.PlaceholderDepartments))
	for _, name := range p.PlaceholderDepartments {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if normalized == "" {
			continue
		}
		placeholders[normalized] = struct{}{}
	}

	return &Registry{policy: p, placeholders: placeholders}, nil
}

// IsPlaceholderDepartment reports whether the declared department name is a
// placeholder meaning "unknown". Matching is trim + lowercase; an empty
// name is always a placeholder.
func (r *Registry) IsPlaceholderDepartment(name string) bool {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return true
	}
	_, ok := r.placeholders[normalized]
	return ok
}

// FallbackDepartment returns the department name assigned to documents
// whose ownership cannot be resolved through any signal.
func (r *Registry) FallbackDepartment() string {
	return r.policy.FallbackDepartment
}

// MetadataOverrideKey returns the custom-metadata key whose value overrides
// the derived category display label.
func (r *Registry) MetadataOverrideKey() string {
	return r.policy.MetadataOverrideKey
}
