package models

import "time"

// Department is a node in the two-level organizational hierarchy.
// Top-level departments have no parent; sub-units have exactly one
// parent, which is itself expected to be top-level. Deeper nesting is
// flattened by the reconciler rather than resolved.
type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsSubUnit reports whether the department has a parent.
func (d *Department) IsSubUnit() bool {
	return d.ParentID != nil && *d.ParentID != ""
}

// DepartmentNode is a department with its sub-units, used by the
// department tree endpoint.
type DepartmentNode struct {
	Department
	SubUnits []Department `json:"sub_units,omitempty"`
}
