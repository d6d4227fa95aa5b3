package reconcile

import (
	"strings"

	"sirtis/internal/domain/models"
	"sirtis/internal/policy"
)

// Resolution is the per-document output of the resolver plus the derived
// folder path and change flag. Returned as-is in the operation's
// examples payload.
type Resolution struct {
	DocumentID      string                  `json:"document_id"`
	DepartmentName  string                  `json:"department"`
	SubUnitName     *string                 `json:"subunit"`
	DepartmentID    *string                 `json:"department_id"`
	Category        models.DocumentCategory `json:"category"`
	CategoryDisplay string                  `json:"category_display"`
	FolderPath      string                  `json:"folder_path"`
	Changed         bool                    `json:"changed"`

	// mergedMetadata is what a commit run writes back; not part of the
	// API payload.
	mergedMetadata models.Metadata
}

// deptResolution is the outcome of one department-resolution step.
type deptResolution struct {
	Name    string
	SubUnit string  // empty when the document maps to a top-level folder
	ID      *string // nil when the name matched no department row
}

// uploaderMatch carries the user/employee signals collected before the
// department fallback chain runs.
type uploaderMatch struct {
	user     *models.User
	employee *models.Employee
}

// Resolver computes canonical ownership and classification for documents.
// It operates purely over the pre-built indexes: no I/O, deterministic
// for a fixed snapshot.
type Resolver struct {
	idx    *indexes
	policy *policy.Registry
}

// NewResolver creates a resolver over a snapshot's indexes.
func NewResolver(idx *indexes, pol *policy.Registry) *Resolver {
	return &Resolver{idx: idx, policy: pol}
}

// Resolve computes the canonical department, sub-unit, and category
// display label for a single document.
func (r *Resolver) Resolve(doc *models.Document) Resolution {
	dept := r.resolveDepartment(doc)
	category := models.NormalizeCategory(doc.Category)
	display := r.categoryDisplay(doc, category)

	res := Resolution{
		DocumentID:      doc.ID,
		DepartmentName:  dept.Name,
		DepartmentID:    dept.ID,
		Category:        category,
		CategoryDisplay: display,
	}
	if dept.SubUnit != "" {
		sub := dept.SubUnit
		res.SubUnitName = &sub
	}
	return res
}

// resolveDepartment runs the ordered fallback chain: first step to
// produce a result wins, later steps are never attempted.
func (r *Resolver) resolveDepartment(doc *models.Document) deptResolution {
	uploader := r.matchUploader(doc)

	steps := []func() (deptResolution, bool){
		func() (deptResolution, bool) { return r.fromDeclaredName(doc) },
		func() (deptResolution, bool) { return r.fromUploaderDepartment(uploader) },
		func() (deptResolution, bool) { return r.fromDepartmentID(doc.DepartmentID) },
		func() (deptResolution, bool) {
			if uploader.employee == nil {
				return deptResolution{}, false
			}
			return r.fromDepartmentID(uploader.employee.DepartmentID)
		},
	}

	for _, step := range steps {
		if res, ok := step(); ok {
			return res
		}
	}

	return deptResolution{Name: r.policy.FallbackDepartment()}
}

// fromDeclaredName uses the document's own department field when it is
// present and not a placeholder.
func (r *Resolver) fromDeclaredName(doc *models.Document) (deptResolution, bool) {
	name := strings.TrimSpace(doc.DepartmentName)
	if r.policy.IsPlaceholderDepartment(name) {
		return deptResolution{}, false
	}
	// A department id pointing at a sub-unit of the declared department
	// refines the name match: a prior pass stores the parent name with
	// the sub-unit's id, and that pairing must keep resolving to the
	// sub-unit folder.
	if res, ok := r.fromDepartmentID(doc.DepartmentID); ok && strings.EqualFold(res.Name, name) {
		return res, true
	}
	return r.classifyName(name), true
}

// fromUploaderDepartment takes the department declared on the matched
// user, falling back to the matched employee's.
func (r *Resolver) fromUploaderDepartment(uploader uploaderMatch) (deptResolution, bool) {
	var name string
	if uploader.user != nil {
		name = strings.TrimSpace(uploader.user.DepartmentName)
	}
	if name == "" && uploader.employee != nil {
		name = strings.TrimSpace(uploader.employee.DepartmentName)
	}
	if name == "" {
		return deptResolution{}, false
	}
	return r.classifyName(name), true
}

// fromDepartmentID resolves a department reference through the id index.
// A node with a parent is treated as a sub-unit of that parent; deeper
// hierarchies are flattened to the immediate parent's name rather than
// walked upward.
func (r *Resolver) fromDepartmentID(id *string) (deptResolution, bool) {
	if id == nil || *id == "" {
		return deptResolution{}, false
	}
	dept, ok := r.idx.departmentByID[*id]
	if !ok {
		return deptResolution{}, false
	}

	deptID := dept.ID
	if dept.IsSubUnit() {
		parentName := dept.Name
		if parent, found := r.idx.departmentByID[*dept.ParentID]; found {
			parentName = parent.Name
		}
		return deptResolution{Name: parentName, SubUnit: dept.Name, ID: &deptID}, true
	}
	return deptResolution{Name: dept.Name, ID: &deptID}, true
}

// classifyName maps an established department name candidate onto the
// hierarchy: a sub-unit match remaps to its parent, a top-level match
// attaches the id, and an unmatched name is kept as-is without one.
func (r *Resolver) classifyName(name string) deptResolution {
	key := normalizeKey(name)
	if sub, ok := r.idx.subUnitByName[key]; ok {
		id := sub.ID
		return deptResolution{Name: sub.ParentName, SubUnit: sub.Name, ID: &id}
	}
	if top, ok := r.idx.topLevelByName[key]; ok {
		id := top.ID
		return deptResolution{Name: name, ID: &id}
	}
	return deptResolution{Name: name}
}

// matchUploader identifies the uploading user and a linked employee.
// The declared uploader field is tried as an email when it looks like
// one, then as a full name; the creation-audit actor is the last resort.
func (r *Resolver) matchUploader(doc *models.Document) uploaderMatch {
	uploadedBy := normalizeKey(doc.UploadedBy)
	actorID := r.idx.auditActorByDocumentID[doc.ID]

	var user *models.User
	if uploadedBy != "" {
		if strings.Contains(uploadedBy, "@") {
			user = r.idx.userByEmail[uploadedBy]
		} else {
			user = r.idx.userByFullName[uploadedBy]
		}
	}
	if user == nil && actorID != "" {
		user = r.idx.userByID[actorID]
	}

	var employee *models.Employee
	if user != nil {
		employee = r.idx.employeeByUserID[user.ID]
	}
	if employee == nil && uploadedBy != "" {
		employee = r.idx.employeeByEmail[uploadedBy]
	}
	if employee == nil && uploadedBy != "" {
		employee = r.idx.employeeByFullName[uploadedBy]
	}
	if employee == nil && user == nil && actorID != "" {
		employee = r.idx.employeeByUserID[actorID]
	}

	return uploaderMatch{user: user, employee: employee}
}

// categoryDisplay returns the folder label for the document's category.
// An explicit override in the document's custom metadata wins over the
// enum table.
func (r *Resolver) categoryDisplay(doc *models.Document, category models.DocumentCategory) string {
	if override := strings.TrimSpace(doc.CustomMetadata.StringValue(r.policy.MetadataOverrideKey())); override != "" {
		return override
	}
	return category.DisplayName()
}
