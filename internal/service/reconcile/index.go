package reconcile

import (
	"strings"

	"sirtis/internal/domain/models"
)

// departmentRef points at a top-level department by normalized name.
type departmentRef struct {
	ID   string
	Name string
}

// subUnitRef points at a sub-unit by normalized name, carrying the
// resolved parent name. When the parent lookup fails, ParentName falls
// back to the sub-unit's own name so resolution never produces an empty
// department.
type subUnitRef struct {
	ID         string
	Name       string
	ParentName string
}

// indexes holds the normalized lookup maps the resolver works over.
// All keys are trim+lowercase; empty keys are never inserted. Where two
// rows normalize to the same key, the first one (in repository order,
// which is deterministic) wins, so index-building order can never change
// the outcome of a single document's fallback chain between runs.
type indexes struct {
	departmentByID         map[string]models.Department
	topLevelByName         map[string]departmentRef
	subUnitByName          map[string]subUnitRef
	userByEmail            map[string]*models.User
	userByFullName         map[string]*models.User
	userByID               map[string]*models.User
	employeeByEmail        map[string]*models.Employee
	employeeByFullName     map[string]*models.Employee
	employeeByUserID       map[string]*models.Employee
	auditActorByDocumentID map[string]string
}

// normalizeKey lowercases and trims a lookup key.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func buildIndexes(snap *Snapshot) *indexes {
	idx := &indexes{
		departmentByID:         make(map[string]models.Department, len(snap.Departments)),
		topLevelByName:         make(map[string]departmentRef),
		subUnitByName:          make(map[string]subUnitRef),
		userByEmail:            make(map[string]*models.User, len(snap.Users)),
		userByFullName:         make(map[string]*models.User),
		userByID:               make(map[string]*models.User, len(snap.Users)),
		employeeByEmail:        make(map[string]*models.Employee, len(snap.Employees)),
		employeeByFullName:     make(map[string]*models.Employee),
		employeeByUserID:       make(map[string]*models.Employee),
		auditActorByDocumentID: make(map[string]string),
	}

	for _, dept := range snap.Departments {
		idx.departmentByID[dept.ID] = dept
	}
	for _, dept := range snap.Departments {
		key := normalizeKey(dept.Name)
		if key == "" {
			continue
		}
		if dept.IsSubUnit() {
			parentName := dept.Name
			if parent, ok := idx.departmentByID[*dept.ParentID]; ok {
				parentName = parent.Name
			}
			if _, exists := idx.subUnitByName[key]; !exists {
				idx.subUnitByName[key] = subUnitRef{ID: dept.ID, Name: dept.Name, ParentName: parentName}
			}
		} else {
			if _, exists := idx.topLevelByName[key]; !exists {
				idx.topLevelByName[key] = departmentRef{ID: dept.ID, Name: dept.Name}
			}
		}
	}

	for i := range snap.Users {
		user := &snap.Users[i]
		idx.userByID[user.ID] = user
		if key := normalizeKey(user.Email); key != "" {
			if _, exists := idx.userByEmail[key]; !exists {
				idx.userByEmail[key] = user
			}
		}
		if key := normalizeKey(user.FullName()); key != "" {
			if _, exists := idx.userByFullName[key]; !exists {
				idx.userByFullName[key] = user
			}
		}
	}

	for i := range snap.Employees {
		emp := &snap.Employees[i]
		if key := normalizeKey(emp.Email); key != "" {
			if _, exists := idx.employeeByEmail[key]; !exists {
				idx.employeeByEmail[key] = emp
			}
		}
		if key := normalizeKey(emp.FullName()); key != "" {
			if _, exists := idx.employeeByFullName[key]; !exists {
				idx.employeeByFullName[key] = emp
			}
		}
		if emp.UserID != nil && *emp.UserID != "" {
			if _, exists := idx.employeeByUserID[*emp.UserID]; !exists {
				idx.employeeByUserID[*emp.UserID] = emp
			}
		}
	}

	// Entries arrive oldest first; the earliest creation actor wins.
	for _, entry := range snap.AuditEntries {
		if entry.ActorID == "" {
			continue
		}
		if _, exists := idx.auditActorByDocumentID[entry.DocumentID]; !exists {
			idx.auditActorByDocumentID[entry.DocumentID] = entry.ActorID
		}
	}

	return idx
}
