package models

import "strings"

// User is an authentication principal. The department field is free
// text declared at signup, not a foreign key.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DepartmentName string `json:"department"`
}

// FullName returns "first last" trimmed, or "" when both parts are absent.
func (u *User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// Employee is an HR record, distinct from User but usually linked to one.
type Employee struct {
	ID             string  `json:"id"`
	UserID         *string `json:"user_id,omitempty"`
	Email          string  `json:"email"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	DepartmentName string  `json:"department"`
	DepartmentID   *string `json:"department_id,omitempty"`
}

// FullName returns "first last" trimmed, or "" when both parts are absent.
func (e *Employee) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
}
