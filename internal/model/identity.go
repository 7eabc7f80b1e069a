package model

import "github.com/google/uuid"

// Identity is what the identity provider vouches for about a caller.
type Identity struct {
	UserID         string
	DepartmentCode *string
}

// Scope is the per-request view of the caller: their identity and, when
// they belong to one, the resolved department id.
type Scope struct {
	Identity     Identity
	DepartmentID *uuid.UUID
}

// HasDepartment reports whether the caller is attached to a department.
func (s *Scope) HasDepartment() bool {
	return s != nil && s.DepartmentID != nil
}

// Department returns the department id or ErrNoDepartmentAssigned.
func (s *Scope) Department() (uuid.UUID, error) {
	if !s.HasDepartment() {
		return uuid.Nil, ErrNoDepartmentAssigned
	}
	return *s.DepartmentID, nil
}
