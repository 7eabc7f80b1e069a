package model

import (
	"time"

	"github.com/google/uuid"
)

// Faculty is a teaching staff member of a department.
type Faculty struct {
	ID           uuid.UUID `json:"id"`
	DepartmentID uuid.UUID `json:"department"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Designation  *string   `json:"designation"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FacultyRequest is the payload for creating or replacing a faculty member.
type FacultyRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Email       string  `json:"email" binding:"required,email,max=254"`
	Designation *string `json:"designation" binding:"omitempty,max=50"`
}
