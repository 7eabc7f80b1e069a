package model

import (
	"time"

	"github.com/google/uuid"
)

// Subject represents a course taught in a department. Codes are unique per department.
type Subject struct {
	ID           uuid.UUID `json:"id"`
	DepartmentID uuid.UUID `json:"department"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Credits      int       `json:"credits"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SubjectRequest is the payload for creating or replacing a subject.
type SubjectRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Code    string `json:"code" binding:"required,min=1,max=20"`
	Credits *int   `json:"credits" binding:"required,min=0,max=60"`
}
