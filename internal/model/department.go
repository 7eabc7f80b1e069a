package model

import (
	"time"

	"github.com/google/uuid"
)

// Department is the tenant every other record belongs to. Rows are created
// lazily the first time an identity references a department code.
type Department struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// MaxDepartmentCodeLen matches the width of departments.code.
const MaxDepartmentCodeLen = 20

// DefaultDepartmentName is used when a department is created from a bare code.
func DefaultDepartmentName(code string) string {
	return "Department " + code
}
