package model

import (
	"time"

	"github.com/google/uuid"
)

// Document is a reference PDF kept in the object store. Only metadata lives in Postgres.
type Document struct {
	ID           uuid.UUID `json:"id"`
	DepartmentID uuid.UUID `json:"department"`
	ObjectKey    string    `json:"-"`
	URL          string    `json:"url"`
	Filename     string    `json:"filename"`
	SizeBytes    int64     `json:"size_bytes"`
	PageCount    int       `json:"page_count"`
	Note         *string   `json:"note"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// DocumentUpload is the validated input of an upload.
type DocumentUpload struct {
	Filename string
	Body     []byte
	Note     *string
}
