package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/timetable-backend/internal/model"
)

// DocumentRepository stores metadata of uploaded reference PDFs.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Create inserts the metadata row of a stored object.
func (r *DocumentRepository) Create(ctx context.Context, d *model.Document) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO documents (department_id, object_key, url, filename, size_bytes, page_count, note)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, uploaded_at`,
		d.DepartmentID, d.ObjectKey, d.URL, d.Filename, d.SizeBytes, d.PageCount, d.Note,
	).Scan(&d.ID, &d.UploadedAt)
	return mapError(err)
}

// List returns the department's documents, newest first.
func (r *DocumentRepository) List(ctx context.Context, deptID uuid.UUID) ([]model.Document, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, department_id, object_key, url, filename, size_bytes, page_count, note, uploaded_at
		 FROM documents WHERE department_id = $1 ORDER BY uploaded_at DESC`, deptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.DepartmentID, &d.ObjectKey, &d.URL, &d.Filename,
			&d.SizeBytes, &d.PageCount, &d.Note, &d.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// GetByID retrieves a document of the department.
func (r *DocumentRepository) GetByID(ctx context.Context, deptID, id uuid.UUID) (*model.Document, error) {
	d := &model.Document{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, department_id, object_key, url, filename, size_bytes, page_count, note, uploaded_at
		 FROM documents WHERE department_id = $1 AND id = $2`, deptID, id,
	).Scan(&d.ID, &d.DepartmentID, &d.ObjectKey, &d.URL, &d.Filename,
		&d.SizeBytes, &d.PageCount, &d.Note, &d.UploadedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

// Delete removes the metadata row and returns the object key it pointed to.
func (r *DocumentRepository) Delete(ctx context.Context, deptID, id uuid.UUID) (string, error) {
	var key string
	err := r.pool.QueryRow(ctx,
		`DELETE FROM documents WHERE department_id = $1 AND id = $2 RETURNING object_key`, deptID, id,
	).Scan(&key)
	if err != nil {
		return "", mapError(err)
	}
	return key, nil
}
