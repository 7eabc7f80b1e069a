package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/timetable-backend/internal/model"
)

// DepartmentRepository handles department data access.
type DepartmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository creates a new DepartmentRepository.
func NewDepartmentRepository(pool *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

// GetOrCreateByCode returns the department with the given code, inserting it
// with name when it does not exist yet. Concurrent callers get the same row.
func (r *DepartmentRepository) GetOrCreateByCode(ctx context.Context, code, name string) (*model.Department, error) {
	d := &model.Department{}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO departments (code, name) VALUES ($1, $2)
		 ON CONFLICT (code) DO UPDATE SET code = EXCLUDED.code
		 RETURNING id, code, name, created_at`,
		code, name,
	).Scan(&d.ID, &d.Code, &d.Name, &d.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}
