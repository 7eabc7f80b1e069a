package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/timetable-backend/internal/model"
)

// FacultyRepository handles faculty data access. Every method is scoped to a department.
type FacultyRepository struct {
	pool *pgxpool.Pool
}

// NewFacultyRepository creates a new FacultyRepository.
func NewFacultyRepository(pool *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{pool: pool}
}

const facultyColumns = `id, department_id, name, email, designation, created_at, updated_at`

func scanFaculty(row interface{ Scan(dest ...any) error }, f *model.Faculty) error {
	return row.Scan(&f.ID, &f.DepartmentID, &f.Name, &f.Email, &f.Designation, &f.CreatedAt, &f.UpdatedAt)
}

// List returns the department's faculty ordered by name.
func (r *FacultyRepository) List(ctx context.Context, deptID uuid.UUID) ([]model.Faculty, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+facultyColumns+` FROM faculty WHERE department_id = $1 ORDER BY name ASC`, deptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	faculty := []model.Faculty{}
	for rows.Next() {
		var f model.Faculty
		if err := scanFaculty(rows, &f); err != nil {
			return nil, err
		}
		faculty = append(faculty, f)
	}
	return faculty, rows.Err()
}

// GetByID retrieves a faculty member of the department.
func (r *FacultyRepository) GetByID(ctx context.Context, deptID, id uuid.UUID) (*model.Faculty, error) {
	f := &model.Faculty{}
	err := scanFaculty(r.pool.QueryRow(ctx,
		`SELECT `+facultyColumns+` FROM faculty WHERE department_id = $1 AND id = $2`, deptID, id), f)
	if err != nil {
		return nil, mapError(err)
	}
	return f, nil
}

// Create inserts a faculty member. f.DepartmentID must already be set.
func (r *FacultyRepository) Create(ctx context.Context, f *model.Faculty) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO faculty (department_id, name, email, designation)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		f.DepartmentID, f.Name, f.Email, f.Designation,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	return mapError(err)
}

// Update replaces a faculty member's fields.
func (r *FacultyRepository) Update(ctx context.Context, f *model.Faculty) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE faculty SET name = $1, email = $2, designation = $3, updated_at = NOW()
		 WHERE department_id = $4 AND id = $5
		 RETURNING created_at, updated_at`,
		f.Name, f.Email, f.Designation, f.DepartmentID, f.ID,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	return mapError(err)
}

// Delete removes a faculty member and, by cascade, their timetable entries.
func (r *FacultyRepository) Delete(ctx context.Context, deptID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM faculty WHERE department_id = $1 AND id = $2`, deptID, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
