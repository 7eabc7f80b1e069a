package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/timetable-backend/internal/model"
)

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

func (r *SubjectRepository) List(ctx context.Context, deptID uuid.UUID) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, department_id, name, code, credits, created_at, updated_at
		 FROM subjects WHERE department_id = $1 ORDER BY code ASC`, deptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []model.Subject{}
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.DepartmentID, &s.Name, &s.Code, &s.Credits, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *SubjectRepository) GetByID(ctx context.Context, deptID, id uuid.UUID) (*model.Subject, error) {
	s := &model.Subject{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, department_id, name, code, credits, created_at, updated_at
		 FROM subjects WHERE department_id = $1 AND id = $2`, deptID, id,
	).Scan(&s.ID, &s.DepartmentID, &s.Name, &s.Code, &s.Credits, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO subjects (department_id, name, code, credits) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.DepartmentID, s.Name, s.Code, s.Credits).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt))
}

func (r *SubjectRepository) Update(ctx context.Context, s *model.Subject) error {
	return mapError(r.pool.QueryRow(ctx,
		`UPDATE subjects SET name = $1, code = $2, credits = $3, updated_at = NOW()
		 WHERE department_id = $4 AND id = $5
		 RETURNING created_at, updated_at`,
		s.Name, s.Code, s.Credits, s.DepartmentID, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt))
}

func (r *SubjectRepository) Delete(ctx context.Context, deptID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE department_id = $1 AND id = $2`, deptID, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
