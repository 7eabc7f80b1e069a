package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/timetable-backend/internal/model"
)

// RoomRepository handles room data access.
type RoomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

func (r *RoomRepository) List(ctx context.Context, deptID uuid.UUID) ([]model.Room, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, department_id, name, capacity, room_type, created_at, updated_at
		 FROM rooms WHERE department_id = $1 ORDER BY name ASC`, deptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := []model.Room{}
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.DepartmentID, &rm.Name, &rm.Capacity, &rm.Type, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

func (r *RoomRepository) GetByID(ctx context.Context, deptID, id uuid.UUID) (*model.Room, error) {
	rm := &model.Room{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, department_id, name, capacity, room_type, created_at, updated_at
		 FROM rooms WHERE department_id = $1 AND id = $2`, deptID, id,
	).Scan(&rm.ID, &rm.DepartmentID, &rm.Name, &rm.Capacity, &rm.Type, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return rm, nil
}

func (r *RoomRepository) Create(ctx context.Context, rm *model.Room) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO rooms (department_id, name, capacity, room_type)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		rm.DepartmentID, rm.Name, rm.Capacity, rm.Type,
	).Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt)
	return mapError(err)
}

func (r *RoomRepository) Update(ctx context.Context, rm *model.Room) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE rooms SET name = $1, capacity = $2, room_type = $3, updated_at = NOW()
		 WHERE department_id = $4 AND id = $5
		 RETURNING created_at, updated_at`,
		rm.Name, rm.Capacity, rm.Type, rm.DepartmentID, rm.ID,
	).Scan(&rm.CreatedAt, &rm.UpdatedAt)
	return mapError(err)
}

func (r *RoomRepository) Delete(ctx context.Context, deptID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rooms WHERE department_id = $1 AND id = $2`, deptID, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
