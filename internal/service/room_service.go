package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/model"
)

// RoomService handles room business logic within the caller's department.
type RoomService struct {
	store RoomStore
	log   zerolog.Logger
}

func NewRoomService(store RoomStore, log zerolog.Logger) *RoomService {
	return &RoomService{
		store: store,
		log:   log.With().Str("component", "room_service").Logger(),
	}
}

func (s *RoomService) List(ctx context.Context, scope *model.Scope) ([]model.Room, error) {
	if !scope.HasDepartment() {
		return []model.Room{}, nil
	}
	return s.store.List(ctx, *scope.DepartmentID)
}

func (s *RoomService) GetByID(ctx context.Context, scope *model.Scope, id uuid.UUID) (*model.Room, error) {
	if !scope.HasDepartment() {
		return nil, model.ErrNotFound
	}
	return s.store.GetByID(ctx, *scope.DepartmentID, id)
}

func (s *RoomService) Create(ctx context.Context, scope *model.Scope, req *model.RoomRequest) (*model.Room, error) {
	deptID, err := scope.Department()
	if err != nil {
		return nil, err
	}
	r := &model.Room{
		DepartmentID: deptID,
		Name:         strings.TrimSpace(req.Name),
		Capacity:     req.Capacity,
		Type:         req.Type,
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info().Str("room_id", r.ID.String()).Str("name", r.Name).Msg("Room created")
	return r, nil
}

func (s *RoomService) Update(ctx context.Context, scope *model.Scope, id uuid.UUID, req *model.RoomRequest) (*model.Room, error) {
	deptID, err := scope.Department()
	if err != nil {
		return nil, err
	}
	r := &model.Room{
		ID:           id,
		DepartmentID: deptID,
		Name:         strings.TrimSpace(req.Name),
		Capacity:     req.Capacity,
		Type:         req.Type,
	}
	if err := s.store.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes a room; entries booked in it are removed by cascade.
func (s *RoomService) Delete(ctx context.Context, scope *model.Scope, id uuid.UUID) error {
	deptID, err := scope.Department()
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, deptID, id)
}
