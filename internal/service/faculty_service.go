package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/model"
)

// FacultyService handles faculty business logic within the caller's department.
type FacultyService struct {
	store FacultyStore
	log   zerolog.Logger
}

// NewFacultyService creates a new FacultyService.
func NewFacultyService(store FacultyStore, log zerolog.Logger) *FacultyService {
	return &FacultyService{
		store: store,
		log:   log.With().Str("component", "faculty_service").Logger(),
	}
}

// List returns the department's faculty. Callers without a department see none.
func (s *FacultyService) List(ctx context.Context, scope *model.Scope) ([]model.Faculty, error) {
	if !scope.HasDepartment() {
		return []model.Faculty{}, nil
	}
	return s.store.List(ctx, *scope.DepartmentID)
}

// GetByID retrieves a faculty member of the caller's department.
func (s *FacultyService) GetByID(ctx context.Context, scope *model.Scope, id uuid.UUID) (*model.Faculty, error) {
	if !scope.HasDepartment() {
		return nil, model.ErrNotFound
	}
	return s.store.GetByID(ctx, *scope.DepartmentID, id)
}

// Create adds a faculty member to the caller's department.
func (s *FacultyService) Create(ctx context.Context, scope *model.Scope, req *model.FacultyRequest) (*model.Faculty, error) {
	deptID, err := scope.Department()
	if err != nil {
		return nil, err
	}
	f := &model.Faculty{DepartmentID: deptID}
	applyFaculty(f, req)
	if err := s.store.Create(ctx, f); err != nil {
		return nil, err
	}
	s.log.Info().Str("faculty_id", f.ID.String()).Str("department_id", deptID.String()).Msg("Faculty created")
	return f, nil
}

// Update replaces a faculty member's fields.
func (s *FacultyService) Update(ctx context.Context, scope *model.Scope, id uuid.UUID, req *model.FacultyRequest) (*model.Faculty, error) {
	deptID, err := scope.Department()
	if err != nil {
		return nil, err
	}
	f := &model.Faculty{ID: id, DepartmentID: deptID}
	applyFaculty(f, req)
	if err := s.store.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes a faculty member together with their timetable entries.
func (s *FacultyService) Delete(ctx context.Context, scope *model.Scope, id uuid.UUID) error {
	deptID, err := scope.Department()
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, deptID, id)
}

func applyFaculty(f *model.Faculty, req *model.FacultyRequest) {
	f.Name = strings.TrimSpace(req.Name)
	f.Email = strings.ToLower(strings.TrimSpace(req.Email))
	f.Designation = req.Designation
}
