package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/model"
)

type SubjectService struct {
	store SubjectStore
	log   zerolog.Logger
}

func NewSubjectService(store SubjectStore, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		store: store,
		log:   log.With().Str("component", "subject_service").Logger(),
	}
}

func (s *SubjectService) List(ctx context.Context, scope *model.Scope) ([]model.Subject, error) {
	if !scope.HasDepartment() {
		return []model.Subject{}, nil
	}
	return s.store.List(ctx, *scope.DepartmentID)
}

func (s *SubjectService) GetByID(ctx context.Context, scope *model.Scope, id uuid.UUID) (*model.Subject, error) {
	if !scope.HasDepartment() {
		return nil, model.ErrNotFound
	}
	return s.store.GetByID(ctx, *scope.DepartmentID, id)
}

func (s *SubjectService) Create(ctx context.Context, scope *model.Scope, req *model.SubjectRequest) (*model.Subject, error) {
	deptID, err := scope.Department()
	if err != nil {
		return nil, err
	}
	sub := &model.Subject{DepartmentID: deptID}
	applySubject(sub, req)
	if err := s.store.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubjectService) Update(ctx context.Context, scope *model.Scope, id uuid.UUID, req *model.SubjectRequest) (*model.Subject, error) {
	deptID, err := scope.Department()
	if err != nil {
		return nil, err
	}
	sub := &model.Subject{ID: id, DepartmentID: deptID}
	applySubject(sub, req)
	if err := s.store.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubjectService) Delete(ctx context.Context, scope *model.Scope, id uuid.UUID) error {
	deptID, err := scope.Department()
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, deptID, id)
}

// Codes are compared case-sensitively by the unique index, so normalize them.
func applySubject(sub *model.Subject, req *model.SubjectRequest) {
	sub.Name = strings.TrimSpace(req.Name)
	sub.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.Credits != nil {
		sub.Credits = *req.Credits
	}
}
