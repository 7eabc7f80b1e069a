package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/config"
	"github.com/campusgrid/timetable-backend/internal/model"
)

// DepartmentService maps identities to departments, creating departments on
// first reference. The code to id mapping is cached in Redis.
type DepartmentService struct {
	store DepartmentStore
	rdb   *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

// NewDepartmentService creates a new DepartmentService. rdb may be nil, in
// which case every lookup goes to the store.
func NewDepartmentService(store DepartmentStore, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *DepartmentService {
	return &DepartmentService{
		store: store,
		rdb:   rdb,
		ttl:   ttl,
		log:   log.With().Str("component", "department_service").Logger(),
	}
}

// Resolve returns the department id for identity, or nil when the identity
// carries no department code.
func (s *DepartmentService) Resolve(ctx context.Context, identity model.Identity) (*uuid.UUID, error) {
	if identity.DepartmentCode == nil || *identity.DepartmentCode == "" {
		return nil, nil
	}
	code := *identity.DepartmentCode

	if id, ok := s.cached(ctx, code); ok {
		return &id, nil
	}

	dept, err := s.store.GetOrCreateByCode(ctx, code, model.DefaultDepartmentName(code))
	if err != nil {
		return nil, fmt.Errorf("resolve department %q: %w", code, err)
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, config.CacheKey.DepartmentCodeKey(code), dept.ID.String(), s.ttl).Err(); err != nil {
			s.log.Warn().Err(err).Str("code", code).Msg("Failed to cache department id")
		}
	}
	return &dept.ID, nil
}

func (s *DepartmentService) cached(ctx context.Context, code string) (uuid.UUID, bool) {
	if s.rdb == nil {
		return uuid.Nil, false
	}

	raw, err := s.rdb.Get(ctx, config.CacheKey.DepartmentCodeKey(code)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("code", code).Msg("Department cache unavailable, falling back to database")
		}
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		s.log.Warn().Str("code", code).Str("value", raw).Msg("Discarding malformed cached department id")
		return uuid.Nil, false
	}
	return id, true
}
