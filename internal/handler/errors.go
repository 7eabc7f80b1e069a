package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/model"
	"github.com/campusgrid/timetable-backend/internal/response"
)

// writeError maps a service error onto the response envelope. Anything not
// recognised is logged and reported as a generic internal error.
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	var (
		conflict    *model.ConflictError
		fieldErr    *model.FieldError
		fieldErrors model.FieldErrors
	)

	switch {
	case errors.As(err, &conflict):
		code := response.ErrRoomConflict
		if conflict.Kind == model.FacultyConflict {
			code = response.ErrFacultyConflict
		}
		fields := map[string]string{conflict.Field(): conflict.Message()}
		if conflict.ConflictingID != uuid.Nil {
			fields["conflict_with"] = conflict.ConflictingID.String()
		}
		response.FailWithFields(c, http.StatusBadRequest, code, fields)

	case errors.As(err, &fieldErr):
		code := response.ErrValidation
		if errors.Is(err, model.ErrDuplicateKey) {
			code = response.ErrDuplicateKey
		}
		response.FailWithFields(c, http.StatusBadRequest, code, map[string]string{fieldErr.Field: fieldErr.Message})

	case errors.As(err, &fieldErrors):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fieldErrors)

	case errors.Is(err, model.ErrValidation):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"detail": err.Error()})

	case errors.Is(err, model.ErrUnsupportedFile):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrUnsupportedFile, map[string]string{"file": err.Error()})

	case errors.Is(err, model.ErrFileTooLarge):
		response.FailWithFields(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge, map[string]string{"file": err.Error()})

	case errors.Is(err, model.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)

	case errors.Is(err, model.ErrNoDepartmentAssigned):
		response.Fail(c, http.StatusForbidden, response.ErrNoDepartmentAssigned)

	case errors.Is(err, model.ErrAuthenticationFailed):
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthenticationFailed)

	case errors.Is(err, model.ErrUploadFailed):
		log.Error().Err(err).Msg("Object store upload failed")
		response.Fail(c, http.StatusBadGateway, response.ErrUploadFailed)

	case errors.Is(err, model.ErrFetchFailed):
		log.Error().Err(err).Msg("Object store fetch failed")
		response.Fail(c, http.StatusBadGateway, response.ErrFetchFailed)

	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// parseID reads a UUID path parameter, answering 400 when it is malformed.
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
