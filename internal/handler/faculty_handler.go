package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/middleware"
	"github.com/campusgrid/timetable-backend/internal/model"
	"github.com/campusgrid/timetable-backend/internal/response"
	"github.com/campusgrid/timetable-backend/internal/service"
	"github.com/campusgrid/timetable-backend/internal/validator"
)

// FacultyHandler handles faculty management for the caller's department.
type FacultyHandler struct {
	facultyService *service.FacultyService
	log            zerolog.Logger
}

// NewFacultyHandler creates a new FacultyHandler.
func NewFacultyHandler(facultyService *service.FacultyService, log zerolog.Logger) *FacultyHandler {
	return &FacultyHandler{
		facultyService: facultyService,
		log:            log.With().Str("component", "faculty_handler").Logger(),
	}
}

// List godoc
// GET /api/v1/timetable/faculty
func (h *FacultyHandler) List(c *gin.Context) {
	faculty, err := h.facultyService.List(c.Request.Context(), middleware.GetScope(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"faculty": faculty})
}

// Get godoc
// GET /api/v1/timetable/faculty/:id
func (h *FacultyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	f, err := h.facultyService.GetByID(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"faculty": f})
}

// Create godoc
// POST /api/v1/timetable/faculty
// The department is taken from the caller, never from the body.
func (h *FacultyHandler) Create(c *gin.Context) {
	var req model.FacultyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	f, err := h.facultyService.Create(c.Request.Context(), middleware.GetScope(c), &req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"faculty": f})
}

// Update godoc
// PUT /api/v1/timetable/faculty/:id
func (h *FacultyHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.FacultyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	f, err := h.facultyService.Update(c.Request.Context(), middleware.GetScope(c), id, &req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"faculty": f})
}

// Delete godoc
// DELETE /api/v1/timetable/faculty/:id
// Also removes the faculty member's timetable entries.
func (h *FacultyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.facultyService.Delete(c.Request.Context(), middleware.GetScope(c), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Faculty member deleted"})
}
