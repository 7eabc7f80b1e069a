package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/middleware"
	"github.com/campusgrid/timetable-backend/internal/model"
	"github.com/campusgrid/timetable-backend/internal/response"
	"github.com/campusgrid/timetable-backend/internal/service"
	"github.com/campusgrid/timetable-backend/internal/validator"
)

// EntryHandler handles timetable entries. Creates and updates go through the
// conflict checker in TimetableService.
type EntryHandler struct {
	timetableService *service.TimetableService
	log              zerolog.Logger
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(timetableService *service.TimetableService, log zerolog.Logger) *EntryHandler {
	return &EntryHandler{
		timetableService: timetableService,
		log:              log.With().Str("component", "entry_handler").Logger(),
	}
}

// List godoc
// GET /api/v1/timetable/entries?day=&room_id=&faculty_id=&semester=&section=&academic_year=
func (h *EntryHandler) List(c *gin.Context) {
	filter, fields := parseEntryFilter(c)
	if fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	entries, err := h.timetableService.List(c.Request.Context(), middleware.GetScope(c), filter)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}

// Get godoc
// GET /api/v1/timetable/entries/:id
func (h *EntryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entry, err := h.timetableService.GetByID(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entry": entry})
}

// Create godoc
// POST /api/v1/timetable/entries
func (h *EntryHandler) Create(c *gin.Context) {
	entry, ok := h.bindEntry(c)
	if !ok {
		return
	}
	created, err := h.timetableService.Create(c.Request.Context(), middleware.GetScope(c), entry)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"entry": created})
}

// Update godoc
// PUT /api/v1/timetable/entries/:id
// The entry is replaced as a whole. It does not conflict with its own previous slot.
func (h *EntryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entry, ok := h.bindEntry(c)
	if !ok {
		return
	}
	updated, err := h.timetableService.Update(c.Request.Context(), middleware.GetScope(c), id, entry)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entry": updated})
}

// Delete godoc
// DELETE /api/v1/timetable/entries/:id
func (h *EntryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.timetableService.Delete(c.Request.Context(), middleware.GetScope(c), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Timetable entry deleted"})
}

func (h *EntryHandler) bindEntry(c *gin.Context) (*model.TimetableEntry, bool) {
	var req model.EntryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return nil, false
	}
	entry, err := req.ToEntry()
	if err != nil {
		writeError(c, h.log, err)
		return nil, false
	}
	return entry, true
}

// parseEntryFilter reads the optional list filters. Every malformed value is
// reported under its query parameter name.
func parseEntryFilter(c *gin.Context) (model.EntryFilter, map[string]string) {
	var (
		filter model.EntryFilter
		fields = map[string]string{}
	)

	if raw := c.Query("day"); raw != "" {
		n, err := strconv.Atoi(raw)
		if day := model.Weekday(n); err != nil || !day.Valid() {
			fields["day"] = "day must be between 0 (Monday) and 6 (Sunday)"
		} else {
			filter.DayOfWeek = &day
		}
	}
	if raw := c.Query("room_id"); raw != "" {
		if id, err := uuid.Parse(raw); err != nil {
			fields["room_id"] = "room_id must be a valid UUID"
		} else {
			filter.RoomID = &id
		}
	}
	if raw := c.Query("faculty_id"); raw != "" {
		if id, err := uuid.Parse(raw); err != nil {
			fields["faculty_id"] = "faculty_id must be a valid UUID"
		} else {
			filter.FacultyID = &id
		}
	}
	if raw := c.Query("semester"); raw != "" {
		if n, err := strconv.Atoi(raw); err != nil || n < 1 {
			fields["semester"] = "semester must be a positive number"
		} else {
			filter.Semester = &n
		}
	}
	if raw := c.Query("section"); raw != "" {
		filter.Section = &raw
	}
	if raw := c.Query("academic_year"); raw != "" {
		if n, err := strconv.Atoi(raw); err != nil {
			fields["academic_year"] = "academic_year must be a number"
		} else {
			filter.AcademicYear = &n
		}
	}

	if len(fields) > 0 {
		return filter, fields
	}
	return filter, nil
}
