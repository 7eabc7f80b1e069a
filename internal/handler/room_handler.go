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

// RoomHandler handles room management.
type RoomHandler struct {
	roomService *service.RoomService
	log         zerolog.Logger
}

func NewRoomHandler(roomService *service.RoomService, log zerolog.Logger) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		log:         log.With().Str("component", "room_handler").Logger(),
	}
}

// List godoc
// GET /api/v1/timetable/rooms
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.roomService.List(c.Request.Context(), middleware.GetScope(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

// Get godoc
// GET /api/v1/timetable/rooms/:id
func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	room, err := h.roomService.GetByID(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// Create godoc
// POST /api/v1/timetable/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req model.RoomRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	room, err := h.roomService.Create(c.Request.Context(), middleware.GetScope(c), &req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

// Update godoc
// PUT /api/v1/timetable/rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.RoomRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	room, err := h.roomService.Update(c.Request.Context(), middleware.GetScope(c), id, &req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// Delete godoc
// DELETE /api/v1/timetable/rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.roomService.Delete(c.Request.Context(), middleware.GetScope(c), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Room deleted"})
}
