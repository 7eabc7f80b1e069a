package model

import (
	"time"

	"github.com/google/uuid"
)

// RoomType classifies a room.
type RoomType string

const (
	RoomTypeLecture RoomType = "Lecture"
	RoomTypeLab     RoomType = "Lab"
	RoomTypeSeminar RoomType = "Seminar"
)

// Room is a bookable space owned by a department. Names are unique per department.
type Room struct {
	ID           uuid.UUID `json:"id"`
	DepartmentID uuid.UUID `json:"department"`
	Name         string    `json:"name"`
	Capacity     int       `json:"capacity"`
	Type         RoomType  `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoomRequest is the payload for creating or replacing a room.
type RoomRequest struct {
	Name     string   `json:"name" binding:"required,min=1,max=50"`
	Capacity int      `json:"capacity" binding:"required,min=1"`
	Type     RoomType `json:"type" binding:"required,roomtype"`
}

// Valid reports whether t is a known room type.
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeLecture, RoomTypeLab, RoomTypeSeminar:
		return true
	}
	return false
}
