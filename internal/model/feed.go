package model

import (
	"time"

	"github.com/google/uuid"
)

// FeedEventType tells subscribers what happened to an entry.
type FeedEventType string

const (
	FeedEntryCreated FeedEventType = "created"
	FeedEntryUpdated FeedEventType = "updated"
	FeedEntryDeleted FeedEventType = "deleted"
)

// FeedEvent is published on a department's timetable channel after every successful entry write.
type FeedEvent struct {
	Type      FeedEventType `json:"type"`
	EntryID   uuid.UUID     `json:"entry_id"`
	DayOfWeek Weekday       `json:"day_of_week"`
	At        time.Time     `json:"at"`
}
