package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Clock is a time of day with second precision, stored as seconds since midnight.
type Clock int32

const secondsPerDay = 24 * 60 * 60

// ParseClock accepts "HH:MM" or "HH:MM:SS" (24-hour).
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	layout := "15:04:05"
	if strings.Count(s, ":") == 1 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return NewClock(t.Hour(), t.Minute(), t.Second()), nil
}

// MustParseClock is ParseClock for literals; it panics on bad input.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// NewClock builds a Clock from its components.
func NewClock(hour, minute, second int) Clock {
	return Clock(hour*3600 + minute*60 + second)
}

// ClockFromMicros converts a Postgres TIME value (microseconds since midnight).
func ClockFromMicros(us int64) Clock {
	return Clock((us / int64(time.Second/time.Microsecond)) % secondsPerDay)
}

// Micros returns the value as microseconds since midnight.
func (c Clock) Micros() int64 {
	return int64(c) * int64(time.Second/time.Microsecond)
}

func (c Clock) String() string {
	s := int(c)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
