package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// DepartmentCodeKey returns the cache key mapping a department code to its ID
func (r *CacheKeyStruct) DepartmentCodeKey(code string) string {
	return fmt.Sprintf("department:code:%s", code)
}

// TimetableFeedChannel returns the Redis PubSub channel carrying a department's timetable changes
func (r *CacheKeyStruct) TimetableFeedChannel(departmentID uuid.UUID) string {
	return fmt.Sprintf("department:%s:timetable", departmentID)
}

// RateLimitKey returns the counter key for a rate-limited route bucket and client
func (r *CacheKeyStruct) RateLimitKey(bucket, client string) string {
	return fmt.Sprintf("ratelimit:%s:%s", bucket, client)
}

var CacheKey = NewCacheKeyStruct()
