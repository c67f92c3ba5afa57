package config

import (
	"fmt"
	"time"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AuthRateLimitKey returns the counter key for a client IP within the fixed
// window that contains now.
func (r *CacheKeyStruct) AuthRateLimitKey(ip string, window time.Duration, now time.Time) string {
	return fmt.Sprintf("ratelimit:auth:%s:%d", ip, now.Unix()/int64(window.Seconds()))
}

var CacheKey = NewCacheKeyStruct()
