package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs, centralized.
// Pattern: seatlab:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG   = 24 * time.Hour // very stable data
	TTL_STATIC_SHORT  = 6 * time.Hour  // user profiles
	TTL_SEMI_STATIC   = 4 * time.Hour  // published layout documents
	TTL_DYNAMIC_SHORT = 5 * time.Minute
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "seatlab"
)

// ================== LAYOUTS MODULE ==================

const (
	CACHE_KEY_LAYOUTS_LIST      = CACHE_PREFIX + ":layouts:list"            // + :page:X:limit:Y
	CACHE_KEY_LAYOUT_DETAIL     = CACHE_PREFIX + ":layouts:detail:uuid:"    // + layout-id
	CACHE_KEY_LAYOUT_PUBLISHED  = CACHE_PREFIX + ":layouts:published:uuid:" // + layout-id
	PATTERN_INVALIDATE_LAYOUTS  = CACHE_PREFIX + ":layouts:*"
	PATTERN_INVALIDATE_LISTINGS = CACHE_PREFIX + ":layouts:list*"
)

const (
	TTL_LAYOUT_LIST      = TTL_DYNAMIC_SHORT
	TTL_LAYOUT_DETAIL    = TTL_DYNAMIC_SHORT
	TTL_LAYOUT_PUBLISHED = TTL_SEMI_STATIC
)

// ================== AUTH MODULE ==================

const (
	CACHE_KEY_USER_PROFILE = CACHE_PREFIX + ":auth:user:profile:uuid:" // + user-id
)

const (
	TTL_USER_PROFILE = TTL_STATIC_SHORT
)

// ================== HELPER FUNCTIONS ==================

func BuildLayoutListKey(page, limit int) string {
	return fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_LAYOUTS_LIST, page, limit)
}

func BuildLayoutDetailKey(layoutID string) string {
	return CACHE_KEY_LAYOUT_DETAIL + layoutID
}

func BuildPublishedLayoutKey(layoutID string) string {
	return CACHE_KEY_LAYOUT_PUBLISHED + layoutID
}
