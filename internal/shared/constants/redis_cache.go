package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs for the easypark application.
// Pattern: easypark:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	// Facility configuration changes rarely (rates, inventory size)
	TTL_FACILITY_DETAIL = 1 * time.Hour

	// Slot availability is real-time sensitive
	TTL_SLOT_SUMMARY = 30 * time.Second

	// Session history is append-mostly
	TTL_SESSION_HISTORY = 2 * time.Minute
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "easypark"

	CACHE_KEY_FACILITY_DETAIL = CACHE_PREFIX + ":facilities:detail:uuid:" // + facility-id
	CACHE_KEY_SLOT_SUMMARY    = CACHE_PREFIX + ":slots:summary:uuid:"     // + facility-id
	CACHE_KEY_SESSION_HISTORY = CACHE_PREFIX + ":sessions:history:"       // + holder-id:facility-id
)

// ================== KEY BUILDERS ==================

func BuildFacilityDetailKey(facilityID string) string {
	return CACHE_KEY_FACILITY_DETAIL + facilityID
}

func BuildSlotSummaryKey(facilityID string) string {
	return CACHE_KEY_SLOT_SUMMARY + facilityID
}

func BuildSessionHistoryKey(holderID, facilityID string) string {
	return fmt.Sprintf("%s%s:%s", CACHE_KEY_SESSION_HISTORY, holderID, facilityID)
}
