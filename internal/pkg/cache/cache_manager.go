package cache

import (
	"time"

	"go.uber.org/zap"
)

// CacheManager holds all application caches
type CacheManager struct {
	// Generated itinerary text keyed by city + interest set
	Itineraries *UnifiedCache[string]
}

// NewCacheManager creates the application caches with the given itinerary TTL
func NewCacheManager(itineraryTTL time.Duration, logger *zap.Logger) *CacheManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if itineraryTTL <= 0 {
		itineraryTTL = 10 * time.Minute
	}
	return &CacheManager{
		Itineraries: NewUnifiedCache[string](itineraryTTL, "itineraries", logger),
	}
}

// GetAllMetrics returns metrics for all caches
func (cm *CacheManager) GetAllMetrics() map[string]CacheMetrics {
	return map[string]CacheMetrics{
		"itineraries": cm.Itineraries.GetMetrics(),
	}
}

// Close stops the background cleanup of all caches
func (cm *CacheManager) Close() {
	cm.Itineraries.Close()
}
