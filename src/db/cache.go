package db

import (
	"log"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Dashboard summaries are cached per user and must never survive a write to
// that user's transactions or subscriptions. Cache keys are tracked so all of
// them can be dropped at once if needed.
var (
	Cache              *ristretto.Cache
	DashboardCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func DashboardCacheKey(userID string) string {
	return "dashboard:" + userID
}

func SetDashboardCache(cacheKey string, value interface{}) {
	DashboardCacheKeys.Lock()
	DashboardCacheKeys.m[cacheKey] = struct{}{}
	DashboardCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func GetDashboardCache(cacheKey string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(cacheKey)
}

// InvalidateDashboard drops the cached summary for one user. Called after
// every transaction or subscription write.
func InvalidateDashboard(userID string) {
	if Cache == nil {
		return
	}
	cacheKey := DashboardCacheKey(userID)
	DashboardCacheKeys.Lock()
	delete(DashboardCacheKeys.m, cacheKey)
	DashboardCacheKeys.Unlock()
	Cache.Del(cacheKey)
}

func ClearAllDashboardCaches() {
	DashboardCacheKeys.Lock()
	for key := range DashboardCacheKeys.m {
		Cache.Del(key)
	}
	DashboardCacheKeys.m = make(map[string]struct{})
	DashboardCacheKeys.Unlock()
}
