package reports

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/flowstate/tractor-beam/config"
)

func reportCacheEnabled() bool {
	v := strings.TrimSpace(os.Getenv("ENABLE_REPORT_CACHE"))
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes") || strings.EqualFold(v, "on")
}

func reportCacheTTL() time.Duration {
	// Env: REPORT_CACHE_TTL_SECONDS (default 120s)
	ttl := 120
	if v := strings.TrimSpace(os.Getenv("REPORT_CACHE_TTL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}
	return time.Duration(ttl) * time.Second
}

func cacheGet[T any](key string, dest *T) (bool, error) {
	if !reportCacheEnabled() {
		return false, nil
	}
	return config.GetRedisObject(key, dest)
}

func cacheSet(key string, obj any) error {
	if !reportCacheEnabled() {
		return nil
	}
	return config.SetRedisObject(key, obj, reportCacheTTL())
}

// InvalidateReportCache drops every cached read model; called after a
// pipeline run rewrites the cards.
func InvalidateReportCache() {
	config.DeleteRedisKeys(
		cacheKeyPrioritySummary,
		cacheKeyTopOpportunities,
	)
}
