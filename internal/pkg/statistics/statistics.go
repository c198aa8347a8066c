package statistics

import (
	"strconv"
	"time"

	"github.com/civitax/CiviTax/app/repository"
	"github.com/civitax/CiviTax/internal/pkg/cache"
)

const (
	CacheKeyUsers    = "statistics:users:total"
	CacheKeyProfiles = "statistics:tax_profiles:total"
	CacheExpiration  = 30 * time.Minute
)

// HomeStats holds the counters shown on the landing page.
type HomeStats struct {
	TotalUsers    int64
	TotalProfiles int64
}

// GetHomeStats returns the landing-page counters, served from Redis when
// fresh and recounted from the database otherwise. Counts are informational,
// so cache errors fall through to a recount and count errors to zero.
func GetHomeStats() HomeStats {
	return HomeStats{
		TotalUsers:    cachedCount(CacheKeyUsers, countUsers),
		TotalProfiles: cachedCount(CacheKeyProfiles, countProfiles),
	}
}

// InvalidateProfileCount drops the cached profile counter so the next
// landing-page render recounts after a registration.
func InvalidateProfileCount() {
	_ = cache.Delete(CacheKeyProfiles)
}

func cachedCount(key string, count func() (int64, error)) int64 {
	if val, err := cache.Get(key); err == nil {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}

	n, err := count()
	if err != nil {
		return 0
	}
	_ = cache.Set(key, strconv.FormatInt(n, 10), CacheExpiration)

	return n
}

func countUsers() (int64, error) {
	return repository.GetGlobalRepositories().User.Count()
}

func countProfiles() (int64, error) {
	return repository.GetGlobalRepositories().TaxProfile.Count()
}
