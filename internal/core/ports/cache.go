package ports

import "go.trai.ch/libload/internal/core/domain"

// CacheStore manages the local directory of downloaded artifacts.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type CacheStore interface {
	// EnsureDirectory creates the cache directory if it does not exist.
	EnsureDirectory() error

	// Lookup returns the cache entry for fileName.
	// Corrupt entries (zero size, unfinished or mismatched downloads) are evicted
	// and reported as absent.
	Lookup(fileName string) (entry domain.CacheEntry, found bool, err error)

	// EvictIfCorrupt deletes the entry if it is corrupt and reports whether it did.
	EvictIfCorrupt(entry domain.CacheEntry) (evicted bool, err error)

	// Claim creates the zero-byte placeholder for a download and marks it pending.
	Claim(fileName string) (domain.CacheEntry, error)

	// Commit marks a claimed slot as completely downloaded.
	Commit(fileName string, result domain.FetchResult, url string) error
}
