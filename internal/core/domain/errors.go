package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedDeclaration is returned when a declaration is not "group:name:version".
	ErrMalformedDeclaration = zerr.New("malformed library declaration, expected group:name:version")

	// ErrCacheDirCreateFailed is returned when the cache directory cannot be created.
	ErrCacheDirCreateFailed = zerr.New("failed to create library cache directory")

	// ErrCacheStatFailed is returned when a cache entry cannot be inspected.
	ErrCacheStatFailed = zerr.New("failed to stat cache entry")

	// ErrCacheEvictFailed is returned when a corrupt cache entry cannot be removed.
	ErrCacheEvictFailed = zerr.New("failed to evict corrupt cache entry")

	// ErrCacheClaimFailed is returned when the placeholder for a download cannot be created.
	ErrCacheClaimFailed = zerr.New("failed to claim cache slot")

	// ErrCacheKeyInvalid is returned when a cache file name would resolve outside the cache directory.
	ErrCacheKeyInvalid = zerr.New("invalid cache file name")

	// ErrCachePurgeFailed is returned when the cache directory cannot be removed.
	ErrCachePurgeFailed = zerr.New("failed to purge library cache")

	// ErrManifestReadFailed is returned when a cache manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read cache manifest")

	// ErrManifestWriteFailed is returned when a cache manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write cache manifest")

	// ErrInvalidURL is returned when an artifact URL cannot be turned into a request.
	ErrInvalidURL = zerr.New("invalid artifact URL")

	// ErrFetchRequestFailed is returned when connecting to or reading from the repository fails.
	ErrFetchRequestFailed = zerr.New("failed to download artifact")

	// ErrFetchBadStatus is returned when the repository answers with a non-2xx status.
	ErrFetchBadStatus = zerr.New("repository returned an unexpected status")

	// ErrFetchWriteFailed is returned when downloaded bytes cannot be written to the cache.
	ErrFetchWriteFailed = zerr.New("failed to write artifact to cache")

	// ErrProbeFailed is returned when the repository health check fails.
	ErrProbeFailed = zerr.New("repository is not reachable")

	// ErrActivationFailed is returned when the host cannot load a cached artifact.
	ErrActivationFailed = zerr.New("failed to activate artifact")

	// ErrArchiveInvalid is returned when a cached artifact is not a readable archive.
	ErrArchiveInvalid = zerr.New("artifact is not a readable archive")

	// ErrSymbolNotFound is returned when an activated symbol cannot be resolved.
	ErrSymbolNotFound = zerr.New("symbol not found")

	// ErrUnexpectedPanic is returned when a collaborator panics during resolution.
	ErrUnexpectedPanic = zerr.New("unexpected panic during resolution")

	// ErrDependencyCheckFailed is returned when at least one artifact could not be activated.
	ErrDependencyCheckFailed = zerr.New("dependency check failed")

	// ErrNoLibraries is returned when neither the configuration nor the arguments declare libraries.
	ErrNoLibraries = zerr.New("no libraries declared")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find libload.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a config value is out of range.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrInvalidHostVersion is returned when the host version or native-support constraint is not valid semver.
	ErrInvalidHostVersion = zerr.New("invalid host version")

	// ErrUnknownActivator is returned when the configured activator kind is not registered.
	ErrUnknownActivator = zerr.New("unknown activator")

	// ErrMetricsWriteFailed is returned when the metrics textfile cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")
)
