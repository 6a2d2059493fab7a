package domain

import (
	"path/filepath"
	"time"
)

const (
	// CacheDirName is the default cache directory, relative to the working directory.
	CacheDirName = "libs"

	// ManifestDirName is the directory inside the cache holding manifest sidecars.
	ManifestDirName = ".manifest"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "libload.yaml"

	// DefaultRepository is the root of the public artifact repository.
	DefaultRepository = "https://repo1.maven.org/maven2"

	// DefaultOwner is the owner handle passed to the activator when none is configured.
	DefaultOwner = "libload"

	// DefaultUserAgent is a browser-like user agent; some artifact hosts reject
	// default HTTP client signatures.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// DefaultConnectTimeout bounds establishing the connection.
	DefaultConnectTimeout = 5 * time.Second

	// DefaultReadTimeout bounds waiting for the response headers.
	DefaultReadTimeout = 5 * time.Second

	// DefaultTransferTimeout bounds a whole artifact download.
	DefaultTransferTimeout = 5 * time.Minute

	// ProbeTimeout bounds a repository health check.
	ProbeTimeout = 5 * time.Second

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultCachePath returns the default cache directory.
func DefaultCachePath() string {
	return CacheDirName
}

// ManifestPath returns the directory holding manifests for the given cache directory.
func ManifestPath(cacheDir string) string {
	return filepath.Join(cacheDir, ManifestDirName)
}
