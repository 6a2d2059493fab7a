package domain

import (
	"fmt"
	"time"
)

// ArtifactExtension is the file extension of every artifact in the repository layout.
const ArtifactExtension = ".jar"

// Location is where an artifact is downloaded from and cached at.
type Location struct {
	// URL is the fully qualified download URL.
	URL string

	// FileName is the canonical cache file name, used as the cache key.
	FileName string
}

// CacheEntry is an artifact file present in the local cache.
// An entry with a zero Size is never considered present.
type CacheEntry struct {
	Path string
	Size int64
}

// FetchResult describes the bytes a completed download wrote to the cache.
type FetchResult struct {
	// Bytes is the number of bytes streamed to the destination.
	Bytes int64

	// Digest is the hex-encoded xxhash64 of the streamed bytes.
	Digest string
}

// ManifestState is the lifecycle state of a cache slot.
type ManifestState string

const (
	// ManifestPending marks a slot that has been claimed but not yet fully written.
	ManifestPending ManifestState = "pending"
	// ManifestComplete marks a slot whose download finished successfully.
	ManifestComplete ManifestState = "complete"
)

// Manifest records the completion state of a cached artifact.
type Manifest struct {
	FileName  string        `json:"file_name"`
	State     ManifestState `json:"state"`
	Size      int64         `json:"size,omitzero"`
	Digest    string        `json:"digest,omitzero"`
	URL       string        `json:"url,omitzero"`
	UpdatedAt time.Time     `json:"updated_at,omitzero"`
}

// FormatDigest renders a 64-bit content digest as fixed-width hex.
func FormatDigest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
