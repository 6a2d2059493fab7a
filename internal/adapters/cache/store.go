// Package cache implements the local artifact cache.
package cache

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports"
	"go.trai.ch/zerr"
)

// Eviction reasons reported to metrics.
const (
	ReasonEmpty          = "empty"
	ReasonPending        = "pending"
	ReasonSizeMismatch   = "size_mismatch"
	ReasonDigestMismatch = "digest_mismatch"
	ReasonBadManifest    = "bad_manifest"
)

// Store implements ports.CacheStore on a flat directory of artifact files.
// Each download also gets a JSON manifest under <dir>/.manifest so that
// interrupted transfers can be told apart from finished ones.
type Store struct {
	dir     string
	metrics ports.Metrics
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithMetrics reports evictions to m.
func WithMetrics(m ports.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore creates a Store rooted at dir. The directory is not created until
// EnsureDirectory or Claim is called.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{
		dir: filepath.Clean(dir),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the path of the cache file for fileName.
// It does not check that fileName stays inside the cache directory.
func (s *Store) Path(fileName string) string {
	return filepath.Join(s.dir, fileName)
}

// slot returns the path for fileName, which must be a plain file name
// directly inside the cache directory.
func (s *Store) slot(fileName string) (string, error) {
	path := s.Path(fileName)
	rel, err := filepath.Rel(s.dir, path)
	if fileName == "" || fileName == "." || fileName == ".." ||
		strings.ContainsAny(fileName, `/\`) || err != nil || rel != fileName {
		return "", zerr.With(domain.ErrCacheKeyInvalid, "file", fileName)
	}
	return path, nil
}

// EnsureDirectory creates the cache directory if it does not exist.
func (s *Store) EnsureDirectory() error {
	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheDirCreateFailed.Error()), "dir", s.dir)
	}
	return nil
}

// Lookup returns the entry for fileName if a usable file is cached.
// Zero-byte files, unfinished downloads and files that no longer match their
// manifest are deleted and reported as absent.
func (s *Store) Lookup(fileName string) (domain.CacheEntry, bool, error) {
	path, err := s.slot(fileName)
	if err != nil {
		return domain.CacheEntry{}, false, err
	}

	info, statErr := os.Stat(path)
	if err = statErr; err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.CacheEntry{}, false, nil
		}
		return domain.CacheEntry{}, false, zerr.With(zerr.Wrap(err, domain.ErrCacheStatFailed.Error()), "path", path)
	}
	if info.IsDir() {
		return domain.CacheEntry{}, false, zerr.With(zerr.With(domain.ErrCacheStatFailed, "path", path),
			"reason", "cache entry is a directory")
	}

	entry := domain.CacheEntry{Path: path, Size: info.Size()}

	evicted, err := s.EvictIfCorrupt(entry)
	if err != nil {
		return domain.CacheEntry{}, false, err
	}
	if evicted {
		return domain.CacheEntry{}, false, nil
	}

	return entry, true, nil
}

// EvictIfCorrupt deletes entry and its manifest if the entry is unusable.
func (s *Store) EvictIfCorrupt(entry domain.CacheEntry) (bool, error) {
	reason, err := s.diagnose(entry)
	if err != nil {
		return false, err
	}
	if reason == "" {
		return false, nil
	}

	if err := s.evict(entry.Path); err != nil {
		return false, zerr.With(zerr.With(zerr.Wrap(err, domain.ErrCacheEvictFailed.Error()),
			"path", entry.Path), "reason", reason)
	}

	if s.metrics != nil {
		s.metrics.ObserveEviction(reason)
	}
	return true, nil
}

// Claim creates (or truncates) the zero-byte placeholder for fileName and
// records it as pending.
func (s *Store) Claim(fileName string) (domain.CacheEntry, error) {
	path, err := s.slot(fileName)
	if err != nil {
		return domain.CacheEntry{}, err
	}
	if err := s.EnsureDirectory(); err != nil {
		return domain.CacheEntry{}, err
	}

	//nolint:gosec // Path is constructed from the cache directory and a canonical file name
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return domain.CacheEntry{}, zerr.With(zerr.Wrap(err, domain.ErrCacheClaimFailed.Error()), "path", path)
	}
	if err := f.Close(); err != nil {
		return domain.CacheEntry{}, zerr.With(zerr.Wrap(err, domain.ErrCacheClaimFailed.Error()), "path", path)
	}

	if err := s.writeManifest(domain.Manifest{
		FileName:  fileName,
		State:     domain.ManifestPending,
		UpdatedAt: s.now(),
	}); err != nil {
		return domain.CacheEntry{}, err
	}

	return domain.CacheEntry{Path: path, Size: 0}, nil
}

// Commit records a finished download for fileName.
func (s *Store) Commit(fileName string, result domain.FetchResult, url string) error {
	if _, err := s.slot(fileName); err != nil {
		return err
	}
	return s.writeManifest(domain.Manifest{
		FileName:  fileName,
		State:     domain.ManifestComplete,
		Size:      result.Bytes,
		Digest:    result.Digest,
		URL:       url,
		UpdatedAt: s.now(),
	})
}

// Manifest returns the manifest recorded for fileName, if any.
func (s *Store) Manifest(fileName string) (domain.Manifest, bool, error) {
	if _, err := s.slot(fileName); err != nil {
		return domain.Manifest{}, false, err
	}
	m, ok, err := s.readManifest(fileName)
	if err != nil {
		return domain.Manifest{}, false, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()),
			"file", fileName)
	}
	return m, ok, nil
}

// Purge removes the cache directory and everything in it.
func (s *Store) Purge() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCachePurgeFailed.Error()), "dir", s.dir)
	}
	return nil
}

// diagnose returns the reason entry is unusable, or "" if it is fine.
// A nonzero file without a manifest is accepted.
func (s *Store) diagnose(entry domain.CacheEntry) (string, error) {
	if entry.Size == 0 {
		return ReasonEmpty, nil
	}

	m, ok, err := s.readManifest(filepath.Base(entry.Path))
	if err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return ReasonBadManifest, nil
		}
		return "", zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", entry.Path)
	}
	if !ok {
		return "", nil
	}

	switch {
	case m.State != domain.ManifestComplete:
		return ReasonPending, nil
	case m.Size != entry.Size:
		return ReasonSizeMismatch, nil
	case m.Digest != "":
		digest, err := fileDigest(entry.Path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrCacheStatFailed.Error()), "path", entry.Path)
		}
		if digest != m.Digest {
			return ReasonDigestMismatch, nil
		}
	}

	return "", nil
}

func (s *Store) evict(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.Remove(s.manifestPath(filepath.Base(path))); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) manifestPath(fileName string) string {
	return filepath.Join(domain.ManifestPath(s.dir), fileName+".json")
}

func (s *Store) readManifest(fileName string) (domain.Manifest, bool, error) {
	//nolint:gosec // Path is constructed from the cache directory and a canonical file name
	data, err := os.ReadFile(s.manifestPath(fileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Manifest{}, false, nil
		}
		return domain.Manifest{}, false, err
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.Manifest{}, false, err
	}
	return m, true, nil
}

func (s *Store) writeManifest(m domain.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	if err := atomicWriteFile(s.manifestPath(m.FileName), data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "file", m.FileName)
	}
	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "manifest-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

func fileDigest(path string) (string, error) {
	//nolint:gosec // Path is constructed from the cache directory and a canonical file name
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return domain.FormatDigest(h.Sum64()), nil
}

// Ensure Store satisfies the interface.
var _ ports.CacheStore = (*Store)(nil)
