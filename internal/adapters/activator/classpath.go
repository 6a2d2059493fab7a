package activator

import (
	"archive/zip"
	"context"
	"path"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports"
	"go.trai.ch/zerr"
)

const classSuffix = ".class"

// Archive is one artifact on the search path.
type Archive struct {
	Path    string
	Owner   string
	Entries int
}

// Classpath is an ordered search path of archives. Activating an archive
// indexes its entries so that class and resource names resolve to it.
// Earlier archives win when two archives carry the same entry.
type Classpath struct {
	mu       sync.RWMutex
	archives []Archive
	index    map[string]int
}

// NewClasspath returns an empty search path.
func NewClasspath() *Classpath {
	return &Classpath{index: make(map[string]int)}
}

// Activate appends the archive at archivePath to the search path.
// An archive already on the path is left untouched.
func (c *Classpath) Activate(ctx context.Context, owner, archivePath string) error {
	if err := ctx.Err(); err != nil {
		return zerr.With(err, "path", archivePath)
	}

	c.mu.RLock()
	loaded := c.contains(archivePath)
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	names, err := readEntryNames(archivePath)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.contains(archivePath) {
		return nil
	}

	pos := len(c.archives)
	c.archives = append(c.archives, Archive{Path: archivePath, Owner: owner, Entries: len(names)})
	for _, name := range names {
		if _, taken := c.index[name]; !taken {
			c.index[name] = pos
		}
	}
	return nil
}

// Resolve returns the archive providing name. Names are either entry paths
// ("META-INF/MANIFEST.MF", "org/example/Foo.class") or dotted class names
// ("org.example.Foo").
func (c *Classpath) Resolve(name string) (Archive, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range entryCandidates(name) {
		if pos, ok := c.index[candidate]; ok {
			return c.archives[pos], nil
		}
	}
	return Archive{}, zerr.With(domain.ErrSymbolNotFound, "name", name)
}

// Archives returns the search path in activation order.
func (c *Classpath) Archives() []Archive {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.archives)
}

func (c *Classpath) contains(archivePath string) bool {
	return slices.ContainsFunc(c.archives, func(a Archive) bool { return a.Path == archivePath })
}

func entryCandidates(name string) []string {
	name = strings.TrimPrefix(name, "/")
	if strings.Contains(name, "/") || strings.HasSuffix(name, classSuffix) {
		return []string{name}
	}
	return []string{name, strings.ReplaceAll(name, ".", "/") + classSuffix}
}

func readEntryNames(archivePath string) ([]string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveInvalid.Error()), "path", archivePath)
	}
	defer func() {
		_ = reader.Close()
	}()

	names := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		names = append(names, path.Clean(f.Name))
	}
	return names, nil
}

// Ensure Classpath satisfies the interface.
var _ ports.CodeActivator = (*Classpath)(nil)
