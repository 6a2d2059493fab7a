// Package locator maps artifact coordinates onto a Maven-style repository layout.
package locator

import (
	"strings"

	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports"
)

// Locator implements ports.ArtifactLocator for a fixed repository root.
type Locator struct {
	root string
}

// New creates a Locator for the repository at root.
// A trailing slash on root is ignored.
func New(root string) *Locator {
	return &Locator{root: strings.TrimRight(root, "/")}
}

// Root returns the repository root used to build URLs.
func (l *Locator) Root() string {
	return l.root
}

// Locate returns the download URL and cache file name for coord.
//
// The URL follows {root}/{group-as-path}/{name}/{version}/{name}-{version}.jar.
// The file name is {name}-{version}.jar: it does not include the group, so two
// coordinates that differ only in group share a cache slot.
func (l *Locator) Locate(coord domain.Coordinate) domain.Location {
	fileName := FileName(coord)
	name := coord.Name.String()
	version := coord.Version.String()

	url := strings.Join([]string{l.root, coord.GroupPath(), name, version, fileName}, "/")

	return domain.Location{
		URL:      url,
		FileName: fileName,
	}
}

// FileName returns the canonical cache file name for coord.
func FileName(coord domain.Coordinate) string {
	return coord.Name.String() + "-" + coord.Version.String() + domain.ArtifactExtension
}

// Ensure Locator satisfies the interface.
var _ ports.ArtifactLocator = (*Locator)(nil)
