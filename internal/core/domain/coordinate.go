package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// coordinateSeparator delimits the group, name and version of a declaration.
const coordinateSeparator = ":"

// Coordinate identifies a library artifact by group, name and version.
// It is a comparable value type: two coordinates are the same artifact if and
// only if all three segments are equal.
type Coordinate struct {
	// Group is the dot-segmented namespace (e.g., "com.google.code.gson").
	Group InternedString

	// Name is the artifact name (e.g., "gson").
	Name InternedString

	// Version is the exact artifact version (e.g., "2.10.1").
	Version InternedString
}

// NewCoordinate creates a Coordinate from its three segments.
func NewCoordinate(group, name, version string) Coordinate {
	return Coordinate{
		Group:   NewInternedString(group),
		Name:    NewInternedString(name),
		Version: NewInternedString(version),
	}
}

// ParseCoordinate parses a "group:name:version" declaration.
// It returns ErrMalformedDeclaration unless the declaration splits into exactly
// three segments. Empty segments are accepted here; they surface later as
// malformed download URLs.
func ParseCoordinate(declaration string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(declaration), coordinateSeparator)
	if len(parts) != 3 {
		err := zerr.With(ErrMalformedDeclaration, "declaration", declaration)
		return Coordinate{}, zerr.With(err, "segments", len(parts))
	}
	return NewCoordinate(parts[0], parts[1], parts[2]), nil
}

// String returns the "group:name:version" form of the coordinate.
func (c Coordinate) String() string {
	return strings.Join([]string{c.Group.String(), c.Name.String(), c.Version.String()}, coordinateSeparator)
}

// DisplayName returns the human-readable name reported on activation.
func (c Coordinate) DisplayName() string {
	return c.Name.String() + " " + c.Version.String()
}

// GroupPath returns the group with its dot segments joined by slashes.
func (c Coordinate) GroupPath() string {
	return strings.ReplaceAll(c.Group.String(), ".", "/")
}
