// Package host reports what the host process supports natively.
package host

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports"
	"go.trai.ch/zerr"
)

// VersionGate decides native support by matching the host version against a
// semver constraint such as ">= 4.0".
type VersionGate struct {
	version    *semver.Version
	constraint *semver.Constraints
}

// NewVersionGate parses version and constraint. Either may be empty, in which
// case the gate never reports native support.
func NewVersionGate(version, constraint string) (*VersionGate, error) {
	gate := &VersionGate{}

	if v := strings.TrimSpace(version); v != "" {
		parsed, err := semver.NewVersion(v)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidHostVersion.Error()), "version", version)
		}
		gate.version = parsed
	}

	if c := strings.TrimSpace(constraint); c != "" {
		parsed, err := semver.NewConstraint(c)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidHostVersion.Error()), "constraint", constraint)
		}
		gate.constraint = parsed
	}

	return gate, nil
}

// Native reports whether the host version satisfies the constraint.
func (g *VersionGate) Native() bool {
	if g.version == nil || g.constraint == nil {
		return false
	}
	return g.constraint.Check(g.version)
}

// Ensure VersionGate satisfies the interface.
var _ ports.HostSupport = (*VersionGate)(nil)
