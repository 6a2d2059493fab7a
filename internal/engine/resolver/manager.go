package resolver

import (
	"context"
	"fmt"

	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports"
)

// Resolver resolves a single coordinate to a terminal outcome.
type Resolver interface {
	Resolve(ctx context.Context, coord domain.Coordinate) domain.Outcome
}

// Manager runs a dependency check over a declared list of libraries.
type Manager struct {
	resolver Resolver
	cache    ports.CacheStore
	host     ports.HostSupport
	logger   ports.Logger
}

// NewManager creates a Manager. host may be nil, in which case the check is
// never short-circuited.
func NewManager(resolver Resolver, cache ports.CacheStore, host ports.HostSupport, logger ports.Logger) *Manager {
	return &Manager{
		resolver: resolver,
		cache:    cache,
		host:     host,
		logger:   logger,
	}
}

// Check resolves every declaration in order, one at a time, and returns the
// aggregate report. Malformed declarations are skipped with a warning. A
// failing artifact never stops the ones after it. reporter may be nil.
func (m *Manager) Check(ctx context.Context, declarations []string, reporter ports.Reporter) domain.Report {
	if reporter == nil {
		reporter = nopReporter{}
	}

	if m.host != nil && m.host.Native() {
		report := domain.Report{Native: true}
		reporter.OnComplete(report)
		return report
	}

	var report domain.Report
	coords := make([]domain.Coordinate, 0, len(declarations))

	for _, decl := range declarations {
		coord, err := domain.ParseCoordinate(decl)
		if err != nil {
			skipped := domain.Skipped{Declaration: decl, Err: err}
			report.Skipped = append(report.Skipped, skipped)
			m.warn(fmt.Sprintf("skipping malformed library declaration %q", decl))
			reporter.OnSkipped(skipped)
			continue
		}
		coords = append(coords, coord)
	}

	// Without a cache directory nothing can be served or stored; every
	// artifact fails in the cache stage.
	dirErr := m.cache.EnsureDirectory()

	for _, coord := range coords {
		reporter.OnStart(coord)

		var outcome domain.Outcome
		if dirErr != nil {
			outcome = domain.Failed(coord, domain.StageCache, dirErr)
			outcome.Trail = []domain.State{domain.StateStart, domain.StateFailed}
		} else {
			outcome = m.resolver.Resolve(ctx, coord)
		}

		report.Outcomes = append(report.Outcomes, outcome)
		reporter.OnOutcome(outcome)
	}

	if dirErr != nil && len(coords) > 0 && m.logger != nil {
		m.logger.Error(dirErr)
	}

	reporter.OnComplete(report)
	return report
}

func (m *Manager) warn(msg string) {
	if m.logger != nil {
		m.logger.Warn(msg)
	}
}

type nopReporter struct{}

func (nopReporter) OnSkipped(domain.Skipped)  {}
func (nopReporter) OnStart(domain.Coordinate) {}
func (nopReporter) OnOutcome(domain.Outcome)  {}
func (nopReporter) OnComplete(domain.Report)  {}
