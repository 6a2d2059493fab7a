package ports

import "go.trai.ch/libload/internal/core/domain"

// Reporter receives resolution results as they happen.
// Calls arrive in declaration order and never overlap.
//
//go:generate go run go.uber.org/mock/mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// OnSkipped is called for a declaration that could not be parsed.
	OnSkipped(skipped domain.Skipped)

	// OnStart is called before a coordinate is resolved.
	OnStart(coord domain.Coordinate)

	// OnOutcome is called once per coordinate with its terminal outcome.
	OnOutcome(outcome domain.Outcome)

	// OnComplete is called once with the aggregate report.
	OnComplete(report domain.Report)
}
