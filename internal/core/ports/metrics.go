package ports

import (
	"time"

	"go.trai.ch/libload/internal/core/domain"
)

// Metrics records resolution statistics.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveOutcome records a terminal outcome and how long it took.
	ObserveOutcome(outcome domain.Outcome, elapsed time.Duration)

	// ObserveEviction records a corrupt cache entry being removed.
	ObserveEviction(reason string)

	// ObserveFetch records a completed download.
	ObserveFetch(result domain.FetchResult, elapsed time.Duration)
}
