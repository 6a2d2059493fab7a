package ports

import (
	"context"

	"go.trai.ch/libload/internal/core/domain"
)

// Fetcher downloads artifacts from the remote repository.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch streams the body at url into the existing file at destination.
	// A failed transfer may leave a partially written file behind.
	Fetch(ctx context.Context, url, destination string) (domain.FetchResult, error)

	// Probe checks that the repository at url answers.
	Probe(ctx context.Context, url string) error
}
