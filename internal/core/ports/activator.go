package ports

import "context"

// CodeActivator is the host capability that makes a cached artifact's code
// available to the running process without a restart.
//
// Calling Activate twice for the same path is allowed; deduplication, if any,
// is up to the implementation.
//
//go:generate go run go.uber.org/mock/mockgen -source=activator.go -destination=mocks/mock_activator.go -package=mocks
type CodeActivator interface {
	// Activate loads the artifact at path on behalf of owner.
	Activate(ctx context.Context, owner, path string) error
}
