package ports

// HostSupport reports what the host process already provides.
//
//go:generate go run go.uber.org/mock/mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks
type HostSupport interface {
	// Native reports whether the host loads declared libraries by itself,
	// making the dependency check unnecessary.
	Native() bool
}
