package domain

import "time"

// ActivatorKind selects the code activator used for cached artifacts.
type ActivatorKind string

const (
	// ActivatorClasspath indexes archives onto the process-wide search path.
	ActivatorClasspath ActivatorKind = "classpath"
	// ActivatorInterp evaluates Go sources from archives in a shared interpreter.
	ActivatorInterp ActivatorKind = "interp"
)

// Timeouts bound the network operations of a fetch.
type Timeouts struct {
	Connect  time.Duration
	Read     time.Duration
	Transfer time.Duration
}

// HostConfig describes the host process the libraries are activated into.
type HostConfig struct {
	// Version is the host's version. Empty means unknown.
	Version string

	// NativeSince is a semver constraint matching host versions that load
	// declared libraries natively. Empty disables the short-circuit.
	NativeSince string
}

// Config is the resolved configuration for one dependency check.
type Config struct {
	// Path is the file the configuration was read from, empty for defaults.
	Path       string
	Repository string
	CacheDir   string
	Owner      string
	Activator  ActivatorKind
	UserAgent  string
	Timeouts   Timeouts
	Host       HostConfig
	Libraries  []string
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Repository: DefaultRepository,
		CacheDir:   DefaultCachePath(),
		Owner:      DefaultOwner,
		Activator:  ActivatorClasspath,
		UserAgent:  DefaultUserAgent,
		Timeouts: Timeouts{
			Connect:  DefaultConnectTimeout,
			Read:     DefaultReadTimeout,
			Transfer: DefaultTransferTimeout,
		},
	}
}
