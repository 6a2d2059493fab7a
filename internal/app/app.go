// Package app implements the application layer for libload.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.trai.ch/libload/internal/adapters/activator" //nolint:depguard // Wired in app layer
	"go.trai.ch/libload/internal/adapters/cache"     //nolint:depguard // Wired in app layer
	"go.trai.ch/libload/internal/adapters/fetcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/libload/internal/adapters/host"      //nolint:depguard // Wired in app layer
	"go.trai.ch/libload/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/libload/internal/adapters/locator"   //nolint:depguard // Wired in app layer
	"go.trai.ch/libload/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/libload/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports"
	"go.trai.ch/libload/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	tracer       ports.Tracer
	metrics      *metrics.Recorder
	activators   *activator.Registry

	stdout  io.Writer
	stderr  io.Writer
	fetcher ports.Fetcher
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	tracer ports.Tracer,
	recorder *metrics.Recorder,
	activators *activator.Registry,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		tracer:       tracer,
		metrics:      recorder,
		activators:   activators,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithOutput redirects the progress report.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithFetcher replaces the HTTP fetcher built from the configuration.
// This is primarily used for testing without a network.
func (a *App) WithFetcher(f ports.Fetcher) *App {
	a.fetcher = f
	return a
}

// SyncOptions configuration for the Sync method.
type SyncOptions struct {
	// ConfigPath is an explicit libload.yaml. Empty means discover it.
	ConfigPath string
	// JSON switches the logger to JSON output.
	JSON bool
	// Trace forwards finished spans to the logger.
	Trace bool
	// MetricsFile is a node-exporter textfile written after the check.
	MetricsFile string
	// Eval is an expression evaluated in the interpreter after activation.
	Eval string
	// Resolve lists class or resource names looked up on the search path after activation.
	Resolve []string
}

// Sync resolves, caches and activates the declared libraries. Declarations
// given as arguments replace the ones from the configuration.
//
//nolint:cyclop // orchestration function
func (a *App) Sync(ctx context.Context, declarations []string, opts SyncOptions) error {
	if opts.JSON {
		if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
			l.SetJSON(true)
		}
	}

	// 1. Load the configuration
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	if len(declarations) == 0 {
		declarations = cfg.Libraries
	}
	if len(declarations) == 0 {
		return domain.ErrNoLibraries
	}

	// 2. Initialize Telemetry
	if opts.Trace {
		shutdown := telemetry.Setup(a.logger)
		defer func() {
			_ = shutdown(ctx)
		}()
	}

	// 3. Build the pipeline for this configuration
	gate, err := host.NewVersionGate(cfg.Host.Version, cfg.Host.NativeSince)
	if err != nil {
		return err
	}

	store := cache.NewStore(cfg.CacheDir, cache.WithMetrics(a.metrics))
	coordinator := resolver.NewCoordinator(
		locator.New(cfg.Repository),
		store,
		a.fetcherFor(cfg),
		a.activators.Select(cfg.Activator),
		a.logger,
		cfg.Owner,
		resolver.WithTracer(a.tracer),
		resolver.WithMetrics(a.metrics),
	)
	manager := resolver.NewManager(coordinator, store, gate, a.logger)

	// 4. Run the check
	report := manager.Check(ctx, declarations, linear.NewReporter(a.stdout, a.stderr))

	var errs error
	if opts.MetricsFile != "" {
		errs = errors.Join(errs, a.metrics.WriteTextfile(opts.MetricsFile))
	}

	if !report.OK() {
		return errors.Join(domain.ErrDependencyCheckFailed, errs)
	}

	// 5. Use what was activated
	for _, name := range opts.Resolve {
		errs = errors.Join(errs, a.resolve(name))
	}
	if opts.Eval != "" {
		errs = errors.Join(errs, a.eval(opts.Eval))
	}

	return errs
}

// Locate prints the download URL, cache path and cache state of each declaration.
// Nothing is downloaded or evicted.
func (a *App) Locate(_ context.Context, declarations []string, configPath string) error {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return err
	}
	if len(declarations) == 0 {
		declarations = cfg.Libraries
	}
	if len(declarations) == 0 {
		return domain.ErrNoLibraries
	}

	loc := locator.New(cfg.Repository)
	store := cache.NewStore(cfg.CacheDir)

	var errs error
	for _, decl := range declarations {
		coord, err := domain.ParseCoordinate(decl)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		location := loc.Locate(coord)
		state := "missing"
		manifest, ok, err := store.Manifest(location.FileName)
		switch {
		case err != nil:
			errs = errors.Join(errs, err)
			continue
		case ok:
			state = string(manifest.State)
		}

		_, _ = fmt.Fprintf(a.stdout, "%s\t%s\t%s\t%s\n", coord, location.URL, store.Path(location.FileName), state)
	}

	return errs
}

// Ping checks that the configured repository answers.
func (a *App) Ping(ctx context.Context, configPath string) error {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := a.fetcherFor(cfg).Probe(ctx, cfg.Repository); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("repository %s is reachable", cfg.Repository))
	return nil
}

// Clean removes the library cache directory.
func (a *App) Clean(_ context.Context, configPath string) error {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return err
	}

	store := cache.NewStore(cfg.CacheDir)
	a.logger.Info(fmt.Sprintf("removing library cache %s...", store.Dir()))
	if err := store.Purge(); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("removed library cache %s", store.Dir()))
	return nil
}

func (a *App) loadConfig(path string) (*domain.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}

	cfg, err := a.configLoader.Load(cwd, path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

func (a *App) fetcherFor(cfg *domain.Config) ports.Fetcher {
	if a.fetcher != nil {
		return a.fetcher
	}
	return fetcher.New(cfg.UserAgent, cfg.Timeouts)
}

func (a *App) resolve(name string) error {
	archive, err := a.activators.Classpath().Resolve(name)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.stdout, "%s\t%s\n", name, archive.Path)
	return nil
}

func (a *App) eval(expr string) error {
	in, err := a.activators.Interpreter()
	if err != nil {
		return err
	}

	v, err := in.Eval(expr)
	if err != nil {
		return err
	}
	if v.IsValid() && v.CanInterface() {
		_, _ = fmt.Fprintln(a.stdout, v.Interface())
	}
	return nil
}
