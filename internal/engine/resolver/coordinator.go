// Package resolver drives the resolution of declared libraries: locate, serve
// from cache or fetch, then activate.
package resolver

import (
	"context"
	"time"

	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports"
	"go.trai.ch/zerr"
)

// Coordinator resolves one artifact at a time. Every failure, including a
// panic inside a collaborator, ends as a Failed outcome; Resolve never returns
// an error or panics.
type Coordinator struct {
	locator   ports.ArtifactLocator
	cache     ports.CacheStore
	fetcher   ports.Fetcher
	activator ports.CodeActivator
	logger    ports.Logger
	tracer    ports.Tracer
	metrics   ports.Metrics
	owner     string
	now       func() time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTracer sets the tracer used for per-artifact spans.
func WithTracer(t ports.Tracer) Option {
	return func(c *Coordinator) { c.tracer = t }
}

// WithMetrics sets the recorder for outcomes and downloads.
func WithMetrics(m ports.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// NewCoordinator creates a Coordinator. owner is handed to the activator.
func NewCoordinator(
	locator ports.ArtifactLocator,
	cache ports.CacheStore,
	fetcher ports.Fetcher,
	activator ports.CodeActivator,
	logger ports.Logger,
	owner string,
	opts ...Option,
) *Coordinator {
	c := &Coordinator{
		locator:   locator,
		cache:     cache,
		fetcher:   fetcher,
		activator: activator,
		logger:    logger,
		tracer:    noopTracer{},
		owner:     owner,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// resolution is the mutable state of one Resolve call.
type resolution struct {
	coord    domain.Coordinate
	location domain.Location
	stage    domain.Stage
	cacheHit bool
	bytes    int64
	trail    []domain.State
}

func (r *resolution) enter(s domain.State) {
	r.trail = append(r.trail, s)
}

func (r *resolution) activated() domain.Outcome {
	r.enter(domain.StateActivated)
	o := domain.Activated(r.coord, r.coord.DisplayName())
	return r.fill(o)
}

func (r *resolution) failed(err error) domain.Outcome {
	r.enter(domain.StateFailed)
	o := domain.Failed(r.coord, r.stage, zerr.With(err, "coordinate", r.coord.String()))
	return r.fill(o)
}

func (r *resolution) fill(o domain.Outcome) domain.Outcome {
	o.Location = r.location
	o.CacheHit = r.cacheHit
	o.BytesFetched = r.bytes
	o.Trail = r.trail
	return o
}

// Resolve runs the state machine for coord:
// Start, Located, then CacheHit or Fetching and Fetched, then Activating and
// finally Activated or Failed.
func (c *Coordinator) Resolve(ctx context.Context, coord domain.Coordinate) (outcome domain.Outcome) {
	start := c.now()
	ctx, span := c.tracer.Start(ctx, "resolve", ports.WithAttribute("coordinate", coord.String()))

	res := &resolution{
		coord: coord,
		stage: domain.StageLocate,
		trail: []domain.State{domain.StateStart},
	}

	defer func() {
		c.finish(span, outcome, c.now().Sub(start))
	}()
	defer zerr.Defer(func(err error) {
		outcome = res.failed(zerr.Wrap(err, domain.ErrUnexpectedPanic.Error()))
	})

	res.location = c.locator.Locate(coord)
	res.enter(domain.StateLocated)
	span.SetAttribute("url", res.location.URL)

	res.stage = domain.StageCache
	entry, found, err := c.cache.Lookup(res.location.FileName)
	if err != nil {
		return res.failed(err)
	}

	if found {
		res.cacheHit = true
		res.enter(domain.StateCacheHit)
	} else {
		entry, err = c.fetch(ctx, res)
		if err != nil {
			return res.failed(err)
		}
	}

	res.stage = domain.StageActivate
	res.enter(domain.StateActivating)
	if err := c.activate(ctx, entry); err != nil {
		return res.failed(zerr.Wrap(err, domain.ErrActivationFailed.Error()))
	}

	res.stage = ""
	return res.activated()
}

// fetch claims the cache slot, downloads into it and commits the manifest.
func (c *Coordinator) fetch(ctx context.Context, res *resolution) (domain.CacheEntry, error) {
	placeholder, err := c.cache.Claim(res.location.FileName)
	if err != nil {
		return domain.CacheEntry{}, err
	}

	res.stage = domain.StageFetch
	res.enter(domain.StateFetching)

	ctx, span := c.tracer.Start(ctx, "fetch", ports.WithAttribute("url", res.location.URL))
	defer span.End()

	started := c.now()
	result, err := c.fetcher.Fetch(ctx, res.location.URL, placeholder.Path)
	if err != nil {
		span.RecordError(err)
		return domain.CacheEntry{}, err
	}
	span.SetAttribute("bytes", result.Bytes)
	if c.metrics != nil {
		c.metrics.ObserveFetch(result, c.now().Sub(started))
	}
	res.bytes = result.Bytes
	res.enter(domain.StateFetched)

	res.stage = domain.StageCache
	if err := c.cache.Commit(res.location.FileName, result, res.location.URL); err != nil {
		return domain.CacheEntry{}, err
	}

	return domain.CacheEntry{Path: placeholder.Path, Size: result.Bytes}, nil
}

func (c *Coordinator) activate(ctx context.Context, entry domain.CacheEntry) error {
	ctx, span := c.tracer.Start(ctx, "activate", ports.WithAttribute("path", entry.Path))
	defer span.End()

	if err := c.activator.Activate(ctx, c.owner, entry.Path); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// finish closes the span, records metrics and logs failures. Fetch failures
// are expected in offline or misconfigured setups and get a single line; any
// other failure is logged with its full cause chain.
func (c *Coordinator) finish(span ports.Span, outcome domain.Outcome, elapsed time.Duration) {
	span.SetAttribute("state", string(outcome.Final()))
	span.SetAttribute("cache_hit", outcome.CacheHit)
	if !outcome.OK() {
		span.RecordError(outcome.Err)
	}
	span.End()

	if c.metrics != nil {
		c.metrics.ObserveOutcome(outcome, elapsed)
	}

	if outcome.OK() || c.logger == nil {
		return
	}
	if outcome.Stage == domain.StageFetch {
		c.logger.Warn("could not download " + outcome.Coordinate.DisplayName() + ": " + outcome.Err.Error())
		return
	}
	c.logger.Error(zerr.With(
		zerr.Wrap(outcome.Err, "failed to resolve "+outcome.Coordinate.DisplayName()),
		"stage", string(outcome.Stage),
	))
}

// noopTracer mirrors telemetry.NoOpTracer; the engine does not import adapters.
type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) Write(p []byte) (int, error) { return len(p), nil }
func (noopSpan) End()                        {}
func (noopSpan) RecordError(error)           {}
func (noopSpan) SetAttribute(string, any)    {}
