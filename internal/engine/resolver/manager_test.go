package resolver_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libload/internal/adapters/cache"
	"go.trai.ch/libload/internal/adapters/locator"
	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports/mocks"
	"go.trai.ch/libload/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

// fakeResolver records the coordinates it is asked to resolve.
type fakeResolver struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeResolver) Resolve(_ context.Context, coord domain.Coordinate) domain.Outcome {
	f.calls = append(f.calls, coord.String())
	if f.fail[coord.String()] {
		return domain.Failed(coord, domain.StageFetch, domain.ErrFetchBadStatus)
	}
	return domain.Activated(coord, coord.DisplayName())
}

func TestManager_SkipsMalformedDeclarations(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	log := mocks.NewMockLogger(ctrl)
	fake := &fakeResolver{}

	store.EXPECT().EnsureDirectory().Return(nil)
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, `"bad:entry"`)
	}).Times(1)

	report := resolver.NewManager(fake, store, nil, log).
		Check(context.Background(), []string{"g1:a1:1.0", "bad:entry", "g2:a2:2.0"}, nil)

	assert.Equal(t, []string{"g1:a1:1.0", "g2:a2:2.0"}, fake.calls)
	require.Len(t, report.Outcomes, 2)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "bad:entry", report.Skipped[0].Declaration)
	assert.ErrorContains(t, report.Skipped[0].Err, domain.ErrMalformedDeclaration.Error())
	assert.True(t, report.OK())
}

func TestManager_FailureDoesNotAbort(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	store.EXPECT().EnsureDirectory().Return(nil)

	fake := &fakeResolver{fail: map[string]bool{"g2:a2:2.0": true}}

	report := resolver.NewManager(fake, store, nil, nil).
		Check(context.Background(), []string{"g1:a1:1.0", "g2:a2:2.0", "g3:a3:3.0"}, nil)

	assert.Equal(t, []string{"g1:a1:1.0", "g2:a2:2.0", "g3:a3:3.0"}, fake.calls)
	assert.False(t, report.OK())

	activated, failed := report.Counts()
	assert.Equal(t, 2, activated)
	assert.Equal(t, 1, failed)
}

func TestManager_EmptyListIsOK(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	store.EXPECT().EnsureDirectory().Return(nil)

	report := resolver.NewManager(&fakeResolver{}, store, nil, nil).Check(context.Background(), nil, nil)

	assert.True(t, report.OK())
	assert.Empty(t, report.Outcomes)
}

func TestManager_NativeShortCircuit(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	host := mocks.NewMockHostSupport(ctrl)
	reporter := mocks.NewMockReporter(ctrl)
	fake := &fakeResolver{}

	host.EXPECT().Native().Return(true)
	reporter.EXPECT().OnComplete(domain.Report{Native: true})
	// EnsureDirectory is not expected: nothing is touched.

	report := resolver.NewManager(fake, store, host, nil).
		Check(context.Background(), []string{"g1:a1:1.0"}, reporter)

	assert.True(t, report.Native)
	assert.True(t, report.OK())
	assert.Empty(t, fake.calls)
}

func TestManager_ReporterOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	host := mocks.NewMockHostSupport(ctrl)
	reporter := mocks.NewMockReporter(ctrl)
	fake := &fakeResolver{}

	g1 := domain.NewCoordinate("g1", "a1", "1.0")
	g2 := domain.NewCoordinate("g2", "a2", "2.0")

	host.EXPECT().Native().Return(false)
	store.EXPECT().EnsureDirectory().Return(nil)

	gomock.InOrder(
		reporter.EXPECT().OnSkipped(gomock.Any()),
		reporter.EXPECT().OnStart(g1),
		reporter.EXPECT().OnOutcome(gomock.Any()).Do(func(o domain.Outcome) {
			assert.Equal(t, g1, o.Coordinate)
		}),
		reporter.EXPECT().OnStart(g2),
		reporter.EXPECT().OnOutcome(gomock.Any()).Do(func(o domain.Outcome) {
			assert.Equal(t, g2, o.Coordinate)
		}),
		reporter.EXPECT().OnComplete(gomock.Any()).Do(func(r domain.Report) {
			assert.Len(t, r.Outcomes, 2)
		}),
	)

	resolver.NewManager(fake, store, host, nil).
		Check(context.Background(), []string{"g1:a1:1.0", "only:two", "g2:a2:2.0"}, reporter)
}

func TestManager_CacheDirectoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	log := mocks.NewMockLogger(ctrl)
	fake := &fakeResolver{}

	store.EXPECT().EnsureDirectory().Return(domain.ErrCacheDirCreateFailed)
	log.EXPECT().Error(gomock.Any()).Times(1)

	report := resolver.NewManager(fake, store, nil, log).
		Check(context.Background(), []string{"g1:a1:1.0", "g2:a2:2.0"}, nil)

	assert.Empty(t, fake.calls)
	require.Len(t, report.Outcomes, 2)
	for _, o := range report.Outcomes {
		assert.Equal(t, domain.StageCache, o.Stage)
		assert.ErrorContains(t, o.Err, domain.ErrCacheDirCreateFailed.Error())
	}
	assert.False(t, report.OK())
}

func jarBytes(t *testing.T, entries ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		f, err := w.Create(e)
		require.NoError(t, err)
		_, err = f.Write([]byte("cafebabe"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// TestManager_SecondRunServedFromCache runs the full pipeline twice against a
// real cache directory. The second run must not touch the network.
func TestManager_SecondRunServedFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	activator := mocks.NewMockCodeActivator(ctrl)

	payloads := map[string][]byte{
		"https://repo.example.com/g1/a1/1.0/a1-1.0.jar": jarBytes(t, "g1/A1.class"),
		"https://repo.example.com/g2/a2/2.0/a2-2.0.jar": jarBytes(t, "g2/A2.class"),
	}

	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, url, dest string) (domain.FetchResult, error) {
			data, ok := payloads[url]
			if !ok {
				return domain.FetchResult{}, errors.New("unexpected url " + url)
			}
			if err := os.WriteFile(dest, data, domain.FilePerm); err != nil {
				return domain.FetchResult{}, err
			}
			return domain.FetchResult{
				Bytes:  int64(len(data)),
				Digest: domain.FormatDigest(xxhash.Sum64(data)),
			}, nil
		}).Times(2)

	// Activated exactly once per artifact per run.
	activator.EXPECT().Activate(gomock.Any(), "host", gomock.Any()).Return(nil).Times(4)

	store := cache.NewStore(t.TempDir())
	coordinator := resolver.NewCoordinator(
		locator.New("https://repo.example.com/"), store, fetcher, activator, nil, "host")
	manager := resolver.NewManager(coordinator, store, nil, nil)
	declarations := []string{"g1:a1:1.0", "g2:a2:2.0"}

	first := manager.Check(context.Background(), declarations, nil)
	require.True(t, first.OK())
	for _, o := range first.Outcomes {
		assert.False(t, o.CacheHit)
		assert.Positive(t, o.BytesFetched)
	}

	second := manager.Check(context.Background(), declarations, nil)
	require.True(t, second.OK())
	for _, o := range second.Outcomes {
		assert.True(t, o.CacheHit, o.Coordinate.String())
		assert.Zero(t, o.BytesFetched)
	}
}

// TestManager_InterruptedDownloadIsRefetched leaves a partial file from a
// failed download behind and checks that the next run evicts and refetches it.
func TestManager_InterruptedDownloadIsRefetched(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	activator := mocks.NewMockCodeActivator(ctrl)
	data := jarBytes(t, "g1/A1.class")

	gomock.InOrder(
		fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _, dest string) (domain.FetchResult, error) {
				require.NoError(t, os.WriteFile(dest, data[:10], domain.FilePerm))
				return domain.FetchResult{}, domain.ErrFetchRequestFailed
			}),
		fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _, dest string) (domain.FetchResult, error) {
				require.NoError(t, os.WriteFile(dest, data, domain.FilePerm))
				return domain.FetchResult{Bytes: int64(len(data)), Digest: domain.FormatDigest(xxhash.Sum64(data))}, nil
			}),
	)
	activator.EXPECT().Activate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	store := cache.NewStore(t.TempDir())
	coordinator := resolver.NewCoordinator(
		locator.New("https://repo.example.com"), store, fetcher, activator, nil, "host")
	manager := resolver.NewManager(coordinator, store, nil, nil)

	first := manager.Check(context.Background(), []string{"g1:a1:1.0"}, nil)
	require.False(t, first.OK())
	assert.Equal(t, domain.StageFetch, first.Outcomes[0].Stage)

	second := manager.Check(context.Background(), []string{"g1:a1:1.0"}, nil)
	require.True(t, second.OK())
	assert.False(t, second.Outcomes[0].CacheHit)
}
