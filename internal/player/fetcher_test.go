package player

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Halcyon-Displays/halcyon/internal/model"
)

type fetcherFixture struct {
	clock     *fakeClock
	fetcher   *Fetcher
	mu        sync.Mutex
	playlists []model.Playlist
	statuses  []string
}

func newFetcherFixture(serverURL string) *fetcherFixture {
	fx := &fetcherFixture{clock: newFakeClock()}
	fx.fetcher = NewFetcher(FetcherConfig{
		Settings: &fakeSettings{deviceID: "tv-01", server: serverURL},
		Clock:    fx.clock,
		OnPlaylist: func(p model.Playlist) {
			fx.mu.Lock()
			defer fx.mu.Unlock()
			fx.playlists = append(fx.playlists, p)
		},
		OnStatus: func(s string) {
			fx.mu.Lock()
			defer fx.mu.Unlock()
			fx.statuses = append(fx.statuses, s)
		},
		Backoff: 30 * time.Second,
	})
	return fx
}

func (fx *fetcherFixture) received() []model.Playlist {
	fx.mu.Lock()
	defer fx.mu.Unlock()
	return append([]model.Playlist(nil), fx.playlists...)
}

func (fx *fetcherFixture) lastStatus() string {
	fx.mu.Lock()
	defer fx.mu.Unlock()
	if len(fx.statuses) == 0 {
		return ""
	}
	return fx.statuses[len(fx.statuses)-1]
}

func playlistHandler(entries []model.PlaylistEntry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"device_id":    "tv-01",
			"generated_at": "2025-06-11T12:00:00Z",
			"playlist":     entries,
		})
	}
}

func TestFetchSuccessHandsPlaylistToDriver(t *testing.T) {
	srv := httptest.NewServer(playlistHandler([]model.PlaylistEntry{imageEntry(0, 10)}))
	defer srv.Close()

	fx := newFetcherFixture(srv.URL)
	fx.fetcher.FetchNow(context.Background())

	got := fx.received()
	require.Len(t, got, 1)
	assert.Equal(t, "tv-01", got[0].DeviceID)
	require.Len(t, got[0].Entries, 1)
	assert.Equal(t, urlFor(0), got[0].Entries[0].URL)
	assert.Equal(t, "connected", fx.lastStatus())
}

func TestEmptyPlaylistIsSuccessNotFailure(t *testing.T) {
	srv := httptest.NewServer(playlistHandler(nil))
	defer srv.Close()

	fx := newFetcherFixture(srv.URL)
	fx.fetcher.FetchNow(context.Background())

	got := fx.received()
	require.Len(t, got, 1)
	assert.True(t, got[0].Empty())
	assert.Equal(t, "connected", fx.lastStatus())
	assert.Equal(t, 0, fx.clock.pendingTimers(), "no retry scheduled on success")
}

func TestFailureSchedulesExactlyOneFixedRetry(t *testing.T) {
	var mu sync.Mutex
	requests := 0
	fail := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		shouldFail := fail
		mu.Unlock()
		if shouldFail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		playlistHandler(nil)(w, r)
	}))
	defer srv.Close()

	fx := newFetcherFixture(srv.URL)
	fx.fetcher.FetchNow(context.Background())

	assert.Contains(t, fx.lastStatus(), "retrying")
	assert.Equal(t, 1, fx.clock.pendingTimers(), "exactly one retry pending")

	// the retry fires after the fixed backoff, no sooner
	fx.clock.Advance(29 * time.Second)
	mu.Lock()
	assert.Equal(t, 1, requests)
	mu.Unlock()

	// second consecutive failure schedules another single retry with
	// the same delay, not an escalating one
	fx.clock.Advance(1 * time.Second)
	mu.Lock()
	assert.Equal(t, 2, requests)
	mu.Unlock()
	assert.Equal(t, 1, fx.clock.pendingTimers())

	// recovery: retry succeeds and the chain stops
	mu.Lock()
	fail = false
	mu.Unlock()
	fx.clock.Advance(30 * time.Second)
	mu.Lock()
	assert.Equal(t, 3, requests)
	mu.Unlock()
	assert.Equal(t, 0, fx.clock.pendingTimers())
	require.Len(t, fx.received(), 1)
}

func TestAtMostOneFetchInFlight(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		<-release
		playlistHandler(nil)(w, r)
	}))
	defer srv.Close()

	fx := newFetcherFixture(srv.URL)

	done := make(chan struct{})
	go func() {
		fx.fetcher.FetchNow(context.Background())
		close(done)
	}()

	// wait for the first request to arrive, then try to overlap
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return requests == 1
	}, time.Second, time.Millisecond)

	fx.fetcher.FetchNow(context.Background()) // skipped, not queued
	mu.Lock()
	assert.Equal(t, 1, requests)
	mu.Unlock()

	close(release)
	<-done
	require.Len(t, fx.received(), 1)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tv/ping" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	fx := newFetcherFixture(srv.URL)
	assert.NoError(t, fx.fetcher.Ping(context.Background()))

	srv.Close()
	assert.Error(t, fx.fetcher.Ping(context.Background()), "unreachable server is an error")
}
