package player

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Halcyon-Displays/halcyon/internal/model"
)

const (
	// DefaultFetchInterval is how often the device re-polls its
	// playlist while playback is active.
	DefaultFetchInterval = 30 * time.Second
	// DefaultRetryBackoff is the fixed delay before the single retry
	// scheduled after a failed fetch. It never escalates and never
	// gives up; the device keeps retrying until the server answers.
	DefaultRetryBackoff = 30 * time.Second

	requestTimeout = 10 * time.Second
)

// FetcherConfig wires a Fetcher.
type FetcherConfig struct {
	Settings Settings
	Clock    Clock

	// OnPlaylist receives each successfully fetched playlist. This is
	// the fetcher's only side effect on playback.
	OnPlaylist func(model.Playlist)
	// OnStatus receives user-visible status strings ("connected",
	// "server unreachable, retrying...").
	OnStatus func(string)

	Interval time.Duration // zero means DefaultFetchInterval
	Backoff  time.Duration // zero means DefaultRetryBackoff

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Fetcher polls the server for this device's playlist on a fixed
// interval and hands results to the driver. At most one fetch is in
// flight at a time; a tick due during one is skipped, not queued.
type Fetcher struct {
	cfg FetcherConfig

	mu       sync.Mutex
	inFlight bool
	retry    Timer
}

type playlistEnvelope struct {
	DeviceID    string                `json:"device_id"`
	GeneratedAt string                `json:"generated_at"`
	Playlist    []model.PlaylistEntry `json:"playlist"`
}

func NewFetcher(cfg FetcherConfig) *Fetcher {
	if cfg.Clock == nil {
		cfg.Clock = NewClock()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultFetchInterval
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultRetryBackoff
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: requestTimeout}
	}
	return &Fetcher{cfg: cfg}
}

// Run fetches immediately, then on every interval tick until the
// context is cancelled. Blocks; run it on its own goroutine.
func (f *Fetcher) Run(ctx context.Context) {
	f.FetchNow(ctx)

	ticker := time.NewTicker(f.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.mu.Lock()
			if f.retry != nil {
				f.retry.Stop()
				f.retry = nil
			}
			f.mu.Unlock()
			return
		case <-ticker.C:
			f.FetchNow(ctx)
		}
	}
}

// FetchNow performs one fetch unless another is already in flight.
func (f *Fetcher) FetchNow(ctx context.Context) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return
	}
	f.inFlight = true
	if f.retry != nil {
		f.retry.Stop()
		f.retry = nil
	}
	f.mu.Unlock()

	err := f.fetch(ctx)

	f.mu.Lock()
	f.inFlight = false
	if err != nil && ctx.Err() == nil {
		// exactly one retry per failure, fixed delay, forever
		f.retry = f.cfg.Clock.AfterFunc(f.cfg.Backoff, func() { f.FetchNow(ctx) })
	}
	f.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Msg("playlist fetch failed")
		f.status(fmt.Sprintf("server unreachable, retrying in %s", f.cfg.Backoff))
	}
}

func (f *Fetcher) fetch(ctx context.Context) error {
	url := fmt.Sprintf("%s/api/tv/playlist/%s",
		f.cfg.Settings.ServerAddress(), f.cfg.Settings.DeviceID())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := f.cfg.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("playlist fetch: unexpected status %d", resp.StatusCode)
	}

	var envelope playlistEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("playlist fetch: decode: %w", err)
	}

	f.status("connected")
	f.cfg.OnPlaylist(model.Playlist{
		DeviceID:    envelope.DeviceID,
		GeneratedAt: f.cfg.Clock.Now(),
		Entries:     envelope.Playlist,
	})
	return nil
}

// Ping probes server reachability without fetching a playlist, so the
// UI can tell "server down" apart from "nothing scheduled".
func (f *Fetcher) Ping(ctx context.Context) error {
	url := f.cfg.Settings.ServerAddress() + "/api/tv/ping"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := f.cfg.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (f *Fetcher) status(msg string) {
	if f.cfg.OnStatus != nil {
		f.cfg.OnStatus(msg)
	}
}
