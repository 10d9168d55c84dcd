package player

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Halcyon-Displays/halcyon/internal/model"
)

// State is the playback driver's mode.
type State int

const (
	// StateIdle means no eligible content; the surface shows its idle
	// screen.
	StateIdle State = iota
	// StatePlaying means the driver is rendering and advancing.
	StatePlaying
	// StateSettings means playback is suspended behind the
	// configuration surface.
	StateSettings
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateSettings:
		return "settings"
	default:
		return "idle"
	}
}

// DriverConfig wires the driver's collaborators. Everything the loop
// waits on goes through Clock so tests run without sleeping.
type DriverConfig struct {
	Clock       Clock
	Images      ImageSurface
	Video       VideoSurface
	Transitions *TransitionEngine

	// TransitionKind and TransitionDuration apply to image advances.
	// Video-to-next is always an immediate cut.
	TransitionKind     TransitionKind
	TransitionDuration time.Duration

	// VideoRetryDelay is how long to wait before skipping a video that
	// failed to start. Zero means the 2s default.
	VideoRetryDelay time.Duration
}

// Driver is the device-side playback state machine. It owns the
// working playlist and position exclusively; the fetcher only hands in
// immutable replacement playlists through UpdatePlaylist.
type Driver struct {
	cfg DriverConfig

	mu         sync.Mutex
	state      State
	playlist   model.Playlist
	index      int
	timer      Timer
	transition *TransitionHandle

	// gen invalidates timer and transition callbacks that were armed
	// before an interrupting event (settings, skip, playlist swap).
	gen uint64

	closed bool
}

const defaultVideoRetryDelay = 2 * time.Second

func NewDriver(cfg DriverConfig) *Driver {
	if cfg.Clock == nil {
		cfg.Clock = NewClock()
	}
	if cfg.VideoRetryDelay <= 0 {
		cfg.VideoRetryDelay = defaultVideoRetryDelay
	}
	if cfg.Transitions == nil {
		cfg.Transitions = NewTransitionEngine(cfg.Clock, nil)
	}
	return &Driver{cfg: cfg, state: StateIdle}
}

// State reports the current mode.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// CurrentIndex reports the playback position.
func (d *Driver) CurrentIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index
}

// UpdatePlaylist replaces the working playlist. The single entry point
// the fetcher uses; the new value is treated as immutable.
//
// While Playing, the item currently on screen is not restarted unless
// the new list forces an index clamp. An empty playlist drops to Idle.
// In Settings the playlist is stored for resume only.
func (d *Driver) UpdatePlaylist(p model.Playlist) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}

	prev := d.playlist
	d.playlist = p

	switch d.state {
	case StateSettings:
		d.mu.Unlock()
		return

	case StateIdle:
		if p.Empty() {
			d.mu.Unlock()
			return
		}
		d.state = StatePlaying
		d.index = 0
		entry, gen := d.armedEntryLocked()
		d.mu.Unlock()
		log.Info().Int("entries", len(p.Entries)).Msg("playback started")
		d.render(entry, gen)
		return

	case StatePlaying:
		if p.Empty() {
			d.interruptLocked()
			d.state = StateIdle
			d.index = 0
			d.mu.Unlock()
			log.Info().Msg("playlist empty, going idle")
			return
		}

		// a transition armed against the old list must not land: its
		// midpoint target and entry belong to the replaced playlist
		midSwap := d.transition != nil
		if midSwap {
			d.cancelPendingLocked()
		}

		if d.index >= len(p.Entries) {
			// clamp forced: restart from the clamped index
			d.interruptLocked()
			d.index = len(p.Entries) - 1
			entry, gen := d.armedEntryLocked()
			d.mu.Unlock()
			log.Info().Int("was", len(prev.Entries)).Int("now", len(p.Entries)).Msg("playlist shrank, index clamped")
			d.render(entry, gen)
			return
		}

		if midSwap {
			// the display timer already fired into the cancelled
			// transition; re-render so the loop keeps advancing
			entry, gen := d.armedEntryLocked()
			d.mu.Unlock()
			d.render(entry, gen)
			return
		}

		// position survives; current render and its timer keep going
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()
}

// OpenSettings suspends playback immediately: pending timers and
// in-flight transitions are cancelled and video stops.
func (d *Driver) OpenSettings() {
	d.mu.Lock()
	if d.closed || d.state == StateSettings {
		d.mu.Unlock()
		return
	}
	d.interruptLocked()
	d.state = StateSettings
	d.mu.Unlock()
	log.Info().Msg("settings opened, playback suspended")
}

// CloseSettings resumes from the last known playlist, or stays idle if
// it was empty.
func (d *Driver) CloseSettings() {
	d.mu.Lock()
	if d.closed || d.state != StateSettings {
		d.mu.Unlock()
		return
	}
	if d.playlist.Empty() {
		d.state = StateIdle
		d.index = 0
		d.mu.Unlock()
		log.Info().Msg("settings closed, no content, idle")
		return
	}
	d.state = StatePlaying
	if d.index >= len(d.playlist.Entries) {
		d.index = 0
	}
	entry, gen := d.armedEntryLocked()
	d.mu.Unlock()
	log.Info().Msg("settings closed, resuming playback")
	d.render(entry, gen)
}

// SkipForward forces an immediate advance without a timed transition.
func (d *Driver) SkipForward() { d.skip(1) }

// SkipBackward forces an immediate step back without a timed transition.
func (d *Driver) SkipBackward() { d.skip(-1) }

func (d *Driver) skip(delta int) {
	d.mu.Lock()
	if d.closed || d.state != StatePlaying || d.playlist.Empty() {
		d.mu.Unlock()
		return
	}
	d.interruptLocked()
	n := len(d.playlist.Entries)
	d.index = ((d.index+delta)%n + n) % n
	entry, gen := d.armedEntryLocked()
	d.mu.Unlock()
	d.render(entry, gen)
}

// VideoEnded is the media subsystem's end-of-playback signal. Advances
// with an immediate cut, no transition.
func (d *Driver) VideoEnded() {
	d.mu.Lock()
	if d.closed || d.state != StatePlaying || d.playlist.Empty() {
		d.mu.Unlock()
		return
	}
	d.cancelPendingLocked()
	d.index = (d.index + 1) % len(d.playlist.Entries)
	entry, gen := d.armedEntryLocked()
	d.mu.Unlock()
	d.render(entry, gen)
}

// Close tears the driver down: stops video, cancels timers. Idempotent.
// A restarted driver begins at Idle and waits for a fresh playlist
// rather than trusting stale eligibility data.
func (d *Driver) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.interruptLocked()
	d.closed = true
	d.state = StateIdle
	d.mu.Unlock()
	log.Info().Msg("playback driver closed")
}

// armedEntryLocked bumps the generation and returns the entry at the
// current index with the generation guarding its callbacks.
func (d *Driver) armedEntryLocked() (model.PlaylistEntry, uint64) {
	d.gen++
	return d.playlist.Entries[d.index], d.gen
}

// cancelPendingLocked invalidates outstanding callbacks and stops
// timers and transitions without touching the video surface.
func (d *Driver) cancelPendingLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.transition != nil {
		d.transition.Cancel()
		d.transition = nil
	}
}

// interruptLocked additionally halts media playback. Used for
// settings, skips, teardown and playlist-forced restarts.
func (d *Driver) interruptLocked() {
	d.cancelPendingLocked()
	if d.cfg.Video != nil {
		d.cfg.Video.StopVideo()
	}
}

// render paints one entry and arms whatever drives the next advance: a
// display timer for images, the end-of-media signal for video.
func (d *Driver) render(entry model.PlaylistEntry, gen uint64) {
	switch entry.Kind {
	case model.ContentKindVideo:
		if err := d.cfg.Video.PlayVideo(entry.URL); err != nil {
			// never stall the loop on a bad asset: wait briefly, move on
			log.Error().Err(err).Str("url", entry.URL).Msg("video failed to start, skipping")
			d.mu.Lock()
			if gen != d.gen || d.state != StatePlaying {
				d.mu.Unlock()
				return
			}
			d.timer = d.cfg.Clock.AfterFunc(d.cfg.VideoRetryDelay, func() { d.forceAdvance(gen) })
			d.mu.Unlock()
		}
	default:
		d.cfg.Images.ShowImage(entry.URL)
		d.mu.Lock()
		if gen != d.gen || d.state != StatePlaying {
			d.mu.Unlock()
			return
		}
		duration := time.Duration(entry.DisplayDuration) * time.Second
		d.timer = d.cfg.Clock.AfterFunc(duration, func() { d.imageTimerFired(gen) })
		d.mu.Unlock()
	}
}

// forceAdvance skips to the next entry with an immediate cut, used
// after a failed video start.
func (d *Driver) forceAdvance(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.state != StatePlaying || d.playlist.Empty() {
		d.mu.Unlock()
		return
	}
	d.index = (d.index + 1) % len(d.playlist.Entries)
	entry, nextGen := d.armedEntryLocked()
	d.mu.Unlock()
	d.render(entry, nextGen)
}

// imageTimerFired runs the transition targeting the next index. The
// content swap happens at the transition midpoint; the next advance is
// armed only once the transition completes, so renders never overlap.
func (d *Driver) imageTimerFired(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.state != StatePlaying || d.playlist.Empty() {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	next := (d.index + 1) % len(d.playlist.Entries)
	entry := d.playlist.Entries[next]
	kind := d.cfg.TransitionKind
	duration := d.cfg.TransitionDuration
	d.mu.Unlock()

	// Run outside the lock: instant cuts invoke callbacks synchronously.
	handle := d.cfg.Transitions.Run(kind, duration,
		func() { d.transitionMidpoint(gen, next, entry) },
		func() { d.transitionDone(gen, entry) },
	)

	d.mu.Lock()
	if gen == d.gen && d.state == StatePlaying {
		d.transition = handle
	} else {
		handle.Cancel()
	}
	d.mu.Unlock()
}

func (d *Driver) transitionMidpoint(gen uint64, next int, entry model.PlaylistEntry) {
	d.mu.Lock()
	if gen != d.gen || d.state != StatePlaying {
		d.mu.Unlock()
		return
	}
	d.index = next
	d.mu.Unlock()

	// paint the incoming content; its advance is armed on completion
	switch entry.Kind {
	case model.ContentKindVideo:
		if err := d.cfg.Video.PlayVideo(entry.URL); err != nil {
			log.Error().Err(err).Str("url", entry.URL).Msg("video failed to start, skipping")
			d.mu.Lock()
			if gen == d.gen && d.state == StatePlaying {
				d.timer = d.cfg.Clock.AfterFunc(d.cfg.VideoRetryDelay, func() { d.forceAdvance(gen) })
			}
			d.mu.Unlock()
		}
	default:
		d.cfg.Images.ShowImage(entry.URL)
	}
}

func (d *Driver) transitionDone(gen uint64, entry model.PlaylistEntry) {
	d.mu.Lock()
	if gen != d.gen || d.state != StatePlaying {
		d.mu.Unlock()
		return
	}
	d.transition = nil
	if entry.Kind == model.ContentKindVideo {
		// advance comes from VideoEnded
		d.mu.Unlock()
		return
	}
	duration := time.Duration(entry.DisplayDuration) * time.Second
	d.timer = d.cfg.Clock.AfterFunc(duration, func() { d.imageTimerFired(gen) })
	d.mu.Unlock()
}
