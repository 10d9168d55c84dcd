package player

import (
	"sync"
	"time"
)

// TransitionKind names a visual effect bridging two renders.
type TransitionKind string

const (
	TransitionNone       TransitionKind = "none"
	TransitionFade       TransitionKind = "fade"
	TransitionSlideLeft  TransitionKind = "slide_left"
	TransitionSlideRight TransitionKind = "slide_right"
	TransitionSlideUp    TransitionKind = "slide_up"
	TransitionSlideDown  TransitionKind = "slide_down"
	TransitionZoomIn     TransitionKind = "zoom_in"
	TransitionZoomOut    TransitionKind = "zoom_out"
)

func knownTransition(k TransitionKind) bool {
	switch k {
	case TransitionFade, TransitionSlideLeft, TransitionSlideRight,
		TransitionSlideUp, TransitionSlideDown, TransitionZoomIn, TransitionZoomOut:
		return true
	}
	return false
}

// TransitionEngine executes symmetric transitions: the outgoing visual
// animates out over half the duration, the content swaps at the
// midpoint, and the incoming visual animates in over the rest. It
// knows nothing about playlists.
type TransitionEngine struct {
	clock  Clock
	visual Visual // optional
}

func NewTransitionEngine(clock Clock, visual Visual) *TransitionEngine {
	return &TransitionEngine{clock: clock, visual: visual}
}

// TransitionHandle cancels an in-flight transition. Cancelling before
// the midpoint suppresses both callbacks; after the midpoint the swap
// has already happened and only onDone is suppressed.
type TransitionHandle struct {
	mu        sync.Mutex
	cancelled bool
	timer     Timer
}

func (h *TransitionHandle) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancelled = true
	if h.timer != nil {
		h.timer.Stop()
	}
}

// Run starts a transition. An unrecognized kind, TransitionNone, or a
// non-positive duration degrades to an instant cut: onMidpoint and
// onDone fire synchronously before Run returns.
func (e *TransitionEngine) Run(kind TransitionKind, duration time.Duration, onMidpoint, onDone func()) *TransitionHandle {
	h := &TransitionHandle{}

	if !knownTransition(kind) || duration <= 0 {
		onMidpoint()
		if onDone != nil {
			onDone()
		}
		return h
	}

	half := duration / 2
	if e.visual != nil {
		e.visual.AnimateOut(kind)
	}

	h.mu.Lock()
	h.timer = e.clock.AfterFunc(half, func() {
		h.mu.Lock()
		if h.cancelled {
			h.mu.Unlock()
			return
		}
		h.mu.Unlock()

		onMidpoint()
		if e.visual != nil {
			e.visual.AnimateIn(kind)
		}

		h.mu.Lock()
		if h.cancelled {
			h.mu.Unlock()
			return
		}
		h.timer = e.clock.AfterFunc(half, func() {
			h.mu.Lock()
			if h.cancelled {
				h.mu.Unlock()
				return
			}
			h.mu.Unlock()
			if onDone != nil {
				onDone()
			}
		})
		h.mu.Unlock()
	})
	h.mu.Unlock()

	return h
}
