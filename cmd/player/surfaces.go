package main

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Halcyon-Displays/halcyon/internal/player"
)

// simulatedVideoLength stands in for real media length in headless
// runs, where no video subsystem raises end-of-media events.
const simulatedVideoLength = 10 * time.Second

// logSurfaces is the headless render target: it logs what a real UI
// layer would paint and synthesizes end-of-media signals. Useful for
// soak-testing schedules without a display attached; a TV build swaps
// in its own surfaces.
type logSurfaces struct {
	driver *player.Driver

	mu       sync.Mutex
	endTimer *time.Timer
}

func (s *logSurfaces) ShowImage(url string) {
	log.Info().Str("url", url).Msg("render image")
}

func (s *logSurfaces) PlayVideo(url string) error {
	log.Info().Str("url", url).Msg("render video")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.driver != nil {
		s.endTimer = time.AfterFunc(simulatedVideoLength, s.driver.VideoEnded)
	}
	return nil
}

func (s *logSurfaces) StopVideo() {
	log.Info().Msg("stop video")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endTimer != nil {
		s.endTimer.Stop()
		s.endTimer = nil
	}
}

func (s *logSurfaces) AnimateOut(kind player.TransitionKind) {
	log.Debug().Str("kind", string(kind)).Msg("transition out")
}

func (s *logSurfaces) AnimateIn(kind player.TransitionKind) {
	log.Debug().Str("kind", string(kind)).Msg("transition in")
}
