package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Halcyon-Displays/halcyon/internal/player"
)

func main() {
	var (
		settingsPath  = flag.String("settings", "player-settings.json", "path to the settings file")
		serverAddress = flag.String("server", "", "server address override, e.g. http://signage.local:8080")
		interval      = flag.Duration("interval", player.DefaultFetchInterval, "playlist poll interval")
		transition    = flag.String("transition", "fade", "transition between images")
		transitionDur = flag.Duration("transition-duration", time.Second, "transition duration")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	settings, err := loadSettings(*settingsPath, *serverAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load settings")
	}
	if settings.ServerAddress() == "" {
		log.Fatal().Msg("no server address configured, pass -server on first run")
	}

	surfaces := &logSurfaces{}
	clock := player.NewClock()

	driver := player.NewDriver(player.DriverConfig{
		Clock:              clock,
		Images:             surfaces,
		Video:              surfaces,
		Transitions:        player.NewTransitionEngine(clock, surfaces),
		TransitionKind:     player.TransitionKind(*transition),
		TransitionDuration: *transitionDur,
	})
	surfaces.driver = driver

	fetcher := player.NewFetcher(player.FetcherConfig{
		Settings:   settings,
		Clock:      clock,
		Interval:   *interval,
		OnPlaylist: driver.UpdatePlaylist,
		OnStatus: func(status string) {
			log.Info().Str("status", status).Msg("connection")
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// reachability up front, so "server down" is distinguishable from
	// "nothing scheduled" in the logs
	if err := fetcher.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("server not reachable yet, will keep retrying")
	}

	go fetcher.Run(ctx)

	log.Info().
		Str("device_id", settings.DeviceID()).
		Str("server", settings.ServerAddress()).
		Msg("player started")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	// teardown: stop fetching, halt media, cancel timers
	cancel()
	driver.Close()
	log.Info().Msg("player stopped")
}
