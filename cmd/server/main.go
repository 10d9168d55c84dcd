package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Halcyon-Displays/halcyon/internal/db"
	"github.com/Halcyon-Displays/halcyon/internal/mqtt"
	"github.com/Halcyon-Displays/halcyon/internal/redis"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	env := LoadEnvironment()

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)

	// MQTT push is optional; without a broker devices rely on polling
	var notifier *mqtt.Notifier
	if env.MQTTBrokerURL != "" {
		var err error
		notifier, err = mqtt.NewNotifier(env.MQTTBrokerURL, "halcyon-server")
		if err != nil {
			log.Error().Err(err).Msg("MQTT unavailable, continuing without push")
			notifier = nil
		} else {
			defer notifier.Close()
		}
	}

	store := db.NewStore()

	r := gin.Default()
	RegisterRoutes(r, env, store, notifier)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
