package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const lastUpdateKey = "content:last_update"

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// BumpContentStamp records that some device's playlist may have
// changed. Devices compare this against their last fetch to decide
// whether an early re-poll is worth it.
func BumpContentStamp(ctx context.Context) {
	if Rdb == nil {
		return
	}
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := Rdb.Set(ctx, lastUpdateKey, now, 0).Err(); err != nil {
		log.Error().Err(err).Msg("failed to bump content stamp")
	}
}

// ContentStamp returns the last-change stamp in unix milliseconds, or
// zero when nothing has changed since the server started.
func ContentStamp(ctx context.Context) int64 {
	if Rdb == nil {
		return 0
	}
	val, err := Rdb.Get(ctx, lastUpdateKey).Result()
	if err != nil {
		return 0
	}
	ms, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return ms
}

// TouchDeviceSeen keeps a short-lived marker of device liveness so the
// dashboard can distinguish "online now" from the database's
// last_checkin column without a write per poll.
func TouchDeviceSeen(ctx context.Context, deviceID string, ttl time.Duration) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, "device:seen:"+deviceID, "1", ttl).Err(); err != nil {
		log.Error().Err(err).Str("device_id", deviceID).Msg("failed to touch device liveness")
	}
}

// DeviceSeen reports whether the device polled inside the liveness TTL.
func DeviceSeen(ctx context.Context, deviceID string) bool {
	if Rdb == nil {
		return false
	}
	n, err := Rdb.Exists(ctx, "device:seen:"+deviceID).Result()
	return err == nil && n > 0
}
