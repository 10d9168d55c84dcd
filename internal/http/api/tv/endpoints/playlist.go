package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Halcyon-Displays/halcyon/internal/db"
	"github.com/Halcyon-Displays/halcyon/internal/http/api"
	"github.com/Halcyon-Displays/halcyon/internal/http/api/tv/packets"
	redisclient "github.com/Halcyon-Displays/halcyon/internal/redis"
	"github.com/Halcyon-Displays/halcyon/internal/schedule"
)

// deviceSeenTTL bounds how long a device counts as online after its
// last poll. Slightly above the default 30s fetch interval.
const deviceSeenTTL = 90 * time.Second

type TvController struct {
	store db.Store
	clock schedule.Clock
}

// PlaylistModule mounts the device-facing playlist and ping endpoints.
func PlaylistModule(store db.Store, clock schedule.Clock) api.Module {
	ctl := &TvController{store: store, clock: clock}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/playlist/:device_id", ctl.getPlaylist)
		c.GET("/ping", ctl.ping)
	})
}

// getPlaylist is the resolver query: checkin bookkeeping, then a pure
// resolution over the assignment snapshot at the current instant.
func (t *TvController) getPlaylist(ctx *gin.Context) (any, *api.Error) {
	deviceID := ctx.Param("device_id")
	now := t.clock.Now()

	if err := t.store.CheckinDevice(deviceID, ctx.ClientIP(), now); err != nil {
		// checkin is bookkeeping; a failed upsert must not block playback
		log.Error().Err(err).Str("device_id", deviceID).Msg("device checkin failed")
	}
	redisclient.TouchDeviceSeen(ctx, deviceID, deviceSeenTTL)

	items, err := t.store.ListScheduledItems(deviceID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not load schedule"}
	}

	playlist := schedule.Resolve(items, deviceID, now)

	return packets.PlaylistResponse{
		DeviceID:    deviceID,
		GeneratedAt: playlist.GeneratedAt.Format(time.RFC3339),
		Playlist:    playlist.Entries,
	}, nil
}

// ping is the connectivity probe devices use to tell "server
// unreachable" apart from "reachable, nothing scheduled".
func (t *TvController) ping(ctx *gin.Context) (any, *api.Error) {
	return packets.PingResponse{
		Status:     "ok",
		ServerTime: t.clock.Now().Format(time.RFC3339),
	}, nil
}
