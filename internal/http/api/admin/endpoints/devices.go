package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Halcyon-Displays/halcyon/internal/db"
	"github.com/Halcyon-Displays/halcyon/internal/http/api"
	"github.com/Halcyon-Displays/halcyon/internal/http/api/admin/packets"
	redisclient "github.com/Halcyon-Displays/halcyon/internal/redis"
)

type DeviceController struct {
	store db.Store
}

// DeviceModule mounts the device management endpoints.
func DeviceModule(store db.Store) api.Module {
	ctl := &DeviceController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/devices", ctl.listDevices)
		c.PUT("/devices/:device_id", ctl.updateDevice)
	})
}

// SystemModule mounts status and change-stamp endpoints.
func SystemModule(store db.Store) api.Module {
	ctl := &DeviceController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/system/status", ctl.systemStatus)
		c.GET("/system/last-update", ctl.lastUpdate)
	})
}

func (c *DeviceController) listDevices(ctx *gin.Context) (any, *api.Error) {
	rows, err := c.store.ListDevices()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list devices"}
	}

	out := make([]packets.DeviceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, packets.DeviceResponse{
			Device:       r.Device,
			ContentCount: r.ContentCount,
			DisplayName:  r.DisplayName(),
			Online:       redisclient.DeviceSeen(ctx, r.DeviceID),
		})
	}
	return out, nil
}

func (c *DeviceController) updateDevice(ctx *gin.Context) (any, *api.Error) {
	deviceID := ctx.Param("device_id")

	var req packets.UpdateDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := c.store.UpdateDevice(deviceID, req.CustomName, req.Location); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update device"}
	}

	log.Info().Str("device_id", deviceID).Msg("device updated")
	return gin.H{"success": "device updated"}, nil
}

func (c *DeviceController) systemStatus(ctx *gin.Context) (any, *api.Error) {
	activeDevices, err := c.store.CountActiveDevices()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not get status"}
	}
	totalMedia, err := c.store.CountContent()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not get status"}
	}

	return packets.SystemStatusResponse{
		Status:        "running",
		ActiveDevices: activeDevices,
		TotalMedia:    totalMedia,
	}, nil
}

// lastUpdate exposes the Redis change stamp so admin UIs and devices
// can poll for changes cheaply.
func (c *DeviceController) lastUpdate(ctx *gin.Context) (any, *api.Error) {
	return packets.LastUpdateResponse{
		LastUpdate: redisclient.ContentStamp(ctx),
		ServerTime: time.Now().UnixMilli(),
	}, nil
}
