package endpoints

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Halcyon-Displays/halcyon/internal/db"
	"github.com/Halcyon-Displays/halcyon/internal/http/api"
	"github.com/Halcyon-Displays/halcyon/internal/http/api/admin/packets"
	"github.com/Halcyon-Displays/halcyon/internal/model"
	"github.com/Halcyon-Displays/halcyon/internal/mqtt"
	redisclient "github.com/Halcyon-Displays/halcyon/internal/redis"
)

type ContentController struct {
	store    db.Store
	notifier *mqtt.Notifier
}

// ContentModule mounts the /media endpoints.
func ContentModule(store db.Store, notifier *mqtt.Notifier) api.Module {
	ctl := &ContentController{store: store, notifier: notifier}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/media", ctl.listMedia)
		c.GET("/media/:id", ctl.getMedia)
		c.PUT("/media/:id/schedule", ctl.updateSchedule)
		c.PUT("/media/:id/toggle", ctl.toggleMedia)
		c.DELETE("/media/:id", ctl.deleteMedia)
	})
}

func (c *ContentController) listMedia(ctx *gin.Context) (any, *api.Error) {
	all, err := c.store.ListContent()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list media"}
	}
	return all, nil
}

func (c *ContentController) getMedia(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	content, err := c.store.GetContentByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "media not found"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not get media"}
	}
	return content, nil
}

// updateSchedule rewrites the scheduling constraints across every
// assignment of one media item. An empty day list stores the "all"
// sentinel, matching how uploads without day selection behave.
func (c *ContentController) updateSchedule(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var req packets.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	days := req.DaysOfWeek
	if len(days) == 0 {
		days = []string{"all"}
	}
	daysJSON, _ := json.Marshal(days)

	duration := req.DisplayDuration
	if duration <= 0 {
		duration = 10
	}

	if err := c.store.UpdateContentSchedule(id, string(daysJSON), duration,
		req.StartTime, req.EndTime, req.StartDate, req.EndDate); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update schedule"}
	}

	c.notifyAssigned(ctx, id)
	log.Info().Int("content_id", id).Msg("media schedule updated")
	return gin.H{"success": "schedule updated"}, nil
}

func (c *ContentController) toggleMedia(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var req packets.ToggleContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := c.store.SetContentActive(id, *req.IsActive); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update media status"}
	}

	c.notifyAssigned(ctx, id)
	log.Info().Int("content_id", id).Bool("is_active", *req.IsActive).Msg("media status changed")
	return gin.H{"success": "media status updated"}, nil
}

func (c *ContentController) deleteMedia(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	// capture targets before the assignments cascade away
	assignments, err := c.store.ListAssignmentsForContent(id)
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("could not list assignments, devices will not be notified")
	}

	err = c.store.DeleteContent(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "media not found"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete media"}
	}

	redisclient.BumpContentStamp(ctx)
	for _, a := range assignments {
		c.notifier.PlaylistUpdated(a.DeviceID)
	}
	log.Info().Int("content_id", id).Msg("media deleted")
	return gin.H{"success": "media deleted"}, nil
}

// notifyAssigned bumps the change stamp and pings every device holding
// an assignment for this content.
func (c *ContentController) notifyAssigned(ctx *gin.Context, contentID int) {
	redisclient.BumpContentStamp(ctx)
	assignments, err := c.store.ListAssignmentsForContent(contentID)
	if err != nil {
		log.Error().Err(err).Int("content_id", contentID).Msg("could not list assignments, devices will not be notified")
		return
	}
	for _, a := range assignments {
		if a.DeviceID == model.AllDevices {
			c.notifier.PlaylistUpdatedAll()
			return
		}
		c.notifier.PlaylistUpdated(a.DeviceID)
	}
}
