package endpoints

import (
	"database/sql"
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

type AssignmentController struct {
	store    db.Store
	notifier *mqtt.Notifier
}

// AssignmentModule mounts the device-content assignment endpoints.
func AssignmentModule(store db.Store, notifier *mqtt.Notifier) api.Module {
	ctl := &AssignmentController{store: store, notifier: notifier}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/assignments", ctl.assignContent)
		c.POST("/assignments/all-devices", ctl.assignAllDevices)
		c.PUT("/assignments/:id", ctl.updateAssignment)
		c.DELETE("/assignments/:id", ctl.removeAssignment)
		c.PUT("/devices/reorder", ctl.reorderContent)
	})
}

func (c *AssignmentController) assignContent(ctx *gin.Context) (any, *api.Error) {
	var req packets.AssignContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := c.store.GetContentByID(req.ContentID); errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "content not found"}
	}

	duration := req.DisplayDuration
	if duration <= 0 {
		duration = 10
	}

	assignment, err := c.store.AssignContent(req.DeviceID, req.ContentID, duration)
	if errors.Is(err, db.ErrAlreadyAssigned) {
		return nil, &api.Error{Code: http.StatusConflict, Message: err.Error()}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not assign content"}
	}

	redisclient.BumpContentStamp(ctx)
	if req.DeviceID == model.AllDevices {
		c.notifier.PlaylistUpdatedAll()
	} else {
		c.notifier.PlaylistUpdated(req.DeviceID)
	}

	log.Info().
		Int("content_id", req.ContentID).
		Str("device_id", req.DeviceID).
		Int("play_order", assignment.PlayOrder).
		Msg("content assigned")
	return assignment, nil
}

// assignAllDevices creates one assignment per active device, skipping
// devices that already hold the content.
func (c *AssignmentController) assignAllDevices(ctx *gin.Context) (any, *api.Error) {
	var req packets.AssignAllDevicesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := c.store.GetContentByID(req.ContentID); errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "content not found"}
	}

	deviceIDs, err := c.store.ListActiveDeviceIDs()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list devices"}
	}

	duration := req.DisplayDuration
	if duration <= 0 {
		duration = 10
	}

	assigned := 0
	for _, deviceID := range deviceIDs {
		_, err := c.store.AssignContent(deviceID, req.ContentID, duration)
		if errors.Is(err, db.ErrAlreadyAssigned) {
			continue
		}
		if err != nil {
			return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not assign content"}
		}
		assigned++
	}

	redisclient.BumpContentStamp(ctx)
	c.notifier.PlaylistUpdatedAll()

	log.Info().Int("content_id", req.ContentID).Int("devices", assigned).Msg("content assigned to all devices")
	return gin.H{"assigned_devices": assigned}, nil
}

func (c *AssignmentController) updateAssignment(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var req packets.UpdateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if req.DisplayDuration < 1 {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "display_duration must be at least 1 second"}
	}

	assignment, err := c.store.GetAssignmentByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "assignment not found"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not get assignment"}
	}

	if err := c.store.UpdateAssignmentDuration(id, req.DisplayDuration); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update assignment"}
	}

	redisclient.BumpContentStamp(ctx)
	c.notifier.PlaylistUpdated(assignment.DeviceID)
	return gin.H{"success": "assignment updated"}, nil
}

func (c *AssignmentController) removeAssignment(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	assignment, err := c.store.GetAssignmentByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "assignment not found"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not get assignment"}
	}

	if err := c.store.RemoveAssignment(id); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not remove assignment"}
	}

	redisclient.BumpContentStamp(ctx)
	c.notifier.PlaylistUpdated(assignment.DeviceID)
	log.Info().Int("assignment_id", id).Msg("assignment removed")
	return gin.H{"success": "assignment removed"}, nil
}

func (c *AssignmentController) reorderContent(ctx *gin.Context) (any, *api.Error) {
	var req packets.ReorderContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := c.store.ReorderAssignments(req.DeviceID, req.ContentOrder); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not reorder content"}
	}

	redisclient.BumpContentStamp(ctx)
	c.notifier.PlaylistUpdated(req.DeviceID)
	log.Info().Str("device_id", req.DeviceID).Msg("content reordered")
	return gin.H{"success": "content reordered"}, nil
}
