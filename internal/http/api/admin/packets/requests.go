package packets

import "github.com/Halcyon-Displays/halcyon/internal/model"

type UpdateScheduleRequest struct {
	DaysOfWeek      []string `json:"days_of_week"`
	DisplayDuration int      `json:"display_duration"`
	StartTime       *string  `json:"start_time"`
	EndTime         *string  `json:"end_time"`
	StartDate       *string  `json:"start_date"`
	EndDate         *string  `json:"end_date"`
}

type ToggleContentRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type AssignContentRequest struct {
	DeviceID        string `json:"device_id" binding:"required"`
	ContentID       int    `json:"content_id" binding:"required"`
	DisplayDuration int    `json:"display_duration"`
}

type AssignAllDevicesRequest struct {
	ContentID       int `json:"content_id" binding:"required"`
	DisplayDuration int `json:"display_duration"`
}

type UpdateAssignmentRequest struct {
	DisplayDuration int `json:"display_duration" binding:"required"`
}

type ReorderContentRequest struct {
	DeviceID     string                  `json:"device_id" binding:"required"`
	ContentOrder []model.PlayOrderUpdate `json:"content_order" binding:"required"`
}

type UpdateDeviceRequest struct {
	CustomName *string `json:"custom_name"`
	Location   *string `json:"location"`
}
