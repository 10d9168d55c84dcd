package model

import "time"

// AllDevices is the synthetic assignment target meaning "every device".
const AllDevices = "all"

// Assignment binds one content item to one device (or to the
// AllDevices sentinel) together with its scheduling constraints.
//
// DaysOfWeek is stored as a JSON array of tokens: "all", "weekdays",
// "weekends" or three-letter lowercase day names ("mon".."sun"). Dates
// are "2006-01-02", times-of-day are "15:04". The resolver tolerates
// malformed values by treating the assignment as never eligible.
type Assignment struct {
	ID              int       `db:"id"               json:"id"`
	DeviceID        string    `db:"device_id"        json:"device_id"`
	ContentID       int       `db:"content_id"       json:"content_id"`
	StartDate       *string   `db:"start_date"       json:"start_date,omitempty"`
	EndDate         *string   `db:"end_date"         json:"end_date,omitempty"`
	DaysOfWeek      *string   `db:"days_of_week"     json:"days_of_week,omitempty"`
	StartTime       *string   `db:"start_time"       json:"start_time,omitempty"`
	EndTime         *string   `db:"end_time"         json:"end_time,omitempty"`
	DisplayDuration int       `db:"display_duration" json:"display_duration"`
	PlayOrder       int       `db:"play_order"       json:"play_order"`
	IsActive        bool      `db:"is_active"        json:"is_active"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
}

// PlayOrderUpdate is one element of a bulk reorder request.
type PlayOrderUpdate struct {
	AssignmentID int `json:"assignment_id" binding:"required"`
	PlayOrder    int `json:"play_order"`
}

// ScheduledItem is one assignment joined with its content, the unit
// the resolver filters and orders.
type ScheduledItem struct {
	Assignment
	ContentName   string `db:"content_name"   json:"content_name"`
	Filename      string `db:"filename"       json:"filename"`
	Kind          string `db:"kind"           json:"kind"`
	URL           string `db:"url"            json:"url"`
	VideoDuration *int   `db:"video_duration" json:"video_duration,omitempty"`
}
