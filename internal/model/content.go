package model

import "time"

const (
	ContentKindImage = "image"
	ContentKindVideo = "video"
)

type Content struct {
	ID            int       `db:"id"             json:"id"`
	Name          string    `db:"name"           json:"name"`
	Filename      string    `db:"filename"       json:"filename"`
	Kind          string    `db:"kind"           json:"kind"`
	SizeBytes     int64     `db:"size_bytes"     json:"size_bytes"`
	URL           string    `db:"url"            json:"url"`
	VideoDuration *int      `db:"video_duration" json:"video_duration,omitempty"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
}

// ContentSummary is the admin listing row: one content item plus
// aggregate information about its assignments.
type ContentSummary struct {
	Content
	AssignmentCount int     `db:"assignment_count" json:"assignment_count"`
	StartDate       *string `db:"start_date"       json:"start_date,omitempty"`
	EndDate         *string `db:"end_date"         json:"end_date,omitempty"`
	IsActive        bool    `db:"is_active"        json:"is_active"`
}
