package model

import "time"

// PlaylistEntry is one resolved item a device should render.
type PlaylistEntry struct {
	ContentID       int    `json:"content_id"`
	Name            string `json:"name"`
	Kind            string `json:"kind"`
	URL             string `json:"url"`
	DisplayDuration int    `json:"display_duration"`
	PlayOrder       int    `json:"play_order"`
}

// Playlist is the resolver output for one device at one instant. It is
// never persisted; identical inputs always produce an identical list.
type Playlist struct {
	DeviceID    string          `json:"device_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Entries     []PlaylistEntry `json:"playlist"`
}

func (p Playlist) Empty() bool { return len(p.Entries) == 0 }
