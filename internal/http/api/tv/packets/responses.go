package packets

import "github.com/Halcyon-Displays/halcyon/internal/model"

// PlaylistResponse is the resolver output envelope handed to devices.
// An empty playlist is a valid response, not an error: the device
// shows its idle state.
type PlaylistResponse struct {
	DeviceID    string                `json:"device_id"`
	GeneratedAt string                `json:"generated_at"`
	Playlist    []model.PlaylistEntry `json:"playlist"`
}

type PingResponse struct {
	Status     string `json:"status"`
	ServerTime string `json:"server_time"`
}
