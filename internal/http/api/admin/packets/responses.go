package packets

import "github.com/Halcyon-Displays/halcyon/internal/model"

type DeviceResponse struct {
	model.Device
	ContentCount int    `json:"content_count"`
	DisplayName  string `json:"display_name"`
	Online       bool   `json:"online"`
}

type SystemStatusResponse struct {
	Status        string `json:"status"`
	ActiveDevices int    `json:"active_devices"`
	TotalMedia    int    `json:"total_media"`
}

type LastUpdateResponse struct {
	LastUpdate int64 `json:"last_update"`
	ServerTime int64 `json:"server_time"`
}
