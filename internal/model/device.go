package model

import "time"

// Device represents a display device in the system.
type Device struct {
	ID          int        `db:"id"           json:"id"`
	DeviceID    string     `db:"device_id"    json:"device_id"`
	Name        string     `db:"name"         json:"name"`
	CustomName  *string    `db:"custom_name"  json:"custom_name,omitempty"`
	Location    *string    `db:"location"     json:"location,omitempty"`
	LastCheckin *time.Time `db:"last_checkin" json:"last_checkin,omitempty"`
	IsActive    bool       `db:"is_active"    json:"is_active"`
	IPAddress   *string    `db:"ip_address"   json:"ip_address,omitempty"`
	AppVersion  string     `db:"app_version"  json:"app_version"`
	CreatedAt   time.Time  `db:"created_at"   json:"created_at"`
}

// DisplayName prefers the operator-assigned name over the default one.
func (d Device) DisplayName() string {
	if d.CustomName != nil && *d.CustomName != "" {
		return *d.CustomName
	}
	return d.Name
}
