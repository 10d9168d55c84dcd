package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Halcyon-Displays/halcyon/internal/model"
)

type DeviceRow struct {
	model.Device
	ContentCount int `db:"content_count" json:"content_count"`
}

func ListDevices() ([]DeviceRow, error) {
	var out []DeviceRow
	const q = `
	SELECT d.id, d.device_id, d.name, d.custom_name, d.location, d.last_checkin,
	       d.is_active, d.ip_address, d.app_version, d.created_at,
	       (SELECT COUNT(*) FROM device_content WHERE device_id = d.device_id AND is_active) AS content_count
	FROM devices d
	ORDER BY d.last_checkin DESC NULLS LAST;`
	if err := DB.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListDevices failed")
		return nil, err
	}
	return out, nil
}

func GetDeviceByDeviceID(deviceID string) (model.Device, error) {
	var d model.Device
	const q = `
	SELECT id, device_id, name, custom_name, location, last_checkin,
	       is_active, ip_address, app_version, created_at
	FROM devices
	WHERE device_id = $1;`
	err := DB.Get(&d, q, deviceID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Str("device_id", deviceID).Msg("GetDeviceByDeviceID failed")
	}
	return d, err
}

func ListActiveDeviceIDs() ([]string, error) {
	var ids []string
	if err := DB.Select(&ids, `SELECT device_id FROM devices WHERE is_active;`); err != nil {
		log.Error().Err(err).Msg("ListActiveDeviceIDs failed")
		return nil, err
	}
	return ids, nil
}

// CheckinDevice records a device poll. Unknown devices self-register
// with a generated default name; known devices only refresh checkin
// time, active flag and address, preserving operator-assigned names.
// A single upsert, so concurrent first checkins cannot collide.
func CheckinDevice(deviceID, ipAddress string, now time.Time) error {
	name := fmt.Sprintf("TV-%s", shortID(deviceID))
	_, err := DB.Exec(`
	INSERT INTO devices (device_id, name, last_checkin, is_active, ip_address, created_at)
	VALUES ($1, $2, $3, true, $4, now())
	ON CONFLICT (device_id) DO UPDATE
	SET last_checkin = EXCLUDED.last_checkin,
	    is_active    = true,
	    ip_address   = EXCLUDED.ip_address;`,
		deviceID, name, now, ipAddress)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID).Msg("CheckinDevice failed")
	}
	return err
}

func UpdateDevice(deviceID string, customName, location *string) error {
	_, err := DB.Exec(`
	UPDATE devices
	SET custom_name = COALESCE($2, custom_name),
	    location    = COALESCE($3, location)
	WHERE device_id = $1;`,
		deviceID, customName, location)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID).Msg("UpdateDevice failed")
	}
	return err
}

func CountActiveDevices() (int, error) {
	var n int
	if err := DB.Get(&n, `SELECT COUNT(*) FROM devices WHERE is_active;`); err != nil {
		log.Error().Err(err).Msg("CountActiveDevices failed")
		return 0, err
	}
	return n, nil
}

func CountContent() (int, error) {
	var n int
	if err := DB.Get(&n, `SELECT COUNT(*) FROM content;`); err != nil {
		log.Error().Err(err).Msg("CountContent failed")
		return 0, err
	}
	return n, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
