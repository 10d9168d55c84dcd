package db

import (
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Halcyon-Displays/halcyon/internal/model"
)

// ErrAlreadyAssigned is returned when a (device, content) pair already
// has an active assignment. One active assignment per pair.
var ErrAlreadyAssigned = errors.New("content already assigned to this device")

// AssignContent creates an assignment at the end of the device's play
// order. The conflict target is the partial unique index on active
// pairs, so a concurrent duplicate surfaces as ErrAlreadyAssigned
// rather than a constraint violation.
func AssignContent(deviceID string, contentID, displayDuration int) (model.Assignment, error) {
	var a model.Assignment
	const q = `
	INSERT INTO device_content (device_id, content_id, display_duration, play_order, is_active, created_at)
	VALUES ($1, $2, $3,
	        (SELECT COALESCE(MAX(play_order), 0) + 1 FROM device_content WHERE device_id = $1 AND is_active),
	        true, now())
	ON CONFLICT (device_id, content_id) WHERE is_active DO NOTHING
	RETURNING id, device_id, content_id, start_date, end_date, days_of_week,
	          start_time, end_time, display_duration, play_order, is_active, created_at;`
	err := DB.Get(&a, q, deviceID, contentID, displayDuration)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Assignment{}, ErrAlreadyAssigned
	}
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID).Int("content_id", contentID).Msg("AssignContent failed")
		return model.Assignment{}, err
	}
	return a, nil
}

func RemoveAssignment(assignmentID int) error {
	res, err := DB.Exec(`DELETE FROM device_content WHERE id = $1;`, assignmentID)
	if err != nil {
		log.Error().Err(err).Int("assignment_id", assignmentID).Msg("RemoveAssignment failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func UpdateAssignmentDuration(assignmentID, displayDuration int) error {
	_, err := DB.Exec(`
	UPDATE device_content SET display_duration = $2 WHERE id = $1;`,
		assignmentID, displayDuration)
	if err != nil {
		log.Error().Err(err).Int("assignment_id", assignmentID).Msg("UpdateAssignmentDuration failed")
	}
	return err
}

// ReorderAssignments applies explicit play orders to a device's
// assignments in one transaction.
func ReorderAssignments(deviceID string, order []model.PlayOrderUpdate) error {
	tx, err := DB.Beginx()
	if err != nil {
		log.Error().Err(err).Msg("ReorderAssignments begin failed")
		return err
	}
	for _, item := range order {
		if _, err := tx.Exec(`
		UPDATE device_content SET play_order = $1 WHERE id = $2 AND device_id = $3;`,
			item.PlayOrder, item.AssignmentID, deviceID); err != nil {
			tx.Rollback()
			log.Error().Err(err).Int("assignment_id", item.AssignmentID).Msg("ReorderAssignments failed")
			return err
		}
	}
	return tx.Commit()
}

// ListScheduledItems loads the resolver snapshot: every active-or-not
// assignment targeting this device or the all-devices sentinel, joined
// with its content. Filtering happens in the resolver, not here, so the
// snapshot stays reusable across instants.
func ListScheduledItems(deviceID string) ([]model.ScheduledItem, error) {
	var out []model.ScheduledItem
	const q = `
	SELECT dc.id, dc.device_id, dc.content_id,
	       to_char(dc.start_date, 'YYYY-MM-DD') AS start_date,
	       to_char(dc.end_date, 'YYYY-MM-DD')   AS end_date,
	       dc.days_of_week,
	       to_char(dc.start_time, 'HH24:MI')    AS start_time,
	       to_char(dc.end_time, 'HH24:MI')      AS end_time,
	       dc.display_duration, dc.play_order, dc.is_active, dc.created_at,
	       c.name AS content_name, c.filename, c.kind, c.url, c.video_duration
	FROM device_content dc
	JOIN content c ON c.id = dc.content_id
	WHERE dc.device_id IN ($1, $2)
	ORDER BY dc.play_order, dc.created_at;`
	if err := DB.Select(&out, q, deviceID, model.AllDevices); err != nil {
		log.Error().Err(err).Str("device_id", deviceID).Msg("ListScheduledItems failed")
		return nil, err
	}
	return out, nil
}

// ListAssignmentsForContent reports which devices an item is bound to.
func ListAssignmentsForContent(contentID int) ([]model.Assignment, error) {
	var out []model.Assignment
	const q = `
	SELECT id, device_id, content_id,
	       to_char(start_date, 'YYYY-MM-DD') AS start_date,
	       to_char(end_date, 'YYYY-MM-DD')   AS end_date,
	       days_of_week,
	       to_char(start_time, 'HH24:MI')    AS start_time,
	       to_char(end_time, 'HH24:MI')      AS end_time,
	       display_duration, play_order, is_active, created_at
	FROM device_content
	WHERE content_id = $1
	ORDER BY device_id, play_order;`
	if err := DB.Select(&out, q, contentID); err != nil {
		log.Error().Err(err).Int("content_id", contentID).Msg("ListAssignmentsForContent failed")
		return nil, err
	}
	return out, nil
}

func GetAssignmentByID(assignmentID int) (model.Assignment, error) {
	var a model.Assignment
	const q = `
	SELECT id, device_id, content_id,
	       to_char(start_date, 'YYYY-MM-DD') AS start_date,
	       to_char(end_date, 'YYYY-MM-DD')   AS end_date,
	       days_of_week,
	       to_char(start_time, 'HH24:MI')    AS start_time,
	       to_char(end_time, 'HH24:MI')      AS end_time,
	       display_duration, play_order, is_active, created_at
	FROM device_content
	WHERE id = $1;`
	err := DB.Get(&a, q, assignmentID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Int("assignment_id", assignmentID).Msg("GetAssignmentByID failed")
	}
	return a, err
}
