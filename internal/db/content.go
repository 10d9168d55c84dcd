package db

import (
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Halcyon-Displays/halcyon/internal/model"
)

func CreateContent(name, filename, kind string, sizeBytes int64, url string, videoDuration *int) (model.Content, error) {
	var c model.Content
	const q = `
	INSERT INTO content
	(name, filename, kind, size_bytes, url, video_duration, created_at)
	VALUES
	($1,   $2,       $3,   $4,         $5,  $6,             now())
	RETURNING
	id, name, filename, kind, size_bytes, url, video_duration, created_at;`

	if err := DB.Get(&c, q, name, filename, kind, sizeBytes, url, videoDuration); err != nil {
		log.Error().Err(err).Msg("CreateContent failed")
		return model.Content{}, err
	}
	return c, nil
}

func GetContentByID(id int) (model.Content, error) {
	var c model.Content
	const q = `
	SELECT id, name, filename, kind, size_bytes, url, video_duration, created_at
	FROM content
	WHERE id = $1;`

	err := DB.Get(&c, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Content{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("GetContentByID failed")
	}
	return c, err
}

// ListContent returns every content item with its assignment count and
// aggregate schedule bounds, newest first.
func ListContent() ([]model.ContentSummary, error) {
	var all []model.ContentSummary
	const q = `
	SELECT
	c.id,
	c.name,
	c.filename,
	c.kind,
	c.size_bytes,
	c.url,
	c.video_duration,
	c.created_at,
	(SELECT COUNT(*) FROM device_content WHERE content_id = c.id AND is_active) AS assignment_count,
	(SELECT MIN(start_date) FROM device_content WHERE content_id = c.id)        AS start_date,
	(SELECT MAX(end_date) FROM device_content WHERE content_id = c.id)          AS end_date,
	COALESCE((SELECT bool_and(is_active) FROM device_content WHERE content_id = c.id), true) AS is_active
	FROM content c
	ORDER BY c.created_at DESC;`

	if err := DB.Select(&all, q); err != nil {
		log.Error().Err(err).Msg("ListContent failed")
		return nil, err
	}
	return all, nil
}

// SetContentActive toggles every assignment of one content item.
// Inactive assignments are never eligible regardless of schedule.
func SetContentActive(contentID int, active bool) error {
	_, err := DB.Exec(`UPDATE device_content SET is_active = $2 WHERE content_id = $1;`, contentID, active)
	if err != nil {
		log.Error().Err(err).Int("content_id", contentID).Msg("SetContentActive failed")
	}
	return err
}

// DeleteContent removes a content item; its assignments cascade.
func DeleteContent(id int) error {
	res, err := DB.Exec(`DELETE FROM content WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("DeleteContent failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateContentSchedule rewrites the scheduling constraints on every
// assignment of one content item.
func UpdateContentSchedule(
	contentID int,
	daysJSON string,
	displayDuration int,
	startTime, endTime, startDate, endDate *string,
) error {
	_, err := DB.Exec(`
	UPDATE device_content
	SET days_of_week     = $2,
	    display_duration = $3,
	    start_time       = $4,
	    end_time         = $5,
	    start_date       = $6,
	    end_date         = $7
	WHERE content_id = $1;`,
		contentID, daysJSON, displayDuration, startTime, endTime, startDate, endDate,
	)
	if err != nil {
		log.Error().Err(err).Int("content_id", contentID).Msg("UpdateContentSchedule failed")
	}
	return err
}
