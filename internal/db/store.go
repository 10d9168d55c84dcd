// exposes a Store interface that is passed to API handlers instead of
// the package-level functions, so endpoints stay testable.
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Halcyon-Displays/halcyon/internal/model"
)

type Store interface {
	// content
	CreateContent(name, filename, kind string, sizeBytes int64, url string, videoDuration *int) (model.Content, error)
	GetContentByID(id int) (model.Content, error)
	ListContent() ([]model.ContentSummary, error)
	SetContentActive(contentID int, active bool) error
	DeleteContent(id int) error
	UpdateContentSchedule(contentID int, daysJSON string, displayDuration int, startTime, endTime, startDate, endDate *string) error

	// devices
	ListDevices() ([]DeviceRow, error)
	GetDeviceByDeviceID(deviceID string) (model.Device, error)
	ListActiveDeviceIDs() ([]string, error)
	CheckinDevice(deviceID, ipAddress string, now time.Time) error
	UpdateDevice(deviceID string, customName, location *string) error
	CountActiveDevices() (int, error)
	CountContent() (int, error)

	// assignments
	AssignContent(deviceID string, contentID, displayDuration int) (model.Assignment, error)
	RemoveAssignment(assignmentID int) error
	UpdateAssignmentDuration(assignmentID, displayDuration int) error
	ReorderAssignments(deviceID string, order []model.PlayOrderUpdate) error
	ListScheduledItems(deviceID string) ([]model.ScheduledItem, error)
	ListAssignmentsForContent(contentID int) ([]model.Assignment, error)
	GetAssignmentByID(assignmentID int) (model.Assignment, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}

func (s *pgStore) CreateContent(name, filename, kind string, sizeBytes int64, url string, videoDuration *int) (model.Content, error) {
	return CreateContent(name, filename, kind, sizeBytes, url, videoDuration)
}
func (s *pgStore) GetContentByID(id int) (model.Content, error) { return GetContentByID(id) }
func (s *pgStore) ListContent() ([]model.ContentSummary, error) { return ListContent() }
func (s *pgStore) SetContentActive(contentID int, active bool) error {
	return SetContentActive(contentID, active)
}
func (s *pgStore) DeleteContent(id int) error { return DeleteContent(id) }
func (s *pgStore) UpdateContentSchedule(contentID int, daysJSON string, displayDuration int, startTime, endTime, startDate, endDate *string) error {
	return UpdateContentSchedule(contentID, daysJSON, displayDuration, startTime, endTime, startDate, endDate)
}

func (s *pgStore) ListDevices() ([]DeviceRow, error) { return ListDevices() }
func (s *pgStore) GetDeviceByDeviceID(deviceID string) (model.Device, error) {
	return GetDeviceByDeviceID(deviceID)
}
func (s *pgStore) ListActiveDeviceIDs() ([]string, error) { return ListActiveDeviceIDs() }
func (s *pgStore) CheckinDevice(deviceID, ipAddress string, now time.Time) error {
	return CheckinDevice(deviceID, ipAddress, now)
}
func (s *pgStore) UpdateDevice(deviceID string, customName, location *string) error {
	return UpdateDevice(deviceID, customName, location)
}
func (s *pgStore) CountActiveDevices() (int, error) { return CountActiveDevices() }
func (s *pgStore) CountContent() (int, error)       { return CountContent() }

func (s *pgStore) AssignContent(deviceID string, contentID, displayDuration int) (model.Assignment, error) {
	return AssignContent(deviceID, contentID, displayDuration)
}
func (s *pgStore) RemoveAssignment(assignmentID int) error { return RemoveAssignment(assignmentID) }
func (s *pgStore) UpdateAssignmentDuration(assignmentID, displayDuration int) error {
	return UpdateAssignmentDuration(assignmentID, displayDuration)
}
func (s *pgStore) ReorderAssignments(deviceID string, order []model.PlayOrderUpdate) error {
	return ReorderAssignments(deviceID, order)
}
func (s *pgStore) ListScheduledItems(deviceID string) ([]model.ScheduledItem, error) {
	return ListScheduledItems(deviceID)
}
func (s *pgStore) ListAssignmentsForContent(contentID int) ([]model.Assignment, error) {
	return ListAssignmentsForContent(contentID)
}
func (s *pgStore) GetAssignmentByID(assignmentID int) (model.Assignment, error) {
	return GetAssignmentByID(assignmentID)
}
