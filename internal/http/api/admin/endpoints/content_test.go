package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Halcyon-Displays/halcyon/internal/db"
	"github.com/Halcyon-Displays/halcyon/internal/http/api"
	"github.com/Halcyon-Displays/halcyon/internal/model"
)

// mockStore covers the content paths; listing assignments can be made
// to fail to exercise the notification error handling.
type mockStore struct {
	db.Store
	listAssignmentsErr error
	deleted            []int
	toggled            []bool
}

func (m *mockStore) ListAssignmentsForContent(contentID int) ([]model.Assignment, error) {
	if m.listAssignmentsErr != nil {
		return nil, m.listAssignmentsErr
	}
	return nil, nil
}

func (m *mockStore) DeleteContent(id int) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockStore) SetContentActive(contentID int, active bool) error {
	m.toggled = append(m.toggled, active)
	return nil
}

func setupContentRouter(store db.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin"},
		ContentModule(store, nil),
	)
	return r
}

func TestDeleteMediaSurvivesAssignmentListingFailure(t *testing.T) {
	store := &mockStore{listAssignmentsErr: errors.New("connection reset")}
	router := setupContentRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/admin/media/7", nil)
	router.ServeHTTP(w, req)

	// notifications are best effort; the delete itself must go through
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{7}, store.deleted)
}

func TestToggleMediaSurvivesAssignmentListingFailure(t *testing.T) {
	store := &mockStore{listAssignmentsErr: errors.New("connection reset")}
	router := setupContentRouter(store)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"is_active": false}`)
	req, _ := http.NewRequest(http.MethodPut, "/api/admin/media/7/toggle", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []bool{false}, store.toggled)
}

func TestDeleteMediaRejectsBadID(t *testing.T) {
	router := setupContentRouter(&mockStore{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/admin/media/poster", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
