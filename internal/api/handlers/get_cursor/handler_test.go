package get_cursor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m04kA/SMC-BotCore/internal/infra/storage/cursor"
	"github.com/m04kA/SMC-BotCore/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoller struct{}

func (fakePoller) Cursor() int { return 44 }
func (fakePoller) InstanceID() string { return "instance-1" }

type brokenStore struct{}

func (brokenStore) Load(context.Context) (int, bool, error) {
	return 0, false, errors.New("connection refused")
}

func TestHandle_ReportsLiveAndStoredCursor(t *testing.T) {
	store := cursor.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), 40, "instance-1"))

	rec := httptest.NewRecorder()
	NewHandler(fakePoller{}, store, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cursor", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CursorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 44, resp.NextUpdateID)
	assert.Equal(t, "instance-1", resp.InstanceID)
	require.NotNil(t, resp.StoredCursor)
	assert.Equal(t, 40, *resp.StoredCursor)
}

func TestHandle_NothingStored(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fakePoller{}, cursor.NewMemoryStore(), logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cursor", nil))

	var resp CursorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Nil(t, resp.StoredCursor)
}

func TestHandle_StoreError(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fakePoller{}, brokenStore{}, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cursor", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
