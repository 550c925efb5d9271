package integrity_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"student-sync/core/loader"
	"student-sync/core/storage"
	"student-sync/core/storage/mocks"
	"student-sync/feature/integrity"
	"student-sync/feature/student/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, client storage.Client) *fiber.App {
	db := setupDB(t,
		models.Student{Name: "Dup", Age: 20, City: "Town"},
		models.Student{Name: "Dup", Age: 20, City: "Town"},
	)
	app := fiber.New()
	mgr := loader.NewManager()
	mgr.Register(integrity.NewFeature(newService(t, db, client)))
	require.NoError(t, mgr.LoadAll(app))
	return app
}

func TestHandleDuplicateCheck(t *testing.T) {
	app := setupTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/duplicates", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "checked", body["status"])
	assert.Len(t, body["groups"], 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/integrity/duplicates?fix=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "fixed", body["status"])
	assert.Equal(t, float64(1), body["deleted"])
}

func TestHandleSchemaCheck(t *testing.T) {
	app := setupTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body["missing"])
}

func TestHandleStorageCheck(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		resp, err := setupTestApp(t, nil).Test(httptest.NewRequest("GET", "/integrity/storage", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "students").Return(true, nil)

		resp, err := setupTestApp(t, client).Test(httptest.NewRequest("GET", "/integrity/storage", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["bucket_exists"])
	})
}

func TestHandleIntegrityCheck(t *testing.T) {
	app := setupTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["schema"]["status"])
	assert.Equal(t, "ok", body["duplicates"]["status"])
	assert.Equal(t, "disabled", body["storage"]["status"])
}

func TestLoader(t *testing.T) {
	f := integrity.NewFeature(nil)
	assert.Equal(t, "integrity", f.Name())
	assert.False(t, f.IsEnabled())
}
