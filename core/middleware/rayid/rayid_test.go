package rayid_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"student-sync/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(rayid.New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(rayid.FromContext(c))
	})
	return app
}

func TestRayID_Generated(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	rid := resp.Header.Get(rayid.HeaderRayID)
	assert.Equal(t, rid, string(body))
	_, err = uuid.Parse(rid)
	assert.NoError(t, err)
}

func TestRayID_Propagated(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(rayid.HeaderRayID, "upstream-1")

	resp, err := newApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, "upstream-1", resp.Header.Get(rayid.HeaderRayID))
}
