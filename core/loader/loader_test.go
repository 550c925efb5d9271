package loader_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"student-sync/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	if s.err != nil {
		return s.err
	}
	s.loaded = true
	app.Get("/"+s.name, func(c *fiber.Ctx) error { return c.SendString(s.name) })
	return nil
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()
	enabled := &stubFeature{name: "students", enabled: true}
	disabled := &stubFeature{name: "reports", enabled: false}

	mgr := loader.NewManager()
	mgr.Register(enabled)
	mgr.Register(disabled)

	require.NoError(t, mgr.LoadAll(app))
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
	assert.Len(t, mgr.Features(), 2)

	resp, err := app.Test(httptest.NewRequest("GET", "/students", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/reports", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestManager_LoadAll_Error(t *testing.T) {
	mgr := loader.NewManager()
	mgr.Register(&stubFeature{name: "broken", enabled: true, err: errors.New("boom")})

	err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "broken")
	assert.ErrorContains(t, err, "boom")
}

func TestManager_LoadAll_Duplicate(t *testing.T) {
	mgr := loader.NewManager()
	mgr.Register(&stubFeature{name: "students", enabled: true})
	mgr.Register(&stubFeature{name: "students", enabled: true})

	assert.ErrorContains(t, mgr.LoadAll(fiber.New()), "registered twice")
}
