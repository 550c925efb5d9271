package auth_test

import (
	"net/http/httptest"
	"testing"

	"student-sync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg auth.Config) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(cfg))
	app.Get("/students", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/swagger/index.html", func(c *fiber.Ctx) error { return c.SendString("docs") })
	return app
}

func TestAuth(t *testing.T) {
	app := newApp(auth.Config{ApiKey: "secret", Skip: []string{"/swagger"}})

	tests := []struct {
		name   string
		path   string
		header string
		value  string
		want   int
	}{
		{"No Key", "/students", "", "", fiber.StatusUnauthorized},
		{"Wrong Key", "/students", auth.HeaderAPIKey, "nope", fiber.StatusUnauthorized},
		{"Header Key", "/students", auth.HeaderAPIKey, "secret", fiber.StatusOK},
		{"Bearer", "/students", fiber.HeaderAuthorization, "Bearer secret", fiber.StatusOK},
		{"Wrong Bearer", "/students", fiber.HeaderAuthorization, "Bearer nope", fiber.StatusUnauthorized},
		{"Skipped Path", "/swagger/index.html", "", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	app := newApp(auth.Config{})

	resp, err := app.Test(httptest.NewRequest("GET", "/students", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
