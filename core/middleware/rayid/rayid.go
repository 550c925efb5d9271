package rayid

import (
	"student-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderRayID is the request and response header carrying the ray id.
const HeaderRayID = "X-Ray-ID"

// New returns a middleware that assigns every request a ray id. An incoming
// X-Ray-ID header is reused; otherwise a random UUID is generated. The id is
// stored in Locals under logger.RayIDKey and echoed in the response.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderRayID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(logger.RayIDKey, rid)
		c.Set(HeaderRayID, rid)
		return c.Next()
	}
}

// FromContext returns the ray id of the request, or "".
func FromContext(c *fiber.Ctx) string {
	rid, _ := c.Locals(logger.RayIDKey).(string)
	return rid
}
