package integrity

import (
	"errors"

	"student-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/duplicates", h.HandleDuplicateCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the schema, duplicate and storage checks without fixing anything.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.UserContext()
	report := make(map[string]any)

	if missing, err := h.service.CheckSchema(ctx); err != nil {
		report["schema"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = fiber.Map{"status": "ok", "missing": missing}
	}

	if groups, err := h.service.CheckDuplicates(ctx); err != nil {
		report["duplicates"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["duplicates"] = fiber.Map{"status": "ok", "groups": groups}
	}

	switch exists, err := h.service.CheckStorage(ctx); {
	case errors.Is(err, ErrStorageUnavailable):
		report["storage"] = fiber.Map{"status": "disabled"}
	case err != nil:
		report["storage"] = fiber.Map{"status": "error", "error": err.Error()}
	default:
		report["storage"] = fiber.Map{"status": "ok", "bucket_exists": exists}
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks the students table columns.
// @Summary Check Schema
// @Description Lists required columns missing from the students table.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	missing, err := h.service.CheckSchema(c.UserContext())
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(missing) > 0 {
		l.Warn("Missing columns detected", zap.Strings("missing", missing))
	}
	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleDuplicateCheck lists stored duplicates and optionally removes them.
// @Summary Check Duplicates
// @Description Lists natural keys stored more than once. Such rows are skipped on import. With fix=true all but the lowest id of each group are deleted.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Delete duplicate rows"
// @Success 200 {object} map[string]interface{} "Duplicate Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/duplicates [get]
func (h *Handler) HandleDuplicateCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.QueryBool("fix", false)

	groups, err := h.service.CheckDuplicates(c.UserContext())
	if err != nil {
		l.Error("Duplicate check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(groups) > 0 {
		l.Warn("Duplicate students detected", zap.Int("groups", len(groups)))

		if fix {
			deleted, err := h.service.FixDuplicates(c.UserContext(), groups)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix duplicates",
					"details": err.Error(),
					"groups":  groups,
				})
			}
			return c.JSON(fiber.Map{
				"status":  "fixed",
				"deleted": deleted,
				"groups":  groups,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "checked",
		"groups": groups,
	})
}

// HandleStorageCheck checks and optionally creates the archive bucket.
// @Summary Check Storage
// @Description Checks that the upload archive bucket exists. Optionally creates it.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the bucket"
// @Success 200 {object} map[string]interface{} "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.QueryBool("fix", false)

	exists, err := h.service.CheckStorage(c.UserContext())
	if errors.Is(err, ErrStorageUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !exists && fix {
		if err := h.service.FixStorage(c.UserContext()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create bucket",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "fixed", "bucket": h.service.bucket})
	}

	return c.JSON(fiber.Map{
		"status":        "checked",
		"bucket":        h.service.bucket,
		"bucket_exists": exists,
	})
}
