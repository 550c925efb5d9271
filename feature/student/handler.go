package student

import (
	"context"
	"errors"

	"student-sync/core/logger"
	"student-sync/core/reconcile"
	"student-sync/core/tabular"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for students.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the student routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/students")
	group.Get("/", h.HandleList)
	group.Post("/import", h.HandleImport)
}

// HandleList returns every stored student.
// @Summary List Students
// @Description List all stored students ordered by id.
// @Tags students
// @Produce json
// @Success 200 {array} models.Student "Students"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /students [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	students, err := h.service.List(c.UserContext())
	if err != nil {
		l.Error("Failed to list students", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(students)
}

// HandleImport reconciles the stored students with an uploaded CSV or XLSX file.
// Students missing from the file are deleted.
// @Summary Import Students
// @Description Upload a CSV or XLSX file. Rows are upserted by (name, age, city) and students not present in the file are deleted.
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Param chunk_size query int false "Rows per chunk"
// @Success 200 {object} reconcile.Report "Import completed"
// @Failure 400 {object} map[string]string "No file or unsupported format"
// @Failure 422 {object} reconcile.Report "Import aborted, nothing was deleted"
// @Failure 503 {object} reconcile.Report "Import cancelled, nothing was deleted"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /students/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}
	if _, err := tabular.FormatFromPath(file.Filename); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported file format",
		})
	}

	payload, err := file.Open()
	if err != nil {
		l.Error("Failed to open upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	defer payload.Close()

	opts := ImportOptions{ChunkSize: c.QueryInt("chunk_size", 0)}
	l.Info("Importing students", zap.String("file", file.Filename), zap.Int64("size", file.Size))

	report, err := h.service.ImportUpload(c.UserContext(), file.Filename, payload, file.Size, opts)
	if err == nil {
		return c.JSON(report)
	}

	status := importStatus(err)
	l.Error("Student import failed", zap.Int("status", status), zap.Error(err))
	if report.Status == reconcile.StatusAborted {
		return c.Status(status).JSON(report)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// importStatus maps an import error to an HTTP status.
func importStatus(err error) int {
	var (
		unsupported *tabular.UnsupportedFormatError
		decode      *tabular.DecodeError
		store       *reconcile.StoreError
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &unsupported):
		return fiber.StatusBadRequest
	case errors.As(err, &decode), errors.As(err, &store):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
