package handler

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"backlog-reporter/internal/features/backlog/adapters"
	"backlog-reporter/internal/features/backlog/domain"
	"backlog-reporter/internal/features/backlog/ports"
	"backlog-reporter/internal/features/backlog/service"

	"github.com/gofiber/fiber/v2"
)

// reportCookie carries the report id between the upload and the downloads,
// mirroring the session the reports live under server-side.
const reportCookie = "report_id"

// BacklogHandler handles HTTP requests for report uploads and exports.
type BacklogHandler struct {
	backlogService *service.BacklogService
	cookieTTL      time.Duration
}

// NewBacklogHandler creates a new BacklogHandler. cookieTTL should match the
// report store TTL so the cookie and the stored report expire together.
func NewBacklogHandler(backlogService *service.BacklogService, cookieTTL time.Duration) *BacklogHandler {
	return &BacklogHandler{
		backlogService: backlogService,
		cookieTTL:      cookieTTL,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	// ReportID addresses the computed report on the export endpoints.
	ReportID string `json:"report_id"`
}

// Upload godoc
// @Summary Upload the two feeds and compute the backlog report
// @Description Accepts the export and inside xlsx feeds, runs the transform, and stores the result for the session.
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Param export_file formData file true "Export feed (.xlsx)"
// @Param inside_file formData file true "Inside feed (.xlsx)"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /reports [post]
func (h *BacklogHandler) Upload(c *fiber.Ctx) error {
	exportFH, err := h.formFile(c, "export_file")
	if err != nil {
		return h.badRequest(c, err.Error())
	}
	insideFH, err := h.formFile(c, "inside_file")
	if err != nil {
		return h.badRequest(c, err.Error())
	}

	exportFile, err := exportFH.Open()
	if err != nil {
		return h.badRequest(c, "cannot read export_file")
	}
	defer exportFile.Close()

	insideFile, err := insideFH.Open()
	if err != nil {
		return h.badRequest(c, "cannot read inside_file")
	}
	defer insideFile.Close()

	id, err := h.backlogService.Process(c.Context(), exportFile, insideFile)
	if err != nil {
		if isUploadDataError(err) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
				Message: "cannot process this upload: " + err.Error(),
				RayID:   rayID(c),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     reportCookie,
		Value:    id,
		Expires:  time.Now().Add(h.cookieTTL),
		HTTPOnly: true,
	})

	return c.Status(fiber.StatusCreated).JSON(UploadResponse{ReportID: id})
}

// ExportBacklog godoc
// @Summary Download the backlog export
// @Description Streams the backlog table as CSV (UTF-8 BOM, fixed column set).
// @Tags reports
// @Produce text/csv
// @Param report_id query string false "Report id (defaults to the session cookie)"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /reports/backlog.csv [get]
func (h *BacklogHandler) ExportBacklog(c *fiber.Ctx) error {
	id, err := h.reportID(c)
	if err != nil {
		return h.badRequest(c, err.Error())
	}

	rows, err := h.backlogService.Backlog(c.Context(), id)
	if err != nil {
		return h.exportError(c, err)
	}

	var buf bytes.Buffer
	if err := adapters.WriteBacklogCSV(&buf, rows); err != nil {
		return h.exportError(c, err)
	}
	return sendCSV(c, "backlog.csv", buf.Bytes())
}

// ExportInventory godoc
// @Summary Download the inventory export
// @Description Streams the delivery-backlog inventory table as CSV (UTF-8 BOM, fixed column set).
// @Tags reports
// @Produce text/csv
// @Param report_id query string false "Report id (defaults to the session cookie)"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /reports/inventory.csv [get]
func (h *BacklogHandler) ExportInventory(c *fiber.Ctx) error {
	id, err := h.reportID(c)
	if err != nil {
		return h.badRequest(c, err.Error())
	}

	rows, err := h.backlogService.Inventory(c.Context(), id)
	if err != nil {
		return h.exportError(c, err)
	}

	var buf bytes.Buffer
	if err := adapters.WriteInventoryCSV(&buf, rows); err != nil {
		return h.exportError(c, err)
	}
	return sendCSV(c, "rp_giao.csv", buf.Bytes())
}

// formFile fetches a required multipart file and rejects non-xlsx uploads.
func (h *BacklogHandler) formFile(c *fiber.Ctx, name string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, fmt.Errorf("%s is required", name)
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		return nil, fmt.Errorf("%s must be an .xlsx file", name)
	}
	return fh, nil
}

// reportID resolves the report id from the query string or the session cookie.
func (h *BacklogHandler) reportID(c *fiber.Ctx) (string, error) {
	if id := c.Query("report_id"); id != "" {
		return id, nil
	}
	if id := c.Cookies(reportCookie); id != "" {
		return id, nil
	}
	return "", errors.New("no report id; upload the feeds first")
}

func (h *BacklogHandler) badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}

func (h *BacklogHandler) exportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ports.ErrReportNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "report not found or expired; upload the feeds again",
			RayID:   rayID(c),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message: err.Error(),
		RayID:   rayID(c),
	})
}

// isUploadDataError reports whether the failure is the upload's fault rather
// than the service's.
func isUploadDataError(err error) bool {
	return errors.Is(err, domain.ErrMissingColumn) ||
		errors.Is(err, domain.ErrMalformedTimestamp) ||
		errors.Is(err, domain.ErrTypeConversion) ||
		errors.Is(err, adapters.ErrEmptySheet) ||
		errors.Is(err, adapters.ErrInvalidWorkbook)
}

func sendCSV(c *fiber.Ctx, filename string, payload []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(payload)
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
