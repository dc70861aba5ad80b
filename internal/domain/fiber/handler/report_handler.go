package handler

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/idealmente/idealmente/internal/prefs"
	"github.com/idealmente/idealmente/internal/usecase"
	"github.com/idealmente/idealmente/internal/util"
)

type ReportHandler struct {
	uc    *usecase.ReportUsecase
	prefs *prefs.Store
}

func NewReportHandler(uc *usecase.ReportUsecase, prefs *prefs.Store) *ReportHandler {
	return &ReportHandler{uc: uc, prefs: prefs}
}

func (h *ReportHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/reports", h.List)
	app.Post("/api/reports", h.Upload)
	app.Get("/api/reports/:id/download", h.Download)
	app.Delete("/api/reports/:id", h.Delete)
}

// List returns report metadata without payloads; the content column can
// be megabytes per record.
func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports := h.uc.List(c.Context())
	type item struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Size       int64  `json:"size"`
		Type       string `json:"type"`
		UploadedBy string `json:"uploadedBy"`
		UploadedAt int64  `json:"uploadedAt"`
	}
	items := make([]item, len(reports))
	for i, r := range reports {
		items[i] = item{r.ID, r.Name, r.Size, r.Type, r.UploadedBy, r.UploadedAt}
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "reports", Data: items,
	})
}

// Upload stores the whole file, base64-encoded inside the record the
// same way the browser variant stored data URLs.
func (h *ReportHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "file is required",
		}, err)
	}
	src, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot open uploaded file",
		}, err)
	}
	defer src.Close()
	payload, err := io.ReadAll(src)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read uploaded file",
		}, err)
	}

	mime := file.Header.Get("Content-Type")
	content := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(payload))
	uploadedBy := c.FormValue("uploadedBy")
	if uploadedBy == "" {
		uploadedBy = h.prefs.Username()
	}

	report, err := h.uc.Upload(c.Context(), file.Filename, mime, content, uploadedBy, file.Size)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: statusFor(err), Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code: fiber.StatusCreated, Message: "report uploaded", Data: fiber.Map{
			"id": report.ID, "name": report.Name, "size": report.Size,
		},
	})
}

func (h *ReportHandler) Download(c *fiber.Ctx) error {
	report, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: statusFor(err), Message: "report not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "report", Data: report,
	})
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	requestedBy := c.Query("uploadedBy")
	if requestedBy == "" {
		requestedBy = h.prefs.Username()
	}
	if err := h.uc.Delete(c.Context(), c.Params("id"), requestedBy); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: statusFor(err), Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "report deleted",
	})
}
