package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/idealmente/idealmente/internal/dto"
	"github.com/idealmente/idealmente/internal/model"
	"github.com/idealmente/idealmente/internal/usecase"
	"github.com/idealmente/idealmente/internal/util"
)

type MeetingHandler struct {
	uc *usecase.MeetingUsecase
}

func NewMeetingHandler(uc *usecase.MeetingUsecase) *MeetingHandler {
	return &MeetingHandler{uc: uc}
}

func (h *MeetingHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/meetings", h.List)
	app.Post("/api/meetings", h.Create)
	app.Put("/api/meetings/:id", h.Replace)
	app.Delete("/api/meetings/:id", h.Delete)
	app.Post("/api/meetings/:id/minutes", h.AttachMinutes)
}

// List returns the upcoming/past projection, next meeting first.
func (h *MeetingHandler) List(c *fiber.Ctx) error {
	meetings := h.uc.List(c.Context())
	today := time.Now().Format("2006-01-02")
	upcoming, past := usecase.Split(meetings, today)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "meetings",
		Data:    dto.NewMeetingList(upcoming, past),
	})
}

func (h *MeetingHandler) Create(c *fiber.Ctx) error {
	var in usecase.CreateMeetingInput
	if err := c.BodyParser(&in); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "invalid request body",
		}, err)
	}
	meeting, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: statusFor(err), Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code: fiber.StatusCreated, Message: "meeting created", Data: meeting,
	})
}

func (h *MeetingHandler) Replace(c *fiber.Ctx) error {
	var meeting model.Meeting
	if err := c.BodyParser(&meeting); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "invalid request body",
		}, err)
	}
	updated, err := h.uc.Update(c.Context(), c.Params("id"), func(model.Meeting) model.Meeting {
		return meeting
	})
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: statusFor(err), Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "meeting updated", Data: updated,
	})
}

func (h *MeetingHandler) Delete(c *fiber.Ctx) error {
	h.uc.Delete(c.Context(), c.Params("id"))
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "meeting deleted",
	})
}

// AttachMinutes accepts either a JSON body {text, fileName} or a
// multipart upload whose file is extracted to text server-side.
func (h *MeetingHandler) AttachMinutes(c *fiber.Ctx) error {
	text, fileName, err := h.minutesPayload(c)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "failed to read minutes",
		}, err)
	}
	meeting, err := h.uc.AttachMinutes(c.Context(), c.Params("id"), text, fileName)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: statusFor(err), Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "minutes attached", Data: meeting,
	})
}

func (h *MeetingHandler) minutesPayload(c *fiber.Ctx) (text, fileName string, err error) {
	if file, ferr := c.FormFile("minutes"); ferr == nil {
		tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("minutes-%d-%s", file.Size, filepath.Base(file.Filename)))
		if err := c.SaveFile(file, tmpPath); err != nil {
			return "", "", err
		}
		defer os.Remove(tmpPath)
		text, err = util.ExtractText(tmpPath, file.Filename)
		return text, file.Filename, err
	}

	var in struct {
		Text     string `json:"text"`
		FileName string `json:"fileName"`
	}
	if err := c.BodyParser(&in); err != nil {
		return "", "", err
	}
	return in.Text, in.FileName, nil
}
