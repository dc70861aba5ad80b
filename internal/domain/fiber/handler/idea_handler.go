package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/idealmente/idealmente/internal/dto"
	"github.com/idealmente/idealmente/internal/model"
	"github.com/idealmente/idealmente/internal/prefs"
	"github.com/idealmente/idealmente/internal/usecase"
	"github.com/idealmente/idealmente/internal/util"
)

type IdeaHandler struct {
	uc    *usecase.IdeaUsecase
	prefs *prefs.Store
	// fallbackKey is the server-side key used when neither the request
	// nor the local cache carries one.
	fallbackKey string
}

func NewIdeaHandler(uc *usecase.IdeaUsecase, prefs *prefs.Store, fallbackKey string) *IdeaHandler {
	return &IdeaHandler{uc: uc, prefs: prefs, fallbackKey: fallbackKey}
}

func (h *IdeaHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/ideas", h.List)
	app.Post("/api/ideas", h.Create)
	app.Post("/api/ideas/attachments", h.ExtractAttachment)
	app.Get("/api/ideas/:id", h.Get)
	app.Put("/api/ideas/:id", h.Replace)
	app.Delete("/api/ideas/:id", h.Delete)
	app.Post("/api/ideas/:id/comments", h.AddComment)
	app.Delete("/api/ideas/:id/comments/:commentId", h.DeleteComment)
	app.Put("/api/ideas/:id/ratings/:criterion", h.SetRating)
	app.Post("/api/ideas/:id/analysis", h.Analyze)
}

// List returns the summary projection the sidebar and home grid use.
func (h *IdeaHandler) List(c *fiber.Ctx) error {
	ideas := h.uc.List(c.Context())
	summaries := make([]dto.IdeaSummaryDTO, len(ideas))
	for i, idea := range ideas {
		summaries[i] = dto.NewIdeaSummary(idea)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "ideas",
		Data:    summaries,
	})
}

func (h *IdeaHandler) Get(c *fiber.Ctx) error {
	idea, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: statusFor(err), Message: "idea not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "idea",
		Data:    idea,
	})
}

func (h *IdeaHandler) Create(c *fiber.Ctx) error {
	var in usecase.CreateIdeaInput
	if err := c.BodyParser(&in); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "invalid request body",
		}, err)
	}
	if in.CreatedBy == "" {
		in.CreatedBy = h.prefs.Username()
	}
	idea, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: statusFor(err), Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code: fiber.StatusCreated, Message: "idea created", Data: idea,
	})
}

// Replace overwrites the whole record, the only update shape the store
// knows. Concurrent writers race; last one wins.
func (h *IdeaHandler) Replace(c *fiber.Ctx) error {
	var idea model.Idea
	if err := c.BodyParser(&idea); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "invalid request body",
		}, err)
	}
	updated, err := h.uc.Replace(c.Context(), c.Params("id"), idea)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: statusFor(err), Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "idea updated", Data: updated,
	})
}

func (h *IdeaHandler) Delete(c *fiber.Ctx) error {
	h.uc.Delete(c.Context(), c.Params("id"))
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "idea deleted",
	})
}

func (h *IdeaHandler) AddComment(c *fiber.Ctx) error {
	var in struct {
		Author string `json:"author"`
		Text   string `json:"text"`
		Tag    string `json:"tag"`
	}
	if err := c.BodyParser(&in); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "invalid request body",
		}, err)
	}
	if in.Author == "" {
		in.Author = h.prefs.Username()
	}
	idea, err := h.uc.AddComment(c.Context(), c.Params("id"), in.Author, in.Text, in.Tag)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: statusFor(err), Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code: fiber.StatusCreated, Message: "comment added", Data: idea,
	})
}

func (h *IdeaHandler) DeleteComment(c *fiber.Ctx) error {
	requestedBy := c.Query("author")
	if requestedBy == "" {
		requestedBy = h.prefs.Username()
	}
	idea, err := h.uc.DeleteComment(c.Context(), c.Params("id"), c.Params("commentId"), requestedBy)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: statusFor(err), Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "comment deleted", Data: idea,
	})
}

func (h *IdeaHandler) SetRating(c *fiber.Ctx) error {
	var in struct {
		Rater string  `json:"rater"`
		Value float64 `json:"value"`
	}
	if err := c.BodyParser(&in); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "invalid request body",
		}, err)
	}
	if in.Rater == "" {
		in.Rater = h.prefs.Username()
	}
	idea, err := h.uc.SetRating(c.Context(), c.Params("id"), in.Rater, c.Params("criterion"), in.Value)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: statusFor(err), Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "rating saved", Data: idea,
	})
}

// Analyze triggers the AI run. The key comes from the request when
// supplied (and is cached for later runs), else from the local cache,
// else from the server environment.
func (h *IdeaHandler) Analyze(c *fiber.Ctx) error {
	var in struct {
		APIKey string `json:"apiKey"`
	}
	_ = c.BodyParser(&in)
	apiKey := strings.TrimSpace(in.APIKey)
	if apiKey == "" {
		apiKey = c.Get("x-api-key")
	}
	if apiKey != "" {
		if err := h.prefs.SetAnthropicKey(apiKey); err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Message: "failed to cache api key",
			}, err)
		}
	} else {
		apiKey = h.prefs.AnthropicKey()
	}
	if apiKey == "" {
		apiKey = h.fallbackKey
	}
	if apiKey == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "Inserisci la tua Anthropic API key",
		})
	}

	idea, err := h.uc.Analyze(c.Context(), c.Params("id"), apiKey)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: statusFor(err), Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "analysis complete", Data: idea,
	})
}

// ExtractAttachment turns an uploaded document into the text stored on
// the idea record. The file itself is not kept.
func (h *IdeaHandler) ExtractAttachment(c *fiber.Ctx) error {
	file, err := c.FormFile("document")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "document file is required",
		}, err)
	}
	if file.Size > 5*1024*1024 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "document file is too large (max 5MB)",
		})
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("attachment-%d-%s", file.Size, filepath.Base(file.Filename)))
	if err := c.SaveFile(file, tmpPath); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot save document file",
		}, err)
	}
	defer os.Remove(tmpPath)

	text, err := util.ExtractText(tmpPath, file.Filename)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "failed to extract document text",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "document extracted",
		Data:    fiber.Map{"docText": text, "fileName": file.Filename},
	})
}
