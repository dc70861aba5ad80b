package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/idealmente/idealmente/internal/prefs"
	"github.com/idealmente/idealmente/internal/util"
)

type PrefsHandler struct {
	prefs *prefs.Store
}

func NewPrefsHandler(prefs *prefs.Store) *PrefsHandler {
	return &PrefsHandler{prefs: prefs}
}

func (h *PrefsHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/prefs", h.Get)
	app.Put("/api/prefs/name", h.SetName)
	app.Put("/api/prefs/anthropic-key", h.SetKey)
}

// Get exposes the display name and whether a key is cached. The key
// itself never leaves the process except toward the analysis endpoint.
func (h *PrefsHandler) Get(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "prefs",
		Data: fiber.Map{
			"name":   h.prefs.Username(),
			"hasKey": h.prefs.AnthropicKey() != "",
		},
	})
}

// SetName changes the display name. Existing ratings keyed by the old
// name stay where they are; the new name rates independently.
func (h *PrefsHandler) SetName(c *fiber.Ctx) error {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&in); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "invalid request body",
		}, err)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "name is required",
		})
	}
	if err := h.prefs.SetUsername(name); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to save name",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "name saved", Data: fiber.Map{"name": name},
	})
}

func (h *PrefsHandler) SetKey(c *fiber.Ctx) error {
	var in struct {
		APIKey string `json:"apiKey"`
	}
	if err := c.BodyParser(&in); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "invalid request body",
		}, err)
	}
	if err := h.prefs.SetAnthropicKey(strings.TrimSpace(in.APIKey)); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to save api key",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "api key saved",
	})
}
