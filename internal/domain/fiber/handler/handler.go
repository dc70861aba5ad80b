package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/idealmente/idealmente/internal/service"
	"github.com/idealmente/idealmente/internal/usecase"
)

// statusFor maps the usecase error taxonomy onto HTTP. Analysis
// failures surface as bad gateway with the remote message intact.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrForbidden):
		return fiber.StatusForbidden
	}
	var analysisErr *service.AnalysisError
	if errors.As(err, &analysisErr) {
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
