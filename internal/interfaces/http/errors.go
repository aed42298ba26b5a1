package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/socks-api/internal/application/dto"
	"github.com/jhoicas/socks-api/internal/domain"
)

func errInvalidParam(field, message string) error {
	return domain.NewArgumentError(field, message)
}

// StatusFor traduce un error de dominio a código HTTP y código de error de la API.
//   - ProcessingError: 400 si la causa es una fila inválida, 500 si es lectura/IO.
//   - ArgumentError: 400.
//   - NotFound y stock insuficiente: 404.
//   - Conflict: 409.
func StatusFor(err error) (int, string) {
	var perr *domain.ProcessingError
	if errors.As(err, &perr) {
		if errors.Is(perr.Err, domain.ErrInvalidInput) {
			return fiber.StatusBadRequest, "CSV_INVALID_ROW"
		}
		return fiber.StatusInternalServerError, "CSV_PROCESSING"
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "INVALID_PARAMS"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusNotFound, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func writeError(c *fiber.Ctx, err error) error {
	status, code := StatusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError && code == "INTERNAL" {
		msg = "error interno: " + msg
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
