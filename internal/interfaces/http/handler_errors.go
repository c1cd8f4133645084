package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cuentas-api/internal/application/dto"
	"github.com/jhoicas/cuentas-api/internal/domain"
)

// respondDomainError traduce errores de dominio a respuestas HTTP.
// Los internals nunca se filtran: el default responde 500 con mensaje genérico.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrSlugExhausted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SLUG_CONFLICT", Message: "no se pudo generar un identificador único para la empresa"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrInactiveAccount):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INACTIVE_ACCOUNT", Message: "cuenta desactivada"})
	case errors.Is(err, domain.ErrNoAccess):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_ACCESS", Message: "sin acceso a esta empresa"})
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrInvitationMismatch):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrInvitationExpired):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVITATION_EXPIRED", Message: "la invitación ya venció"})
	case errors.Is(err, domain.ErrInvitationNotPending):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVITATION_RESOLVED", Message: "la invitación ya fue resuelta"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
