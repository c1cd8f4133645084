package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cuentas-api/internal/application/dto"
	"github.com/jhoicas/cuentas-api/internal/domain"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
)

// LocalPrincipal key del Principal resuelto en c.Locals.
const LocalPrincipal = "principal"

// principalResolver es el contrato mínimo que necesita el middleware.
// Lo implementa *identity.Resolver; el uso de interfaz permite fakes en tests.
type principalResolver interface {
	Resolve(token string) (*entity.Principal, error)
}

// AuthMiddleware valida el Bearer Token, resuelve el Principal completo
// (usuario + empresa activa + rol vigente) y lo deja en c.Locals.
//
// Token inválido y usuario desconocido responden el mismo 401 para no filtrar
// cuál condición falló. Cuenta desactivada responde 403 con código propio:
// credenciales válidas, cuenta deshabilitada.
func AuthMiddleware(resolver principalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}

		principal, err := resolver.Resolve(tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrInactiveAccount) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INACTIVE_ACCOUNT", Message: "cuenta desactivada"})
			}
			// ErrInvalidToken, ErrUnknownUser y cualquier otro fallo: respuesta uniforme.
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

// GetPrincipal devuelve el Principal del contexto (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) *entity.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return nil
	}
	p, _ := v.(*entity.Principal)
	return p
}
