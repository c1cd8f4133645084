package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cuentas-api/internal/application/dto"
	"github.com/jhoicas/cuentas-api/internal/application/usecase"
)

// MemberHandler maneja las membresías de una empresa.
type MemberHandler struct {
	uc *usecase.MemberUseCase
}

// NewMemberHandler construye el handler de miembros.
func NewMemberHandler(uc *usecase.MemberUseCase) *MemberHandler {
	return &MemberHandler{uc: uc}
}

// List godoc
// @Summary      Miembros de una empresa
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "id de la empresa"
// @Success      200  {array}   dto.MemberResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{id}/members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	out, err := h.uc.ListByCompany(principal.User.ID, c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar un usuario registrado como miembro (solo admin)
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "id de la empresa"
// @Param        body  body      dto.AddMemberRequest   true  "email del usuario y rol"
// @Success      201   {object}  dto.MemberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{id}/members [post]
func (h *MemberHandler) Add(c *fiber.Ctx) error {
	var in dto.AddMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	principal := GetPrincipal(c)
	out, err := h.uc.Add(principal.User.ID, c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateRole godoc
// @Summary      Cambiar el rol de un miembro (solo admin)
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string                       true  "id de la empresa"
// @Param        userId  path      string                       true  "id del usuario miembro"
// @Param        body    body      dto.UpdateMemberRoleRequest  true  "nuevo rol"
// @Success      200     {object}  dto.MemberResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{id}/members/{userId} [put]
func (h *MemberHandler) UpdateRole(c *fiber.Ctx) error {
	var in dto.UpdateMemberRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	principal := GetPrincipal(c)
	out, err := h.uc.UpdateRole(principal.User.ID, c.Params("id"), c.Params("userId"), in.Role)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar un miembro de la empresa (solo admin)
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string  true  "id de la empresa"
// @Param        userId  path  string  true  "id del usuario miembro"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{id}/members/{userId} [delete]
func (h *MemberHandler) Remove(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	if err := h.uc.Remove(principal.User.ID, c.Params("id"), c.Params("userId")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
