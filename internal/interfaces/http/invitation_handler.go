package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cuentas-api/internal/application/dto"
	"github.com/jhoicas/cuentas-api/internal/application/usecase"
)

// InvitationHandler maneja invitaciones a empresas.
type InvitationHandler struct {
	uc *usecase.InvitationUseCase
}

// NewInvitationHandler construye el handler de invitaciones.
func NewInvitationHandler(uc *usecase.InvitationUseCase) *InvitationHandler {
	return &InvitationHandler{uc: uc}
}

// Create godoc
// @Summary      Invitar un email a la empresa (solo admin)
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                       true  "id de la empresa"
// @Param        body  body      dto.CreateInvitationRequest  true  "email y rol"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{id}/invitations [post]
func (h *InvitationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	principal := GetPrincipal(c)
	out, err := h.uc.Invite(principal.User.ID, c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Invitaciones de una empresa (sin tokens)
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "id de la empresa"
// @Success      200  {array}   dto.InvitationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{id}/invitations [get]
func (h *InvitationHandler) List(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	out, err := h.uc.ListByCompany(principal.User.ID, c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Accept godoc
// @Summary      Aceptar una invitación por token
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.ResolveInvitationRequest  true  "token de la invitación"
// @Success      200   {object}  dto.MemberResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/invitations/accept [post]
func (h *InvitationHandler) Accept(c *fiber.Ctx) error {
	var in dto.ResolveInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	principal := GetPrincipal(c)
	out, err := h.uc.Accept(c.Context(), principal.User.ID, in.Token)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar una invitación por token
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ResolveInvitationRequest  true  "token de la invitación"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/invitations/reject [post]
func (h *InvitationHandler) Reject(c *fiber.Ctx) error {
	var in dto.ResolveInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	principal := GetPrincipal(c)
	if err := h.uc.Reject(principal.User.ID, in.Token); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
