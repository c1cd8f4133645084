package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cuentas-api/internal/application/dto"
	"github.com/jhoicas/cuentas-api/internal/application/usecase"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
)

// profileGenerator renderiza la hoja de perfil de una empresa.
// Lo implementa pdf.CompanyProfileGenerator.
type profileGenerator interface {
	GenerateCompanyProfile(company *entity.Company) ([]byte, error)
}

// CompanyHandler maneja consulta, actualización y selección de empresas.
type CompanyHandler struct {
	uc  *usecase.CompanyUseCase
	pdf profileGenerator
}

// NewCompanyHandler construye el handler de empresas.
func NewCompanyHandler(uc *usecase.CompanyUseCase, pdf profileGenerator) *CompanyHandler {
	return &CompanyHandler{uc: uc, pdf: pdf}
}

// ListMine godoc
// @Summary      Empresas del usuario autenticado, cada una con su rol
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.CompanyWithRoleResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/v1/companies [get]
func (h *CompanyHandler) ListMine(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	out, err := h.uc.ListMine(principal.User.ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de una empresa a la que el usuario tiene acceso
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "id de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{id} [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	out, err := h.uc.Get(principal.User.ID, c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualización parcial de una empresa (solo admin)
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "id de la empresa"
// @Param        body  body      dto.UpdateCompanyRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	principal := GetPrincipal(c)
	out, err := h.uc.Update(principal.User.ID, c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// SelectActive godoc
// @Summary      Seleccionar la empresa activa del usuario
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.SelectCompanyRequest  true  "company_id"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/companies/select [post]
func (h *CompanyHandler) SelectActive(c *fiber.Ctx) error {
	var in dto.SelectCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	principal := GetPrincipal(c)
	out, err := h.uc.SelectActive(principal.User.ID, in.CompanyID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ProfilePDF godoc
// @Summary      Hoja de perfil de la empresa en PDF
// @Tags         companies
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "id de la empresa"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{id}/profile.pdf [get]
func (h *CompanyHandler) ProfilePDF(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	company, err := h.uc.ProfileDocument(principal.User.ID, c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	data, err := h.pdf.GenerateCompanyProfile(company)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="perfil-%s.pdf"`, company.Slug))
	return c.Send(data)
}
