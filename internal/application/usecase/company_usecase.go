package usecase

import (
	"errors"
	"time"

	"github.com/jhoicas/cuentas-api/internal/application/dto"
	"github.com/jhoicas/cuentas-api/internal/domain"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
	"github.com/jhoicas/cuentas-api/internal/domain/repository"
	"github.com/jhoicas/cuentas-api/pkg/slug"
)

// CompanyUseCase reglas de negocio para empresas: consulta, actualización
// parcial con regeneración de slug y selección de empresa activa.
type CompanyUseCase struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
	members   repository.MemberRepository
	access    *MemberUseCase
}

// NewCompanyUseCase construye el caso de uso con sus puertos de persistencia.
func NewCompanyUseCase(
	companies repository.CompanyRepository,
	users repository.UserRepository,
	members repository.MemberRepository,
	access *MemberUseCase,
) *CompanyUseCase {
	return &CompanyUseCase{companies: companies, users: users, members: members, access: access}
}

// Get devuelve una empresa a la que el usuario tiene acceso.
// Empresa inexistente es ErrNotFound; falta de membresía es ErrNoAccess.
func (uc *CompanyUseCase) Get(userID, companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.access.CheckAccess(userID, companyID); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// ListMine devuelve las empresas donde el usuario tiene membresía activa,
// cada una con su rol. Orden determinista por id de empresa.
func (uc *CompanyUseCase) ListMine(userID string) ([]dto.CompanyWithRoleResponse, error) {
	list, err := uc.members.CompaniesForUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyWithRoleResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.CompanyWithRoleResponse{
			CompanyResponse: *toCompanyResponse(&m.Company),
			Role:            m.Role,
			IsOwner:         m.IsOwner,
		})
	}
	return out, nil
}

// Update aplica una actualización parcial: solo los campos provistos cambian.
// Requiere rol admin en la empresa. Si display_name cambia, el slug se
// regenera excluyendo la fila propia del chequeo de colisión. Un change-set
// vacío deja todos los campos, incluido el slug, intactos.
func (uc *CompanyUseCase) Update(userID, companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	member, err := uc.access.CheckAccess(userID, companyID)
	if err != nil {
		return nil, err
	}
	if member.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if in.DisplayName != nil && *in.DisplayName != company.DisplayName {
		resolved, err := slug.Unique(slug.Make(*in.DisplayName), func(candidate string) (bool, error) {
			return uc.companies.SlugTaken(candidate, company.ID)
		})
		if err != nil {
			if errors.Is(err, slug.ErrExhausted) {
				return nil, domain.ErrSlugExhausted
			}
			return nil, err
		}
		company.DisplayName = *in.DisplayName
		company.Slug = resolved
	}

	applyCompanyUpdate(company, in)
	company.UpdatedAt = time.Now()

	if err := uc.companies.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// ProfileDocument devuelve la entidad completa para renderizar documentos
// (la hoja de perfil en PDF), previa verificación de acceso.
func (uc *CompanyUseCase) ProfileDocument(userID, companyID string) (*entity.Company, error) {
	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.access.CheckAccess(userID, companyID); err != nil {
		return nil, err
	}
	return company, nil
}

// SelectActive verifica acceso y persiste la empresa activa del usuario.
// Solo se guarda el id; nombre y rol se resuelven frescos en cada request.
func (uc *CompanyUseCase) SelectActive(userID, companyID string) (*dto.UserResponse, error) {
	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	member, err := uc.access.CheckAccess(userID, companyID)
	if err != nil {
		return nil, err
	}
	if err := uc.users.SetCurrentCompany(userID, &companyID); err != nil {
		return nil, err
	}

	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := &dto.UserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		FullName:           user.FullName,
		IsActive:           user.IsActive,
		IsVerified:         user.IsVerified,
		CurrentCompanyID:   company.ID,
		CurrentCompanyName: company.DisplayName,
		CurrentRole:        member.Role,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
	if user.DefaultCompanyID != nil {
		out.DefaultCompanyID = *user.DefaultCompanyID
		if defaultCompany, err := uc.companies.GetByID(*user.DefaultCompanyID); err == nil && defaultCompany != nil {
			out.DefaultCompanyName = defaultCompany.DisplayName
		}
	}
	return out, nil
}

// applyCompanyUpdate copia al entity los campos no nil del request.
// DisplayName ya fue aplicado junto con el slug.
func applyCompanyUpdate(c *entity.Company, in dto.UpdateCompanyRequest) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}

	setStr(&c.LegalName, in.LegalName)
	setStr(&c.BusinessRegistrationNumber, in.BusinessRegistrationNumber)
	setStr(&c.BusinessStructure, in.BusinessStructure)
	setStr(&c.Industry, in.Industry)
	setStr(&c.TaxID, in.TaxID)
	setStr(&c.Description, in.Description)
	setStr(&c.LogoURL, in.LogoURL)

	setStr(&c.Email, in.Email)
	setStr(&c.PhoneCountryCode, in.PhoneCountryCode)
	setStr(&c.PhoneNumber, in.PhoneNumber)
	setStr(&c.MobileCountryCode, in.MobileCountryCode)
	setStr(&c.MobileNumber, in.MobileNumber)
	setStr(&c.Fax, in.Fax)
	setStr(&c.Website, in.Website)
	setStr(&c.Facebook, in.Facebook)
	setStr(&c.Instagram, in.Instagram)
	setStr(&c.LinkedIn, in.LinkedIn)
	setStr(&c.Twitter, in.Twitter)

	setStr(&c.MailingAddress, in.MailingAddress)
	setStr(&c.BillingAddress, in.BillingAddress)
	setBool(&c.BillingSameAsMailing, in.BillingSameAsMailing)

	setBool(&c.ShowEmailOnInvoice, in.ShowEmailOnInvoice)
	setBool(&c.ShowPhoneOnInvoice, in.ShowPhoneOnInvoice)
	setBool(&c.ShowMobileOnInvoice, in.ShowMobileOnInvoice)
	setBool(&c.ShowFaxOnInvoice, in.ShowFaxOnInvoice)
	setBool(&c.ShowWebsiteOnInvoice, in.ShowWebsiteOnInvoice)
	setBool(&c.ShowSocialMediaOnInvoice, in.ShowSocialMediaOnInvoice)
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                         c.ID,
		DisplayName:                c.DisplayName,
		LegalName:                  c.LegalName,
		Slug:                       c.Slug,
		BusinessRegistrationNumber: c.BusinessRegistrationNumber,
		BusinessStructure:          c.BusinessStructure,
		Industry:                   c.Industry,
		TaxID:                      c.TaxID,
		Description:                c.Description,
		LogoURL:                    c.LogoURL,
		Email:                      c.Email,
		PhoneCountryCode:           c.PhoneCountryCode,
		PhoneNumber:                c.PhoneNumber,
		MobileCountryCode:          c.MobileCountryCode,
		MobileNumber:               c.MobileNumber,
		Fax:                        c.Fax,
		Website:                    c.Website,
		Facebook:                   c.Facebook,
		Instagram:                  c.Instagram,
		LinkedIn:                   c.LinkedIn,
		Twitter:                    c.Twitter,
		MailingAddress:             c.MailingAddress,
		BillingAddress:             c.BillingAddress,
		BillingSameAsMailing:       c.BillingSameAsMailing,
		ShowEmailOnInvoice:         c.ShowEmailOnInvoice,
		ShowPhoneOnInvoice:         c.ShowPhoneOnInvoice,
		ShowMobileOnInvoice:        c.ShowMobileOnInvoice,
		ShowFaxOnInvoice:           c.ShowFaxOnInvoice,
		ShowWebsiteOnInvoice:       c.ShowWebsiteOnInvoice,
		ShowSocialMediaOnInvoice:   c.ShowSocialMediaOnInvoice,
		IsActive:                   c.IsActive,
		CreatedAt:                  c.CreatedAt,
		UpdatedAt:                  c.UpdatedAt,
	}
}
