package dto

import "time"

// UpdateCompanyRequest entrada para actualizar una empresa. Semántica de
// actualización parcial: solo los campos presentes (no nil) se aplican.
// Si DisplayName cambia, el slug se regenera con el mismo algoritmo del registro.
type UpdateCompanyRequest struct {
	DisplayName                *string `json:"display_name" validate:"omitempty,min=1,max=200"`
	LegalName                  *string `json:"legal_name" validate:"omitempty,min=1,max=255"`
	BusinessRegistrationNumber *string `json:"business_registration_number" validate:"omitempty,min=1,max=100"`
	BusinessStructure          *string `json:"business_structure" validate:"omitempty,oneof=sole_proprietorship partnership llp plt sdn_bhd bhd other"`
	Industry                   *string `json:"industry" validate:"omitempty,oneof=retail wholesale manufacturing services technology healthcare education hospitality construction agriculture finance real_estate transportation other"`
	TaxID                      *string `json:"tax_id"`
	Description                *string `json:"description"`
	LogoURL                    *string `json:"logo_url" validate:"omitempty,max=500"`

	Email             *string `json:"email" validate:"omitempty,email"`
	PhoneCountryCode  *string `json:"phone_country_code" validate:"omitempty,max=10"`
	PhoneNumber       *string `json:"phone_number" validate:"omitempty,max=50"`
	MobileCountryCode *string `json:"mobile_country_code" validate:"omitempty,max=10"`
	MobileNumber      *string `json:"mobile_number" validate:"omitempty,max=50"`
	Fax               *string `json:"fax" validate:"omitempty,max=50"`
	Website           *string `json:"website" validate:"omitempty,max=255"`
	Facebook          *string `json:"facebook"`
	Instagram         *string `json:"instagram"`
	LinkedIn          *string `json:"linkedin"`
	Twitter           *string `json:"twitter"`

	MailingAddress       *string `json:"mailing_address"`
	BillingAddress       *string `json:"billing_address"`
	BillingSameAsMailing *bool   `json:"billing_same_as_mailing"`

	ShowEmailOnInvoice       *bool `json:"show_email_on_invoice"`
	ShowPhoneOnInvoice       *bool `json:"show_phone_on_invoice"`
	ShowMobileOnInvoice      *bool `json:"show_mobile_on_invoice"`
	ShowFaxOnInvoice         *bool `json:"show_fax_on_invoice"`
	ShowWebsiteOnInvoice     *bool `json:"show_website_on_invoice"`
	ShowSocialMediaOnInvoice *bool `json:"show_social_media_on_invoice"`
}

// SelectCompanyRequest entrada para seleccionar la empresa activa del usuario.
type SelectCompanyRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
}

// CompanyResponse salida completa de una empresa.
type CompanyResponse struct {
	ID                         string `json:"id"`
	DisplayName                string `json:"display_name"`
	LegalName                  string `json:"legal_name"`
	Slug                       string `json:"slug"`
	BusinessRegistrationNumber string `json:"business_registration_number"`
	BusinessStructure          string `json:"business_structure,omitempty"`
	Industry                   string `json:"industry,omitempty"`
	TaxID                      string `json:"tax_id,omitempty"`
	Description                string `json:"description,omitempty"`
	LogoURL                    string `json:"logo_url,omitempty"`

	Email             string `json:"email,omitempty"`
	PhoneCountryCode  string `json:"phone_country_code,omitempty"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	MobileCountryCode string `json:"mobile_country_code,omitempty"`
	MobileNumber      string `json:"mobile_number,omitempty"`
	Fax               string `json:"fax,omitempty"`
	Website           string `json:"website,omitempty"`
	Facebook          string `json:"facebook,omitempty"`
	Instagram         string `json:"instagram,omitempty"`
	LinkedIn          string `json:"linkedin,omitempty"`
	Twitter           string `json:"twitter,omitempty"`

	MailingAddress       string `json:"mailing_address,omitempty"`
	BillingAddress       string `json:"billing_address,omitempty"`
	BillingSameAsMailing bool   `json:"billing_same_as_mailing"`

	ShowEmailOnInvoice       bool `json:"show_email_on_invoice"`
	ShowPhoneOnInvoice       bool `json:"show_phone_on_invoice"`
	ShowMobileOnInvoice      bool `json:"show_mobile_on_invoice"`
	ShowFaxOnInvoice         bool `json:"show_fax_on_invoice"`
	ShowWebsiteOnInvoice     bool `json:"show_website_on_invoice"`
	ShowSocialMediaOnInvoice bool `json:"show_social_media_on_invoice"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyWithRoleResponse empresa enriquecida con el rol del usuario consultante.
type CompanyWithRoleResponse struct {
	CompanyResponse
	Role    string `json:"role"`
	IsOwner bool   `json:"is_owner"`
}
