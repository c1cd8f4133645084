package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cuentas-api/internal/domain"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
	"github.com/jhoicas/cuentas-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, display_name, legal_name, slug, business_registration_number,
	business_structure, industry, tax_id, description, logo_url,
	email, phone_country_code, phone_number, mobile_country_code, mobile_number,
	fax, website, facebook, instagram, linkedin, twitter,
	mailing_address, billing_address, billing_same_as_mailing,
	show_email_on_invoice, show_phone_on_invoice, show_mobile_on_invoice,
	show_fax_on_invoice, show_website_on_invoice, show_social_media_on_invoice,
	is_active, created_at, updated_at`

// Sentencias de escritura junto a sus helpers de argumentos (companyArgs y
// companyUpdateArgs): cada placeholder $N debe corresponder 1:1 con la
// posición N de la lista de argumentos.
const companyInsertQuery = `
	INSERT INTO companies (
		id, display_name, legal_name, slug, business_registration_number,
		business_structure, industry, tax_id, description, logo_url,
		email, phone_country_code, phone_number, mobile_country_code, mobile_number,
		fax, website, facebook, instagram, linkedin, twitter,
		mailing_address, billing_address, billing_same_as_mailing,
		show_email_on_invoice, show_phone_on_invoice, show_mobile_on_invoice,
		show_fax_on_invoice, show_website_on_invoice, show_social_media_on_invoice,
		is_active, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21,
		$22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33
	)`

const companyUpdateQuery = `
	UPDATE companies SET
		display_name = $2, legal_name = $3, slug = $4, business_registration_number = $5,
		business_structure = $6, industry = $7, tax_id = $8, description = $9, logo_url = $10,
		email = $11, phone_country_code = $12, phone_number = $13,
		mobile_country_code = $14, mobile_number = $15,
		fax = $16, website = $17, facebook = $18, instagram = $19, linkedin = $20, twitter = $21,
		mailing_address = $22, billing_address = $23, billing_same_as_mailing = $24,
		show_email_on_invoice = $25, show_phone_on_invoice = $26, show_mobile_on_invoice = $27,
		show_fax_on_invoice = $28, show_website_on_invoice = $29, show_social_media_on_invoice = $30,
		is_active = $31, updated_at = $32
	WHERE id = $1`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	db DB
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(db DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// Create persiste una nueva empresa. La constraint única del slug traduce a
// domain.ErrDuplicate (respaldo contra la carrera del pre-chequeo).
func (r *CompanyRepo) Create(company *entity.Company) error {
	_, err := r.db.Exec(context.Background(), companyInsertQuery, companyArgs(company)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID. nil, nil si no existe.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return r.scanOne(query, id)
}

// GetBySlug obtiene una empresa por slug.
func (r *CompanyRepo) GetBySlug(slug string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE slug = $1`
	return r.scanOne(query, slug)
}

// SlugTaken informa si el slug pertenece a otra empresa distinta de excludeID.
func (r *CompanyRepo) SlugTaken(slug, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM companies WHERE slug = $1 AND id <> $2)`
	var taken bool
	if err := r.db.QueryRow(context.Background(), query, slug, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return taken, nil
}

// Update actualiza una empresa existente (todas las columnas mutables;
// created_at queda intacto).
func (r *CompanyRepo) Update(company *entity.Company) error {
	_, err := r.db.Exec(context.Background(), companyUpdateQuery, companyUpdateArgs(company)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete elimina una empresa por ID. Membresías e invitaciones caen en cascada.
func (r *CompanyRepo) Delete(id string) error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) scanOne(query string, arg any) (*entity.Company, error) {
	var c entity.Company
	err := r.db.QueryRow(context.Background(), query, arg).Scan(scanCompanyTargets(&c)...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// companyArgs lista los valores en el orden de companyColumns (+ created_at).
func companyArgs(c *entity.Company) []any {
	return []any{
		c.ID, c.DisplayName, c.LegalName, c.Slug, c.BusinessRegistrationNumber,
		c.BusinessStructure, c.Industry, c.TaxID, c.Description, c.LogoURL,
		c.Email, c.PhoneCountryCode, c.PhoneNumber, c.MobileCountryCode, c.MobileNumber,
		c.Fax, c.Website, c.Facebook, c.Instagram, c.LinkedIn, c.Twitter,
		c.MailingAddress, c.BillingAddress, c.BillingSameAsMailing,
		c.ShowEmailOnInvoice, c.ShowPhoneOnInvoice, c.ShowMobileOnInvoice,
		c.ShowFaxOnInvoice, c.ShowWebsiteOnInvoice, c.ShowSocialMediaOnInvoice,
		c.IsActive, c.CreatedAt, c.UpdatedAt,
	}
}

// companyUpdateArgs lista los valores de companyUpdateQuery: id ($1), las
// columnas mutables y updated_at; sin created_at.
func companyUpdateArgs(c *entity.Company) []any {
	return []any{
		c.ID, c.DisplayName, c.LegalName, c.Slug, c.BusinessRegistrationNumber,
		c.BusinessStructure, c.Industry, c.TaxID, c.Description, c.LogoURL,
		c.Email, c.PhoneCountryCode, c.PhoneNumber, c.MobileCountryCode, c.MobileNumber,
		c.Fax, c.Website, c.Facebook, c.Instagram, c.LinkedIn, c.Twitter,
		c.MailingAddress, c.BillingAddress, c.BillingSameAsMailing,
		c.ShowEmailOnInvoice, c.ShowPhoneOnInvoice, c.ShowMobileOnInvoice,
		c.ShowFaxOnInvoice, c.ShowWebsiteOnInvoice, c.ShowSocialMediaOnInvoice,
		c.IsActive, c.UpdatedAt,
	}
}

// scanCompanyTargets lista los destinos de Scan en el orden de companyColumns.
func scanCompanyTargets(c *entity.Company) []any {
	return []any{
		&c.ID, &c.DisplayName, &c.LegalName, &c.Slug, &c.BusinessRegistrationNumber,
		&c.BusinessStructure, &c.Industry, &c.TaxID, &c.Description, &c.LogoURL,
		&c.Email, &c.PhoneCountryCode, &c.PhoneNumber, &c.MobileCountryCode, &c.MobileNumber,
		&c.Fax, &c.Website, &c.Facebook, &c.Instagram, &c.LinkedIn, &c.Twitter,
		&c.MailingAddress, &c.BillingAddress, &c.BillingSameAsMailing,
		&c.ShowEmailOnInvoice, &c.ShowPhoneOnInvoice, &c.ShowMobileOnInvoice,
		&c.ShowFaxOnInvoice, &c.ShowWebsiteOnInvoice, &c.ShowSocialMediaOnInvoice,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	}
}
