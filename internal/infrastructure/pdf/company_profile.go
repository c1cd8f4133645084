// Package pdf genera la hoja de perfil / papelería de una empresa en PDF:
// el encabezado que la empresa imprime en sus documentos, respetando los
// flags show_*_on_invoice de su configuración.
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/cuentas-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// CompanyProfileGenerator genera la hoja de perfil de empresa usando Maroto v2.
type CompanyProfileGenerator struct{}

// NewCompanyProfileGenerator construye el generador.
func NewCompanyProfileGenerator() *CompanyProfileGenerator { return &CompanyProfileGenerator{} }

// GenerateCompanyProfile genera el PDF y devuelve sus bytes.
func (g *CompanyProfileGenerator) GenerateCompanyProfile(company *entity.Company) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Perfil de empresa", true).
		WithAuthor(company.DisplayName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(registrationRows(company)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(contactRows(company)...)

	if addr := addressRows(company); len(addr) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(addr...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre comercial + razón social.
func headerRow(company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New(company.DisplayName, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(company.LegalName, props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
	)
}

// registrationRows: número de registro, estructura legal e industria.
func registrationRows(company *entity.Company) []core.Row {
	rows := []core.Row{
		labelValueRow("Registro mercantil", company.BusinessRegistrationNumber),
	}
	if company.BusinessStructure != "" {
		rows = append(rows, labelValueRow("Estructura legal", company.BusinessStructure))
	}
	if company.Industry != "" {
		rows = append(rows, labelValueRow("Industria", company.Industry))
	}
	if company.TaxID != "" {
		rows = append(rows, labelValueRow("ID tributario", company.TaxID))
	}
	return rows
}

// contactRows incluye solo los canales marcados para mostrarse en papelería.
func contactRows(company *entity.Company) []core.Row {
	var rows []core.Row
	if company.ShowEmailOnInvoice && company.Email != "" {
		rows = append(rows, labelValueRow("Email", company.Email))
	}
	if company.ShowPhoneOnInvoice && company.PhoneNumber != "" {
		rows = append(rows, labelValueRow("Teléfono", joinPhone(company.PhoneCountryCode, company.PhoneNumber)))
	}
	if company.ShowMobileOnInvoice && company.MobileNumber != "" {
		rows = append(rows, labelValueRow("Móvil", joinPhone(company.MobileCountryCode, company.MobileNumber)))
	}
	if company.ShowFaxOnInvoice && company.Fax != "" {
		rows = append(rows, labelValueRow("Fax", company.Fax))
	}
	if company.ShowWebsiteOnInvoice && company.Website != "" {
		rows = append(rows, labelValueRow("Web", company.Website))
	}
	if company.ShowSocialMediaOnInvoice {
		socials := joinNonEmpty(company.Facebook, company.Instagram, company.LinkedIn, company.Twitter)
		if socials != "" {
			rows = append(rows, labelValueRow("Redes", socials))
		}
	}
	return rows
}

func addressRows(company *entity.Company) []core.Row {
	var rows []core.Row
	if company.MailingAddress != "" {
		rows = append(rows, labelValueRow("Dirección", company.MailingAddress))
	}
	if !company.BillingSameAsMailing && company.BillingAddress != "" {
		rows = append(rows, labelValueRow("Dirección de facturación", company.BillingAddress))
	}
	return rows
}

func labelValueRow(label, value string) core.Row {
	return row.New(7).Add(
		col.New(4).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1})),
		col.New(8).Add(text.New(value, props.Text{Size: 9, Top: 1, Color: colorGray})),
	)
}

func joinPhone(countryCode, number string) string {
	if countryCode == "" {
		return number
	}
	return countryCode + " " + number
}

func joinNonEmpty(values ...string) string {
	var parts []string
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " · ")
}
