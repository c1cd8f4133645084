package entity

import "time"

// Estructuras legales soportadas (enfoque Malasia, igual que el registro SSM).
const (
	StructureSoleProprietorship = "sole_proprietorship"
	StructurePartnership        = "partnership"
	StructureLLP                = "llp"
	StructurePLT                = "plt"
	StructureSdnBhd             = "sdn_bhd"
	StructureBhd                = "bhd"
	StructureOther              = "other"
)

// Industrias soportadas.
const (
	IndustryRetail         = "retail"
	IndustryWholesale      = "wholesale"
	IndustryManufacturing  = "manufacturing"
	IndustryServices       = "services"
	IndustryTechnology     = "technology"
	IndustryHealthcare     = "healthcare"
	IndustryEducation      = "education"
	IndustryHospitality    = "hospitality"
	IndustryConstruction   = "construction"
	IndustryAgriculture    = "agriculture"
	IndustryFinance        = "finance"
	IndustryRealEstate     = "real_estate"
	IndustryTransportation = "transportation"
	IndustryOther          = "other"
)

// Company representa una organización/tenant del sistema. El slug se deriva del
// display name y es único global; se regenera cuando el display name cambia.
type Company struct {
	ID                         string
	DisplayName                string // nombre comercial
	LegalName                  string // razón social registrada
	Slug                       string
	BusinessRegistrationNumber string

	BusinessStructure string // ver constantes Structure*; vacío = sin clasificar
	Industry          string // ver constantes Industry*; vacío = sin clasificar
	TaxID             string
	Description       string
	LogoURL           string

	// Contacto
	Email             string
	PhoneCountryCode  string
	PhoneNumber       string
	MobileCountryCode string
	MobileNumber      string
	Fax               string
	Website           string
	Facebook          string
	Instagram         string
	LinkedIn          string
	Twitter           string

	// Direcciones
	MailingAddress       string
	BillingAddress       string
	BillingSameAsMailing bool

	// Qué mostrar en la papelería / facturas
	ShowEmailOnInvoice       bool
	ShowPhoneOnInvoice       bool
	ShowMobileOnInvoice      bool
	ShowFaxOnInvoice         bool
	ShowWebsiteOnInvoice     bool
	ShowSocialMediaOnInvoice bool

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
