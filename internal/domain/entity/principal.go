package entity

// Principal es la identidad resuelta por request: usuario + empresa activa
// efectiva + rol en esa empresa. Se construye fresco en cada request y nunca
// se persiste; el rol siempre sale de la membresía vigente, no de un cache.
type Principal struct {
	User User
	// Contexto de empresa efectivo. Vacíos si el usuario no tiene empresa
	// seleccionada ni default.
	CompanyID   string
	CompanyName string
	Role        string
}

// HasCompany informa si el principal resolvió un contexto de empresa.
func (p *Principal) HasCompany() bool {
	return p.CompanyID != ""
}
