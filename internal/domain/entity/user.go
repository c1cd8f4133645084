package entity

import "time"

// User representa una cuenta del sistema. La identidad (email) es global y
// case-sensitive; la pertenencia a empresas vive en CompanyMember, nunca aquí.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string // bcrypt hash, nunca se serializa hacia afuera
	IsActive     bool
	IsVerified   bool
	// DefaultCompanyID es la empresa con la que el usuario se registró.
	// Solo se persiste el id; el nombre se resuelve al leer (nunca se duplica).
	DefaultCompanyID *string
	// CurrentCompanyID es la empresa activa seleccionada por el usuario.
	// nil = sin selección; el resolver cae al default para la respuesta.
	CurrentCompanyID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
