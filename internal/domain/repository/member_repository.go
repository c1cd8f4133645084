package repository

import "github.com/jhoicas/cuentas-api/internal/domain/entity"

// MemberRepository define el puerto de persistencia para CompanyMember (DIP).
type MemberRepository interface {
	// Upsert inserta la membresía o, si el par (user_id, company_id) ya existe,
	// actualiza rol, estado y flag de owner. El par es único en la tabla.
	Upsert(member *entity.CompanyMember) error
	// Get devuelve la membresía del par exacto, sin filtrar por estado.
	// nil, nil si no existe.
	Get(userID, companyID string) (*entity.CompanyMember, error)
	// CompaniesForUser devuelve las empresas donde el usuario tiene membresía
	// activa, cada una con su rol, ordenadas por id de empresa.
	CompaniesForUser(userID string) ([]*entity.CompanyMembership, error)
	// ListByCompany devuelve todas las membresías de una empresa.
	ListByCompany(companyID string) ([]*entity.CompanyMember, error)
	Delete(userID, companyID string) error
}
