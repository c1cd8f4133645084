package repository

import "github.com/jhoicas/cuentas-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetBySlug(slug string) (*entity.Company, error)
	// SlugTaken informa si el slug ya está ocupado por otra empresa.
	// excludeID excluye la fila propia al regenerar el slug en una actualización
	// (vacío en la creación).
	SlugTaken(slug, excludeID string) (bool, error)
	Update(company *entity.Company) error
	Delete(id string) error
}
