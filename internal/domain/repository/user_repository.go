package repository

import "github.com/jhoicas/cuentas-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// La implementación vive en infrastructure.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByEmail busca por igualdad exacta (case-sensitive). nil, nil si no existe.
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// SetDefaultCompany fija la empresa por defecto asignada en el registro.
	SetDefaultCompany(userID, companyID string) error
	// SetCurrentCompany persiste la selección de empresa activa (nil = limpiar).
	SetCurrentCompany(userID string, companyID *string) error
	Delete(id string) error
}
