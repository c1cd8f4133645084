package repository

import "github.com/jhoicas/cuentas-api/internal/domain/entity"

// InvitationRepository define el puerto de persistencia para Invitation (DIP).
type InvitationRepository interface {
	Create(invitation *entity.Invitation) error
	// GetByToken busca por el token único de la invitación. nil, nil si no existe.
	GetByToken(token string) (*entity.Invitation, error)
	// Update persiste transiciones de estado (accepted/rejected/expired).
	Update(invitation *entity.Invitation) error
	ListByCompany(companyID string) ([]*entity.Invitation, error)
}
