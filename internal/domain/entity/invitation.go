package entity

import "time"

// Estados de una invitación. Las transiciones pending -> accepted/rejected/expired
// ocurren exactamente una vez.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationRejected = "rejected"
	InvitationExpired  = "expired"
)

// Invitation invita a un email a unirse a una empresa con un rol propuesto.
// Aceptarla crea (o reactiva) la membresía correspondiente.
type Invitation struct {
	ID              string
	CompanyID       string
	InvitedByUserID *string // nil si el usuario que invitó fue eliminado
	Email           string
	Role            string // rol propuesto, ver constantes Role*
	Token           string // token aleatorio único, viaja en el enlace de invitación
	Status          string // pending, accepted, rejected, expired
	CreatedAt       time.Time
	ExpiresAt       time.Time
	AcceptedAt      *time.Time
}

// Expired informa si la invitación ya venció respecto a now.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
