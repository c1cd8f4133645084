package dto

import "time"

// CreateInvitationRequest entrada para invitar a un email a una empresa.
type CreateInvitationRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin manager accountant inventory_staff pos_staff kitchen_staff viewer"`
}

// ResolveInvitationRequest entrada para aceptar o rechazar una invitación por token.
type ResolveInvitationRequest struct {
	Token string `json:"token" validate:"required"`
}

// InvitationResponse salida de una invitación.
type InvitationResponse struct {
	ID         string     `json:"id"`
	CompanyID  string     `json:"company_id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Token      string     `json:"token,omitempty"` // solo se incluye al crearla
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}
