package dto

import "time"

// MemberResponse salida de una membresía.
type MemberResponse struct {
	UserID    string    `json:"user_id"`
	CompanyID string    `json:"company_id"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	IsOwner   bool      `json:"is_owner"`
	JoinedAt  time.Time `json:"joined_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddMemberRequest entrada para agregar un usuario ya registrado como miembro.
type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin manager accountant inventory_staff pos_staff kitchen_staff viewer"`
}

// UpdateMemberRoleRequest entrada para cambiar el rol de un miembro.
type UpdateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin manager accountant inventory_staff pos_staff kitchen_staff viewer"`
}
