package entity

import "time"

// Roles válidos dentro de una empresa. El rol solo tiene sentido en el contexto
// de una membresía: no existe rol global.
const (
	RoleAdmin          = "admin"
	RoleManager        = "manager"
	RoleAccountant     = "accountant"
	RoleInventoryStaff = "inventory_staff"
	RolePOSStaff       = "pos_staff"
	RoleKitchenStaff   = "kitchen_staff"
	RoleViewer         = "viewer"
)

// Estados de una membresía.
const (
	MemberActive   = "active"
	MemberInactive = "inactive"
	MemberPending  = "pending"
)

// ValidRole informa si role pertenece a la enumeración de roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleAccountant, RoleInventoryStaff, RolePOSStaff, RoleKitchenStaff, RoleViewer:
		return true
	}
	return false
}

// CompanyMember es la entidad de unión usuario↔empresa: un rol y un estado por
// par (user_id, company_id). El par es único a nivel de base de datos.
type CompanyMember struct {
	ID        string
	UserID    string
	CompanyID string
	Role      string // ver constantes Role*
	Status    string // active, inactive, pending
	IsOwner   bool
	JoinedAt  time.Time
	UpdatedAt time.Time
}

// CompanyMembership es el resultado del join empresa+membresía para listados:
// la empresa enriquecida con el rol del usuario consultante.
type CompanyMembership struct {
	Company Company
	Role    string
	IsOwner bool
}
