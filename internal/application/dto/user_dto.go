package dto

import "time"

// RegisterCompanyRequest datos mínimos de la empresa en el registro.
type RegisterCompanyRequest struct {
	DisplayName                string `json:"display_name" validate:"required,min=1,max=200"`
	LegalName                  string `json:"legal_name" validate:"required,min=1,max=255"`
	BusinessRegistrationNumber string `json:"business_registration_number" validate:"required,min=1,max=100"`
}

// RegisterRequest entrada para registro: usuario + su empresa inicial.
// El usuario queda como owner de la empresa con rol admin.
type RegisterRequest struct {
	Email    string                 `json:"email" validate:"required,email"`
	Password string                 `json:"password" validate:"required,min=8"`
	FullName string                 `json:"full_name" validate:"required,min=1,max=255"`
	Company  RegisterCompanyRequest `json:"company" validate:"required"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con el bearer token. El token solo contiene el email
// como subject; el contexto de empresa se resuelve por request.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse salida de un usuario con su contexto de empresa (sin password).
type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	IsActive           bool      `json:"is_active"`
	IsVerified         bool      `json:"is_verified"`
	DefaultCompanyID   string    `json:"default_company_id,omitempty"`
	DefaultCompanyName string    `json:"default_company_name,omitempty"`
	CurrentCompanyID   string    `json:"current_company_id,omitempty"`
	CurrentCompanyName string    `json:"current_company_name,omitempty"`
	CurrentRole        string    `json:"current_role,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
