package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrSlugExhausted      = errors.New("no se pudo generar un slug único")

	// Fallos de autenticación. El resolver los distingue entre sí para el
	// caller, pero la capa HTTP reporta token inválido y usuario desconocido
	// de forma idéntica para no filtrar cuál condición falló.
	ErrInvalidToken       = errors.New("token inválido o expirado")
	ErrUnknownUser        = errors.New("sujeto del token desconocido")
	ErrInactiveAccount    = errors.New("cuenta desactivada")
	ErrInvalidCredentials = errors.New("credenciales inválidas")

	// Fallos de autorización: autenticado pero sin membresía activa en la
	// empresa objetivo. Distinto de "no encontrado".
	ErrNoAccess  = errors.New("sin acceso a esta empresa")
	ErrForbidden = errors.New("acceso denegado")

	// Invitaciones.
	ErrInvitationExpired    = errors.New("la invitación ya venció")
	ErrInvitationNotPending = errors.New("la invitación ya fue resuelta")
	ErrInvitationMismatch   = errors.New("la invitación no corresponde a este usuario")
)
