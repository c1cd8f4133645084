package identity

import (
	"errors"

	"github.com/jhoicas/cuentas-api/internal/domain"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
	"github.com/jhoicas/cuentas-api/internal/domain/repository"
	"github.com/jhoicas/cuentas-api/pkg/token"
)

// AccessChecker es el contrato mínimo que necesita el resolver para resolver
// el rol. Lo implementa *usecase.MemberUseCase; la interfaz evita acoplar los
// paquetes de aplicación entre sí.
type AccessChecker interface {
	CheckAccess(userID, companyID string) (*entity.CompanyMember, error)
}

// Resolver convierte un bearer token en un Principal completamente
// contextualizado: usuario + empresa activa efectiva + rol vigente.
// Se ejecuta fresco en cada request; el token no transporta tenancy, así que
// los cambios de rol o membresía aplican al siguiente request sin reemitir
// tokens.
type Resolver struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	access    AccessChecker
	secret    string
}

// NewResolver construye el resolver de identidad.
func NewResolver(users repository.UserRepository, companies repository.CompanyRepository, access AccessChecker, secret string) *Resolver {
	return &Resolver{users: users, companies: companies, access: access, secret: secret}
}

// Resolve valida el token y construye el Principal.
//
// Fallos distinguibles para el caller:
//   - ErrInvalidToken: firma inválida, token malformado o expirado, o subject vacío.
//   - ErrUnknownUser: subject válido pero sin usuario (la capa HTTP lo reporta
//     igual que ErrInvalidToken para no filtrar cuál condición falló).
//   - ErrInactiveAccount: credenciales válidas, cuenta desactivada.
//
// Si el usuario no tiene empresa activa seleccionada se cae a la default solo
// para esta respuesta; nada se persiste. El rol siempre se re-resuelve contra
// la membresía vigente, nunca se confía en un valor cacheado.
func (r *Resolver) Resolve(tokenString string) (*entity.Principal, error) {
	claims, err := token.Verify(r.secret, tokenString)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	email := claims.Subject
	if email == "" {
		return nil, domain.ErrInvalidToken
	}

	user, err := r.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnknownUser
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	principal := &entity.Principal{User: *user}

	effective := user.CurrentCompanyID
	if effective == nil {
		effective = user.DefaultCompanyID
	}
	if effective == nil {
		return principal, nil
	}

	member, err := r.access.CheckAccess(user.ID, *effective)
	if err != nil {
		if errors.Is(err, domain.ErrNoAccess) {
			// La membresía fue revocada o desactivada después de la selección:
			// el principal queda sin contexto de empresa.
			return principal, nil
		}
		return nil, err
	}

	company, err := r.companies.GetByID(*effective)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return principal, nil
	}

	principal.CompanyID = company.ID
	principal.CompanyName = company.DisplayName
	principal.Role = member.Role
	return principal, nil
}
