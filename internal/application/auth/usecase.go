package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cuentas-api/internal/application/dto"
	"github.com/jhoicas/cuentas-api/internal/domain"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
	"github.com/jhoicas/cuentas-api/internal/domain/repository"
	"github.com/jhoicas/cuentas-api/pkg/password"
	"github.com/jhoicas/cuentas-api/pkg/slug"
	"github.com/jhoicas/cuentas-api/pkg/token"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Lo implementa postgres.TxRunner; la interfaz permite inyectar fakes en tests.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		users repository.UserRepository,
		companies repository.CompanyRepository,
		members repository.MemberRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: registro con empresa propia y login.
type AuthUseCase struct {
	users  repository.UserRepository
	tx     TxRunner
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, tx TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, tx: tx, jwtCfg: jwtCfg}
}

// Register crea usuario + empresa + membresía owner en una sola transacción.
// Si cualquier paso falla no se persiste nada. Devuelve ErrEmailAlreadyExists
// si el email ya existe (match exacto, case-sensitive).
//
// La membresía inicial siempre es role=admin, status=active, is_owner=true.
// Sobre el usuario solo se persiste el id de la empresa default; el nombre se
// denormaliza únicamente en la respuesta.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
		IsActive:     true,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	company := &entity.Company{
		ID:                         uuid.New().String(),
		DisplayName:                in.Company.DisplayName,
		LegalName:                  in.Company.LegalName,
		BusinessRegistrationNumber: in.Company.BusinessRegistrationNumber,
		BillingSameAsMailing:       true,
		ShowEmailOnInvoice:         true,
		ShowPhoneOnInvoice:         true,
		ShowWebsiteOnInvoice:       true,
		IsActive:                   true,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}

	err = uc.tx.Run(ctx, func(
		users repository.UserRepository,
		companies repository.CompanyRepository,
		members repository.MemberRepository,
	) error {
		if err := users.Create(user); err != nil {
			return err
		}

		// El pre-chequeo de slug corre dentro de la misma tx; la constraint
		// única de la tabla respalda la carrera entre registros concurrentes.
		resolved, err := slug.Unique(slug.Make(company.DisplayName), func(candidate string) (bool, error) {
			return companies.SlugTaken(candidate, "")
		})
		if err != nil {
			if errors.Is(err, slug.ErrExhausted) {
				return domain.ErrSlugExhausted
			}
			return err
		}
		company.Slug = resolved

		if err := companies.Create(company); err != nil {
			return err
		}

		member := &entity.CompanyMember{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			CompanyID: company.ID,
			Role:      entity.RoleAdmin,
			Status:    entity.MemberActive,
			IsOwner:   true,
			JoinedAt:  now,
			UpdatedAt: now,
		}
		if err := members.Upsert(member); err != nil {
			return err
		}

		return users.SetDefaultCompany(user.ID, company.ID)
	})
	if err != nil {
		return nil, err
	}

	out := toUserResponse(user)
	out.DefaultCompanyID = company.ID
	out.DefaultCompanyName = company.DisplayName
	out.CurrentCompanyID = company.ID
	out.CurrentCompanyName = company.DisplayName
	out.CurrentRole = entity.RoleAdmin
	return out, nil
}

// Login verifica email/password y emite un JWT cuyo subject es el email.
// Credenciales inválidas y usuario inexistente producen el mismo error para
// no filtrar cuál condición falló; cuenta desactivada se reporta distinto.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	ttl := time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
	tok, err := token.Issue(uc.jwtCfg.Secret, user.Email, uc.jwtCfg.Issuer, ttl)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{AccessToken: tok, TokenType: "bearer"}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if u.DefaultCompanyID != nil {
		out.DefaultCompanyID = *u.DefaultCompanyID
	}
	if u.CurrentCompanyID != nil {
		out.CurrentCompanyID = *u.CurrentCompanyID
	}
	return out
}
