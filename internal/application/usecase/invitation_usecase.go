package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cuentas-api/internal/application/dto"
	"github.com/jhoicas/cuentas-api/internal/domain"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
	"github.com/jhoicas/cuentas-api/internal/domain/repository"
)

// invitationTTL ventana de validez por defecto de una invitación.
const invitationTTL = 7 * 24 * time.Hour

// InvitationTxRunner ejecuta fn dentro de una transacción con repos de
// invitaciones y membresías atados a ella (aceptar debe ser atómico).
type InvitationTxRunner interface {
	RunInvitation(ctx context.Context, fn func(
		invitations repository.InvitationRepository,
		members repository.MemberRepository,
	) error) error
}

// InvitationUseCase ciclo de vida de invitaciones: crear, aceptar, rechazar.
// Aceptar crea (o reactiva) la membresía: es una operación explícita, no un
// efecto implícito del modelo.
type InvitationUseCase struct {
	invitations repository.InvitationRepository
	users       repository.UserRepository
	access      *MemberUseCase
	tx          InvitationTxRunner
}

// NewInvitationUseCase construye el caso de uso.
func NewInvitationUseCase(
	invitations repository.InvitationRepository,
	users repository.UserRepository,
	access *MemberUseCase,
	tx InvitationTxRunner,
) *InvitationUseCase {
	return &InvitationUseCase{invitations: invitations, users: users, access: access, tx: tx}
}

// Invite crea una invitación pendiente con token aleatorio y vencimiento.
// Solo un admin de la empresa puede invitar.
func (uc *InvitationUseCase) Invite(requesterID, companyID string, in dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	requester, err := uc.access.CheckAccess(requesterID, companyID)
	if err != nil {
		return nil, err
	}
	if requester.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	tok, err := newInvitationToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	inv := &entity.Invitation{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		InvitedByUserID: &requesterID,
		Email:           in.Email,
		Role:            in.Role,
		Token:           tok,
		Status:          entity.InvitationPending,
		CreatedAt:       now,
		ExpiresAt:       now.Add(invitationTTL),
	}
	if err := uc.invitations.Create(inv); err != nil {
		return nil, err
	}
	out := toInvitationResponse(inv, true)
	return &out, nil
}

// Accept marca la invitación como aceptada y hace upsert de la membresía con
// el rol propuesto, en una sola transacción. El email invitado debe coincidir
// con el del usuario que acepta. Una invitación vencida se marca expired y la
// operación falla con ErrInvitationExpired.
func (uc *InvitationUseCase) Accept(ctx context.Context, userID, token string) (*dto.MemberResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	inv, err := uc.invitations.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Status != entity.InvitationPending {
		return nil, domain.ErrInvitationNotPending
	}
	if inv.Email != user.Email {
		return nil, domain.ErrInvitationMismatch
	}

	now := time.Now()
	if inv.Expired(now) {
		inv.Status = entity.InvitationExpired
		if err := uc.invitations.Update(inv); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvitationExpired
	}

	member := &entity.CompanyMember{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CompanyID: inv.CompanyID,
		Role:      inv.Role,
		Status:    entity.MemberActive,
		IsOwner:   false,
		JoinedAt:  now,
		UpdatedAt: now,
	}
	err = uc.tx.RunInvitation(ctx, func(
		invitations repository.InvitationRepository,
		members repository.MemberRepository,
	) error {
		inv.Status = entity.InvitationAccepted
		inv.AcceptedAt = &now
		if err := invitations.Update(inv); err != nil {
			return err
		}
		return members.Upsert(member)
	})
	if err != nil {
		return nil, err
	}
	out := toMemberResponse(member)
	return &out, nil
}

// Reject marca la invitación como rechazada. Mismas validaciones de token,
// estado y correspondencia de email que Accept.
func (uc *InvitationUseCase) Reject(userID, token string) error {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	inv, err := uc.invitations.GetByToken(token)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if inv.Status != entity.InvitationPending {
		return domain.ErrInvitationNotPending
	}
	if inv.Email != user.Email {
		return domain.ErrInvitationMismatch
	}
	inv.Status = entity.InvitationRejected
	return uc.invitations.Update(inv)
}

// ListByCompany lista las invitaciones de una empresa (requiere acceso).
// Los tokens no se incluyen en la salida.
func (uc *InvitationUseCase) ListByCompany(requesterID, companyID string) ([]dto.InvitationResponse, error) {
	if _, err := uc.access.CheckAccess(requesterID, companyID); err != nil {
		return nil, err
	}
	list, err := uc.invitations.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvitationResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvitationResponse(inv, false))
	}
	return out, nil
}

// newInvitationToken genera 32 bytes aleatorios en base64 URL-safe,
// equivalente a token_urlsafe(32).
func newInvitationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generar token de invitación: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func toInvitationResponse(inv *entity.Invitation, includeToken bool) dto.InvitationResponse {
	out := dto.InvitationResponse{
		ID:         inv.ID,
		CompanyID:  inv.CompanyID,
		Email:      inv.Email,
		Role:       inv.Role,
		Status:     inv.Status,
		CreatedAt:  inv.CreatedAt,
		ExpiresAt:  inv.ExpiresAt,
		AcceptedAt: inv.AcceptedAt,
	}
	if includeToken {
		out.Token = inv.Token
	}
	return out
}
