package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cuentas-api/internal/application/dto"
	"github.com/jhoicas/cuentas-api/internal/domain"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
	"github.com/jhoicas/cuentas-api/internal/domain/repository"
)

// MemberUseCase reglas de negocio sobre membresías usuario↔empresa.
type MemberUseCase struct {
	members repository.MemberRepository
	users   repository.UserRepository
}

// NewMemberUseCase construye el caso de uso con los puertos de persistencia.
func NewMemberUseCase(members repository.MemberRepository, users repository.UserRepository) *MemberUseCase {
	return &MemberUseCase{members: members, users: users}
}

// CheckAccess es la primitiva de autorización del sistema: devuelve la
// membresía activa del par (user, company) o ErrNoAccess. No escala por
// is_owner ni interpreta el rol; lo devuelve tal cual está en la fila.
// Una membresía con status != active cuenta como sin acceso.
func (uc *MemberUseCase) CheckAccess(userID, companyID string) (*entity.CompanyMember, error) {
	member, err := uc.members.Get(userID, companyID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.Status != entity.MemberActive {
		return nil, domain.ErrNoAccess
	}
	return member, nil
}

// ListByCompany lista las membresías de una empresa. Requiere que el
// solicitante tenga acceso a la empresa.
func (uc *MemberUseCase) ListByCompany(requesterID, companyID string) ([]dto.MemberResponse, error) {
	if _, err := uc.CheckAccess(requesterID, companyID); err != nil {
		return nil, err
	}
	list, err := uc.members.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MemberResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMemberResponse(m))
	}
	return out, nil
}

// Add incorpora un usuario ya registrado como miembro activo de la empresa,
// buscándolo por email. Solo admins. Si el usuario ya es miembro se actualiza
// su rol (mismo guardia que UpdateRole para owners) y se conserva is_owner.
func (uc *MemberUseCase) Add(requesterID, companyID string, req dto.AddMemberRequest) (*dto.MemberResponse, error) {
	if !entity.ValidRole(req.Role) {
		return nil, domain.ErrInvalidInput
	}
	requester, err := uc.CheckAccess(requesterID, companyID)
	if err != nil {
		return nil, err
	}
	if requester.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	user, err := uc.users.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	member, err := uc.members.Get(user.ID, companyID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		if member.IsOwner && !requester.IsOwner {
			return nil, domain.ErrForbidden
		}
		member.Role = req.Role
		member.Status = entity.MemberActive
		member.UpdatedAt = now
	} else {
		member = &entity.CompanyMember{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			CompanyID: companyID,
			Role:      req.Role,
			Status:    entity.MemberActive,
			IsOwner:   false,
			JoinedAt:  now,
			UpdatedAt: now,
		}
	}
	if err := uc.members.Upsert(member); err != nil {
		return nil, err
	}
	out := toMemberResponse(member)
	return &out, nil
}

// UpdateRole cambia el rol de un miembro. Solo un admin de la empresa puede
// hacerlo, y el rol de un owner solo puede cambiarlo otro owner.
func (uc *MemberUseCase) UpdateRole(requesterID, companyID, targetUserID, role string) (*dto.MemberResponse, error) {
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	requester, err := uc.CheckAccess(requesterID, companyID)
	if err != nil {
		return nil, err
	}
	if requester.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	target, err := uc.members.Get(targetUserID, companyID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}
	if target.IsOwner && !requester.IsOwner {
		return nil, domain.ErrForbidden
	}

	target.Role = role
	target.UpdatedAt = time.Now()
	if err := uc.members.Upsert(target); err != nil {
		return nil, err
	}
	out := toMemberResponse(target)
	return &out, nil
}

// Remove elimina la membresía de un miembro. Solo admins; un owner no puede
// ser removido por alguien que no sea owner.
func (uc *MemberUseCase) Remove(requesterID, companyID, targetUserID string) error {
	requester, err := uc.CheckAccess(requesterID, companyID)
	if err != nil {
		return err
	}
	if requester.Role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	target, err := uc.members.Get(targetUserID, companyID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}
	if target.IsOwner && !requester.IsOwner {
		return domain.ErrForbidden
	}
	return uc.members.Delete(targetUserID, companyID)
}

func toMemberResponse(m *entity.CompanyMember) dto.MemberResponse {
	return dto.MemberResponse{
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		Role:      m.Role,
		Status:    m.Status,
		IsOwner:   m.IsOwner,
		JoinedAt:  m.JoinedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
