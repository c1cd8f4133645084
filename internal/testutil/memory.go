// Package testutil provee implementaciones en memoria de los puertos de
// persistencia para los tests de aplicación. El TxRunner en memoria tiene
// semántica real de rollback (snapshot/restore), lo que permite verificar
// atomicidad sin base de datos.
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/cuentas-api/internal/domain"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
	"github.com/jhoicas/cuentas-api/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// Usuarios
// ─────────────────────────────────────────────────────────────────────────────

// MemUserRepo implementa repository.UserRepository en memoria.
type MemUserRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

// NewMemUserRepo construye el repo vacío.
func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{byID: map[string]*entity.User{}}
}

func (r *MemUserRepo) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *MemUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *MemUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemUserRepo) Update(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	// Mismo contrato que el repo real: Update no toca default_company_id
	// ni current_company_id, eso es de SetDefaultCompany/SetCurrentCompany.
	stored.Email = user.Email
	stored.FullName = user.FullName
	stored.PasswordHash = user.PasswordHash
	stored.IsActive = user.IsActive
	stored.IsVerified = user.IsVerified
	stored.UpdatedAt = user.UpdatedAt
	return nil
}

func (r *MemUserRepo) SetDefaultCompany(userID, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	id := companyID
	u.DefaultCompanyID = &id
	return nil
}

func (r *MemUserRepo) SetCurrentCompany(userID string, companyID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if companyID == nil {
		u.CurrentCompanyID = nil
		return nil
	}
	id := *companyID
	u.CurrentCompanyID = &id
	return nil
}

func (r *MemUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *MemUserRepo) snapshot() map[string]*entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.User, len(r.byID))
	for k, v := range r.byID {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

func (r *MemUserRepo) restore(snap map[string]*entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = snap
}

// ─────────────────────────────────────────────────────────────────────────────
// Empresas
// ─────────────────────────────────────────────────────────────────────────────

// MemCompanyRepo implementa repository.CompanyRepository en memoria.
type MemCompanyRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Company
}

// NewMemCompanyRepo construye el repo vacío.
func NewMemCompanyRepo() *MemCompanyRepo {
	return &MemCompanyRepo{byID: map[string]*entity.Company{}}
}

func (r *MemCompanyRepo) Create(company *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Slug == company.Slug {
			return domain.ErrDuplicate
		}
	}
	cp := *company
	r.byID[company.ID] = &cp
	return nil
}

func (r *MemCompanyRepo) GetByID(id string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *MemCompanyRepo) GetBySlug(slug string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemCompanyRepo) SlugTaken(slug, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemCompanyRepo) Update(company *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[company.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.byID {
		if c.Slug == company.Slug && c.ID != company.ID {
			return domain.ErrDuplicate
		}
	}
	cp := *company
	r.byID[company.ID] = &cp
	return nil
}

func (r *MemCompanyRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *MemCompanyRepo) snapshot() map[string]*entity.Company {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.Company, len(r.byID))
	for k, v := range r.byID {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

func (r *MemCompanyRepo) restore(snap map[string]*entity.Company) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = snap
}

// ─────────────────────────────────────────────────────────────────────────────
// Membresías
// ─────────────────────────────────────────────────────────────────────────────

// MemMemberRepo implementa repository.MemberRepository en memoria.
// Necesita el repo de empresas para el join de CompaniesForUser.
type MemMemberRepo struct {
	mu        sync.Mutex
	byPair    map[string]*entity.CompanyMember
	companies *MemCompanyRepo
}

// NewMemMemberRepo construye el repo vacío atado al repo de empresas.
func NewMemMemberRepo(companies *MemCompanyRepo) *MemMemberRepo {
	return &MemMemberRepo{byPair: map[string]*entity.CompanyMember{}, companies: companies}
}

func pairKey(userID, companyID string) string { return userID + "|" + companyID }

func (r *MemMemberRepo) Upsert(member *entity.CompanyMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(member.UserID, member.CompanyID)
	if existing, ok := r.byPair[key]; ok {
		existing.Role = member.Role
		existing.Status = member.Status
		existing.IsOwner = member.IsOwner
		existing.UpdatedAt = member.UpdatedAt
		return nil
	}
	cp := *member
	r.byPair[key] = &cp
	return nil
}

func (r *MemMemberRepo) Get(userID, companyID string) (*entity.CompanyMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byPair[pairKey(userID, companyID)]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *MemMemberRepo) CompaniesForUser(userID string) ([]*entity.CompanyMembership, error) {
	r.mu.Lock()
	members := make([]*entity.CompanyMember, 0)
	for _, m := range r.byPair {
		if m.UserID == userID && m.Status == entity.MemberActive {
			cp := *m
			members = append(members, &cp)
		}
	}
	r.mu.Unlock()

	sort.Slice(members, func(i, j int) bool { return members[i].CompanyID < members[j].CompanyID })

	out := make([]*entity.CompanyMembership, 0, len(members))
	for _, m := range members {
		company, err := r.companies.GetByID(m.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			continue
		}
		out = append(out, &entity.CompanyMembership{Company: *company, Role: m.Role, IsOwner: m.IsOwner})
	}
	return out, nil
}

func (r *MemMemberRepo) ListByCompany(companyID string) ([]*entity.CompanyMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.CompanyMember, 0)
	for _, m := range r.byPair {
		if m.CompanyID == companyID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *MemMemberRepo) Delete(userID, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byPair, pairKey(userID, companyID))
	return nil
}

func (r *MemMemberRepo) snapshot() map[string]*entity.CompanyMember {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.CompanyMember, len(r.byPair))
	for k, v := range r.byPair {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

func (r *MemMemberRepo) restore(snap map[string]*entity.CompanyMember) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byPair = snap
}

// ─────────────────────────────────────────────────────────────────────────────
// Invitaciones
// ─────────────────────────────────────────────────────────────────────────────

// MemInvitationRepo implementa repository.InvitationRepository en memoria.
type MemInvitationRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Invitation
}

// NewMemInvitationRepo construye el repo vacío.
func NewMemInvitationRepo() *MemInvitationRepo {
	return &MemInvitationRepo{byID: map[string]*entity.Invitation{}}
}

func (r *MemInvitationRepo) Create(invitation *entity.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.byID {
		if inv.Token == invitation.Token {
			return domain.ErrDuplicate
		}
	}
	cp := *invitation
	r.byID[invitation.ID] = &cp
	return nil
}

func (r *MemInvitationRepo) GetByToken(token string) (*entity.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.byID {
		if inv.Token == token {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemInvitationRepo) Update(invitation *entity.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[invitation.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *invitation
	r.byID[invitation.ID] = &cp
	return nil
}

func (r *MemInvitationRepo) ListByCompany(companyID string) ([]*entity.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Invitation, 0)
	for _, inv := range r.byID {
		if inv.CompanyID == companyID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	// Más recientes primero, igual que el ORDER BY created_at DESC del repo real.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemInvitationRepo) snapshot() map[string]*entity.Invitation {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.Invitation, len(r.byID))
	for k, v := range r.byID {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

func (r *MemInvitationRepo) restore(snap map[string]*entity.Invitation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = snap
}

// ─────────────────────────────────────────────────────────────────────────────
// TxRunner en memoria con rollback real
// ─────────────────────────────────────────────────────────────────────────────

// failingMemberRepo envuelve un MemberRepository y falla en Upsert.
// Sirve para inyectar un fallo a mitad de transacción.
type failingMemberRepo struct {
	repository.MemberRepository
	err error
}

func (f *failingMemberRepo) Upsert(member *entity.CompanyMember) error { return f.err }

// MemTx implementa los runners de transacción de aplicación sobre los repos en
// memoria. Antes de ejecutar fn toma un snapshot de cada repo; si fn falla, los
// restaura. FailMemberUpsert, si no es nil, hace fallar el Upsert de miembros
// dentro de la transacción.
type MemTx struct {
	Users       *MemUserRepo
	Companies   *MemCompanyRepo
	Members     *MemMemberRepo
	Invitations *MemInvitationRepo

	FailMemberUpsert error
}

// Run ejecuta fn con semántica todo-o-nada sobre usuarios, empresas y miembros.
func (tx *MemTx) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	members repository.MemberRepository,
) error) error {
	userSnap := tx.Users.snapshot()
	companySnap := tx.Companies.snapshot()
	memberSnap := tx.Members.snapshot()

	var members repository.MemberRepository = tx.Members
	if tx.FailMemberUpsert != nil {
		members = &failingMemberRepo{MemberRepository: tx.Members, err: tx.FailMemberUpsert}
	}

	if err := fn(tx.Users, tx.Companies, members); err != nil {
		tx.Users.restore(userSnap)
		tx.Companies.restore(companySnap)
		tx.Members.restore(memberSnap)
		return err
	}
	return nil
}

// RunInvitation ejecuta fn con semántica todo-o-nada sobre invitaciones y miembros.
func (tx *MemTx) RunInvitation(ctx context.Context, fn func(
	invitations repository.InvitationRepository,
	members repository.MemberRepository,
) error) error {
	invitationSnap := tx.Invitations.snapshot()
	memberSnap := tx.Members.snapshot()

	var members repository.MemberRepository = tx.Members
	if tx.FailMemberUpsert != nil {
		members = &failingMemberRepo{MemberRepository: tx.Members, err: tx.FailMemberUpsert}
	}

	if err := fn(tx.Invitations, members); err != nil {
		tx.Invitations.restore(invitationSnap)
		tx.Members.restore(memberSnap)
		return err
	}
	return nil
}
