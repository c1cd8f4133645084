package usecase_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cuentas-api/internal/application/usecase"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
	"github.com/jhoicas/cuentas-api/internal/testutil"
)

// fixture arma el grafo completo de casos de uso sobre repos en memoria.
type fixture struct {
	users       *testutil.MemUserRepo
	companies   *testutil.MemCompanyRepo
	members     *testutil.MemMemberRepo
	invitations *testutil.MemInvitationRepo
	tx          *testutil.MemTx

	memberUC     *usecase.MemberUseCase
	companyUC    *usecase.CompanyUseCase
	invitationUC *usecase.InvitationUseCase
}

func newFixture() *fixture {
	users := testutil.NewMemUserRepo()
	companies := testutil.NewMemCompanyRepo()
	members := testutil.NewMemMemberRepo(companies)
	invitations := testutil.NewMemInvitationRepo()
	tx := &testutil.MemTx{Users: users, Companies: companies, Members: members, Invitations: invitations}

	memberUC := usecase.NewMemberUseCase(members, users)
	return &fixture{
		users:        users,
		companies:    companies,
		members:      members,
		invitations:  invitations,
		tx:           tx,
		memberUC:     memberUC,
		companyUC:    usecase.NewCompanyUseCase(companies, users, members, memberUC),
		invitationUC: usecase.NewInvitationUseCase(invitations, users, memberUC, tx),
	}
}

// seedUser agrega un usuario activo.
func (f *fixture) seedUser(email string) *entity.User {
	now := time.Now()
	u := &entity.User{
		ID:        uuid.New().String(),
		Email:     email,
		FullName:  "Usuario " + email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.users.Create(u); err != nil {
		panic(err)
	}
	return u
}

// seedCompany agrega una empresa activa con slug ya derivado.
func (f *fixture) seedCompany(displayName, slug string) *entity.Company {
	now := time.Now()
	c := &entity.Company{
		ID:                         uuid.New().String(),
		DisplayName:                displayName,
		LegalName:                  displayName,
		Slug:                       slug,
		BusinessRegistrationNumber: "201900000000",
		BillingSameAsMailing:       true,
		IsActive:                   true,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
	if err := f.companies.Create(c); err != nil {
		panic(err)
	}
	return c
}

// seedMember agrega una membresía con el rol y estado dados.
func (f *fixture) seedMember(userID, companyID, role, status string, isOwner bool) *entity.CompanyMember {
	now := time.Now()
	m := &entity.CompanyMember{
		ID:        uuid.New().String(),
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
		Status:    status,
		IsOwner:   isOwner,
		JoinedAt:  now,
		UpdatedAt: now,
	}
	if err := f.members.Upsert(m); err != nil {
		panic(err)
	}
	return m
}
