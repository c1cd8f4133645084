package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentas-api/internal/application/dto"
	"github.com/jhoicas/cuentas-api/internal/domain"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
)

// seedInvitation siembra una empresa con un admin-owner y deja una invitación
// pendiente para el email dado. Devuelve el token.
func (f *fixture) seedInvitation(t *testing.T, email, role string) (companyID, token string) {
	t.Helper()
	admin := f.seedUser("admin@example.com")
	c := f.seedCompany("Acme", "acme")
	f.seedMember(admin.ID, c.ID, entity.RoleAdmin, entity.MemberActive, true)

	out, err := f.invitationUC.Invite(admin.ID, c.ID, dto.CreateInvitationRequest{Email: email, Role: role})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token, "la respuesta de creación debe incluir el token")
	return c.ID, out.Token
}

// ─────────────────────────────────────────────────────────────────────────────
// Invite
// ─────────────────────────────────────────────────────────────────────────────

func TestInvite_CreaInvitacionPendienteConVencimiento(t *testing.T) {
	f := newFixture()
	companyID, token := f.seedInvitation(t, "bea@example.com", entity.RoleAccountant)

	inv, err := f.invitations.GetByToken(token)
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, companyID, inv.CompanyID)
	assert.Equal(t, entity.InvitationPending, inv.Status)
	assert.Equal(t, entity.RoleAccountant, inv.Role)
	assert.True(t, inv.ExpiresAt.After(time.Now().Add(6*24*time.Hour)), "la ventana por defecto es de 7 días")
}

func TestInvite_SoloAdminPuedeInvitar(t *testing.T) {
	f := newFixture()
	viewer := f.seedUser("vista@example.com")
	c := f.seedCompany("Acme", "acme")
	f.seedMember(viewer.ID, c.ID, entity.RoleViewer, entity.MemberActive, false)

	_, err := f.invitationUC.Invite(viewer.ID, c.ID, dto.CreateInvitationRequest{
		Email: "bea@example.com", Role: entity.RoleViewer,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInvite_RolInvalidoFalla(t *testing.T) {
	f := newFixture()
	admin := f.seedUser("admin@example.com")
	c := f.seedCompany("Acme", "acme")
	f.seedMember(admin.ID, c.ID, entity.RoleAdmin, entity.MemberActive, true)

	_, err := f.invitationUC.Invite(admin.ID, c.ID, dto.CreateInvitationRequest{
		Email: "bea@example.com", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvite_TokensSonUnicosYLargos(t *testing.T) {
	f := newFixture()
	admin := f.seedUser("admin@example.com")
	c := f.seedCompany("Acme", "acme")
	f.seedMember(admin.ID, c.ID, entity.RoleAdmin, entity.MemberActive, true)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		out, err := f.invitationUC.Invite(admin.ID, c.ID, dto.CreateInvitationRequest{
			Email: "bea@example.com", Role: entity.RoleViewer,
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(out.Token), 40, "32 bytes en base64url")
		assert.False(t, seen[out.Token], "los tokens no deben repetirse")
		seen[out.Token] = true
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Accept
// ─────────────────────────────────────────────────────────────────────────────

func TestAccept_CreaMembresiaConElRolPropuesto(t *testing.T) {
	f := newFixture()
	companyID, token := f.seedInvitation(t, "bea@example.com", entity.RoleAccountant)
	bea := f.seedUser("bea@example.com")

	out, err := f.invitationUC.Accept(context.Background(), bea.ID, token)
	require.NoError(t, err)
	assert.Equal(t, companyID, out.CompanyID)
	assert.Equal(t, entity.RoleAccountant, out.Role)
	assert.Equal(t, entity.MemberActive, out.Status)
	assert.False(t, out.IsOwner, "aceptar una invitación nunca otorga ownership")

	// La invitación queda aceptada con timestamp.
	inv, err := f.invitations.GetByToken(token)
	require.NoError(t, err)
	assert.Equal(t, entity.InvitationAccepted, inv.Status)
	assert.NotNil(t, inv.AcceptedAt)
}

func TestAccept_EmailDistintoEsMismatch(t *testing.T) {
	f := newFixture()
	_, token := f.seedInvitation(t, "bea@example.com", entity.RoleViewer)
	otra := f.seedUser("otra@example.com")

	_, err := f.invitationUC.Accept(context.Background(), otra.ID, token)
	assert.ErrorIs(t, err, domain.ErrInvitationMismatch)

	inv, err := f.invitations.GetByToken(token)
	require.NoError(t, err)
	assert.Equal(t, entity.InvitationPending, inv.Status, "un intento ajeno no consume la invitación")
}

func TestAccept_VencidaSeMarcaExpiredYFalla(t *testing.T) {
	f := newFixture()
	_, token := f.seedInvitation(t, "bea@example.com", entity.RoleViewer)
	bea := f.seedUser("bea@example.com")

	// Forzar el vencimiento hacia el pasado.
	inv, err := f.invitations.GetByToken(token)
	require.NoError(t, err)
	inv.ExpiresAt = time.Now().Add(-time.Hour)
	require.NoError(t, f.invitations.Update(inv))

	_, err = f.invitationUC.Accept(context.Background(), bea.ID, token)
	assert.ErrorIs(t, err, domain.ErrInvitationExpired)

	inv, err = f.invitations.GetByToken(token)
	require.NoError(t, err)
	assert.Equal(t, entity.InvitationExpired, inv.Status, "el vencimiento se persiste de forma perezosa")
}

func TestAccept_YaResueltaFalla(t *testing.T) {
	f := newFixture()
	_, token := f.seedInvitation(t, "bea@example.com", entity.RoleViewer)
	bea := f.seedUser("bea@example.com")

	_, err := f.invitationUC.Accept(context.Background(), bea.ID, token)
	require.NoError(t, err)

	_, err = f.invitationUC.Accept(context.Background(), bea.ID, token)
	assert.ErrorIs(t, err, domain.ErrInvitationNotPending, "una invitación se consume exactamente una vez")
}

func TestAccept_TokenDesconocidoEsNotFound(t *testing.T) {
	f := newFixture()
	bea := f.seedUser("bea@example.com")

	_, err := f.invitationUC.Accept(context.Background(), bea.ID, "token-inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccept_ReactivaMembresiaExistente(t *testing.T) {
	f := newFixture()
	companyID, token := f.seedInvitation(t, "bea@example.com", entity.RoleManager)
	bea := f.seedUser("bea@example.com")
	// Membresía previa desactivada: aceptar debe reactivarla con el rol propuesto.
	f.seedMember(bea.ID, companyID, entity.RoleViewer, entity.MemberInactive, false)

	_, err := f.invitationUC.Accept(context.Background(), bea.ID, token)
	require.NoError(t, err)

	member, err := f.memberUC.CheckAccess(bea.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, member.Role)
	assert.Equal(t, entity.MemberActive, member.Status)
}

func TestAccept_FalloEnMembresiaRevierteLaInvitacion(t *testing.T) {
	f := newFixture()
	_, token := f.seedInvitation(t, "bea@example.com", entity.RoleViewer)
	bea := f.seedUser("bea@example.com")
	f.tx.FailMemberUpsert = errors.New("fallo inyectado")

	_, err := f.invitationUC.Accept(context.Background(), bea.ID, token)
	require.Error(t, err)

	inv, err := f.invitations.GetByToken(token)
	require.NoError(t, err)
	assert.Equal(t, entity.InvitationPending, inv.Status,
		"si la membresía no se pudo crear, la invitación sigue pendiente")
}

// ─────────────────────────────────────────────────────────────────────────────
// Reject / ListByCompany
// ─────────────────────────────────────────────────────────────────────────────

func TestReject_MarcaRechazadaSinCrearMembresia(t *testing.T) {
	f := newFixture()
	companyID, token := f.seedInvitation(t, "bea@example.com", entity.RoleViewer)
	bea := f.seedUser("bea@example.com")

	require.NoError(t, f.invitationUC.Reject(bea.ID, token))

	inv, err := f.invitations.GetByToken(token)
	require.NoError(t, err)
	assert.Equal(t, entity.InvitationRejected, inv.Status)

	_, err = f.memberUC.CheckAccess(bea.ID, companyID)
	assert.ErrorIs(t, err, domain.ErrNoAccess)
}

func TestListByCompany_NoExponeTokens(t *testing.T) {
	f := newFixture()
	companyID, _ := f.seedInvitation(t, "bea@example.com", entity.RoleViewer)
	admin, err := f.users.GetByEmail("admin@example.com")
	require.NoError(t, err)

	out, err := f.invitationUC.ListByCompany(admin.ID, companyID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Token, "el token solo viaja en la respuesta de creación")
	assert.Equal(t, "bea@example.com", out[0].Email)
}
