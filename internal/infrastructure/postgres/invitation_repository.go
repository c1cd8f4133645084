package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cuentas-api/internal/domain"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
	"github.com/jhoicas/cuentas-api/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

const invitationColumns = `id, company_id, invited_by_user_id, email, role, token,
	status, created_at, expires_at, accepted_at`

// InvitationRepo implementación del puerto InvitationRepository sobre PostgreSQL.
type InvitationRepo struct {
	db DB
}

// NewInvitationRepository construye el adaptador de persistencia para invitaciones.
func NewInvitationRepository(db DB) *InvitationRepo {
	return &InvitationRepo{db: db}
}

// Create persiste una nueva invitación. Token duplicado traduce a domain.ErrDuplicate.
func (r *InvitationRepo) Create(inv *entity.Invitation) error {
	query := `
		INSERT INTO invitations (` + invitationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(context.Background(), query,
		inv.ID, inv.CompanyID, inv.InvitedByUserID, inv.Email, inv.Role, inv.Token,
		inv.Status, inv.CreatedAt, inv.ExpiresAt, inv.AcceptedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// GetByToken busca una invitación por su token único. nil, nil si no existe.
func (r *InvitationRepo) GetByToken(token string) (*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE token = $1`
	var inv entity.Invitation
	err := r.db.QueryRow(context.Background(), query, token).Scan(
		&inv.ID, &inv.CompanyID, &inv.InvitedByUserID, &inv.Email, &inv.Role, &inv.Token,
		&inv.Status, &inv.CreatedAt, &inv.ExpiresAt, &inv.AcceptedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return &inv, nil
}

// Update persiste transiciones de estado de la invitación.
func (r *InvitationRepo) Update(inv *entity.Invitation) error {
	query := `UPDATE invitations SET status = $2, accepted_at = $3 WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query, inv.ID, inv.Status, inv.AcceptedAt)
	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
	}
	return nil
}

// ListByCompany devuelve las invitaciones de una empresa, más recientes primero.
func (r *InvitationRepo) ListByCompany(companyID string) ([]*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE company_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invitation
	for rows.Next() {
		var inv entity.Invitation
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.InvitedByUserID, &inv.Email, &inv.Role,
			&inv.Token, &inv.Status, &inv.CreatedAt, &inv.ExpiresAt, &inv.AcceptedAt); err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
