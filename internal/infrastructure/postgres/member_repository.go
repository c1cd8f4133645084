package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cuentas-api/internal/domain/entity"
	"github.com/jhoicas/cuentas-api/internal/domain/repository"
)

var _ repository.MemberRepository = (*MemberRepo)(nil)

// MemberRepo implementación del puerto MemberRepository sobre PostgreSQL.
type MemberRepo struct {
	db DB
}

// NewMemberRepository construye el adaptador de persistencia para membresías.
func NewMemberRepository(db DB) *MemberRepo {
	return &MemberRepo{db: db}
}

// Upsert inserta o actualiza la membresía sobre la constraint única
// (user_id, company_id), evitando filas duplicadas por par.
func (r *MemberRepo) Upsert(member *entity.CompanyMember) error {
	query := `
		INSERT INTO company_members (id, user_id, company_id, role, status, is_owner, joined_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, company_id) DO UPDATE SET
			role = EXCLUDED.role,
			status = EXCLUDED.status,
			is_owner = EXCLUDED.is_owner,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(context.Background(), query,
		member.ID, member.UserID, member.CompanyID, member.Role, member.Status,
		member.IsOwner, member.JoinedAt, member.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert member: %w", err)
	}
	return nil
}

// Get devuelve la membresía del par (user, company). nil, nil si no existe.
func (r *MemberRepo) Get(userID, companyID string) (*entity.CompanyMember, error) {
	query := `
		SELECT id, user_id, company_id, role, status, is_owner, joined_at, updated_at
		FROM company_members WHERE user_id = $1 AND company_id = $2`
	var m entity.CompanyMember
	err := r.db.QueryRow(context.Background(), query, userID, companyID).Scan(
		&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.Status, &m.IsOwner, &m.JoinedAt, &m.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}

// CompaniesForUser join empresa+membresía filtrado por membresías activas,
// ordenado por id de empresa para respuestas estables.
func (r *MemberRepo) CompaniesForUser(userID string) ([]*entity.CompanyMembership, error) {
	query := `
		SELECT ` + companyColumns + `, cm.role, cm.is_owner
		FROM companies
		JOIN company_members cm ON cm.company_id = companies.id
		WHERE cm.user_id = $1 AND cm.status = $2
		ORDER BY companies.id`
	rows, err := r.db.Query(context.Background(), query, userID, entity.MemberActive)
	if err != nil {
		return nil, fmt.Errorf("list companies for user: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyMembership
	for rows.Next() {
		var m entity.CompanyMembership
		targets := append(scanCompanyTargets(&m.Company), &m.Role, &m.IsOwner)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByCompany devuelve todas las membresías de una empresa.
func (r *MemberRepo) ListByCompany(companyID string) ([]*entity.CompanyMember, error) {
	query := `
		SELECT id, user_id, company_id, role, status, is_owner, joined_at, updated_at
		FROM company_members WHERE company_id = $1 ORDER BY joined_at`
	rows, err := r.db.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyMember
	for rows.Next() {
		var m entity.CompanyMember
		if err := rows.Scan(&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.Status, &m.IsOwner, &m.JoinedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete elimina la membresía del par (user, company).
func (r *MemberRepo) Delete(userID, companyID string) error {
	_, err := r.db.Exec(context.Background(),
		`DELETE FROM company_members WHERE user_id = $1 AND company_id = $2`, userID, companyID)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
