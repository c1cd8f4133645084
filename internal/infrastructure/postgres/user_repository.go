package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cuentas-api/internal/domain"
	"github.com/jhoicas/cuentas-api/internal/domain/entity"
	"github.com/jhoicas/cuentas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, full_name, password_hash, is_active, is_verified,
	default_company_id, current_company_id, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db DB
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
// Acepta el pool o una transacción (ver TxRunner).
func NewUserRepository(db DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un nuevo usuario. La constraint única de email traduce a
// domain.ErrEmailAlreadyExists.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, full_name, password_hash, is_active, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(context.Background(), query,
		user.ID, user.Email, user.FullName, user.PasswordHash,
		user.IsActive, user.IsVerified, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. nil, nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByEmail obtiene un usuario por email (igualdad exacta, case-sensitive).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(query, email)
}

// Update actualiza los campos mutables del usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, full_name = $3, password_hash = $4,
			is_active = $5, is_verified = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query,
		user.ID, user.Email, user.FullName, user.PasswordHash,
		user.IsActive, user.IsVerified, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SetDefaultCompany fija la empresa default asignada en el registro.
func (r *UserRepo) SetDefaultCompany(userID, companyID string) error {
	query := `UPDATE users SET default_company_id = $2, updated_at = now() WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query, userID, companyID)
	if err != nil {
		return fmt.Errorf("set default company: %w", err)
	}
	return nil
}

// SetCurrentCompany persiste la selección de empresa activa (nil = limpiar).
func (r *UserRepo) SetCurrentCompany(userID string, companyID *string) error {
	query := `UPDATE users SET current_company_id = $2, updated_at = now() WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query, userID, companyID)
	if err != nil {
		return fmt.Errorf("set current company: %w", err)
	}
	return nil
}

// Delete elimina un usuario por ID. Las membresías caen en cascada.
func (r *UserRepo) Delete(id string) error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.db.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.IsActive, &u.IsVerified,
		&u.DefaultCompanyID, &u.CurrentCompanyID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
