package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/cuentas-api/internal/application/auth"
	"github.com/jhoicas/cuentas-api/internal/application/usecase"
	"github.com/jhoicas/cuentas-api/internal/domain/repository"
)

// TxRunner satisface los runners de transacción de la capa de aplicación.
var _ auth.TxRunner = (*TxRunner)(nil)
var _ usecase.InvitationTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Si fn devuelve error no se persiste nada (all-or-nothing).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Cubre el registro compuesto usuario+empresa+membresía.
func (r *TxRunner) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	members repository.MemberRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewCompanyRepository(tx), NewMemberRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInvitation inicia una transacción con repos de invitaciones y membresías
// (aceptar una invitación marca el estado y crea la membresía atómicamente).
func (r *TxRunner) RunInvitation(ctx context.Context, fn func(
	invitations repository.InvitationRepository,
	members repository.MemberRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvitationRepository(tx), NewMemberRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
