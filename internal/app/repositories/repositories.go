package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repositories need. It is satisfied by
// *pgxpool.Pool, pgx.Tx and the pgxmock pool used in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repositories holds all the repository instances bound to one database handle
type Repositories struct {
	db DB

	UserRepository       *UserRepository
	ProfileRepository    *ProfileRepository
	RoleRepository       *RoleRepository
	AcademyRepository    *AcademyRepository
	MemberRepository     *MemberRepository
	InvitationRepository *InvitationRepository
}

// NewRepositories initializes all repositories on the given database handle
func NewRepositories(db DB) *Repositories {
	return &Repositories{
		db:                   db,
		UserRepository:       NewUserRepository(db),
		ProfileRepository:    NewProfileRepository(db),
		RoleRepository:       NewRoleRepository(db),
		AcademyRepository:    NewAcademyRepository(db),
		MemberRepository:     NewMemberRepository(db),
		InvitationRepository: NewInvitationRepository(db),
	}
}

// WithinTransaction runs fn with a Repositories instance bound to a single
// database transaction. The transaction commits when fn returns nil and rolls
// back otherwise, so multi-row mutations (membership plus counters, invitation
// plus membership) either apply together or not at all.
func (r *Repositories) WithinTransaction(ctx context.Context, fn func(ctx context.Context, txRepos *Repositories) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(ctx, NewRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
