package tenantstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/salonsuite/planguard/pkg/pg"
	"github.com/salonsuite/planguard/pkg/tenant"
)

var (
	ErrStoreFailure  = errors.New("tenant store query failed")
	ErrInvalidRecord = errors.New("tenant record rejected by the database")
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store reads and writes tenant records in Postgres.
type Store struct {
	db DBTX
}

var _ tenant.Provider = (*Store)(nil)

// New returns a Store over db.
func New(db DBTX) *Store {
	return &Store{db: db}
}

const getRecordQuery = `SELECT id, plan_id, unlimited, status FROM tenants WHERE id = $1`

// GetRecord implements tenant.Provider.
func (s *Store) GetRecord(ctx context.Context, id string) (*tenant.Record, error) {
	var (
		rec    tenant.Record
		status string
	)
	err := s.db.QueryRow(ctx, getRecordQuery, id).Scan(&rec.ID, &rec.PlanID, &rec.Unlimited, &status)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", tenant.ErrTenantNotFound, id)
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}
	rec.Status = tenant.Status(status)
	return &rec, nil
}

const upsertQuery = `
INSERT INTO tenants (id, plan_id, unlimited, status)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET plan_id = EXCLUDED.plan_id,
    unlimited = EXCLUDED.unlimited,
    status = EXCLUDED.status,
    updated_at = now()`

// Upsert creates or replaces the record. An empty status is stored as active.
func (s *Store) Upsert(ctx context.Context, rec tenant.Record) error {
	if !tenant.ValidID(rec.ID) {
		return fmt.Errorf("%w: %q", tenant.ErrInvalidIdentifier, rec.ID)
	}
	status := rec.Status
	if status == tenant.StatusUnknown {
		status = tenant.StatusActive
	}

	if _, err := s.db.Exec(ctx, upsertQuery, rec.ID, rec.PlanID, rec.Unlimited, string(status)); err != nil {
		if pg.IsCheckViolationError(err) {
			return errors.Join(ErrInvalidRecord, err)
		}
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

const deleteQuery = `DELETE FROM tenants WHERE id = $1`

// Delete removes the record. Deleting a missing tenant returns ErrTenantNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, deleteQuery, id)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", tenant.ErrTenantNotFound, id)
	}
	return nil
}
