package store

import (
	"context"
	"embed"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/premiumhub/pkg/pg"
	"github.com/dmitrymomot/premiumhub/svc/membership"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates or updates the members table.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg pg.Config, log *slog.Logger) error {
	return pg.Migrate(ctx, pool, cfg, migrations, "migrations", log)
}

type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres stores members in the members table.
type Postgres struct {
	db pgxConn
}

// NewPostgres uses db, typically a *pgxpool.Pool.
func NewPostgres(db pgxConn) *Postgres {
	return &Postgres{db: db}
}

const (
	selectMember = `SELECT member_id, joined_at, expiry, last_payment_ref FROM members WHERE member_id = $1`
	selectAll    = `SELECT member_id, joined_at, expiry, last_payment_ref FROM members ORDER BY member_id`
	upsertMember = `
INSERT INTO members (member_id, joined_at, expiry, last_payment_ref)
VALUES ($1, $2, $3, $4)
ON CONFLICT (member_id) DO UPDATE
SET joined_at = EXCLUDED.joined_at,
    expiry = EXCLUDED.expiry,
    last_payment_ref = EXCLUDED.last_payment_ref`
)

func (s *Postgres) Get(ctx context.Context, memberID string) (*membership.Record, error) {
	rec, err := scanMember(s.db.QueryRow(ctx, selectMember, memberID))
	if pg.IsNotFoundError(err) {
		return nil, membership.ErrRecordNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	return &rec, nil
}

func (s *Postgres) Upsert(ctx context.Context, rec *membership.Record) error {
	if rec == nil || rec.MemberID == "" {
		return ErrInvalidRecord
	}
	if _, err := s.db.Exec(ctx, upsertMember, rec.MemberID, rec.JoinedAt.UTC(), rec.Expiry.Time(), rec.LastPaymentRef); err != nil {
		return errors.Join(ErrQuery, err)
	}
	return nil
}

// All streams rows without buffering the table.
func (s *Postgres) All(ctx context.Context, fn func(membership.Record) error) error {
	rows, err := s.db.Query(ctx, selectAll)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanMember(rows)
		if err != nil {
			return errors.Join(ErrQuery, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return errors.Join(ErrQuery, err)
	}
	return nil
}

func scanMember(row pgx.Row) (membership.Record, error) {
	var (
		rec    membership.Record
		expiry time.Time
	)
	if err := row.Scan(&rec.MemberID, &rec.JoinedAt, &expiry, &rec.LastPaymentRef); err != nil {
		return membership.Record{}, err
	}
	rec.JoinedAt = rec.JoinedAt.UTC()
	rec.Expiry = membership.DateOf(expiry)
	return rec, nil
}
