package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStorage persists entries in the dispatch_audit table.
type PGStorage struct {
	pool *pgxpool.Pool
}

// NewPGStorage creates a Postgres-backed storage. The table is created by
// the goose migrations shipped with the server.
func NewPGStorage(pool *pgxpool.Pool) (*PGStorage, error) {
	if pool == nil {
		return nil, errors.New("audit: pg pool is required")
	}
	return &PGStorage{pool: pool}, nil
}

// Store implements Storage.
func (s *PGStorage) Store(ctx context.Context, e Entry) error {
	const query = `
		INSERT INTO dispatch_audit (
			id, kind, priority, target_user_id, target_room,
			push_attempted, push_delivered, push_error,
			email_attempted, email_delivered, email_error,
			webhook_attempted, webhook_delivered, webhook_error,
			delivered, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`

	_, err := s.pool.Exec(ctx, query,
		e.ID, e.Kind, e.Priority, nullable(e.TargetUserID), nullable(e.TargetRoom),
		e.Push.Attempted, e.Push.Delivered, nullable(e.Push.Error),
		e.Email.Attempted, e.Email.Delivered, nullable(e.Email.Error),
		e.Webhook.Attempted, e.Webhook.Delivered, nullable(e.Webhook.Error),
		e.Delivered, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("audit: insert entry %s: %w", e.ID, err)
	}
	return nil
}

// List implements Storage.
func (s *PGStorage) List(ctx context.Context, f Filter) ([]Entry, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.UserID != "" {
		conditions = append(conditions, "target_user_id = "+arg(f.UserID))
	}
	if f.Kind != "" {
		conditions = append(conditions, "kind = "+arg(f.Kind))
	}
	if f.DeliveredOnly {
		conditions = append(conditions, "delivered = TRUE")
	}
	if !f.Since.IsZero() {
		conditions = append(conditions, "created_at >= "+arg(f.Since))
	}

	query := `
		SELECT id, kind, priority,
			COALESCE(target_user_id, ''), COALESCE(target_room, ''),
			push_attempted, push_delivered, COALESCE(push_error, ''),
			email_attempted, email_delivered, COALESCE(email_error, ''),
			webhook_attempted, webhook_delivered, COALESCE(webhook_error, ''),
			delivered, created_at
		FROM dispatch_audit`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit: query entries: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		err := row.Scan(
			&e.ID, &e.Kind, &e.Priority, &e.TargetUserID, &e.TargetRoom,
			&e.Push.Attempted, &e.Push.Delivered, &e.Push.Error,
			&e.Email.Attempted, &e.Email.Delivered, &e.Email.Error,
			&e.Webhook.Attempted, &e.Webhook.Delivered, &e.Webhook.Error,
			&e.Delivered, &e.CreatedAt,
		)
		return e, err
	})
}

// nullable maps empty strings to NULL so partial indexes stay sparse.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
