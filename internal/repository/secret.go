package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/drivenpass/drivenpass-go/internal/model"
)

type scanner interface {
	Scan(dest ...any) error
}

// Schema maps one secret kind onto its table. Columns lists the stored
// fields other than id and created_at, in the order Values returns them and
// Scan reads them (Scan additionally reads id first and created_at last).
type Schema[S model.Secret] struct {
	Table     string
	KeyColumn string
	Columns   []string
	Values    func(s S) []any
	Scan      func(row scanner) (S, error)
	Stamp     func(s S, id int64, createdAt time.Time)
}

func (sc Schema[S]) selectList() string {
	return "id, " + strings.Join(sc.Columns, ", ") + ", created_at"
}

// SecretRepository handles persistence of one secret kind.
type SecretRepository[S model.Secret] struct {
	db     DBTX
	schema Schema[S]
	now    func() time.Time
}

// NewSecretRepository creates a repository for the kind described by schema.
func NewSecretRepository[S model.Secret](db DBTX, schema Schema[S]) *SecretRepository[S] {
	return &SecretRepository[S]{
		db:     db,
		schema: schema,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// Create inserts s and sets its generated ID and creation time.
func (r *SecretRepository[S]) Create(ctx context.Context, s S) error {
	cols := append(append([]string{}, r.schema.Columns...), "created_at")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		r.schema.Table, strings.Join(cols, ", "), placeholders)

	createdAt := r.now()
	args := append(r.schema.Values(s), createdAt)

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", r.schema.Table, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	r.schema.Stamp(s, id, createdAt)
	return nil
}

// GetByID retrieves a record by its ID regardless of owner.
func (r *SecretRepository[S]) GetByID(ctx context.Context, id int64) (S, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, r.schema.selectList(), r.schema.Table)
	return r.one(ctx, query, id)
}

// GetByNaturalKey retrieves the owner's record with the given label or title.
func (r *SecretRepository[S]) GetByNaturalKey(ctx context.Context, ownerID int64, key string) (S, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = ? AND %s = ?`,
		r.schema.selectList(), r.schema.Table, r.schema.KeyColumn)
	return r.one(ctx, query, ownerID, key)
}

// ListByOwner returns every record of the owner, oldest first.
func (r *SecretRepository[S]) ListByOwner(ctx context.Context, ownerID int64) ([]S, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = ? ORDER BY id`,
		r.schema.selectList(), r.schema.Table)

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.schema.Table, err)
	}
	defer rows.Close()

	items := []S{}
	for rows.Next() {
		s, err := r.schema.Scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// DeleteByID removes a record. A missing record yields ErrNotFound.
func (r *SecretRepository[S]) DeleteByID(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.schema.Table)

	result, err := conn(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.schema.Table, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllByOwner removes every record of the owner and reports how many
// were deleted.
func (r *SecretRepository[S]) DeleteAllByOwner(ctx context.Context, ownerID int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = ?`, r.schema.Table)

	result, err := conn(ctx, r.db).ExecContext(ctx, query, ownerID)
	if err != nil {
		return 0, fmt.Errorf("purge %s: %w", r.schema.Table, err)
	}
	return result.RowsAffected()
}

func (r *SecretRepository[S]) one(ctx context.Context, query string, args ...any) (S, error) {
	s, err := r.schema.Scan(conn(ctx, r.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		var zero S
		if errors.Is(err, sql.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return s, nil
}
