package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"raceplanner/internal/database"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrInvalidValue  = errors.New("invalid value")
)

// Fields is a partial row keyed by column name, usually decoded from a request body.
type Fields map[string]any

// Clone returns a shallow copy of f.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Columns set by the database. They are accepted as lookup keys but dropped from write payloads.
var managedColumns = []string{"id", "created_at", "updated_at"}

// Table describes a table and the columns a client may write.
type Table struct {
	Name    string
	Columns []string
}

func (t Table) writable(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

func (t Table) known(column string) bool {
	return t.writable(column) || isManaged(column)
}

// lookupColumn resolves a lookup key, defaulting to id.
func (t Table) lookupColumn(key string) (string, error) {
	if key == "" {
		return "id", nil
	}
	if !t.known(key) {
		return "", fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, key)
	}
	return key, nil
}

// assignments returns the writable columns of fields in sorted order and their values.
func (t Table) assignments(fields Fields) ([]string, []any, error) {
	columns := make([]string, 0, len(fields))
	for column := range fields {
		if isManaged(column) {
			continue
		}
		if !t.writable(column) {
			return nil, nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, column)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	args := make([]any, 0, len(columns))
	for _, column := range columns {
		switch fields[column].(type) {
		case map[string]any, []any:
			return nil, nil, fmt.Errorf("%w: %s.%s must be a scalar", ErrInvalidValue, t.Name, column)
		}
		args = append(args, fields[column])
	}
	return columns, args, nil
}

func isManaged(column string) bool {
	for _, c := range managedColumns {
		if c == column {
			return true
		}
	}
	return false
}

func (t Table) quotedName() string {
	return pq.QuoteIdentifier(t.Name)
}

func insertRow(ctx context.Context, q database.Querier, t Table, fields Fields) (string, error) {
	columns, args, err := t.assignments(fields)
	if err != nil {
		return "", err
	}

	var query string
	if len(columns) == 0 {
		query = fmt.Sprintf(`INSERT INTO %s DEFAULT VALUES RETURNING id`, t.quotedName())
	} else {
		quoted := make([]string, len(columns))
		params := make([]string, len(columns))
		for i, c := range columns {
			quoted[i] = pq.QuoteIdentifier(c)
			params[i] = fmt.Sprintf("$%d", i+1)
		}
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING id`,
			t.quotedName(), strings.Join(quoted, ", "), strings.Join(params, ", "))
	}

	var id string
	if err := sqlx.GetContext(ctx, q, &id, query, args...); err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", t.Name, database.MapError(err))
	}
	return id, nil
}

func updateRow(ctx context.Context, q database.Querier, t Table, id string, fields Fields) (string, error) {
	columns, args, err := t.assignments(fields)
	if err != nil {
		return "", err
	}

	sets := make([]string, 0, len(columns)+1)
	for i, c := range columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(c), i+1))
	}
	sets = append(sets, `"updated_at" = NOW()`)
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d RETURNING id`,
		t.quotedName(), strings.Join(sets, ", "), len(args))

	var updated string
	if err := sqlx.GetContext(ctx, q, &updated, query, args...); err != nil {
		return "", fmt.Errorf("failed to update %s %s: %w", t.Name, id, database.MapError(err))
	}
	return updated, nil
}

// splitID removes id from fields and returns it. A missing, null or empty id yields "".
func splitID(fields Fields) (string, Fields, error) {
	payload := fields.Clone()
	raw, ok := payload["id"]
	delete(payload, "id")
	if !ok || raw == nil {
		return "", payload, nil
	}

	id, ok := raw.(string)
	if !ok {
		return "", nil, fmt.Errorf("%w: id must be a string", ErrInvalidValue)
	}
	return id, payload, nil
}

// TableRepository implements the CRUD operations shared by every table.
type TableRepository[T any] struct {
	db    *sqlx.DB
	table Table
}

func NewTableRepository[T any](db *sqlx.DB, table Table) *TableRepository[T] {
	return &TableRepository[T]{db: db, table: table}
}

func (r *TableRepository[T]) All(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)

	query := fmt.Sprintf(`SELECT * FROM %s`, r.table.quotedName())
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table.Name, database.MapError(err))
	}

	return rows, nil
}

// FindBy returns the first row whose key column equals value, or nil when there is none.
func (r *TableRepository[T]) FindBy(ctx context.Context, value any, key string) (*T, error) {
	column, err := r.table.lookupColumn(key)
	if err != nil {
		return nil, err
	}

	var row T
	query := fmt.Sprintf(`SELECT * FROM %s WHERE %s = $1 LIMIT 1`, r.table.quotedName(), pq.QuoteIdentifier(column))
	if err := r.db.GetContext(ctx, &row, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s by %s: %w", r.table.Name, column, database.MapError(err))
	}

	return &row, nil
}

func (r *TableRepository[T]) FindAll(ctx context.Context, value any, key string) ([]T, error) {
	column, err := r.table.lookupColumn(key)
	if err != nil {
		return nil, err
	}

	rows := make([]T, 0)
	query := fmt.Sprintf(`SELECT * FROM %s WHERE %s = $1`, r.table.quotedName(), pq.QuoteIdentifier(column))
	if err := r.db.SelectContext(ctx, &rows, query, value); err != nil {
		return nil, fmt.Errorf("failed to list %s by %s: %w", r.table.Name, column, database.MapError(err))
	}

	return rows, nil
}

func (r *TableRepository[T]) Create(ctx context.Context, fields Fields) (string, error) {
	return insertRow(ctx, r.db, r.table, fields)
}

func (r *TableRepository[T]) Update(ctx context.Context, id string, fields Fields) (string, error) {
	return updateRow(ctx, r.db, r.table, id, fields)
}

// Upsert updates the row named by fields["id"], or creates one when the id is absent or empty.
func (r *TableRepository[T]) Upsert(ctx context.Context, fields Fields) (string, error) {
	id, payload, err := splitID(fields)
	if err != nil {
		return "", err
	}

	if id == "" {
		return r.Create(ctx, payload)
	}
	return r.Update(ctx, id, payload)
}

// Remove deletes a row by id. Removing a missing row is not an error.
func (r *TableRepository[T]) Remove(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table.quotedName())
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", r.table.Name, id, database.MapError(err))
	}
	return nil
}
