package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JonMunkholm/students/internal/csvio"
	"github.com/JonMunkholm/students/internal/student"
)

// DefaultTimeout bounds each Postgres operation when none is configured.
const DefaultTimeout = 10 * time.Second

// DB is the subset of *pgxpool.Pool used by Postgres.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// copyColumns is the column order used by COPY. position keeps the
// store's insertion order, which the table itself does not.
var copyColumns = []string{"position", "id", "name", "age", "major"}

// Postgres keeps a full copy of the store in one table.
type Postgres struct {
	db      DB
	table   pgx.Identifier
	timeout time.Duration
}

// NewPostgres returns a backend writing to table, which may be schema
// qualified ("school.students").
func NewPostgres(db DB, table string, timeout time.Duration) (*Postgres, error) {
	ident, err := parseTable(table)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Postgres{db: db, table: ident, timeout: timeout}, nil
}

func parseTable(table string) (pgx.Identifier, error) {
	parts := strings.Split(strings.TrimSpace(table), ".")
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("invalid table name %q", table)
		}
	}
	return pgx.Identifier(parts), nil
}

// EnsureSchema creates the table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if _, err := p.db.Exec(ctx, createTableSQL(p.table)); err != nil {
		return fmt.Errorf("create table %s: %w", p.table.Sanitize(), err)
	}
	return nil
}

func createTableSQL(table pgx.Identifier) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	position integer NOT NULL,
	id       text PRIMARY KEY,
	name     text NOT NULL,
	age      bigint NOT NULL,
	major    text NOT NULL
)`, table.Sanitize())
}

// Load reads every row ordered by position.
func (p *Postgres) Load(ctx context.Context) (csvio.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	rows, err := p.db.Query(ctx, fmt.Sprintf(
		"SELECT id, name, age, major FROM %s ORDER BY position", p.table.Sanitize()))
	if err != nil {
		return csvio.Result{}, fmt.Errorf("query %s: %w", p.table.Sanitize(), err)
	}

	students, err := pgx.CollectRows(rows, pgx.RowToStructByPos[student.Student])
	if err != nil {
		return csvio.Result{}, fmt.Errorf("scan %s: %w", p.table.Sanitize(), err)
	}
	return csvio.Result{Students: students}, nil
}

// Save replaces the table contents in a single transaction, so readers see
// either the previous copy or the new one.
func (p *Postgres) Save(ctx context.Context, students []student.Student) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op after commit

	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", p.table.Sanitize())); err != nil {
		return fmt.Errorf("clear %s: %w", p.table.Sanitize(), err)
	}

	copied, err := tx.CopyFrom(ctx, p.table, copyColumns, pgx.CopyFromSlice(len(students), copyRow(students)))
	if err != nil {
		return fmt.Errorf("copy into %s: %w", p.table.Sanitize(), err)
	}
	if copied != int64(len(students)) {
		return fmt.Errorf("copy into %s: wrote %d of %d rows", p.table.Sanitize(), copied, len(students))
	}

	if err := tx.Commit(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("commit timed out after %v: %w", p.timeout, err)
		}
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func copyRow(students []student.Student) func(int) ([]any, error) {
	return func(i int) ([]any, error) {
		s := students[i]
		return []any{int32(i), s.ID, s.Name, int64(s.Age), s.Major}, nil
	}
}

func (p *Postgres) String() string {
	return "postgres table " + p.table.Sanitize()
}
