// Package store persists named component payloads in a SQL table, one row
// per component type.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"dashboard/domain"

	"github.com/google/uuid"
)

// ErrMissingType is returned when an upsert names no component type.
var ErrMissingType = errors.New("component type is required")

// ComponentStore is the remote persistence of arbitrary component payloads.
type ComponentStore interface {
	ListComponents(ctx context.Context) ([]domain.Component, error)
	UpsertComponent(ctx context.Context, typ string, data json.RawMessage) (domain.Component, error)
	Close() error
}

//go:embed migrations
var migrations embed.FS

// SQLStore implements ComponentStore on database/sql. Queries use $n
// placeholders, which both sqlite and postgres accept.
type SQLStore struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

func New(db *sql.DB) *SQLStore {
	return &SQLStore{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Open connects to the database and brings its schema up to date.
func Open(driver, dsn string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// sqlite allows a single writer.
		db.SetMaxOpenConns(1)
	}
	if err := Migrate(db, driver); err != nil {
		db.Close()
		return nil, err
	}
	return New(db), nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

const selectColumns = `id, type, data, created_at, updated_at`

func (s *SQLStore) ListComponents(ctx context.Context) ([]domain.Component, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM components ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing components: %w", err)
	}
	defer rows.Close()

	components := []domain.Component{}
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing components: %w", err)
	}
	return components, nil
}

// UpsertComponent replaces the payload stored under typ, creating the row
// on first use. The unique index on type keeps a single row per type;
// concurrent writers for the same type end up last-write-wins.
func (s *SQLStore) UpsertComponent(ctx context.Context, typ string, data json.RawMessage) (domain.Component, error) {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return domain.Component{}, ErrMissingType
	}
	payload := "null"
	if len(data) > 0 {
		if !json.Valid(data) {
			return domain.Component{}, fmt.Errorf("component %q: data is not valid JSON", typ)
		}
		payload = string(data)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Component{}, fmt.Errorf("error in begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := s.now()
	_, err = tx.ExecContext(ctx, `INSERT INTO components (id, type, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (type) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.newID(), typ, payload, now, now)
	if err != nil {
		return domain.Component{}, fmt.Errorf("upserting component %q: %w", typ, err)
	}

	row := tx.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM components WHERE type = $1`, typ)
	c, err := scanComponent(row)
	if err != nil {
		return domain.Component{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Component{}, fmt.Errorf("error in commit transaction: %w", err)
	}
	return c, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComponent(row scanner) (domain.Component, error) {
	var (
		c    domain.Component
		data []byte
	)
	if err := row.Scan(&c.ID, &c.Type, &data, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Component{}, fmt.Errorf("scanning component: %w", err)
	}
	c.Data = json.RawMessage(data)
	return c, nil
}
