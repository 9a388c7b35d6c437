// Package dataset is a key-value string store keyed by dataset name, kept in a SQL table.
package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/metadia/internal/database"
)

var ErrNotFound = errors.New("dataset not found")

type Store struct {
	db     *sql.DB
	driver string
}

func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// Get returns the payload stored under name.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	var payload string

	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT payload FROM datasets WHERE name = ?`), name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("getting dataset %s: %w", name, err)
	}

	return payload, nil
}

// Put replaces the payload stored under name.
func (s *Store) Put(ctx context.Context, name, payload string) error {
	query := `
		INSERT INTO datasets (name, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.db.ExecContext(ctx, s.rebind(query), name, payload); err != nil {
		return fmt.Errorf("putting dataset %s: %w", name, err)
	}

	return nil
}

// Names lists the stored datasets.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM datasets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning dataset name: %w", err)
		}

		names = append(names, name)
	}

	return names, rows.Err()
}

// rebind turns ? placeholders into $n for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.driver != database.DriverPostgres {
		return query
	}

	var b strings.Builder

	n := 0

	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}

		n++
		b.WriteString("$" + strconv.Itoa(n))
	}

	return b.String()
}
