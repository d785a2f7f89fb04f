package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/login-api/internal/database"
	"github.com/isdelr/login-api/internal/models"
)

// SQLStore keeps records in the users table of a SQLite or Postgres database.
type SQLStore struct {
	db *database.DB
}

// NewSQLStore creates a new SQLStore. The schema must already be migrated.
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx, s.rebind("SELECT name, email, password_hash FROM users WHERE email = ?"), email)
	err := row.Scan(&user.Name, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *SQLStore) Put(ctx context.Context, user models.User) error {
	res, err := s.db.ExecContext(ctx,
		s.rebind("INSERT INTO users(email, name, password_hash) VALUES(?, ?, ?) ON CONFLICT (email) DO NOTHING"),
		user.Email, user.Name, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// rebind rewrites ? placeholders into $n for Postgres.
func (s *SQLStore) rebind(query string) string {
	if s.db.Dialect != database.Postgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
