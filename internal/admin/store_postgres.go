package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"wastebot/pkg/platform/sentinel"
)

// PostgresStore persists admins in PostgreSQL. This store is pure I/O; all
// domain logic (hashing, partial updates) belongs in the service.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const uniqueViolation = "23505"

func (s *PostgresStore) Create(ctx context.Context, a Admin) error {
	query := `
		INSERT INTO admins (id, name, email, password_hash)
		VALUES ($1, $2, lower($3), $4)
	`
	_, err := s.db.ExecContext(ctx, query, a.ID, a.Name, a.Email, a.PasswordHash)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (Admin, error) {
	query := `
		SELECT id, name, email, password_hash
		FROM admins
		WHERE id = $1
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (Admin, error) {
	query := `
		SELECT id, name, email, password_hash
		FROM admins
		WHERE email = lower($1)
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, email))
}

func (s *PostgresStore) Update(ctx context.Context, a Admin) error {
	query := `
		UPDATE admins
		SET name = $2, password_hash = $3
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, a.ID, a.Name, a.PasswordHash)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Admin, error) {
	query := `
		SELECT id, name, email, password_hash
		FROM admins
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var out []Admin
	for rows.Next() {
		var a Admin
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) scanOne(row *sql.Row) (Admin, error) {
	var a Admin
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return Admin{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Admin{}, fmt.Errorf("scan admin: %w", err)
	}
	return a, nil
}
