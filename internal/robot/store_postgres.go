package robot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wastebot/pkg/platform/sentinel"
)

// PostgresStore persists robots in PostgreSQL. Pure I/O; state-machine rules
// live in the service.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const robotColumns = "id, mac_address, active, region, address, description, model, admin_id"

func (s *PostgresStore) Create(ctx context.Context, r Robot) error {
	query := `
		INSERT INTO robots (id, mac_address, active, region, address, description, model, admin_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.MACAddress, r.Active, r.Region, r.Address, r.Description, r.Model, r.AdminID)
	if err != nil {
		return fmt.Errorf("insert robot: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (Robot, error) {
	query := `SELECT ` + robotColumns + ` FROM robots WHERE id = $1`
	r, err := scanRobot(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Robot{}, sentinel.ErrNotFound
		}
		return Robot{}, fmt.Errorf("find robot: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Robot, error) {
	query := `SELECT ` + robotColumns + ` FROM robots`
	return s.queryRobots(ctx, query)
}

func (s *PostgresStore) ListByAdmin(ctx context.Context, adminID string) ([]Robot, error) {
	query := `SELECT ` + robotColumns + ` FROM robots WHERE admin_id = $1`
	return s.queryRobots(ctx, query, adminID)
}

func (s *PostgresStore) Update(ctx context.Context, r Robot) error {
	query := `
		UPDATE robots
		SET mac_address = $2, active = $3, region = $4, address = $5,
		    description = $6, model = $7, admin_id = $8
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		r.ID, r.MACAddress, r.Active, r.Region, r.Address, r.Description, r.Model, r.AdminID)
	if err != nil {
		return fmt.Errorf("update robot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update robot: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM robots WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete robot: %w", err)
	}
	return nil
}

func (s *PostgresStore) queryRobots(ctx context.Context, query string, args ...any) ([]Robot, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query robots: %w", err)
	}
	defer rows.Close()

	var out []Robot
	for rows.Next() {
		var r Robot
		if err := rows.Scan(&r.ID, &r.MACAddress, &r.Active, &r.Region,
			&r.Address, &r.Description, &r.Model, &r.AdminID); err != nil {
			return nil, fmt.Errorf("scan robot: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRobot(row rowScanner) (Robot, error) {
	var r Robot
	err := row.Scan(&r.ID, &r.MACAddress, &r.Active, &r.Region,
		&r.Address, &r.Description, &r.Model, &r.AdminID)
	return r, err
}
