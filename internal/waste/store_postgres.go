package waste

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wastebot/pkg/platform/sentinel"
)

// PostgresStore persists waste records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const wasteColumns = "id, category, status, detected_at, region, latitude, longitude, confidence, robot_id"

func (s *PostgresStore) Create(ctx context.Context, rec Record) error {
	query := `
		INSERT INTO wastes (id, category, status, detected_at, region, latitude, longitude, confidence, robot_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.Category, rec.Status, rec.Timestamp, rec.Region,
		rec.Latitude, rec.Longitude, rec.Confidence, rec.RobotID)
	if err != nil {
		return fmt.Errorf("insert waste record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (Record, error) {
	query := `SELECT ` + wasteColumns + ` FROM wastes WHERE id = $1`
	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, sentinel.ErrNotFound
		}
		return Record{}, fmt.Errorf("find waste record: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	query := `SELECT ` + wasteColumns + ` FROM wastes`
	return s.queryRecords(ctx, query)
}

func (s *PostgresStore) ListByRobot(ctx context.Context, robotID string) ([]Record, error) {
	query := `SELECT ` + wasteColumns + ` FROM wastes WHERE robot_id = $1`
	return s.queryRecords(ctx, query, robotID)
}

func (s *PostgresStore) Update(ctx context.Context, rec Record) error {
	query := `
		UPDATE wastes
		SET category = $2, status = $3, detected_at = $4, region = $5,
		    latitude = $6, longitude = $7, confidence = $8, robot_id = $9
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.Category, rec.Status, rec.Timestamp, rec.Region,
		rec.Latitude, rec.Longitude, rec.Confidence, rec.RobotID)
	if err != nil {
		return fmt.Errorf("update waste record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update waste record: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM wastes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete waste record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Counts(ctx context.Context) (Stats, error) {
	query := `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'detected'),
			count(*) FILTER (WHERE status = 'collected')
		FROM wastes
	`
	var stats Stats
	err := s.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Detected, &stats.Collected)
	if err != nil {
		return Stats{}, fmt.Errorf("count waste records: %w", err)
	}
	return stats, nil
}

func (s *PostgresStore) queryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query waste records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Category, &rec.Status, &rec.Timestamp, &rec.Region,
			&rec.Latitude, &rec.Longitude, &rec.Confidence, &rec.RobotID); err != nil {
			return nil, fmt.Errorf("scan waste record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.Category, &rec.Status, &rec.Timestamp, &rec.Region,
		&rec.Latitude, &rec.Longitude, &rec.Confidence, &rec.RobotID)
	return rec, err
}
