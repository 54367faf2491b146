package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/greenops/carbon-scheduler/pkg/models"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var postgresFS embed.FS

// PostgresStore implements Store interface using PostgreSQL
type PostgresStore struct {
	db  *sql.DB
	dsn string
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{
		db:  db,
		dsn: dsn,
	}

	// Run migrations
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// migrate runs database migrations
func (s *PostgresStore) migrate() error {
	schema, err := postgresFS.ReadFile("migrations/001_postgres_schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// SaveRun persists a run with its allocation records and final slot table
// in one transaction.
func (s *PostgresStore) SaveRun(ctx context.Context, run *models.Run, records []models.AllocationRecord, slots []models.SlotSnapshot) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO allocation_runs (
			id, strategy, dampening_k, jobs_submitted, jobs_allocated,
			jobs_rejected, total_carbon_kg, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		run.ID, run.Strategy, run.DampeningK, run.JobsSubmitted,
		run.JobsAllocated, run.JobsRejected, run.TotalCarbon, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for seq, rec := range records {
		recID := uuid.New().String()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO allocation_records (
				id, run_id, job_id, embodied_kg, operational_kg,
				total_kg, created_at, seq
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			recID, run.ID, rec.JobID, rec.EmbodiedCarbon,
			rec.OperationalCarbon, rec.TotalCarbon, rec.CreatedAt, seq,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record for job %s: %w", rec.JobID, err)
		}

		for i, use := range rec.Slots {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO slot_uses (record_id, hour, fraction, seq)
				VALUES ($1, $2, $3, $4)
			`, recID, use.Hour, use.Fraction, i)
			if err != nil {
				return fmt.Errorf("failed to insert slot use: %w", err)
			}
		}
	}

	for _, slot := range slots {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO slot_snapshots (run_id, hour, energy_mwh)
			VALUES ($1, $2, $3)
		`, run.ID, slot.Hour, slot.Energy)
		if err != nil {
			return fmt.Errorf("failed to insert slot snapshot: %w", err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run by ID
func (s *PostgresStore) GetRun(ctx context.Context, id string) (*models.Run, error) {
	var run models.Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, strategy, dampening_k, jobs_submitted, jobs_allocated,
			jobs_rejected, total_carbon_kg, created_at
		FROM allocation_runs
		WHERE id = $1
	`, id).Scan(
		&run.ID, &run.Strategy, &run.DampeningK, &run.JobsSubmitted,
		&run.JobsAllocated, &run.JobsRejected, &run.TotalCarbon, &run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns retrieves recent runs, newest first
func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]*models.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, strategy, dampening_k, jobs_submitted, jobs_allocated,
			jobs_rejected, total_carbon_kg, created_at
		FROM allocation_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		var run models.Run
		err := rows.Scan(
			&run.ID, &run.Strategy, &run.DampeningK, &run.JobsSubmitted,
			&run.JobsAllocated, &run.JobsRejected, &run.TotalCarbon, &run.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// GetRunRecords retrieves a run's allocation records in submission order
func (s *PostgresStore) GetRunRecords(ctx context.Context, runID string) ([]models.AllocationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, job_id, embodied_kg, operational_kg, total_kg, created_at
		FROM allocation_records
		WHERE run_id = $1
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AllocationRecord
	var recIDs []string
	for rows.Next() {
		var recID string
		var rec models.AllocationRecord
		err := rows.Scan(&recID, &rec.JobID, &rec.EmbodiedCarbon,
			&rec.OperationalCarbon, &rec.TotalCarbon, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		recIDs = append(recIDs, recID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, recID := range recIDs {
		uses, err := s.getSlotUses(ctx, recID)
		if err != nil {
			return nil, err
		}
		records[i].Slots = uses
	}

	return records, nil
}

func (s *PostgresStore) getSlotUses(ctx context.Context, recordID string) ([]models.SlotUse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hour, fraction
		FROM slot_uses
		WHERE record_id = $1
		ORDER BY seq
	`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uses []models.SlotUse
	for rows.Next() {
		var use models.SlotUse
		if err := rows.Scan(&use.Hour, &use.Fraction); err != nil {
			return nil, err
		}
		uses = append(uses, use)
	}
	return uses, rows.Err()
}

// GetRunSlots retrieves a run's final 24-slot energy table
func (s *PostgresStore) GetRunSlots(ctx context.Context, runID string) ([]models.SlotSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hour, energy_mwh
		FROM slot_snapshots
		WHERE run_id = $1
		ORDER BY hour
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.SlotSnapshot
	for rows.Next() {
		var slot models.SlotSnapshot
		if err := rows.Scan(&slot.Hour, &slot.Energy); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
