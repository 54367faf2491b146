package storage

import (
	"context"

	"github.com/greenops/carbon-scheduler/pkg/models"
)

// Store defines the interface for persistent storage of scheduling runs
type Store interface {
	SaveRun(ctx context.Context, run *models.Run, records []models.AllocationRecord, slots []models.SlotSnapshot) error
	GetRun(ctx context.Context, id string) (*models.Run, error)
	ListRuns(ctx context.Context, limit int) ([]*models.Run, error)

	GetRunRecords(ctx context.Context, runID string) ([]models.AllocationRecord, error)
	GetRunSlots(ctx context.Context, runID string) ([]models.SlotSnapshot, error)

	Ping(ctx context.Context) error
	Close() error
}

type Config struct {
	URL     string
	Timeout int
}
