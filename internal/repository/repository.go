package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/loadmatch/internal/models"
)

// Repository reads and updates the load board.
type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	FetchLoadsForGeocoding(ctx context.Context, limit int) ([]models.LoadTask, error)
	UpdateLoadCoordinates(ctx context.Context, loadID int, coord models.Coordinate) error
	IncrementFailureCount(ctx context.Context, loadID int, errMsg string) error
	FetchOpenLoads(ctx context.Context, limit int) ([]models.OpenLoad, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
