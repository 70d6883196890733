package repository

import (
	"context"
	"errors"

	"github.com/no0bAuntor/vocab-app/internal/models"
)

// ErrVersionConflict is returned by Save when the record's version stamp no
// longer matches, meaning another writer got there first. Callers reload and
// reapply.
var ErrVersionConflict = errors.New("progress version conflict")

// ProgressRepository is the document-store boundary for user progress. The
// whole record is the unit of persistence: Get loads it, Save writes it back
// atomically with an optimistic version check.
type ProgressRepository interface {
	// Get returns the stored progress for a user, or nil when none exists.
	Get(ctx context.Context, userID string) (*models.UserProgress, error)
	// Create inserts a fresh progress document. It is a no-op returning
	// ErrVersionConflict when a record for the user already exists.
	Create(ctx context.Context, p *models.UserProgress) error
	// Save overwrites the document if and only if the in-memory version
	// matches the stored one, then bumps both.
	Save(ctx context.Context, p *models.UserProgress) error
}

// LeaderboardRepository reads the denormalized progression columns. Plain
// reads with no invariants; kept separate so the write path stays a pure
// document store.
type LeaderboardRepository interface {
	Top(ctx context.Context, limit, offset int) ([]models.LeaderboardEntry, error)
	CountUsers(ctx context.Context) (int, error)
}
