package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/no0bAuntor/vocab-app/internal/logger"
	"github.com/no0bAuntor/vocab-app/internal/models"
	"github.com/no0bAuntor/vocab-app/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository backed by SQLite.
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, userID string) (*models.UserProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("loading progress: user_id=%s", userID)

	var doc string
	var version int64
	err := r.db.QueryRowContext(ctx, `
SELECT doc, version
FROM user_progress
WHERE user_id = ?
`, userID).Scan(&doc, &version)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no progress record: user_id=%s", userID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, err
	}

	var p models.UserProgress
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		log.Error("corrupt progress document for user %s: %v", userID, err)
		return nil, fmt.Errorf("decode progress document: %w", err)
	}
	p.Version = version
	return &p, nil
}

func (r *progressRepository) Create(ctx context.Context, p *models.UserProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("creating progress record: user_id=%s", p.UserID)

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress document: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO user_progress (user_id, doc, total_xp, level, phases_unlocked, version)
VALUES (?, ?, ?, ?, ?, 1)
`, p.UserID, string(doc), p.TotalXP, p.Level, len(p.UnlockedPhases))
	if err != nil {
		log.Error("failed to create progress record: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Someone else created it between our Get and this insert.
		log.Debug("progress record already exists: user_id=%s", p.UserID)
		return repository.ErrVersionConflict
	}
	p.Version = 1
	return nil
}

func (r *progressRepository) Save(ctx context.Context, p *models.UserProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("saving progress: user_id=%s, version=%d", p.UserID, p.Version)

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress document: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE user_progress
SET doc = ?, total_xp = ?, level = ?, phases_unlocked = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
WHERE user_id = ? AND version = ?
`, string(doc), p.TotalXP, p.Level, len(p.UnlockedPhases), p.UserID, p.Version)
	if err != nil {
		log.Error("failed to save progress: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		log.Warn("stale progress write rejected: user_id=%s, version=%d", p.UserID, p.Version)
		return repository.ErrVersionConflict
	}
	p.Version++
	return nil
}
