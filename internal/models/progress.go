package models

import "time"

// UserProgress is the per-user progression document. It is loaded and saved
// as a single unit; every write path goes through a read-modify-write of the
// whole record.
type UserProgress struct {
	UserID         string               `json:"user_id"`
	UnlockedPhases []int                `json:"unlocked_phases"` // always contains 1, never shrinks
	PhaseScores    map[int]int          `json:"phase_scores"`    // best score per phase, non-decreasing
	TotalXP        int                  `json:"total_xp"`
	Level          int                  `json:"level"`
	Achievements   []Achievement        `json:"achievements"` // unique by ID
	QuizHistory    []QuizAttempt        `json:"quiz_history"` // capped, oldest evicted first
	QuizSessions   map[int]*QuizSession `json:"quiz_sessions"`
	LastQuizDate   *time.Time           `json:"last_quiz_date"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`

	// Version is the persistence-side optimistic-concurrency stamp. It is
	// maintained by the repository and is not part of the document payload.
	Version int64 `json:"-"`
}

// NewUserProgress returns the default progress document for a fresh user:
// phase 1 unlocked, all scores zero, level 1.
func NewUserProgress(userID string, now time.Time) *UserProgress {
	return &UserProgress{
		UserID:         userID,
		UnlockedPhases: []int{1},
		PhaseScores:    map[int]int{},
		TotalXP:        0,
		Level:          1,
		Achievements:   []Achievement{},
		QuizHistory:    []QuizAttempt{},
		QuizSessions:   map[int]*QuizSession{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsPhaseUnlocked reports whether the given phase is in the unlocked set.
func (p *UserProgress) IsPhaseUnlocked(phase int) bool {
	for _, u := range p.UnlockedPhases {
		if u == phase {
			return true
		}
	}
	return false
}

// Session returns the live session for a phase, or nil when none exists.
func (p *UserProgress) Session(phase int) *QuizSession {
	if p.QuizSessions == nil {
		return nil
	}
	return p.QuizSessions[phase]
}

// SetSession stores the session for a phase, allocating the map when needed.
func (p *UserProgress) SetSession(phase int, s *QuizSession) {
	if p.QuizSessions == nil {
		p.QuizSessions = map[int]*QuizSession{}
	}
	p.QuizSessions[phase] = s
}

// HasAchievement reports whether an achievement id is already recorded.
func (p *UserProgress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}
