package progression

import (
	"fmt"
	"time"

	"github.com/no0bAuntor/vocab-app/internal/models"
)

const (
	MinPhase = 1
	MaxPhase = 5

	// UnlockThreshold is the absolute score required on phase p to unlock
	// phase p+1. It is 90% of a standard 50-question phase and is applied
	// as the same absolute value to every phase regardless of its question
	// count. That is deliberate policy, not derived from questionsTotal.
	UnlockThreshold = 45

	// XPPerLevel controls level derivation: level = totalXP/XPPerLevel + 1.
	XPPerLevel = 100

	// HistoryCap bounds the quiz history; oldest attempts are evicted first.
	HistoryCap = 100

	// DefaultQuestionsTotal is assumed when the caller does not say how many
	// questions a phase has.
	DefaultQuestionsTotal = 50
)

// ValidPhase reports whether phase is within [MinPhase, MaxPhase].
func ValidPhase(phase int) bool {
	return phase >= MinPhase && phase <= MaxPhase
}

// LevelForXP derives the level from cumulative XP.
func LevelForXP(xp int) int {
	return xp/XPPerLevel + 1
}

// ApplyPhaseResult folds one completed phase result into the progress record:
// best score, unlock decision, XP and level. Every completion adds its raw
// score to XP, so repeated high scores keep accruing. The best score per
// phase never decreases.
//
// The returned phase is the newly unlocked one, or 0 when nothing unlocked.
// Inputs are pre-validated by the service boundary; an out-of-range phase
// here is a programmer error.
func ApplyPhaseResult(p *models.UserProgress, phase, score, questionsTotal int, now time.Time) int {
	if !ValidPhase(phase) {
		panic(fmt.Sprintf("progression: phase %d out of range", phase))
	}

	if p.PhaseScores == nil {
		p.PhaseScores = map[int]int{}
	}
	if score > p.PhaseScores[phase] {
		p.PhaseScores[phase] = score
	}

	unlocked := 0
	if score >= UnlockThreshold && phase < MaxPhase {
		next := phase + 1
		if !p.IsPhaseUnlocked(next) {
			p.UnlockedPhases = append(p.UnlockedPhases, next)
			unlocked = next
		}
	}

	p.TotalXP += score
	p.Level = LevelForXP(p.TotalXP)
	p.LastQuizDate = &now

	return unlocked
}

// Percentage computes the rounded percentage for a quiz attempt.
func Percentage(score, questionsTotal int) int {
	if questionsTotal <= 0 {
		return 0
	}
	return int(float64(score)/float64(questionsTotal)*100 + 0.5)
}
