package progression_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/no0bAuntor/vocab-app/internal/models"
	"github.com/no0bAuntor/vocab-app/internal/progression"
)

func TestApplyPhaseResult_UnlocksNextPhaseAtThreshold(t *testing.T) {
	now := time.Now()

	for phase := 1; phase <= 4; phase++ {
		p := models.NewUserProgress("u1", now)
		for i := 1; i <= phase; i++ {
			if !p.IsPhaseUnlocked(i) {
				p.UnlockedPhases = append(p.UnlockedPhases, i)
			}
		}

		unlocked := progression.ApplyPhaseResult(p, phase, 45, 50, now)

		assert.Equal(t, phase+1, unlocked, "scoring 45 on phase %d should unlock phase %d", phase, phase+1)
		assert.True(t, p.IsPhaseUnlocked(phase+1))
	}
}

func TestApplyPhaseResult_BelowThresholdLeavesUnlocksUnchanged(t *testing.T) {
	now := time.Now()
	p := models.NewUserProgress("u1", now)

	unlocked := progression.ApplyPhaseResult(p, 1, 44, 50, now)

	assert.Zero(t, unlocked)
	assert.Equal(t, []int{1}, p.UnlockedPhases)
}

func TestApplyPhaseResult_LastPhaseNeverUnlocksBeyondMax(t *testing.T) {
	now := time.Now()
	p := models.NewUserProgress("u1", now)
	p.UnlockedPhases = []int{1, 2, 3, 4, 5}

	unlocked := progression.ApplyPhaseResult(p, 5, 50, 50, now)

	assert.Zero(t, unlocked)
	assert.Len(t, p.UnlockedPhases, 5)
}

func TestApplyPhaseResult_AlreadyUnlockedReturnsZero(t *testing.T) {
	now := time.Now()
	p := models.NewUserProgress("u1", now)
	p.UnlockedPhases = []int{1, 2}

	unlocked := progression.ApplyPhaseResult(p, 1, 50, 50, now)

	assert.Zero(t, unlocked, "re-earning the threshold must not report a new unlock")
	assert.Len(t, p.UnlockedPhases, 2)
}

func TestApplyPhaseResult_BestScoreNeverRegresses(t *testing.T) {
	now := time.Now()
	p := models.NewUserProgress("u1", now)
	p.PhaseScores[1] = 40

	progression.ApplyPhaseResult(p, 1, 30, 50, now)

	assert.Equal(t, 40, p.PhaseScores[1], "lower score must not regress the best")
	assert.Equal(t, 30, p.TotalXP, "XP still accrues for the lower score")
}

func TestApplyPhaseResult_XPAccruesEveryCompletion(t *testing.T) {
	now := time.Now()
	p := models.NewUserProgress("u1", now)

	progression.ApplyPhaseResult(p, 1, 45, 50, now)
	progression.ApplyPhaseResult(p, 1, 45, 50, now)
	progression.ApplyPhaseResult(p, 1, 45, 50, now)

	assert.Equal(t, 135, p.TotalXP, "repeated completions keep adding their raw score")
	assert.Equal(t, 2, p.Level)
	require.NotNil(t, p.LastQuizDate)
}

func TestApplyPhaseResult_FreshUserScenario(t *testing.T) {
	// Fresh user completes phase 1 with 45/50.
	now := time.Now()
	p := models.NewUserProgress("u1", now)

	unlocked := progression.ApplyPhaseResult(p, 1, 45, 50, now)

	assert.Equal(t, 2, unlocked)
	assert.ElementsMatch(t, []int{1, 2}, p.UnlockedPhases)
	assert.Equal(t, 45, p.TotalXP)
	assert.Equal(t, 45, p.PhaseScores[1])
}

func TestApplyPhaseResult_InvalidPhasePanics(t *testing.T) {
	now := time.Now()
	p := models.NewUserProgress("u1", now)

	assert.Panics(t, func() { progression.ApplyPhaseResult(p, 0, 10, 50, now) })
	assert.Panics(t, func() { progression.ApplyPhaseResult(p, 6, 10, 50, now) })
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{1000, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, progression.LevelForXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 90, progression.Percentage(45, 50))
	assert.Equal(t, 67, progression.Percentage(2, 3))
	assert.Equal(t, 0, progression.Percentage(10, 0), "zero total must not divide by zero")
}
