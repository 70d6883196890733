package history_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/no0bAuntor/vocab-app/internal/history"
	"github.com/no0bAuntor/vocab-app/internal/models"
)

func attempt(phase, score int, completedAt time.Time) models.QuizAttempt {
	return models.QuizAttempt{
		Phase:          phase,
		Score:          score,
		QuestionsTotal: 50,
		Percentage:     score * 2,
		CompletedAt:    completedAt,
	}
}

func TestAppend_CapEvictsOldestFirst(t *testing.T) {
	now := time.Now()
	p := models.NewUserProgress("u1", now)

	for i := 0; i < 101; i++ {
		history.Append(p, attempt(1, i%51, now.Add(time.Duration(i)*time.Minute)))
	}

	require.Len(t, p.QuizHistory, 100, "appending the 101st attempt must evict down to 100")
	assert.Equal(t, 1%51, p.QuizHistory[0].Score, "the oldest entry is dropped first")
	assert.Equal(t, 100%51, p.QuizHistory[99].Score)
}

func TestAppend_UnderCapKeepsEverything(t *testing.T) {
	now := time.Now()
	p := models.NewUserProgress("u1", now)

	for i := 0; i < 5; i++ {
		history.Append(p, attempt(1, i, now))
	}

	assert.Len(t, p.QuizHistory, 5)
}

func TestPage_SortsNewestFirst(t *testing.T) {
	now := time.Now()
	attempts := []models.QuizAttempt{
		attempt(1, 10, now.Add(-2*time.Hour)),
		attempt(2, 20, now),
		attempt(3, 30, now.Add(-1*time.Hour)),
	}

	page := history.Page(attempts, 20, 1)

	require.Len(t, page.Items, 3)
	assert.Equal(t, 20, page.Items[0].Score)
	assert.Equal(t, 30, page.Items[1].Score)
	assert.Equal(t, 10, page.Items[2].Score)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasMore)
}

func TestPage_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	attempts := []models.QuizAttempt{
		attempt(1, 10, now.Add(-2*time.Hour)),
		attempt(2, 20, now),
	}

	_ = history.Page(attempts, 1, 1)

	assert.Equal(t, 10, attempts[0].Score, "paging must be a pure projection")
	assert.Equal(t, 20, attempts[1].Score)
}

func TestPage_Pagination(t *testing.T) {
	now := time.Now()
	var attempts []models.QuizAttempt
	for i := 0; i < 45; i++ {
		attempts = append(attempts, attempt(1, i, now.Add(time.Duration(i)*time.Minute)))
	}

	first := history.Page(attempts, 20, 1)
	assert.Len(t, first.Items, 20)
	assert.Equal(t, 45, first.TotalCount)
	assert.Equal(t, 3, first.TotalPages)
	assert.True(t, first.HasMore)
	assert.Equal(t, 44, first.Items[0].Score, "newest attempt leads the first page")

	last := history.Page(attempts, 20, 3)
	assert.Len(t, last.Items, 5)
	assert.False(t, last.HasMore)

	beyond := history.Page(attempts, 20, 9)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 45, beyond.TotalCount)
}

func TestPage_ClampsInvalidArguments(t *testing.T) {
	now := time.Now()
	attempts := []models.QuizAttempt{attempt(1, 10, now)}

	page := history.Page(attempts, 0, 0)

	assert.Equal(t, 1, page.CurrentPage)
	assert.Len(t, page.Items, 1)
}
