package wordbank

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/no0bAuntor/vocab-app/internal/logger"
	"github.com/no0bAuntor/vocab-app/internal/models"
	"github.com/no0bAuntor/vocab-app/internal/progression"
)

// Column layout of a phase sheet, one question per row:
// A=word, B=prompt, C..F=options, G=answer, H=explanation.
const (
	colWord = iota
	colPrompt
	colOptionFirst
	colOptionLast = colOptionFirst + 3
	colAnswer     = colOptionLast + 1
	colExplain    = colAnswer + 1
)

// Bank holds the vocabulary questions for each phase, loaded from an xlsx
// workbook with sheets Phase1..Phase5. Content is presentation material only;
// progression invariants never depend on it.
type Bank struct {
	mu     sync.RWMutex
	path   string
	phases map[int][]models.Question
	log    *logger.Logger
}

// New creates an empty Bank for the given workbook path. An empty path means
// no content is served and callers fall back to the default question count.
func New(path string) *Bank {
	return &Bank{
		path:   path,
		phases: map[int][]models.Question{},
		log:    logger.Default().WithPrefix("wordbank"),
	}
}

// Load (re)reads the workbook. Malformed rows are skipped with a warning so a
// half-edited workbook does not take the content offline. Safe to call
// concurrently with readers; the phase map is swapped atomically.
func (b *Bank) Load() error {
	if b.path == "" {
		return nil
	}

	f, err := excelize.OpenFile(b.path)
	if err != nil {
		return fmt.Errorf("open wordbank %s: %w", b.path, err)
	}
	defer f.Close()

	phases := map[int][]models.Question{}
	for phase := progression.MinPhase; phase <= progression.MaxPhase; phase++ {
		sheet := fmt.Sprintf("Phase%d", phase)
		rows, err := f.GetRows(sheet)
		if err != nil {
			b.log.Debug("sheet %s missing, skipping", sheet)
			continue
		}

		var questions []models.Question
		for i, row := range rows {
			if i == 0 {
				continue // header row
			}
			q, ok := parseRow(row, len(questions))
			if !ok {
				b.log.Warn("skipping malformed row %d on sheet %s", i+1, sheet)
				continue
			}
			questions = append(questions, q)
		}
		phases[phase] = questions
		b.log.Info("loaded %d questions for phase %d", len(questions), phase)
	}

	b.mu.Lock()
	b.phases = phases
	b.mu.Unlock()
	return nil
}

func parseRow(row []string, id int) (models.Question, bool) {
	if len(row) <= colAnswer {
		return models.Question{}, false
	}
	word := strings.TrimSpace(row[colWord])
	answer := strings.TrimSpace(row[colAnswer])
	if word == "" || answer == "" {
		return models.Question{}, false
	}

	var options []string
	for c := colOptionFirst; c <= colOptionLast && c < len(row); c++ {
		if opt := strings.TrimSpace(row[c]); opt != "" {
			options = append(options, opt)
		}
	}
	if len(options) < 2 {
		return models.Question{}, false
	}

	q := models.Question{
		ID:      id,
		Word:    word,
		Prompt:  strings.TrimSpace(row[colPrompt]),
		Options: options,
		Answer:  answer,
	}
	if len(row) > colExplain {
		q.Explanation = strings.TrimSpace(row[colExplain])
	}
	return q, true
}

// Questions returns the loaded questions for a phase.
func (b *Bank) Questions(phase int) []models.Question {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.phases[phase]
}

// Count returns the number of questions for a phase, 0 when no content is
// loaded.
func (b *Bank) Count(phase int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.phases[phase])
}
