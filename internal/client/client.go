package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/no0bAuntor/vocab-app/internal/logger"
	"github.com/no0bAuntor/vocab-app/internal/models"
)

// SessionState mirrors the start-or-resume response.
type SessionState struct {
	Phase       int                 `json:"phase"`
	Session     *models.QuizSession `json:"session"`
	IsResuming  bool                `json:"is_resuming"`
	ResumePoint int                 `json:"resume_point"`
}

// CompletionResult mirrors the complete-quiz response.
type CompletionResult struct {
	Phase            int   `json:"phase"`
	FinalScore       int   `json:"final_score"`
	PreviousBest     int   `json:"previous_best"`
	UnlockedNewPhase int   `json:"unlocked_new_phase"`
	TotalXP          int   `json:"total_xp"`
	Level            int   `json:"level"`
	UnlockedPhases   []int `json:"unlocked_phases"`
	AlreadyCompleted bool  `json:"already_completed"`
}

// APIError is a typed failure decoded from an error response body.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", e.Code, e.Status, e.Message)
}

// ProgressAPI is the remote surface a quiz driver needs. Implemented by
// Client over HTTP; mocked in tests.
type ProgressAPI interface {
	StartOrResumeSession(ctx context.Context, phase int) (*SessionState, error)
	SaveAnswer(ctx context.Context, phase int, answer models.Answer) (*models.QuizSession, error)
	CompleteQuiz(ctx context.Context, phase, finalScore, questionsTotal int) (*CompletionResult, error)
	ResetSession(ctx context.Context, phase int) error
	Questions(ctx context.Context, phase int) ([]models.Question, error)
}

type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL, userID string) *Client {
	return &Client{
		baseURL:    baseURL,
		userID:     userID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("client"),
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	log := logger.FromContext(ctx).WithPrefix("client").WithFields(map[string]any{
		"method": method,
		"path":   path,
	})

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return err
	}
	req.Header.Set("X-User-ID", c.userID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("failed to decode response: %v", err)
		return err
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Code != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	} else {
		apiErr.Code = "HTTP_ERROR"
		apiErr.Message = string(raw)
	}
	return apiErr
}

func (c *Client) StartOrResumeSession(ctx context.Context, phase int) (*SessionState, error) {
	var out SessionState
	path := fmt.Sprintf("/api/quiz/%d/session", phase)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveAnswer(ctx context.Context, phase int, answer models.Answer) (*models.QuizSession, error) {
	var out struct {
		Session *models.QuizSession `json:"session"`
	}
	path := fmt.Sprintf("/api/quiz/%d/session/answers", phase)
	if err := c.do(ctx, http.MethodPost, path, answer, &out); err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (c *Client) CompleteQuiz(ctx context.Context, phase, finalScore, questionsTotal int) (*CompletionResult, error) {
	var out CompletionResult
	path := fmt.Sprintf("/api/quiz/%d/session/complete", phase)
	body := map[string]int{"finalScore": finalScore, "questionsTotal": questionsTotal}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResetSession(ctx context.Context, phase int) error {
	path := fmt.Sprintf("/api/quiz/%d/session/reset", phase)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) Questions(ctx context.Context, phase int) ([]models.Question, error) {
	var out struct {
		Questions []models.Question `json:"questions"`
	}
	path := fmt.Sprintf("/api/phases/%d/questions", phase)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}
