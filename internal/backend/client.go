// Package backend is the HTTP client for the task-planner REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/jalennorris/taskplan/internal/models"
)

const (
	// DefaultTimeout is the default timeout for backend calls
	DefaultTimeout = 15 * time.Second
	// UpdateEmailRetries is the fixed retry count for the idempotent
	// email update. Retries are immediate; the last error is surfaced.
	UpdateEmailRetries = 2
)

// ServerError is a non-2xx response from the backend. Message carries the
// server-provided message when one was present in the body.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Client talks to the planner backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a backend client. logger may be nil.
func New(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}
}

// LogGoal records a submitted goal. Callers treat this as fire-and-forget;
// it still returns the error so the call site can log it.
func (c *Client) LogGoal(ctx context.Context, userID int64, goalText string) error {
	body := models.GoalLog{
		User:      userID,
		GoalText:  goalText,
		CreatedAt: models.Timestamp(time.Now()),
	}
	return c.do(ctx, http.MethodPost, "/api/goals", body, nil)
}

// AllGoals fetches the global goal corpus.
func (c *Client) AllGoals(ctx context.Context) ([]models.Goal, error) {
	var goals []models.Goal
	if err := c.do(ctx, http.MethodGet, "/api/goals", nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// UserGoals fetches the goals recorded for one user.
func (c *Client) UserGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	var goals []models.Goal
	path := fmt.Sprintf("/api/goals/user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// CreateAccepted creates a single accepted task.
func (c *Client) CreateAccepted(ctx context.Context, task models.AcceptedTask) error {
	return c.do(ctx, http.MethodPost, "/api/accepted", task, nil)
}

// CreateAcceptedBatch creates 2-7 accepted tasks in one call.
func (c *Client) CreateAcceptedBatch(ctx context.Context, tasks []models.AcceptedTask) error {
	return c.do(ctx, http.MethodPost, "/api/accepted/batch/create", tasks, nil)
}

// SubmitFeedback submits a 1-5 star rating with optional free text.
func (c *Client) SubmitFeedback(ctx context.Context, fb models.Feedback) error {
	return c.do(ctx, http.MethodPost, "/api/feedback", fb, nil)
}

// UpdateEmail changes the user's email address. The PATCH is idempotent, so
// transient failures are retried a fixed number of times with no delay.
func (c *Client) UpdateEmail(ctx context.Context, userID int64, email string) error {
	path := fmt.Sprintf("/api/users/%d/email", userID)
	body := map[string]string{"email": email}

	operation := func() error {
		err := c.do(ctx, http.MethodPatch, path, body, nil)
		if err == nil {
			return nil
		}
		// Client-side rejections will not succeed on retry.
		var serverErr *ServerError
		if errors.As(err, &serverErr) && serverErr.StatusCode >= 400 && serverErr.StatusCode < 500 {
			return backoff.Permanent(err)
		}
		c.logger.Warn("update_email_retrying", zap.Error(err))
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(0), UpdateEmailRetries),
		ctx,
	)
	return backoff.Retry(operation, policy)
}

// do issues one request and decodes the response body into out when out is
// non-nil. Non-2xx responses become a *ServerError carrying the server's
// message when the body contains one.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(resp.Body),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

// serverMessage extracts a message from an error body. The backend wraps
// errors in a {success, error, message} envelope; plain {message} bodies
// are handled too.
func serverMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
