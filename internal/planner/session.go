// Package planner orchestrates plan generation: prompt assembly, the
// cancellable completion request, response validation, in-session editing
// and the acceptance pipeline.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jalennorris/taskplan/internal/models"
	"github.com/jalennorris/taskplan/internal/prompt"
	"github.com/jalennorris/taskplan/internal/validation"
)

// DefaultDays is the day count a session starts with and resets to
const DefaultDays = validation.MaxDays

// MaxAcceptBatch is the most tasks one acceptance may submit. The batch
// create endpoint enforces the same cap server-side.
const MaxAcceptBatch = 7

// State is the session's position in the generation lifecycle.
type State string

const (
	// StateIdle means no request has run or the session was reset
	StateIdle State = "idle"
	// StateRequesting means a completion request is in flight
	StateRequesting State = "requesting"
	// StateTasksReady means suggestions are staged for review
	StateTasksReady State = "tasksReady"
	// StateErrored means the last request failed
	StateErrored State = "errored"
	// StateCancelled means the last request was stopped or superseded
	StateCancelled State = "cancelled"
)

// Backend is the backend surface the session needs. Satisfied by
// *backend.Client.
type Backend interface {
	LogGoal(ctx context.Context, userID int64, goalText string) error
	CreateAccepted(ctx context.Context, task models.AcceptedTask) error
	CreateAcceptedBatch(ctx context.Context, tasks []models.AcceptedTask) error
}

// History is the history surface the session needs. Satisfied by
// *history.Store.
type History interface {
	History() models.UserHistory
	AddGoal(text string)
	AddAcceptedTasks(tasks []models.SuggestedTask)
}

// Session drives one plan-generation workflow. At most one completion
// request is in flight at a time: starting a new one cancels and
// supersedes the old one, whose resolution is then discarded.
type Session struct {
	completion CompletionClient
	backend    Backend
	history    History
	userID     int64
	logger     *zap.Logger

	mu          sync.Mutex
	state       State
	query       string
	contextGoal string
	numDays     int
	tasks       []models.SuggestedTask
	errMsg      string
	warning     string
	editingID   string
	editedTitle string
	cancel      context.CancelFunc
	generation  uint64
}

// NewSession creates an idle session. backend and logger may be nil.
func NewSession(completion CompletionClient, backend Backend, history History, userID int64, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		completion: completion,
		backend:    backend,
		history:    history,
		userID:     userID,
		logger:     logger,
		state:      StateIdle,
		numDays:    DefaultDays,
	}
}

// Generate runs one completion request for the current query. An empty
// trimmed query fails immediately with ErrEmptyQuery and sends nothing.
// Any prior in-flight request is cancelled and its resolution discarded.
// On return the session is in tasksReady, errored or cancelled.
func (s *Session) Generate(ctx context.Context) error {
	s.mu.Lock()
	trimmed := strings.TrimSpace(s.query)
	if trimmed == "" {
		s.errMsg = ErrEmptyQuery.Error()
		s.mu.Unlock()
		return ErrEmptyQuery
	}

	if s.cancel != nil {
		s.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.generation++
	gen := s.generation

	s.state = StateRequesting
	s.tasks = nil
	s.errMsg = ""
	s.warning = ""
	s.editingID = ""
	s.editedTitle = ""
	numDays := s.numDays
	contextGoal := s.contextGoal
	s.mu.Unlock()

	// Best-effort goal logging; failure never blocks generation.
	if s.backend != nil {
		if err := s.backend.LogGoal(ctx, s.userID, trimmed); err != nil {
			s.logger.Warn("goal_log_failed", zap.Error(err))
		}
	}
	s.history.AddGoal(trimmed)

	hist := s.history.History()
	systemPrompt := prompt.BuildSystemPrompt(hist, numDays, contextGoal, trimmed)
	userPrompt := prompt.BuildUserPrompt(numDays, trimmed)

	content, err := s.completion.Complete(reqCtx, systemPrompt, userPrompt)

	var tasks []models.SuggestedTask
	if err == nil {
		tasks, err = ParseTasks(content, numDays)
	}
	return s.finish(gen, reqCtx, tasks, numDays, err)
}

// finish applies a request's resolution unless a newer request has
// superseded it, in which case the resolution must not touch session
// state.
func (s *Session) finish(gen uint64, reqCtx context.Context, tasks []models.SuggestedTask, numDays int, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return context.Canceled
	}
	s.cancel = nil

	switch {
	case reqCtx.Err() != nil:
		s.state = StateCancelled
		s.tasks = nil
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			s.errMsg = "Task generation timed out."
		} else {
			s.errMsg = "Task generation cancelled."
		}
		return reqCtx.Err()
	case err != nil:
		s.state = StateErrored
		s.tasks = nil
		s.errMsg = err.Error()
		return err
	default:
		s.state = StateTasksReady
		s.tasks = tasks
		if len(tasks) < numDays {
			s.warning = fmt.Sprintf("Only %d tasks generated.", len(tasks))
		}
		return nil
	}
}

// Stop cancels the in-flight request, if any. The request resolves into
// the cancelled state with an informational message.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// Reset cancels any in-flight request and returns the session to idle:
// suggestions, errors and editing state cleared, day count back to the
// default, query optionally kept.
func (s *Session) Reset(clearQuery bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	// Bump the generation so an in-flight resolution is discarded rather
	// than resurfacing as a cancellation message.
	s.generation++
	s.state = StateIdle
	s.tasks = nil
	s.errMsg = ""
	s.warning = ""
	s.editingID = ""
	s.editedTitle = ""
	s.numDays = DefaultDays
	if clearQuery {
		s.query = ""
	}
}

// AcceptAll submits the staged suggestions: one task goes to the single
// create endpoint, two to seven to the batch endpoint, more is rejected
// client-side with no request. On success the titles are recorded in
// history and the accepted tasks returned so the caller can collect
// feedback; on failure nothing is recorded.
func (s *Session) AcceptAll(ctx context.Context) ([]models.SuggestedTask, error) {
	s.mu.Lock()
	tasks := append([]models.SuggestedTask{}, s.tasks...)
	s.mu.Unlock()

	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	if len(tasks) > MaxAcceptBatch {
		return nil, ErrTooManyTasks
	}

	records := MapTasksToAPIFormat(tasks, s.userID, time.Now())
	for _, r := range records {
		if err := validation.Validate.Struct(r); err != nil {
			return nil, fmt.Errorf("invalid task record %q: %w", r.TaskName, err)
		}
	}

	var err error
	if len(records) == 1 {
		err = s.backend.CreateAccepted(ctx, records[0])
	} else {
		err = s.backend.CreateAcceptedBatch(ctx, records)
	}
	if err != nil {
		return nil, err
	}

	s.history.AddAcceptedTasks(tasks)
	return tasks, nil
}

// StartEditing stages a title edit for the task with the given id. Only
// valid while suggestions are staged; returns false otherwise.
func (s *Session) StartEditing(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateTasksReady {
		return false
	}
	for _, t := range s.tasks {
		if t.ID == id {
			s.editingID = id
			s.editedTitle = t.Title
			return true
		}
	}
	return false
}

// UpdateEdit replaces the staged title text.
func (s *Session) UpdateEdit(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editingID != "" {
		s.editedTitle = title
	}
}

// SaveEdit commits the staged title back into the matching suggestion. A
// title that trims to empty leaves the suggestion unchanged.
func (s *Session) SaveEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editingID == "" {
		return
	}
	if title := strings.TrimSpace(s.editedTitle); title != "" {
		for i := range s.tasks {
			if s.tasks[i].ID == s.editingID {
				s.tasks[i].Title = title
				break
			}
		}
	}
	s.editingID = ""
	s.editedTitle = ""
}

// CancelEdit discards the staged edit.
func (s *Session) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = ""
	s.editedTitle = ""
}

// DeleteTask removes a suggestion from the in-session list.
func (s *Session) DeleteTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Tasks returns a copy of the staged suggestions.
func (s *Session) Tasks() []models.SuggestedTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SuggestedTask{}, s.tasks...)
}

// ErrorMessage returns the current user-facing error or informational
// message, empty when none.
func (s *Session) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Warning returns the non-fatal warning from the last generation, such as
// a short plan, empty when none.
func (s *Session) Warning() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warning
}

// Query returns the current query text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SetQuery replaces the query text.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

// NumDays returns the requested plan length.
func (s *Session) NumDays() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numDays
}

// SetNumDays sets the requested plan length, rejecting values outside the
// permitted range.
func (s *Session) SetNumDays(days int) error {
	if err := validation.ValidateDays(days); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.numDays = days
	return nil
}

// SetContextGoal sets the optional steering goal embedded in the prompt.
func (s *Session) SetContextGoal(goal string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contextGoal = goal
}

// EditingID returns the id of the suggestion being edited, empty when
// none.
func (s *Session) EditingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

// EditedTitle returns the staged title text.
func (s *Session) EditedTitle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editedTitle
}
