// Package history maintains the bounded, most-recent-first record of the
// user's goals and accepted task titles, merged from local state and the
// backend.
package history

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jalennorris/taskplan/internal/models"
)

// RecentIdeasCap is the maximum number of recently picked ideas kept
const RecentIdeasCap = 5

// GoalFetcher is the backend surface the store needs. Satisfied by
// *backend.Client.
type GoalFetcher interface {
	AllGoals(ctx context.Context) ([]models.Goal, error)
	UserGoals(ctx context.Context, userID int64) ([]models.Goal, error)
}

// Store holds the in-memory history cache and its persistence side-channel.
// Mutations persist fire-and-forget: a failed write is logged, never
// surfaced.
type Store struct {
	backend   GoalFetcher
	persister *filePersister
	userID    int64
	logger    *zap.Logger

	mu           sync.Mutex
	history      models.UserHistory
	recentIdeas  []string
	allGoals     []string
	smartDefault string
}

// NewStore creates a history store persisting under dataDir. backend may be
// nil for offline use; logger may be nil.
func NewStore(dataDir string, backend GoalFetcher, userID int64, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend:   backend,
		persister: newFilePersister(dataDir),
		userID:    userID,
		logger:    logger,
	}
}

// Load hydrates the store: local persisted state merged with the user's
// backend goals (backend entries take precedence at the front), plus the
// global goal corpus for suggestions. Network failures degrade silently to
// local-only history; they must never block usage.
func (s *Store) Load(ctx context.Context) {
	state, err := s.persister.load()
	if err != nil {
		s.logger.Warn("history_load_failed", zap.Error(err))
	}

	var backendGoals []string
	if s.backend != nil {
		if all, err := s.backend.AllGoals(ctx); err != nil {
			s.logger.Warn("global_goals_fetch_failed", zap.Error(err))
		} else {
			s.mu.Lock()
			s.allGoals = models.GoalTexts(all)
			s.mu.Unlock()
		}

		if userGoals, err := s.backend.UserGoals(ctx, s.userID); err != nil {
			s.logger.Warn("user_goals_fetch_failed", zap.Error(err))
		} else {
			backendGoals = models.GoalTexts(userGoals)
		}
	}

	merged := append(append([]string{}, backendGoals...), state.History.Goals...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = models.UserHistory{
		Goals:    dedupe(merged, models.HistoryCap),
		Accepted: dedupe(state.History.Accepted, models.HistoryCap),
	}
	s.recentIdeas = dedupe(state.RecentIdeas, RecentIdeasCap)
	s.smartDefault = mostFrequent(merged)
}

// AddGoal prepends a goal, deduplicating and truncating, then persists.
func (s *Store) AddGoal(text string) {
	if text == "" {
		return
	}
	s.mu.Lock()
	s.history.Goals = prepend(s.history.Goals, models.HistoryCap, text)
	s.smartDefault = mostFrequent(s.history.Goals)
	s.mu.Unlock()
	s.persist()
}

// AddAcceptedTasks prepends the titles of accepted tasks, deduplicating and
// truncating, then persists.
func (s *Store) AddAcceptedTasks(tasks []models.SuggestedTask) {
	if len(tasks) == 0 {
		return
	}
	titles := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t.Title != "" {
			titles = append(titles, t.Title)
		}
	}
	s.mu.Lock()
	s.history.Accepted = prepend(s.history.Accepted, models.HistoryCap, titles...)
	s.mu.Unlock()
	s.persist()
}

// AddRecentIdea records a picked suggestion idea, most recent first.
func (s *Store) AddRecentIdea(idea string) {
	if idea == "" {
		return
	}
	s.mu.Lock()
	s.recentIdeas = prepend(s.recentIdeas, RecentIdeasCap, idea)
	s.mu.Unlock()
	s.persist()
}

// History returns a copy of the current user history.
func (s *Store) History() models.UserHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.UserHistory{
		Goals:    append([]string{}, s.history.Goals...),
		Accepted: append([]string{}, s.history.Accepted...),
	}
}

// AllGoals returns the global goal corpus fetched at load time.
func (s *Store) AllGoals() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.allGoals...)
}

// RecentIdeas returns the recently picked ideas, most recent first.
func (s *Store) RecentIdeas() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.recentIdeas...)
}

// SmartDefault returns the most frequent goal in the merged history, or ""
// when the history is empty.
func (s *Store) SmartDefault() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.smartDefault
}

func (s *Store) persist() {
	s.mu.Lock()
	state := persistedState{
		History:     s.history,
		RecentIdeas: s.recentIdeas,
	}
	s.mu.Unlock()
	if err := s.persister.save(state); err != nil {
		s.logger.Warn("history_persist_failed", zap.Error(err))
	}
}

// prepend puts items at the front of list, removing prior occurrences and
// truncating to limit. Re-adding an existing item moves it forward rather
// than duplicating it.
func prepend(list []string, limit int, items ...string) []string {
	out := make([]string, 0, len(list)+len(items))
	out = append(out, items...)
	for _, existing := range list {
		dup := false
		for _, item := range items {
			if existing == item {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, existing)
		}
	}
	return dedupe(out, limit)
}

// dedupe keeps the first occurrence of each entry, dropping empties, and
// truncates to limit.
func dedupe(list []string, limit int) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// mostFrequent returns the entry with the highest occurrence count. Ties go
// to whichever entry reached the winning count first in scan order, keeping
// the result deterministic.
func mostFrequent(list []string) string {
	counts := make(map[string]int, len(list))
	best := ""
	bestCount := 0
	for _, item := range list {
		if item == "" {
			continue
		}
		counts[item]++
		if counts[item] > bestCount {
			best = item
			bestCount = counts[item]
		}
	}
	return best
}
