package models

import (
	"encoding/json"
	"time"
)

// Domain categorizes a goal for prompt example selection
type Domain string

const (
	// DomainAcademic covers study, exams, coursework
	DomainAcademic Domain = "academic"
	// DomainFitness covers exercise and health routines
	DomainFitness Domain = "fitness"
	// DomainCareer covers job search and professional growth
	DomainCareer Domain = "career"
	// DomainGeneral is the fallback when no category matches
	DomainGeneral Domain = "general"
)

// SuggestedTask is one AI-proposed unit of work awaiting user review.
// The ID is generated locally and is unique within a session.
type SuggestedTask struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	SuggestedDeadline string `json:"suggestedDeadline,omitempty"`
}

// UserHistory is the bounded, most-recent-first record of a user's past
// goals and accepted task titles. Both slices hold at most HistoryCap
// entries.
type UserHistory struct {
	Goals    []string `json:"goals"`
	Accepted []string `json:"accepted"`
}

// HistoryCap is the maximum number of entries kept per history slice
const HistoryCap = 20

// GoalLog is the body of POST /api/goals
type GoalLog struct {
	User      int64  `json:"user"`
	GoalText  string `json:"goalText"`
	CreatedAt string `json:"createdAt"`
}

// AcceptedTask is the backend task schema produced by the acceptance
// pipeline for POST /api/accepted and /api/accepted/batch/create.
type AcceptedTask struct {
	UserID            int64  `json:"userId" validate:"required"`
	TaskName          string `json:"taskName" validate:"required"`
	TaskDescription   string `json:"taskDescription"`
	Priority          string `json:"priority" validate:"oneof=Low Medium High"`
	EstimatedDuration string `json:"estimatedDuration"`
	Deadline          string `json:"deadline" validate:"required"`
	Status            string `json:"status"`
	Completed         bool   `json:"completed"`
	Category          string `json:"category"`
	Notes             string `json:"notes"`
	CreatedAt         string `json:"createdAt"`
}

// Feedback is the body of POST /api/feedback
type Feedback struct {
	User      int64  `json:"user"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback  string `json:"feedback"`
	CreatedAt string `json:"createdAt"`
}

// Goal is a backend goal entry. The server has returned goals both as bare
// strings and as objects with varying field names, so decoding is tolerant:
// a string, or the first non-empty of goalText/goal/title.
type Goal struct {
	Text string
}

// UnmarshalJSON implements tolerant goal decoding.
func (g *Goal) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		g.Text = s
		return nil
	}

	var obj struct {
		GoalText string `json:"goalText"`
		Goal     string `json:"goal"`
		Title    string `json:"title"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	switch {
	case obj.GoalText != "":
		g.Text = obj.GoalText
	case obj.Goal != "":
		g.Text = obj.Goal
	default:
		g.Text = obj.Title
	}
	return nil
}

// GoalTexts extracts the non-empty texts from decoded goals, in order.
func GoalTexts(goals []Goal) []string {
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		if g.Text != "" {
			out = append(out, g.Text)
		}
	}
	return out
}

// Timestamp formats t the way the backend expects timestamps on the wire.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
