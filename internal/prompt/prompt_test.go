package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jalennorris/taskplan/internal/models"
)

func TestSummarizeHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		history models.UserHistory
		want    string
	}{
		{
			name:    "empty history yields empty summary",
			history: models.UserHistory{},
			want:    "",
		},
		{
			name: "goals only",
			history: models.UserHistory{
				Goals: []string{"Study for finals", "Run a 5k"},
			},
			want: "Previous goals: Study for finals; Run a 5k.",
		},
		{
			name: "goals and accepted",
			history: models.UserHistory{
				Goals:    []string{"Study for finals"},
				Accepted: []string{"Read chapter 1"},
			},
			want: "Previous goals: Study for finals. Recently accepted tasks: Read chapter 1.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SummarizeHistory(tt.history); got != tt.want {
				t.Errorf("SummarizeHistory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarizeHistory_CapsAtFive(t *testing.T) {
	t.Parallel()

	var h models.UserHistory
	for i := 0; i < 8; i++ {
		h.Goals = append(h.Goals, fmt.Sprintf("goal %d", i))
	}
	got := SummarizeHistory(h)
	if strings.Contains(got, "goal 5") {
		t.Errorf("expected at most 5 goals in summary, got %q", got)
	}
	if !strings.Contains(got, "goal 4") {
		t.Errorf("expected goal 4 in summary, got %q", got)
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		history     models.UserHistory
		numDays     int
		contextGoal string
		query       string
		validate    func(*testing.T, string)
	}{
		{
			name:    "academic query selects academic examples",
			numDays: 7,
			query:   "Plan my week for studying for finals",
			validate: func(t *testing.T, prompt string) {
				if !strings.Contains(prompt, "Example tasks (academic):") {
					t.Error("expected academic example block")
				}
				if !strings.Contains(prompt, "Deep Work") {
					t.Error("expected academic example content")
				}
				if !strings.Contains(prompt, "Generate exactly 7 specific, actionable daily tasks") {
					t.Error("expected day count in instructions")
				}
			},
		},
		{
			name:    "unmatched query falls back to general examples",
			numDays: 3,
			query:   "Organize a birthday party",
			validate: func(t *testing.T, prompt string) {
				if !strings.Contains(prompt, "Example tasks (general):") {
					t.Error("expected general example block")
				}
			},
		},
		{
			name:        "steering goal embedded and steers inference",
			numDays:     5,
			contextGoal: "get fit before summer",
			query:       "plan my next days",
			validate: func(t *testing.T, prompt string) {
				if !strings.Contains(prompt, `"get fit before summer"`) {
					t.Error("expected steering goal in prompt")
				}
				if !strings.Contains(prompt, "Example tasks (fitness):") {
					t.Error("expected fitness example block")
				}
			},
		},
		{
			name: "history summary embedded",
			history: models.UserHistory{
				Goals:    []string{"Study for finals"},
				Accepted: []string{"Read chapter 1"},
			},
			numDays: 7,
			query:   "plan something",
			validate: func(t *testing.T, prompt string) {
				if !strings.Contains(prompt, "Previous goals: Study for finals.") {
					t.Error("expected goal summary in prompt")
				}
				if !strings.Contains(prompt, "Recently accepted tasks: Read chapter 1.") {
					t.Error("expected accepted summary in prompt")
				}
			},
		},
		{
			name:    "mandates JSON-only output",
			numDays: 7,
			query:   "anything",
			validate: func(t *testing.T, prompt string) {
				if !strings.Contains(prompt, `"tasks"`) {
					t.Error("expected tasks shape in prompt")
				}
				if !strings.Contains(prompt, "Return only valid JSON") {
					t.Error("expected JSON-only instruction")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.validate(t, BuildSystemPrompt(tt.history, tt.numDays, tt.contextGoal, tt.query))
		})
	}
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	got := BuildUserPrompt(7, "Plan my week")
	want := `Create a 7-day task plan for: "Plan my week"`
	if got != want {
		t.Errorf("BuildUserPrompt() = %q, want %q", got, want)
	}
}
