package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalennorris/taskplan/internal/models"
	"github.com/jalennorris/taskplan/internal/planner"
)

type stubIdeas struct {
	goals        []string
	allGoals     []string
	recent       []string
	smartDefault string
	recorded     []string
}

func (s *stubIdeas) History() models.UserHistory {
	return models.UserHistory{Goals: s.goals}
}

func (s *stubIdeas) AllGoals() []string { return s.allGoals }

func (s *stubIdeas) RecentIdeas() []string { return s.recent }

func (s *stubIdeas) SmartDefault() string { return s.smartDefault }

func (s *stubIdeas) AddRecentIdea(idea string) {
	s.recorded = append(s.recorded, idea)
}

type stubFeedback struct {
	sent []models.Feedback
	err  error
}

func (s *stubFeedback) SubmitFeedback(_ context.Context, fb models.Feedback) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, fb)
	return nil
}

type stubCompletion struct{ content string }

func (s *stubCompletion) Complete(_ context.Context, _, _ string) (string, error) {
	return s.content, nil
}

type stubBackend struct{}

func (stubBackend) LogGoal(context.Context, int64, string) error { return nil }

func (stubBackend) CreateAccepted(context.Context, models.AcceptedTask) error { return nil }

func (stubBackend) CreateAcceptedBatch(context.Context, []models.AcceptedTask) error {
	return nil
}

type stubHistory struct{}

func (stubHistory) History() models.UserHistory { return models.UserHistory{} }

func (stubHistory) AddGoal(string) {}

func (stubHistory) AddAcceptedTasks([]models.SuggestedTask) {}

func newTestModel(t *testing.T, content string) (Model, *stubIdeas, *stubFeedback) {
	t.Helper()
	session := planner.NewSession(&stubCompletion{content: content}, stubBackend{}, stubHistory{}, 95, nil)
	ideas := &stubIdeas{}
	fb := &stubFeedback{}
	return New(context.Background(), session, ideas, fb, 95), ideas, fb
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func stageTasks(t *testing.T, m Model) Model {
	t.Helper()
	m.session.SetQuery("plan my week")
	if err := m.session.Generate(context.Background()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	next, _ := m.onGenerateDone(generateDoneMsg{})
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("onGenerateDone returned %T", next)
	}
	return model
}

const twoTaskPlan = `{"tasks": [
	{"title": "first task", "description": "Start here."},
	{"title": "second task", "description": "Finish up."}
]}`

func TestEnterWithEmptyQueryStaysPut(t *testing.T) {
	t.Parallel()

	m, ideas, _ := newTestModel(t, twoTaskPlan)
	m, cmd := update(t, m, keyMsg("enter"))
	if m.mode != modeQuery {
		t.Errorf("expected query mode, got %d", m.mode)
	}
	if cmd != nil {
		t.Error("expected no command for an empty query")
	}
	if len(ideas.recorded) != 0 {
		t.Error("empty query must not be recorded as a recent idea")
	}
}

func TestEnterStartsGeneration(t *testing.T) {
	t.Parallel()

	m, ideas, _ := newTestModel(t, twoTaskPlan)
	m.input.SetValue("plan my week")
	m, cmd := update(t, m, keyMsg("enter"))
	if m.mode != modeRequesting {
		t.Fatalf("expected requesting mode, got %d", m.mode)
	}
	if cmd == nil {
		t.Error("expected a generation command")
	}
	if len(ideas.recorded) != 1 || ideas.recorded[0] != "plan my week" {
		t.Errorf("expected query recorded as recent idea, got %v", ideas.recorded)
	}
	if m.session.Query() != "plan my week" {
		t.Errorf("expected query staged on session, got %q", m.session.Query())
	}
}

func TestGenerateDoneMovesToReview(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, twoTaskPlan)
	m = stageTasks(t, m)
	if m.mode != modeReview {
		t.Fatalf("expected review mode, got %d", m.mode)
	}
	view := m.View()
	if !strings.Contains(view, "first task") || !strings.Contains(view, "second task") {
		t.Errorf("expected tasks rendered, got:\n%s", view)
	}
}

func TestGenerateDoneShortPlanShowsWarning(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, `{"tasks": [{"title": "only one"}]}`)
	if err := m.session.SetNumDays(3); err != nil {
		t.Fatal(err)
	}
	m = stageTasks(t, m)
	if m.status != "Only 1 tasks generated." {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestDeletingLastTaskReturnsToQuery(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, `{"tasks": [{"title": "only one"}]}`)
	m = stageTasks(t, m)

	m, _ = update(t, m, keyMsg("d"))
	if m.mode != modeQuery {
		t.Errorf("expected query mode after removing the last task, got %d", m.mode)
	}
	if len(m.session.Tasks()) != 0 {
		t.Error("expected no tasks left")
	}
}

func TestEditFlow(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, twoTaskPlan)
	m = stageTasks(t, m)

	m, _ = update(t, m, keyMsg("e"))
	if m.mode != modeEdit {
		t.Fatalf("expected edit mode, got %d", m.mode)
	}
	if m.input.Value() != "first task" {
		t.Errorf("expected input seeded with title, got %q", m.input.Value())
	}

	m.input.SetValue("renamed")
	m, _ = update(t, m, keyMsg("enter"))
	if m.mode != modeReview {
		t.Fatalf("expected review mode after save, got %d", m.mode)
	}
	if got := m.session.Tasks()[0].Title; got != "renamed" {
		t.Errorf("expected saved title, got %q", got)
	}
}

func TestFeedbackRequiresRating(t *testing.T) {
	t.Parallel()

	m, _, fb := newTestModel(t, twoTaskPlan)
	m = stageTasks(t, m)

	next, _ := m.Update(acceptDoneMsg{accepted: m.session.Tasks()})
	m = next.(Model)
	if m.mode != modeFeedback {
		t.Fatalf("expected feedback mode, got %d", m.mode)
	}

	m, cmd := update(t, m, keyMsg("enter"))
	if cmd != nil {
		t.Error("expected no submit without a rating")
	}

	m, _ = update(t, m, keyMsg("4"))
	if m.rating != 4 {
		t.Errorf("expected rating 4, got %d", m.rating)
	}
	_, cmd = update(t, m, keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a feedback command")
	}
	if msg := cmd(); msg == nil {
		t.Fatal("expected a feedback result message")
	}
	if len(fb.sent) != 1 || fb.sent[0].Rating != 4 {
		t.Errorf("expected one feedback with rating 4, got %+v", fb.sent)
	}
}

func TestChipsAppearWhileTyping(t *testing.T) {
	t.Parallel()

	m, ideas, _ := newTestModel(t, twoTaskPlan)
	ideas.goals = []string{"study for finals"}
	ideas.allGoals = []string{"study spanish", "run a marathon"}

	m, _ = update(t, m, keyMsg("s"))
	if len(m.chips) == 0 {
		t.Fatal("expected suggestion chips for matching goals")
	}
	if m.chips[0] != "study for finals" {
		t.Errorf("expected own goals ranked first, got %v", m.chips)
	}

	m, _ = update(t, m, keyMsg("tab"))
	if m.input.Value() != "study for finals" {
		t.Errorf("expected tab to take the first chip, got %q", m.input.Value())
	}
}
