// Package tui is the interactive planning screen: type a goal, watch the
// plan arrive, review and edit the suggestions, accept them, rate the
// result.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jalennorris/taskplan/internal/models"
	"github.com/jalennorris/taskplan/internal/planner"
	"github.com/jalennorris/taskplan/internal/suggest"
	"github.com/jalennorris/taskplan/internal/validation"
)

type mode int

const (
	modeQuery mode = iota
	modeRequesting
	modeReview
	modeEdit
	modeFeedback
)

const maxChips = 4

// Ideas supplies the suggestion chips and smart default shown around the
// query input.
type Ideas interface {
	History() models.UserHistory
	AllGoals() []string
	RecentIdeas() []string
	SmartDefault() string
	AddRecentIdea(idea string)
}

// FeedbackSender submits a rating once a plan has been accepted.
type FeedbackSender interface {
	SubmitFeedback(ctx context.Context, fb models.Feedback) error
}

type generateDoneMsg struct{ err error }

type acceptDoneMsg struct {
	accepted []models.SuggestedTask
	err      error
}

type feedbackDoneMsg struct{ err error }

type Model struct {
	ctx      context.Context
	session  *planner.Session
	ideas    Ideas
	feedback FeedbackSender
	userID   int64

	mode        mode
	input       textinput.Model
	spin        spinner.Model
	cursor      int
	status      string
	chips       []string
	templateIdx int
	rating      int
	accepting   bool
	accepted    []models.SuggestedTask
}

func New(ctx context.Context, session *planner.Session, ideas Ideas, feedback FeedbackSender, userID int64) Model {
	ti := textinput.New()
	ti.Placeholder = "What do you want to get done?"
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSpin

	m := Model{
		ctx:         ctx,
		session:     session,
		ideas:       ideas,
		feedback:    feedback,
		userID:      userID,
		mode:        modeQuery,
		input:       ti,
		spin:        sp,
		templateIdx: -1,
	}
	if def := ideas.SmartDefault(); def != "" {
		m.status = "Smart default: " + def + " (ctrl+g to use)"
	}
	return m
}

// Run starts the planning screen and blocks until the user quits.
func Run(ctx context.Context, session *planner.Session, ideas Ideas, feedback FeedbackSender, userID int64) error {
	_, err := tea.NewProgram(New(ctx, session, ideas, feedback, userID)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func generateCmd(ctx context.Context, s *planner.Session) tea.Cmd {
	return func() tea.Msg {
		return generateDoneMsg{err: s.Generate(ctx)}
	}
}

func acceptCmd(ctx context.Context, s *planner.Session) tea.Cmd {
	return func() tea.Msg {
		accepted, err := s.AcceptAll(ctx)
		return acceptDoneMsg{accepted: accepted, err: err}
	}
}

func feedbackCmd(ctx context.Context, sender FeedbackSender, fb models.Feedback) tea.Cmd {
	return func() tea.Msg {
		return feedbackDoneMsg{err: sender.SubmitFeedback(ctx, fb)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.session.Stop()
			return m, tea.Quit
		}
		switch m.mode {
		case modeQuery:
			return m.updateQuery(msg)
		case modeRequesting:
			return m.updateRequesting(msg)
		case modeReview:
			return m.updateReview(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeFeedback:
			return m.updateFeedback(msg)
		}

	case generateDoneMsg:
		return m.onGenerateDone(msg)

	case acceptDoneMsg:
		m.accepting = false
		if msg.err != nil {
			m.status = "Accept failed: " + msg.err.Error()
			return m, nil
		}
		m.accepted = msg.accepted
		m.rating = 0
		m.input.SetValue("")
		m.input.Placeholder = "Any comments? (optional)"
		m.input.Focus()
		m.mode = modeFeedback
		m.status = fmt.Sprintf("%d tasks accepted. Rate the plan 1-5, enter to send, esc to skip.", len(msg.accepted))
		return m, nil

	case feedbackDoneMsg:
		if msg.err != nil {
			m.status = "Feedback not sent: " + msg.err.Error()
		} else {
			m.status = "Thanks for the feedback!"
		}
		return m.toQuery(true), nil

	case spinner.TickMsg:
		if m.mode == modeRequesting || m.accepting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) updateQuery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			m.status = "Type a goal first."
			return m, nil
		}
		m.session.SetQuery(query)
		m.ideas.AddRecentIdea(query)
		m.mode = modeRequesting
		m.status = ""
		return m, tea.Batch(m.spin.Tick, generateCmd(m.ctx, m.session))
	case "tab":
		if len(m.chips) > 0 {
			m.input.SetValue(m.chips[0])
			m.input.CursorEnd()
			m.chips = nil
		}
		return m, nil
	case "ctrl+g":
		if def := m.ideas.SmartDefault(); def != "" {
			m.input.SetValue(def)
			m.input.CursorEnd()
			m.chips = nil
		}
		return m, nil
	case "ctrl+r":
		m.input.SetValue(suggest.RandomSurprise())
		m.input.CursorEnd()
		m.chips = nil
		return m, nil
	case "ctrl+t":
		m.templateIdx = (m.templateIdx + 1) % len(suggest.Templates)
		t := suggest.Templates[m.templateIdx]
		m.input.SetValue(t.Prompt)
		m.input.CursorEnd()
		m.chips = nil
		if err := m.session.SetNumDays(t.Days); err == nil {
			m.status = fmt.Sprintf("Template: %s (%d days)", t.Label, t.Days)
		}
		return m, nil
	case "ctrl+n":
		m.adjustDays(1)
		return m, nil
	case "ctrl+p":
		m.adjustDays(-1)
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		hist := m.ideas.History()
		m.chips = suggest.Suggest(hist.Goals, m.ideas.AllGoals(), m.input.Value(), maxChips)
		return m, cmd
	}
}

func (m *Model) adjustDays(delta int) {
	days := m.session.NumDays() + delta
	if err := m.session.SetNumDays(days); err != nil {
		m.status = fmt.Sprintf("Plan length must be %d to %d days.", validation.MinDays, validation.MaxDays)
		return
	}
	m.status = fmt.Sprintf("Plan length: %d days", days)
}

func (m Model) updateRequesting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.session.Stop()
	}
	return m, nil
}

func (m Model) onGenerateDone(msg generateDoneMsg) (tea.Model, tea.Cmd) {
	switch m.session.State() {
	case planner.StateTasksReady:
		m.mode = modeReview
		m.cursor = 0
		m.status = m.session.Warning()
		m.input.Blur()
		return m, nil
	case planner.StateCancelled:
		next := m.toQuery(false)
		next.status = m.session.ErrorMessage()
		return next, nil
	default:
		next := m.toQuery(false)
		if msg.err != nil {
			next.status = "Generation failed: " + m.session.ErrorMessage()
		}
		return next, nil
	}
}

func (m Model) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.accepting {
		return m, nil
	}
	tasks := m.session.Tasks()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(tasks))
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(tasks))
	case "e":
		if len(tasks) == 0 {
			return m, nil
		}
		if ok := m.session.StartEditing(tasks[m.cursor].ID); !ok {
			return m, nil
		}
		m.input.SetValue(m.session.EditedTitle())
		m.input.CursorEnd()
		m.input.Placeholder = "Task title"
		m.input.Focus()
		m.mode = modeEdit
		m.status = "Edit the title, enter to save, esc to cancel."
	case "d":
		if len(tasks) == 0 {
			return m, nil
		}
		m.session.DeleteTask(tasks[m.cursor].ID)
		remaining := len(tasks) - 1
		m.cursor = clampCursor(m.cursor, remaining)
		if remaining == 0 {
			next := m.toQuery(false)
			next.status = "All suggestions removed."
			return next, nil
		}
	case "a":
		if len(tasks) == 0 {
			return m, nil
		}
		m.accepting = true
		m.status = "Submitting..."
		return m, tea.Batch(m.spin.Tick, acceptCmd(m.ctx, m.session))
	case "n":
		return m.toQuery(true), nil
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.session.UpdateEdit(m.input.Value())
		m.session.SaveEdit()
		m.mode = modeReview
		m.status = ""
		m.input.Blur()
		return m, nil
	case "esc":
		m.session.CancelEdit()
		m.mode = modeReview
		m.status = ""
		m.input.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.session.UpdateEdit(m.input.Value())
		return m, cmd
	}
}

func (m Model) updateFeedback(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "1", "2", "3", "4", "5":
		m.rating = int(key[0] - '0')
		return m, nil
	case "enter":
		if err := validation.ValidateRating(m.rating); err != nil {
			m.status = "Pick a rating from 1 to 5 first."
			return m, nil
		}
		fb := models.Feedback{
			User:      m.userID,
			Rating:    m.rating,
			Feedback:  strings.TrimSpace(m.input.Value()),
			CreatedAt: models.Timestamp(time.Now()),
		}
		m.status = "Sending feedback..."
		return m, feedbackCmd(m.ctx, m.feedback, fb)
	case "esc":
		return m.toQuery(true), nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// toQuery returns the model to the query screen. clearQuery also resets
// the session back to its defaults for a fresh plan.
func (m Model) toQuery(clearQuery bool) Model {
	if clearQuery {
		m.session.Reset(true)
	}
	m.mode = modeQuery
	m.cursor = 0
	m.chips = nil
	m.accepting = false
	m.accepted = nil
	m.input.SetValue(m.session.Query())
	m.input.CursorEnd()
	m.input.Placeholder = "What do you want to get done?"
	m.input.Focus()
	return m
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("taskplan"))
	b.WriteString(styleSubtle.Render(fmt.Sprintf("  %d-day plan", m.session.NumDays())))
	b.WriteString("\n\n")

	switch m.mode {
	case modeQuery:
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if len(m.chips) > 0 {
			b.WriteString(styleSubtle.Render("Suggestions (tab for first):"))
			b.WriteString("\n")
			for _, c := range m.chips {
				b.WriteString("  " + styleChip.Render(c) + "\n")
			}
		} else if recent := m.ideas.RecentIdeas(); len(recent) > 0 {
			b.WriteString(styleSubtle.Render("Recent:"))
			b.WriteString("\n")
			for _, r := range recent {
				b.WriteString("  " + styleSubtle.Render(r) + "\n")
			}
		} else {
			b.WriteString(styleSubtle.Render("Try:"))
			b.WriteString("\n")
			for i, idea := range suggest.Ideas {
				if i >= maxChips {
					break
				}
				b.WriteString("  " + styleSubtle.Render(idea) + "\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(m.statusLine())
		b.WriteString(styleSubtle.Render("enter plan • tab suggestion • ctrl+t template • ctrl+r surprise • ctrl+n/p days • ctrl+c quit"))

	case modeRequesting:
		b.WriteString(m.spin.View())
		b.WriteString(fmt.Sprintf(" Generating your %d-day plan... ", m.session.NumDays()))
		b.WriteString(styleSubtle.Render("(esc to stop)"))

	case modeReview, modeEdit:
		b.WriteString(m.renderTasks())
		b.WriteString("\n")
		if m.mode == modeEdit {
			b.WriteString(m.input.View())
			b.WriteString("\n")
		}
		if m.accepting {
			b.WriteString(m.spin.View())
			b.WriteString(" Submitting...\n")
		}
		b.WriteString(m.statusLine())
		if m.mode == modeReview {
			b.WriteString(styleSubtle.Render("j/k move • e edit • d delete • a accept all • n new plan • q quit"))
		}

	case modeFeedback:
		b.WriteString(styleOK.Render(fmt.Sprintf("✓ %d tasks accepted", len(m.accepted))))
		b.WriteString("\n\n")
		b.WriteString("Rating: ")
		for i := 1; i <= 5; i++ {
			star := "☆"
			if i <= m.rating {
				star = "★"
			}
			b.WriteString(star)
		}
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.statusLine())
		b.WriteString(styleSubtle.Render("1-5 rate • enter send • esc skip"))
	}

	b.WriteString("\n")
	return b.String()
}

func (m Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	style := styleSubtle
	switch {
	case strings.Contains(m.status, "failed") || strings.Contains(m.status, "not sent"):
		style = styleError
	case strings.HasPrefix(m.status, "Only "):
		style = styleWarn
	}
	return style.Render(m.status) + "\n"
}

func (m Model) renderTasks() string {
	tasks := m.session.Tasks()
	var b strings.Builder
	for i, t := range tasks {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}
		title := t.Title
		if m.mode == modeEdit && t.ID == m.session.EditingID() {
			title = styleWarn.Render(title + " (editing)")
		}
		b.WriteString(fmt.Sprintf("%s Day %d: %s\n", cursor, i+1, title))
		if t.Description != "" {
			b.WriteString("    " + styleSubtle.Render(t.Description) + "\n")
		}
		if t.SuggestedDeadline != "" {
			b.WriteString("    " + styleSubtle.Render("due "+t.SuggestedDeadline) + "\n")
		}
	}
	return b.String()
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
