// Package prompt assembles the system and user prompts for plan generation.
package prompt

import (
	"fmt"
	"strings"

	"github.com/jalennorris/taskplan/internal/domain"
	"github.com/jalennorris/taskplan/internal/models"
)

// historySummaryLimit caps how many prior goals and accepted titles are
// embedded in the prompt.
const historySummaryLimit = 5

type exampleTask struct {
	title       string
	description string
	deadline    string
}

// Per-domain example blocks. Selected via domain inference; general is the
// fallback, so construction never fails.
var domainExamples = map[models.Domain][]exampleTask{
	models.DomainAcademic: {
		{
			title:       "Read Chapter 1 of 'Deep Work'",
			description: "Read the first chapter and jot down 3 key takeaways in your notes. Starting small builds momentum for the rest of the week.",
			deadline:    "2025-07-07",
		},
		{
			title:       "Write 500 words on your research topic",
			description: "Draft an outline and write 500 focused words. Aim for clarity and depth; a rough draft today beats a perfect draft never.",
			deadline:    "2025-07-08",
		},
	},
	models.DomainFitness: {
		{
			title:       "Complete a 30-minute full-body workout",
			description: "Warm up for 5 minutes, then alternate squats, push-ups and planks. Consistency matters more than intensity on day one.",
			deadline:    "2025-07-07",
		},
		{
			title:       "Prepare healthy meals for two days",
			description: "Batch-cook two balanced meals and portion them out. Having food ready removes the biggest excuse to skip good habits.",
			deadline:    "2025-07-08",
		},
	},
	models.DomainCareer: {
		{
			title:       "Update your resume's top section",
			description: "Rewrite your summary and most recent role with concrete results. A sharp first page gets you past the first screen.",
			deadline:    "2025-07-07",
		},
		{
			title:       "Reach out to two people in your network",
			description: "Send two short, specific messages asking for a chat. Most opportunities come through people, not postings.",
			deadline:    "2025-07-08",
		},
	},
	models.DomainGeneral: {
		{
			title:       "List the three outcomes that matter most",
			description: "Write down the three results that would make this plan a success. Clear outcomes make every following day easier to plan.",
			deadline:    "2025-07-07",
		},
		{
			title:       "Block one focused hour for your first step",
			description: "Put a one-hour block on your calendar and protect it. Progress starts with a single scheduled commitment.",
			deadline:    "2025-07-08",
		},
	},
}

// SummarizeHistory renders a natural-language summary of up to 5 prior
// goals and 5 accepted task titles. Empty history yields an empty string.
func SummarizeHistory(h models.UserHistory) string {
	var summary strings.Builder
	if len(h.Goals) > 0 {
		summary.WriteString(fmt.Sprintf("Previous goals: %s. ", strings.Join(head(h.Goals, historySummaryLimit), "; ")))
	}
	if len(h.Accepted) > 0 {
		summary.WriteString(fmt.Sprintf("Recently accepted tasks: %s. ", strings.Join(head(h.Accepted, historySummaryLimit), "; ")))
	}
	return strings.TrimSpace(summary.String())
}

// BuildSystemPrompt assembles the instruction template: personalization
// from history, the requested day count, and a domain-specific example
// block chosen by inference over the steering goal and query.
func BuildSystemPrompt(h models.UserHistory, numDays int, contextGoal, query string) string {
	prompt := "You are a helpful task planner."

	if contextGoal != "" {
		prompt += fmt.Sprintf(" The user is working toward this goal: %q.", contextGoal)
	}
	if summary := SummarizeHistory(h); summary != "" {
		prompt += " " + summary
	}

	prompt += fmt.Sprintf(" Generate exactly %d specific, actionable daily tasks. Tasks must not overlap: each day covers a distinct step.", numDays)
	prompt += ` For each task provide:
- "title": a short summary of at most 10 words
- "description": at least 2 sentences of detailed steps or explanation, in a motivational tone
- "deadline": an ISO date (YYYY-MM-DD)`

	d := domain.Infer(contextGoal, query)
	prompt += fmt.Sprintf("\n\nExample tasks (%s):", d)
	for _, ex := range domainExamples[d] {
		prompt += fmt.Sprintf("\n- title: %q, description: %q, deadline: %q", ex.title, ex.description, ex.deadline)
	}

	prompt += `

Respond with a JSON object in this format:
{
  "tasks": [
    {"title": "...", "description": "...", "deadline": "YYYY-MM-DD"}
  ]
}

Return only valid JSON. No markdown, no commentary.`

	return prompt
}

// BuildUserPrompt renders the user message for a plan request.
func BuildUserPrompt(numDays int, query string) string {
	return fmt.Sprintf("Create a %d-day task plan for: %q", numDays, query)
}

func head(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
