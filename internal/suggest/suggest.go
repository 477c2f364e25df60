// Package suggest supplies the static prompt corpora and the fuzzy
// goal-suggestion filter backing the inline suggestion chips.
package suggest

import (
	"math/rand"
	"strings"
)

// DefaultMaxSuggestions is the default cap for Suggest results
const DefaultMaxSuggestions = 8

// Ideas are example goal prompts shown verbatim, with no network call.
var Ideas = []string{
	"Plan my week for studying for finals.",
	"Help me organize a home renovation project.",
	"Create a fitness routine for 5 days.",
	"Suggest a daily routine for better sleep.",
	"Help me prepare for a job interview.",
	"Organize a meal prep schedule.",
	"Plan a reading challenge for a month.",
	"Set up a daily mindfulness routine.",
	"Prepare a travel itinerary for a city trip.",
	"Design a project timeline for launching a website.",
}

// Template is a one-tap prompt with a preset day count.
type Template struct {
	Label  string
	Prompt string
	Days   int
}

// Templates are the built-in plan templates.
var Templates = []Template{
	{Label: "Study Plan", Prompt: "Plan my study schedule for exams.", Days: 7},
	{Label: "Fitness Plan", Prompt: "Create a 5-day fitness routine.", Days: 5},
	{Label: "Sleep Routine", Prompt: "Suggest a daily routine for better sleep.", Days: 7},
	{Label: "Meal Prep", Prompt: "Organize a meal prep schedule.", Days: 7},
}

// Shortcut presets the day count, optionally with a prompt.
type Shortcut struct {
	Label  string
	Days   int
	Prompt string
}

// Shortcuts are the built-in day-count shortcuts.
var Shortcuts = []Shortcut{
	{Label: "Today", Days: 1},
	{Label: "Tomorrow", Days: 1, Prompt: "Plan my tasks for tomorrow"},
	{Label: "3 Days", Days: 3},
	{Label: "This Week", Days: 7},
	{Label: "Weekend", Days: 2, Prompt: "Plan my weekend"},
}

// SurprisePrompts are playful prompts for the surprise-me action.
var SurprisePrompts = []string{
	"Invent a new morning ritual for creative energy.",
	"Plan a day as if you were a famous chef.",
	"Organize a 'no screen' adventure challenge.",
	"Design a productivity quest for a superhero.",
	"Schedule a week of random acts of kindness.",
	"Plan a day to learn something totally new.",
	"Create a routine inspired by astronauts.",
	"Organize a 'reverse to-do list' day.",
	"Plan a day for maximum fun and zero stress.",
	"Set up a week of micro-habits for happiness.",
}

// RandomSurprise returns a random surprise prompt.
func RandomSurprise() string {
	return SurprisePrompts[rand.Intn(len(SurprisePrompts))]
}

// Suggest filters the user's own goals and the global goal corpus for
// entries containing the trimmed query, case-insensitively. Up to half of
// max comes from the user's goals first; the remainder is filled from the
// global corpus, excluding anything already selected. An empty or
// whitespace query yields no suggestions.
func Suggest(userGoals, allGoals []string, query string, max int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	if max <= 0 {
		max = DefaultMaxSuggestions
	}

	userPart := filterGoals(userGoals, q, max/2)

	seen := make(map[string]bool, len(userPart))
	for _, g := range userPart {
		seen[g] = true
	}

	out := userPart
	for _, g := range allGoals {
		if len(out) >= max {
			break
		}
		if g == "" || seen[g] {
			continue
		}
		if strings.Contains(strings.ToLower(g), q) {
			out = append(out, g)
			seen[g] = true
		}
	}
	return out
}

func filterGoals(goals []string, loweredQuery string, max int) []string {
	var out []string
	for _, g := range goals {
		if len(out) >= max {
			break
		}
		if g == "" || strings.TrimSpace(g) == "" {
			continue
		}
		if strings.Contains(strings.ToLower(g), loweredQuery) {
			out = append(out, g)
		}
	}
	return out
}
