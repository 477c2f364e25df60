package planner

import (
	"errors"
	"testing"
)

func TestParseTasks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		numDays int
		wantErr error
		wantLen int
	}{
		{
			name:    "plain JSON object",
			content: `{"tasks": [{"title": "Read", "description": "Read chapter one. Take notes.", "deadline": "2030-01-02"}]}`,
			numDays: 7,
			wantLen: 1,
		},
		{
			name: "fenced json block",
			content: "```json\n" +
				`{"tasks": [{"title": "Read", "description": "Read chapter one."}]}` +
				"\n```",
			numDays: 7,
			wantLen: 1,
		},
		{
			name: "fenced block without language tag",
			content: "```\n" +
				`{"tasks": [{"title": "Read", "description": "Read chapter one."}]}` +
				"\n```",
			numDays: 7,
			wantLen: 1,
		},
		{
			name: "commentary around fenced block",
			content: "Here is your plan:\n```json\n" +
				`{"tasks": [{"title": "Read"}]}` +
				"\n```\nGood luck!",
			numDays: 7,
			wantLen: 1,
		},
		{
			name:    "not JSON at all",
			content: "I cannot help with that.",
			numDays: 7,
			wantErr: ErrInvalidResponseShape,
		},
		{
			name:    "valid JSON without tasks array",
			content: `{"plan": "do things"}`,
			numDays: 7,
			wantErr: ErrInvalidResponseShape,
		},
		{
			name:    "tasks is not an array",
			content: `{"tasks": "do things"}`,
			numDays: 7,
			wantErr: ErrInvalidResponseShape,
		},
		{
			name:    "empty tasks array",
			content: `{"tasks": []}`,
			numDays: 7,
			wantErr: ErrNoValidTasks,
		},
		{
			name:    "all titles empty after trimming",
			content: `{"tasks": [{"title": "   "}, {"title": ""}]}`,
			numDays: 7,
			wantErr: ErrNoValidTasks,
		},
		{
			name: "truncated to numDays",
			content: `{"tasks": [
				{"title": "one"}, {"title": "two"}, {"title": "three"}, {"title": "four"}
			]}`,
			numDays: 2,
			wantLen: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tasks, err := ParseTasks(tt.content, tt.numDays)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTasks failed: %v", err)
			}
			if len(tasks) != tt.wantLen {
				t.Errorf("expected %d tasks, got %d", tt.wantLen, len(tasks))
			}
		})
	}
}

func TestParseTasks_TrimsFieldsAndAssignsIDs(t *testing.T) {
	t.Parallel()

	content := `{"tasks": [
		{"title": "  Read chapter 1  ", "description": " Two sentences. At least. ", "deadline": " 2030-01-02 "},
		{"title": "", "description": "dropped"},
		{"title": "Write summary"}
	]}`

	tasks, err := ParseTasks(content, 7)
	if err != nil {
		t.Fatalf("ParseTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	first := tasks[0]
	if first.Title != "Read chapter 1" {
		t.Errorf("expected trimmed title, got %q", first.Title)
	}
	if first.Description != "Two sentences. At least." {
		t.Errorf("expected trimmed description, got %q", first.Description)
	}
	if first.SuggestedDeadline != "2030-01-02" {
		t.Errorf("expected trimmed deadline, got %q", first.SuggestedDeadline)
	}
	if first.ID == "" || tasks[1].ID == "" || first.ID == tasks[1].ID {
		t.Errorf("expected unique non-empty ids, got %q and %q", first.ID, tasks[1].ID)
	}
}
