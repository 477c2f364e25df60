package domain

import (
	"testing"

	"github.com/jalennorris/taskplan/internal/models"
)

func TestInfer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contextGoal string
		query       string
		want        models.Domain
	}{
		{
			name:  "academic keywords",
			query: "Plan my week for studying for finals",
			want:  models.DomainAcademic,
		},
		{
			name:  "fitness keywords",
			query: "Create a gym routine for 5 days",
			want:  models.DomainFitness,
		},
		{
			name:  "career keywords",
			query: "Help me prepare for a job interview",
			want:  models.DomainCareer,
		},
		{
			name:  "no keywords falls back to general",
			query: "Organize a birthday party",
			want:  models.DomainGeneral,
		},
		{
			name:  "empty input is general",
			query: "",
			want:  models.DomainGeneral,
		},
		{
			name:        "context goal steers classification",
			contextGoal: "pass my final exams",
			query:       "plan tomorrow",
			want:        models.DomainAcademic,
		},
		{
			name:  "academic wins over fitness when both match",
			query: "study plan and workout plan",
			want:  models.DomainAcademic,
		},
		{
			name:  "case insensitive",
			query: "PREPARE MY RESUME",
			want:  models.DomainCareer,
		},
		{
			name:  "keyword must be a whole word",
			query: "declassify the files",
			want:  models.DomainGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Infer(tt.contextGoal, tt.query); got != tt.want {
				t.Errorf("Infer(%q, %q) = %q, want %q", tt.contextGoal, tt.query, got, tt.want)
			}
		})
	}
}
