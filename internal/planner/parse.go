package planner

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/jalennorris/taskplan/internal/models"
)

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

type rawTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

type planResponse struct {
	Tasks []rawTask `json:"tasks"`
}

// ParseTasks decodes a model response into suggested tasks. Decoding is
// two-stage: direct JSON first, then once more after stripping a fenced
// code block wrapper; no other wrapper formats are guessed. Elements whose
// title trims to empty are discarded and the result is truncated to
// numDays entries.
func ParseTasks(content string, numDays int) ([]models.SuggestedTask, error) {
	resp, err := decodePlan(content)
	if err != nil {
		return nil, err
	}
	if resp.Tasks == nil {
		return nil, ErrInvalidResponseShape
	}

	tasks := make([]models.SuggestedTask, 0, len(resp.Tasks))
	for _, rt := range resp.Tasks {
		title := strings.TrimSpace(rt.Title)
		if title == "" {
			continue
		}
		tasks = append(tasks, models.SuggestedTask{
			ID:                newTaskID(),
			Title:             title,
			Description:       strings.TrimSpace(rt.Description),
			SuggestedDeadline: strings.TrimSpace(rt.Deadline),
		})
		if len(tasks) >= numDays {
			break
		}
	}

	if len(tasks) == 0 {
		return nil, ErrNoValidTasks
	}
	return tasks, nil
}

func decodePlan(content string) (planResponse, error) {
	var resp planResponse
	trimmed := strings.TrimSpace(content)

	directErr := json.Unmarshal([]byte(trimmed), &resp)
	if directErr == nil {
		return resp, nil
	}

	if m := fencedBlock.FindStringSubmatch(trimmed); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &resp); err == nil {
			return resp, nil
		}
	}

	return planResponse{}, fmt.Errorf("%w: %v", ErrInvalidResponseShape, directErr)
}

func newTaskID() string {
	return "task_" + uuid.NewString()
}
