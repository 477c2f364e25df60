package planner

import (
	"time"

	"github.com/jalennorris/taskplan/internal/models"
)

// Fixed defaults applied to every accepted task record.
const (
	DefaultPriority = "Medium"
	DefaultDuration = "1 hour"
	DefaultCategory = "General"
	DefaultStatus   = "Not Started"
)

// MapTasksToAPIFormat converts suggestions into the backend task schema. A
// suggested deadline is kept only when it parses and is not in the past;
// anything else is normalized to now, so a record's deadline is never
// earlier than the call time.
func MapTasksToAPIFormat(tasks []models.SuggestedTask, userID int64, now time.Time) []models.AcceptedTask {
	out := make([]models.AcceptedTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, models.AcceptedTask{
			UserID:            userID,
			TaskName:          t.Title,
			TaskDescription:   t.Description,
			Priority:          DefaultPriority,
			EstimatedDuration: DefaultDuration,
			Deadline:          models.Timestamp(normalizeDeadline(t.SuggestedDeadline, now)),
			Status:            DefaultStatus,
			Completed:         false,
			Category:          DefaultCategory,
			Notes:             "",
			CreatedAt:         models.Timestamp(now),
		})
	}
	return out
}

// normalizeDeadline parses a suggested deadline as an RFC3339 timestamp or
// a bare date. The models are prompted for bare dates, which count as end
// of that day UTC. Past, missing and unparseable deadlines become now.
func normalizeDeadline(deadline string, now time.Time) time.Time {
	if deadline == "" {
		return now
	}
	parsed, err := time.Parse(time.RFC3339, deadline)
	if err != nil {
		day, dayErr := time.Parse("2006-01-02", deadline)
		if dayErr != nil {
			return now
		}
		parsed = day.Add(24*time.Hour - time.Second)
	}
	if parsed.Before(now) {
		return now
	}
	return parsed
}
