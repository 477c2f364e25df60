// Package domain classifies free-text goals into prompt-example categories.
package domain

import (
	"regexp"
	"strings"

	"github.com/jalennorris/taskplan/internal/models"
)

// Ordered: the first matching category wins, so academic keywords take
// precedence over fitness, and fitness over career.
var matchers = []struct {
	domain  models.Domain
	pattern *regexp.Regexp
}{
	{models.DomainAcademic, regexp.MustCompile(`\b(study|studying|exam|exams|final|finals|class|classes|course|homework|assignment|essay|thesis|lecture|semester|school|research|reading)\b`)},
	{models.DomainFitness, regexp.MustCompile(`\b(workout|workouts|gym|run|running|fitness|exercise|training|cardio|strength|yoga|diet|health|sleep|meal)\b`)},
	{models.DomainCareer, regexp.MustCompile(`\b(job|jobs|interview|interviews|resume|career|networking|promotion|portfolio|linkedin|application|hiring)\b`)},
}

// Infer classifies the concatenation of an optional steering goal and the
// current query. It is total: any input, including empty, yields one of the
// four categories.
func Infer(contextGoal, query string) models.Domain {
	text := strings.ToLower(strings.TrimSpace(contextGoal + " " + query))
	for _, m := range matchers {
		if m.pattern.MatchString(text) {
			return m.domain
		}
	}
	return models.DomainGeneral
}
