package planner

import "errors"

var (
	// ErrEmptyQuery is returned when a plan is requested with an empty
	// query; no request is sent.
	ErrEmptyQuery = errors.New("describe what you need help planning")
	// ErrNoTasks is returned when accepting with no suggestions staged
	ErrNoTasks = errors.New("there are no tasks to accept")
	// ErrTooManyTasks is returned when more tasks are staged than the
	// batch endpoint accepts; checked client-side before any request
	ErrTooManyTasks = errors.New("only up to 7 tasks can be accepted at once")
	// ErrEmptyResponse is returned when the model returns no content
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrInvalidResponseShape is returned when the model output is not a
	// JSON object with a tasks array, even after stripping a fenced block
	ErrInvalidResponseShape = errors.New("invalid JSON structure in model response")
	// ErrNoValidTasks is returned when no task survives trimming and
	// filtering
	ErrNoValidTasks = errors.New("no valid tasks generated")
)
