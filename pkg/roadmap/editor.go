package roadmap

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/utrgv-dp/roadmap/pkg/errors"
)

// Persister sends a committed edit to the backend. The API client
// implements it; tests substitute doubles.
type Persister interface {
	UpdateCourse(ctx context.Context, collection, courseTitle, field, value string) error
}

// Editor drives the Display -> Editing -> Display cycle for a single
// course cell against the in-memory model. The model is updated first and
// the persistence call is fire-and-forget: a failed write is logged but
// the edited value stays applied, matching the optimistic UI contract.
type Editor struct {
	model      *Roadmap
	collection string
	persist    Persister
	logger     *log.Logger

	active *editSession
}

// editSession captures the cell under edit. The course is re-resolved by
// title at commit time; the captured original value backs the
// empty-commit revert.
type editSession struct {
	title    string // course title at Begin time, the edit-targeting key
	field    string
	original string
}

// NewEditor creates an editor over model. Edits commit to the named
// collection through p. A nil logger falls back to log.Default().
func NewEditor(model *Roadmap, collection string, p Persister, logger *log.Logger) *Editor {
	if logger == nil {
		logger = log.Default()
	}
	return &Editor{model: model, collection: collection, persist: p, logger: logger}
}

// Editing reports whether an edit is in progress.
func (e *Editor) Editing() bool { return e.active != nil }

// Begin starts editing one field of the course with the given title.
// It is a no-op (returning false) when an edit is already active, when
// the field is not editable, or when no course carries the title.
// Returns the current displayed value of the cell.
func (e *Editor) Begin(title, field string) (current string, ok bool) {
	if e.active != nil {
		return "", false
	}
	if !EditableField(field) {
		return "", false
	}
	c := e.model.FindCourse(title)
	if c == nil {
		return "", false
	}
	e.active = &editSession{title: title, field: field, original: c.Field(field)}
	return e.active.original, true
}

// Commit finishes the active edit with the entered value and returns the
// value the cell displays afterwards.
//
// Empty or whitespace-only input reverts to the captured original value
// and sends nothing. Otherwise the trimmed value is applied to the model
// and persisted exactly once; committing an unchanged value re-sends the
// same update. If the target course can no longer be located, the edit is
// aborted locally with a logged error and nothing is sent.
func (e *Editor) Commit(ctx context.Context, value string) (string, error) {
	if e.active == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "no edit in progress")
	}
	sess := e.active
	e.active = nil

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return sess.original, nil
	}

	// Resolve the targeting title from the model before applying: a title
	// edit must address the backend record by its pre-edit title.
	c := e.model.FindCourse(sess.title)
	if c == nil {
		err := errors.New(errors.ErrCodeCourseNotFound,
			"course %q disappeared before commit", sess.title)
		e.logger.Error("edit aborted", "title", sess.title, "field", sess.field, "err", err)
		return sess.original, err
	}
	key := c.Title

	if err := c.SetField(sess.field, trimmed); err != nil {
		e.logger.Error("edit rejected", "field", sess.field, "value", trimmed, "err", err)
		return sess.original, err
	}

	if err := e.persist.UpdateCourse(ctx, e.collection, key, sess.field, trimmed); err != nil {
		// Optimistic UI: the model keeps the new value, failure is only logged.
		e.logger.Error("failed to persist edit",
			"collection", e.collection, "title", key, "field", sess.field, "err", err)
	}
	return trimmed, nil
}
