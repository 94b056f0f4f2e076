package progress

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrNotEnrolled     = errors.New("not enrolled")
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict is returned when a write lost a race inside the storage engine, e.g. a MySQL deadlock.
	ErrConflict = errors.New("conflict")
)

// Error is a typed failure of a progress operation. Kind is one of the Err* sentinels.
type Error struct {
	Kind    error
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func invalidArgument(field, format string, args ...any) error {
	return &Error{Kind: ErrInvalidArgument, Field: field, Message: fmt.Sprintf(format, args...)}
}

func notEnrolled(userID, collectionID string) error {
	return newError(ErrNotEnrolled, "user %s is not enrolled in %s", userID, collectionID)
}

func noteNotFound(key NoteKey) error {
	return newError(ErrNotFound, "note %s on video %s/%s/%s", key.NoteID, key.CollectionID, key.StepID, key.VideoID)
}

// requireIDs returns InvalidArgument for the first blank id. pairs alternates field names and values.
func requireIDs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return invalidArgument(pairs[i], "%s is required", pairs[i])
		}
	}
	return nil
}

func requireVideoKey(key VideoKey) error {
	return requireIDs(
		"user_id", key.UserID,
		"collection_id", key.CollectionID,
		"step_id", key.StepID,
		"video_id", key.VideoID,
	)
}

func requireNoteKey(key NoteKey) error {
	if err := requireVideoKey(key.VideoKey); err != nil {
		return err
	}
	return requireIDs("note_id", key.NoteID)
}

// validSeconds reports whether v is a finite, non-negative number of seconds.
func validSeconds(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
