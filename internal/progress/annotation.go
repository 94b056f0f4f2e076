package progress

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// AnnotationManager manages timestamped notes on videos.
type AnnotationManager struct {
	store Store
	now   func() time.Time
}

func NewAnnotationManager(store Store, now func() time.Time) *AnnotationManager {
	return &AnnotationManager{store: store, now: now}
}

// AddNote appends a note to the video, creating the step and video entries when missing.
func (m *AnnotationManager) AddNote(ctx context.Context, key VideoKey, timestamp float64, content string) (Note, error) {
	if err := requireVideoKey(key); err != nil {
		return Note{}, err
	}
	if err := validateContent(content); err != nil {
		return Note{}, err
	}
	if !validSeconds(timestamp) {
		return Note{}, invalidArgument("timestamp", "timestamp must be a non-negative number, got %v", timestamp)
	}

	note, err := m.store.InsertNote(ctx, key, Note{
		Timestamp: timestamp,
		Content:   content,
		CreatedAt: m.now(),
	})
	if err != nil {
		return Note{}, err
	}
	slog.Default().Debug("Added note",
		"user_id", key.UserID,
		"video_id", key.VideoID,
		"note_id", note.ID)
	return note, nil
}

// EditNote replaces the content of a note and stamps its update time.
func (m *AnnotationManager) EditNote(ctx context.Context, key NoteKey, content string) (Note, error) {
	if err := requireNoteKey(key); err != nil {
		return Note{}, err
	}
	if err := validateContent(content); err != nil {
		return Note{}, err
	}
	return m.store.UpdateNote(ctx, key, content, m.now())
}

// DeleteNote removes a note. The order of the remaining notes is kept.
func (m *AnnotationManager) DeleteNote(ctx context.Context, key NoteKey) error {
	if err := requireNoteKey(key); err != nil {
		return err
	}
	if err := m.store.DeleteNote(ctx, key); err != nil {
		return err
	}
	slog.Default().Debug("Deleted note",
		"user_id", key.UserID,
		"video_id", key.VideoID,
		"note_id", key.NoteID)
	return nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return invalidArgument("content", "note content must not be blank")
	}
	return nil
}
