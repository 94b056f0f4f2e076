package progress

import (
	"context"
	"time"
)

//go:generate mockgen -source=store.go -destination=../mocks/progress/mock_store.go -package=mock_progress

// Store persists UserProgress through path-scoped primitives.
// Every mutation touches only the rows or nodes under its own path, so concurrent
// writers on sibling paths of the same user never overwrite each other.
type Store interface {
	// GetUserProgress returns the full aggregate, or an empty one for an unknown user.
	GetUserProgress(ctx context.Context, userID string) (UserProgress, error)
	// GetCollection returns ErrNotEnrolled when the user has no entry for collectionID.
	GetCollection(ctx context.Context, userID, collectionID string) (CollectionProgress, error)
	// InsertCollectionIfAbsent returns the existing entry unchanged when there is one.
	InsertCollectionIfAbsent(ctx context.Context, userID, collectionID string, enrolledAt time.Time) (CollectionProgress, error)

	UpsertVideoProgress(ctx context.Context, key VideoKey, update VideoUpdate) (VideoProgress, error)
	// InsertNote appends note to the video and assigns its ID.
	InsertNote(ctx context.Context, key VideoKey, note Note) (Note, error)
	UpdateNote(ctx context.Context, key NoteKey, content string, updatedAt time.Time) (Note, error)
	DeleteNote(ctx context.Context, key NoteKey) error

	ToggleCollectionBookmark(ctx context.Context, userID, collectionID string) (bool, error)
	ToggleVideoBookmark(ctx context.Context, key VideoKey) (bool, error)

	SetPreference(ctx context.Context, userID, key, value string) error
	AddAchievement(ctx context.Context, userID, achievementID string, grantedAt time.Time) error
}
