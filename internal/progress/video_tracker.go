package progress

import (
	"context"
	"log/slog"
)

// VideoProgressTracker records watch progress of single videos.
type VideoProgressTracker struct {
	store      Store
	invalidate func(userID, collectionID string)
}

// NewVideoProgressTracker creates a tracker. invalidate is called after every successful write and may be nil.
func NewVideoProgressTracker(store Store, invalidate func(userID, collectionID string)) *VideoProgressTracker {
	return &VideoProgressTracker{store: store, invalidate: invalidate}
}

// UpdateVideo sets watchedDuration and completed as given and adds timeSpentDelta to the accumulated time.
func (t *VideoProgressTracker) UpdateVideo(ctx context.Context, key VideoKey, watchedDuration float64, completed bool, timeSpentDelta float64) (VideoProgress, error) {
	if err := requireVideoKey(key); err != nil {
		return VideoProgress{}, err
	}
	if !validSeconds(watchedDuration) {
		return VideoProgress{}, invalidArgument("watched_duration", "watched_duration must be a non-negative number, got %v", watchedDuration)
	}
	if !validSeconds(timeSpentDelta) {
		return VideoProgress{}, invalidArgument("time_spent_delta", "time_spent_delta must be a non-negative number, got %v", timeSpentDelta)
	}

	vp, err := t.store.UpsertVideoProgress(ctx, key, VideoUpdate{
		WatchedDuration: watchedDuration,
		Completed:       completed,
		TimeSpentDelta:  timeSpentDelta,
	})
	if err != nil {
		return VideoProgress{}, err
	}
	if t.invalidate != nil {
		t.invalidate(key.UserID, key.CollectionID)
	}

	slog.Default().Debug("Updated video progress",
		"user_id", key.UserID,
		"collection_id", key.CollectionID,
		"step_id", key.StepID,
		"video_id", key.VideoID,
		"state", vp.State())
	return vp, nil
}
