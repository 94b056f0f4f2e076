package progress

import (
	"context"
)

type BookmarkScope string

const (
	BookmarkScopeCollection BookmarkScope = "collection"
	BookmarkScopeVideo      BookmarkScope = "video"
)

// BookmarkTarget identifies what to bookmark. StepID and VideoID are used by the video scope only.
type BookmarkTarget struct {
	CollectionID string
	StepID       string
	VideoID      string
}

// BookmarkManager flips bookmark flags.
type BookmarkManager struct {
	store Store
}

func NewBookmarkManager(store Store) *BookmarkManager {
	return &BookmarkManager{store: store}
}

// ToggleBookmark flips the bookmark and returns its new value.
func (m *BookmarkManager) ToggleBookmark(ctx context.Context, userID string, scope BookmarkScope, target BookmarkTarget) (bool, error) {
	switch scope {
	case BookmarkScopeCollection:
		if err := requireIDs("user_id", userID, "collection_id", target.CollectionID); err != nil {
			return false, err
		}
		return m.store.ToggleCollectionBookmark(ctx, userID, target.CollectionID)
	case BookmarkScopeVideo:
		key := VideoKey{
			UserID:       userID,
			CollectionID: target.CollectionID,
			StepID:       target.StepID,
			VideoID:      target.VideoID,
		}
		if err := requireVideoKey(key); err != nil {
			return false, err
		}
		return m.store.ToggleVideoBookmark(ctx, key)
	default:
		return false, invalidArgument("scope", "unknown bookmark scope %q", scope)
	}
}
