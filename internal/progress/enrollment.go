package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/learnpath/internal/catalog"
)

// EnrollmentManager creates collection entries for users.
type EnrollmentManager struct {
	store    Store
	contents catalog.Catalog
	now      func() time.Time
}

func NewEnrollmentManager(store Store, contents catalog.Catalog, now func() time.Time) *EnrollmentManager {
	return &EnrollmentManager{store: store, contents: contents, now: now}
}

// Enroll adds collectionID to the user's progress. Enrolling again returns the existing entry unchanged.
func (m *EnrollmentManager) Enroll(ctx context.Context, userID, collectionID string) (CollectionProgress, error) {
	if err := requireIDs("user_id", userID, "collection_id", collectionID); err != nil {
		return CollectionProgress{}, err
	}
	if _, err := stepsOf(ctx, m.contents, collectionID); err != nil {
		return CollectionProgress{}, err
	}

	cp, err := m.store.InsertCollectionIfAbsent(ctx, userID, collectionID, m.now())
	if err != nil {
		return CollectionProgress{}, fmt.Errorf("enroll %s in %s: %w", userID, collectionID, err)
	}
	slog.Default().Debug("Enrolled in collection",
		"user_id", userID,
		"collection_id", collectionID,
		"enrolled_at", cp.EnrolledAt)
	return cp, nil
}

func stepsOf(ctx context.Context, contents catalog.Catalog, collectionID string) ([]catalog.Step, error) {
	steps, err := contents.StepsOf(ctx, collectionID)
	if errors.Is(err, catalog.ErrCollectionNotFound) {
		return nil, newError(ErrNotFound, "collection %s", collectionID)
	}
	if err != nil {
		return nil, fmt.Errorf("look up collection %s: %w", collectionID, err)
	}
	return steps, nil
}
