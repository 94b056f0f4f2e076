package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/learnpath/internal/catalog"
)

// Operation names reported to the Observer.
const (
	OperationEnroll              = "enroll"
	OperationUpdateVideoProgress = "update_video_progress"
	OperationAddNote             = "add_note"
	OperationEditNote            = "edit_note"
	OperationDeleteNote          = "delete_note"
	OperationToggleBookmark      = "toggle_bookmark"
	OperationGetProgress         = "get_progress"
	OperationGetCompletion       = "get_completion"
	OperationSetPreference       = "set_preference"
	OperationGrantAchievement    = "grant_achievement"
)

// Observer receives the outcome of every Tracker operation.
type Observer interface {
	ObserveOperation(operation string, err error, elapsed time.Duration)
	ObserveCompletionCache(hit bool)
}

type noopObserver struct{}

func (noopObserver) ObserveOperation(string, error, time.Duration) {}
func (noopObserver) ObserveCompletionCache(bool)                   {}

// Tracker is the entry point for all progress operations.
type Tracker struct {
	store    Store
	contents catalog.Catalog
	clock    func() time.Time
	observer Observer
	cache    *completionCache

	enrollment  *EnrollmentManager
	videos      *VideoProgressTracker
	annotations *AnnotationManager
	bookmarks   *BookmarkManager
}

type TrackerOption func(*Tracker)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.clock = clock
	}
}

func WithObserver(observer Observer) TrackerOption {
	return func(t *Tracker) {
		t.observer = observer
	}
}

func NewTracker(store Store, contents catalog.Catalog, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store:    store,
		contents: contents,
		clock:    time.Now,
		observer: noopObserver{},
		cache:    newCompletionCache(),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.enrollment = NewEnrollmentManager(store, contents, t.now)
	t.videos = NewVideoProgressTracker(store, t.cache.invalidate)
	t.annotations = NewAnnotationManager(store, t.now)
	t.bookmarks = NewBookmarkManager(store)
	return t
}

// now is stored with millisecond precision by every Store.
func (t *Tracker) now() time.Time {
	return t.clock().UTC().Truncate(time.Millisecond)
}

func (t *Tracker) observe(operation string, start time.Time, err *error) {
	t.observer.ObserveOperation(operation, *err, time.Since(start))
}

func (t *Tracker) Enroll(ctx context.Context, userID, collectionID string) (cp CollectionProgress, err error) {
	defer t.observe(OperationEnroll, time.Now(), &err)
	return t.enrollment.Enroll(ctx, userID, collectionID)
}

func (t *Tracker) UpdateVideo(ctx context.Context, key VideoKey, watchedDuration float64, completed bool, timeSpentDelta float64) (vp VideoProgress, err error) {
	defer t.observe(OperationUpdateVideoProgress, time.Now(), &err)
	return t.videos.UpdateVideo(ctx, key, watchedDuration, completed, timeSpentDelta)
}

func (t *Tracker) AddNote(ctx context.Context, key VideoKey, timestamp float64, content string) (note Note, err error) {
	defer t.observe(OperationAddNote, time.Now(), &err)
	return t.annotations.AddNote(ctx, key, timestamp, content)
}

func (t *Tracker) EditNote(ctx context.Context, key NoteKey, content string) (note Note, err error) {
	defer t.observe(OperationEditNote, time.Now(), &err)
	return t.annotations.EditNote(ctx, key, content)
}

func (t *Tracker) DeleteNote(ctx context.Context, key NoteKey) (err error) {
	defer t.observe(OperationDeleteNote, time.Now(), &err)
	return t.annotations.DeleteNote(ctx, key)
}

func (t *Tracker) ToggleBookmark(ctx context.Context, userID string, scope BookmarkScope, target BookmarkTarget) (bookmarked bool, err error) {
	defer t.observe(OperationToggleBookmark, time.Now(), &err)
	return t.bookmarks.ToggleBookmark(ctx, userID, scope, target)
}

// GetProgress returns the full snapshot of a user. Unknown users get an empty UserProgress.
func (t *Tracker) GetProgress(ctx context.Context, userID string) (p UserProgress, err error) {
	defer t.observe(OperationGetProgress, time.Now(), &err)
	if err := requireIDs("user_id", userID); err != nil {
		return UserProgress{}, err
	}
	p, err = t.store.GetUserProgress(ctx, userID)
	if err != nil {
		return UserProgress{}, fmt.Errorf("get progress of %s: %w", userID, err)
	}
	return p, nil
}

// GetCompletion returns the completion report of an enrolled collection.
func (t *Tracker) GetCompletion(ctx context.Context, userID, collectionID string) (report CompletionReport, err error) {
	defer t.observe(OperationGetCompletion, time.Now(), &err)
	if err := requireIDs("user_id", userID, "collection_id", collectionID); err != nil {
		return CompletionReport{}, err
	}

	key := cacheKey{userID: userID, collectionID: collectionID}
	cached, version, ok := t.cache.get(key)
	t.observer.ObserveCompletionCache(ok)
	if ok {
		return cached, nil
	}

	cp, err := t.store.GetCollection(ctx, userID, collectionID)
	if err != nil {
		return CompletionReport{}, err
	}
	steps, err := stepsOf(ctx, t.contents, collectionID)
	if err != nil {
		return CompletionReport{}, err
	}

	report = CollectionReport(&cp, steps)
	t.cache.put(key, version, report)
	slog.Default().Debug("Computed completion",
		"user_id", userID,
		"collection_id", collectionID,
		"percent", report.Percent)
	return report, nil
}

func (t *Tracker) SetPreference(ctx context.Context, userID, key, value string) (err error) {
	defer t.observe(OperationSetPreference, time.Now(), &err)
	if err := requireIDs("user_id", userID, "key", key); err != nil {
		return err
	}
	return t.store.SetPreference(ctx, userID, key, value)
}

// GrantAchievement adds achievementID to the user's achievements. Granting twice is a no-op.
func (t *Tracker) GrantAchievement(ctx context.Context, userID, achievementID string) (err error) {
	defer t.observe(OperationGrantAchievement, time.Now(), &err)
	if err := requireIDs("user_id", userID, "achievement_id", achievementID); err != nil {
		return err
	}
	return t.store.AddAchievement(ctx, userID, achievementID, t.now())
}

// InvalidateCompletions drops every cached completion report, e.g. after the catalog changed.
func (t *Tracker) InvalidateCompletions() {
	t.cache.invalidateAll()
}
