package progress

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"
	"pgregory.net/rapid"

	"github.com/at-ishikawa/learnpath/internal/catalog"
	mock_catalog "github.com/at-ishikawa/learnpath/internal/mocks/catalog"
)

var scenarioCollection = catalog.Collection{
	ID: "C",
	Steps: []catalog.Step{
		{ID: "step1", Videos: []catalog.Video{{ID: "a"}, {ID: "b"}}},
		{ID: "step2", Videos: []catalog.Video{{ID: "c"}}},
	},
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingObserver struct {
	mu         sync.Mutex
	operations []string
	failures   map[string]int
	hits       int
	misses     int
}

func (o *recordingObserver) ObserveOperation(operation string, err error, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.operations = append(o.operations, operation)
	if err != nil {
		if o.failures == nil {
			o.failures = make(map[string]int)
		}
		o.failures[operation]++
	}
}

func (o *recordingObserver) ObserveCompletionCache(hit bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func newScenarioTracker(t *testing.T, opts ...TrackerOption) (*Tracker, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	opts = append([]TrackerOption{WithClock(clock.Now)}, opts...)
	return NewTracker(NewMemoryStore(), catalog.NewStaticCatalog(scenarioCollection), opts...), clock
}

func scenarioKey(stepID, videoID string) VideoKey {
	return VideoKey{UserID: "U", CollectionID: "C", StepID: stepID, VideoID: videoID}
}

func TestTracker_Enroll(t *testing.T) {
	tests := []struct {
		name         string
		userID       string
		collectionID string
		setup        func(contents *mock_catalog.MockCatalog)
		wantErr      error
		wantErrorMsg string
	}{
		{
			name:         "enrolls in a known collection",
			userID:       "U",
			collectionID: "C",
			setup: func(contents *mock_catalog.MockCatalog) {
				contents.EXPECT().StepsOf(gomock.Any(), "C").Return(scenarioCollection.Steps, nil)
			},
		},
		{
			name:         "unknown collection",
			userID:       "U",
			collectionID: "missing",
			setup: func(contents *mock_catalog.MockCatalog) {
				contents.EXPECT().StepsOf(gomock.Any(), "missing").
					Return(nil, fmt.Errorf("%w: missing", catalog.ErrCollectionNotFound))
			},
			wantErr: ErrNotFound,
		},
		{
			name:         "catalog failure is not reported as not found",
			userID:       "U",
			collectionID: "C",
			setup: func(contents *mock_catalog.MockCatalog) {
				contents.EXPECT().StepsOf(gomock.Any(), "C").Return(nil, errors.New("connection refused"))
			},
			wantErrorMsg: "look up collection C: connection refused",
		},
		{
			name:         "blank user id",
			userID:       " ",
			collectionID: "C",
			setup:        func(contents *mock_catalog.MockCatalog) {},
			wantErr:      ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			contents := mock_catalog.NewMockCatalog(ctrl)
			tt.setup(contents)
			clock := newFakeClock()
			tracker := NewTracker(NewMemoryStore(), contents, WithClock(clock.Now))

			got, err := tracker.Enroll(context.Background(), tt.userID, tt.collectionID)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrorMsg != "":
				assert.EqualError(t, err, tt.wantErrorMsg)
				assert.NotErrorIs(t, err, ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, CollectionProgress{CollectionID: "C", EnrolledAt: clock.Now()}, got)
			}
		})
	}
}

func TestTracker_Enroll_Idempotent(t *testing.T) {
	tracker, clock := newScenarioTracker(t)
	ctx := context.Background()

	first, err := tracker.Enroll(ctx, "U", "C")
	require.NoError(t, err)
	clock.Advance(time.Hour)
	second, err := tracker.Enroll(ctx, "U", "C")
	require.NoError(t, err)
	assert.Equal(t, first.EnrolledAt, second.EnrolledAt)

	p, err := tracker.GetProgress(ctx, "U")
	require.NoError(t, err)
	assert.Len(t, p.Collections, 1)
}

func TestTracker_UpdateVideo(t *testing.T) {
	tests := []struct {
		name            string
		enroll          bool
		key             VideoKey
		watchedDuration float64
		timeSpentDelta  float64
		wantErr         error
		wantField       string
	}{
		{
			name:            "records progress",
			enroll:          true,
			key:             scenarioKey("step1", "a"),
			watchedDuration: 42,
			timeSpentDelta:  10,
		},
		{
			name:            "not enrolled",
			key:             scenarioKey("step1", "a"),
			watchedDuration: 42,
			wantErr:         ErrNotEnrolled,
		},
		{
			name:            "negative watched duration",
			enroll:          true,
			key:             scenarioKey("step1", "a"),
			watchedDuration: -1,
			wantErr:         ErrInvalidArgument,
			wantField:       "watched_duration",
		},
		{
			name:            "negative time spent delta",
			enroll:          true,
			key:             scenarioKey("step1", "a"),
			watchedDuration: 1,
			timeSpentDelta:  -5,
			wantErr:         ErrInvalidArgument,
			wantField:       "time_spent_delta",
		},
		{
			name:            "NaN watched duration",
			enroll:          true,
			key:             scenarioKey("step1", "a"),
			watchedDuration: math.NaN(),
			wantErr:         ErrInvalidArgument,
			wantField:       "watched_duration",
		},
		{
			name:      "missing video id",
			enroll:    true,
			key:       scenarioKey("step1", ""),
			wantErr:   ErrInvalidArgument,
			wantField: "video_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker, _ := newScenarioTracker(t)
			ctx := context.Background()
			if tt.enroll {
				_, err := tracker.Enroll(ctx, "U", "C")
				require.NoError(t, err)
			}

			got, err := tracker.UpdateVideo(ctx, tt.key, tt.watchedDuration, false, tt.timeSpentDelta)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantField != "" {
					var progressErr *Error
					require.ErrorAs(t, err, &progressErr)
					assert.Equal(t, tt.wantField, progressErr.Field)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, VideoProgress{VideoID: tt.key.VideoID, WatchedDuration: tt.watchedDuration, TimeSpent: tt.timeSpentDelta}, got)
		})
	}
}

func TestTracker_UpdateVideo_SmallerWatchedDurationIsAccepted(t *testing.T) {
	tracker, _ := newScenarioTracker(t)
	ctx := context.Background()
	_, err := tracker.Enroll(ctx, "U", "C")
	require.NoError(t, err)

	_, err = tracker.UpdateVideo(ctx, scenarioKey("step1", "a"), 300, true, 300)
	require.NoError(t, err)
	got, err := tracker.UpdateVideo(ctx, scenarioKey("step1", "a"), 20, false, 20)
	require.NoError(t, err)

	assert.Equal(t, float64(20), got.WatchedDuration)
	assert.False(t, got.Completed)
	assert.Equal(t, float64(320), got.TimeSpent)
	assert.Equal(t, VideoStateInProgress, got.State())
}

func TestTracker_TimeSpentIsMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tracker, _ := newScenarioTracker(t)
		ctx := context.Background()
		if _, err := tracker.Enroll(ctx, "U", "C"); err != nil {
			rt.Fatalf("enroll: %v", err)
		}

		updates := rapid.IntRange(1, 20).Draw(rt, "updates")
		var previous float64
		for i := 0; i < updates; i++ {
			watched := rapid.Float64Range(0, 3600).Draw(rt, "watched")
			completed := rapid.Bool().Draw(rt, "completed")
			delta := rapid.Float64Range(0, 600).Draw(rt, "delta")

			vp, err := tracker.UpdateVideo(ctx, scenarioKey("step1", "a"), watched, completed, delta)
			if err != nil {
				rt.Fatalf("update: %v", err)
			}
			if vp.TimeSpent < previous {
				rt.Fatalf("time spent decreased from %v to %v", previous, vp.TimeSpent)
			}
			previous = vp.TimeSpent
		}
	})
}

func TestTracker_AddNoteScenario(t *testing.T) {
	tracker, clock := newScenarioTracker(t)
	ctx := context.Background()
	_, err := tracker.Enroll(ctx, "U", "C")
	require.NoError(t, err)

	_, err = tracker.AddNote(ctx, scenarioKey("step2", "c"), 30, "recap")
	require.NoError(t, err)

	p, err := tracker.GetProgress(ctx, "U")
	require.NoError(t, err)
	cp := p.Collection("C")
	require.NotNil(t, cp)
	step := cp.Step("step2")
	require.NotNil(t, step)
	video := step.Video("c")
	require.NotNil(t, video)
	require.Len(t, video.Notes, 1)

	note := video.Notes[0]
	assert.Equal(t, float64(30), note.Timestamp)
	assert.Equal(t, "recap", note.Content)
	assert.Equal(t, clock.Now(), note.CreatedAt)
	assert.Nil(t, note.UpdatedAt)
	assert.NotEmpty(t, note.ID)
}

func TestTracker_NoteErrors(t *testing.T) {
	tracker, _ := newScenarioTracker(t)
	ctx := context.Background()
	_, err := tracker.Enroll(ctx, "U", "C")
	require.NoError(t, err)
	note, err := tracker.AddNote(ctx, scenarioKey("step1", "a"), 5, "first")
	require.NoError(t, err)

	key := NoteKey{VideoKey: scenarioKey("step1", "a"), NoteID: note.ID}
	otherCollection := NoteKey{VideoKey: VideoKey{UserID: "U", CollectionID: "other", StepID: "s", VideoID: "v"}, NoteID: note.ID}

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name: "add blank content",
			run: func() error {
				_, err := tracker.AddNote(ctx, scenarioKey("step1", "a"), 1, " \n\t")
				return err
			},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "add negative timestamp",
			run: func() error {
				_, err := tracker.AddNote(ctx, scenarioKey("step1", "a"), -1, "x")
				return err
			},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "add without enrollment",
			run: func() error {
				_, err := tracker.AddNote(ctx, otherCollection.VideoKey, 1, "x")
				return err
			},
			wantErr: ErrNotEnrolled,
		},
		{
			name: "edit blank content",
			run: func() error {
				_, err := tracker.EditNote(ctx, key, "")
				return err
			},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "edit unknown note",
			run: func() error {
				_, err := tracker.EditNote(ctx, NoteKey{VideoKey: key.VideoKey, NoteID: "missing"}, "x")
				return err
			},
			wantErr: ErrNotFound,
		},
		{
			name: "edit without enrollment",
			run: func() error {
				_, err := tracker.EditNote(ctx, otherCollection, "x")
				return err
			},
			wantErr: ErrNotEnrolled,
		},
		{
			name: "delete unknown note",
			run: func() error {
				return tracker.DeleteNote(ctx, NoteKey{VideoKey: key.VideoKey, NoteID: "missing"})
			},
			wantErr: ErrNotFound,
		},
		{
			name: "delete on a video without entry",
			run: func() error {
				return tracker.DeleteNote(ctx, NoteKey{VideoKey: scenarioKey("step2", "c"), NoteID: note.ID})
			},
			wantErr: ErrNotFound,
		},
		{
			name: "delete without note id",
			run: func() error {
				return tracker.DeleteNote(ctx, NoteKey{VideoKey: key.VideoKey})
			},
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.wantErr)
		})
	}
}

func TestTracker_EditNote(t *testing.T) {
	tracker, clock := newScenarioTracker(t)
	ctx := context.Background()
	_, err := tracker.Enroll(ctx, "U", "C")
	require.NoError(t, err)
	note, err := tracker.AddNote(ctx, scenarioKey("step1", "a"), 5, "first")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	edited, err := tracker.EditNote(ctx, NoteKey{VideoKey: scenarioKey("step1", "a"), NoteID: note.ID}, "second")
	require.NoError(t, err)

	assert.Equal(t, note.ID, edited.ID)
	assert.Equal(t, note.CreatedAt, edited.CreatedAt)
	assert.Equal(t, "second", edited.Content)
	require.NotNil(t, edited.UpdatedAt)
	assert.Equal(t, clock.Now(), *edited.UpdatedAt)
}

func TestTracker_NoteRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tracker, _ := newScenarioTracker(t)
		ctx := context.Background()
		key := scenarioKey("step1", "a")
		if _, err := tracker.Enroll(ctx, "U", "C"); err != nil {
			rt.Fatalf("enroll: %v", err)
		}

		existing := rapid.IntRange(0, 5).Draw(rt, "existing")
		for i := 0; i < existing; i++ {
			content := rapid.StringMatching(`[a-z]{1,12}`).Draw(rt, "content")
			if _, err := tracker.AddNote(ctx, key, float64(i), content); err != nil {
				rt.Fatalf("add existing note: %v", err)
			}
		}
		before, err := tracker.GetProgress(ctx, "U")
		if err != nil {
			rt.Fatalf("get progress: %v", err)
		}

		note, err := tracker.AddNote(ctx, key, rapid.Float64Range(0, 600).Draw(rt, "timestamp"), "added")
		if err != nil {
			rt.Fatalf("add: %v", err)
		}
		noteKey := NoteKey{VideoKey: key, NoteID: note.ID}
		if _, err := tracker.EditNote(ctx, noteKey, rapid.StringMatching(`[a-z ]{0,8}[a-z]`).Draw(rt, "edit")); err != nil {
			rt.Fatalf("edit: %v", err)
		}
		if err := tracker.DeleteNote(ctx, noteKey); err != nil {
			rt.Fatalf("delete: %v", err)
		}

		after, err := tracker.GetProgress(ctx, "U")
		if err != nil {
			rt.Fatalf("get progress: %v", err)
		}
		beforeNotes := notesOf(before)
		afterNotes := notesOf(after)
		if diff := cmp.Diff(beforeNotes, afterNotes); diff != "" {
			rt.Fatalf("notes changed after round trip (-before +after):\n%s", diff)
		}
	})
}

func notesOf(p UserProgress) []Note {
	cp := p.Collection("C")
	if cp == nil {
		return nil
	}
	step := cp.Step("step1")
	if step == nil {
		return nil
	}
	video := step.Video("a")
	if video == nil {
		return nil
	}
	return video.Notes
}

func TestTracker_ToggleBookmark(t *testing.T) {
	tests := []struct {
		name    string
		enroll  bool
		scope   BookmarkScope
		target  BookmarkTarget
		wantErr error
	}{
		{name: "collection", enroll: true, scope: BookmarkScopeCollection, target: BookmarkTarget{CollectionID: "C"}},
		{name: "video", enroll: true, scope: BookmarkScopeVideo, target: BookmarkTarget{CollectionID: "C", StepID: "step1", VideoID: "b"}},
		{name: "unknown scope", enroll: true, scope: "step", target: BookmarkTarget{CollectionID: "C"}, wantErr: ErrInvalidArgument},
		{name: "video scope without video id", enroll: true, scope: BookmarkScopeVideo, target: BookmarkTarget{CollectionID: "C", StepID: "step1"}, wantErr: ErrInvalidArgument},
		{name: "collection scope without collection id", enroll: true, scope: BookmarkScopeCollection, wantErr: ErrInvalidArgument},
		{name: "collection scope not enrolled", scope: BookmarkScopeCollection, target: BookmarkTarget{CollectionID: "C"}, wantErr: ErrNotEnrolled},
		{name: "video scope not enrolled", scope: BookmarkScopeVideo, target: BookmarkTarget{CollectionID: "C", StepID: "step1", VideoID: "b"}, wantErr: ErrNotEnrolled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker, _ := newScenarioTracker(t)
			ctx := context.Background()
			if tt.enroll {
				_, err := tracker.Enroll(ctx, "U", "C")
				require.NoError(t, err)
			}

			first, err := tracker.ToggleBookmark(ctx, "U", tt.scope, tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, first)

			second, err := tracker.ToggleBookmark(ctx, "U", tt.scope, tt.target)
			require.NoError(t, err)
			assert.False(t, second)
		})
	}
}

func TestTracker_GetProgress_UnknownUser(t *testing.T) {
	tracker, _ := newScenarioTracker(t)
	got, err := tracker.GetProgress(context.Background(), "stranger")
	require.NoError(t, err)
	assert.Equal(t, UserProgress{UserID: "stranger"}, got)
}

func TestTracker_GetCompletion_Scenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	contents := mock_catalog.NewMockCatalog(ctrl)
	observer := &recordingObserver{}
	tracker := NewTracker(NewMemoryStore(), contents, WithObserver(observer))
	ctx := context.Background()

	// Once for enrollment, then once per cache miss.
	contents.EXPECT().StepsOf(gomock.Any(), "C").Return(scenarioCollection.Steps, nil).Times(4)

	_, err := tracker.Enroll(ctx, "U", "C")
	require.NoError(t, err)
	for _, v := range []string{"a", "b"} {
		_, err := tracker.UpdateVideo(ctx, scenarioKey("step1", v), 100, true, 100)
		require.NoError(t, err)
	}

	report, err := tracker.GetCompletion(ctx, "U", "C")
	require.NoError(t, err)
	assert.Equal(t, CompletionReport{
		CollectionID: "C",
		Steps: []StepReport{
			{StepID: "step1", CompletedVideos: 2, TotalVideos: 2, Percent: 100},
			{StepID: "step2", CompletedVideos: 0, TotalVideos: 1, Percent: 0},
		},
		Percent: 50,
	}, report)

	cached, err := tracker.GetCompletion(ctx, "U", "C")
	require.NoError(t, err)
	assert.Equal(t, report, cached)

	_, err = tracker.UpdateVideo(ctx, scenarioKey("step2", "c"), 10, true, 10)
	require.NoError(t, err)
	report, err = tracker.GetCompletion(ctx, "U", "C")
	require.NoError(t, err)
	assert.Equal(t, float64(100), report.Percent)

	tracker.InvalidateCompletions()
	_, err = tracker.GetCompletion(ctx, "U", "C")
	require.NoError(t, err)

	assert.Equal(t, 1, observer.hits)
	assert.Equal(t, 3, observer.misses)
}

func TestTracker_GetCompletion_Errors(t *testing.T) {
	tests := []struct {
		name    string
		enroll  bool
		setup   func(contents *mock_catalog.MockCatalog)
		wantErr error
	}{
		{
			name:    "not enrolled",
			setup:   func(contents *mock_catalog.MockCatalog) {},
			wantErr: ErrNotEnrolled,
		},
		{
			name:   "collection removed from the catalog",
			enroll: true,
			setup: func(contents *mock_catalog.MockCatalog) {
				contents.EXPECT().StepsOf(gomock.Any(), "C").Return(nil, catalog.ErrCollectionNotFound)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			contents := mock_catalog.NewMockCatalog(ctrl)
			store := NewMemoryStore()
			if tt.enroll {
				_, err := store.InsertCollectionIfAbsent(context.Background(), "U", "C", enrolledAt)
				require.NoError(t, err)
			}
			tt.setup(contents)

			_, err := NewTracker(store, contents).GetCompletion(context.Background(), "U", "C")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTracker_PreferencesAndAchievements(t *testing.T) {
	tracker, _ := newScenarioTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.SetPreference(ctx, "U", "playback_speed", "1.25"))
	require.NoError(t, tracker.GrantAchievement(ctx, "U", "first-step"))
	require.NoError(t, tracker.GrantAchievement(ctx, "U", "first-step"))
	assert.ErrorIs(t, tracker.SetPreference(ctx, "U", "", "x"), ErrInvalidArgument)
	assert.ErrorIs(t, tracker.GrantAchievement(ctx, "U", "  "), ErrInvalidArgument)

	got, err := tracker.GetProgress(ctx, "U")
	require.NoError(t, err)
	assert.Equal(t, UserProgress{
		UserID:       "U",
		Achievements: []string{"first-step"},
		Preferences:  map[string]string{"playback_speed": "1.25"},
	}, got)
}

func TestTracker_ObservesOperations(t *testing.T) {
	observer := &recordingObserver{}
	tracker, _ := newScenarioTracker(t, WithObserver(observer))
	ctx := context.Background()

	_, err := tracker.Enroll(ctx, "U", "C")
	require.NoError(t, err)
	_, err = tracker.UpdateVideo(ctx, scenarioKey("step1", "a"), -1, false, 0)
	require.Error(t, err)
	_, err = tracker.GetProgress(ctx, "U")
	require.NoError(t, err)

	assert.Equal(t, []string{OperationEnroll, OperationUpdateVideoProgress, OperationGetProgress}, observer.operations)
	assert.Equal(t, map[string]int{OperationUpdateVideoProgress: 1}, observer.failures)
}

func TestTracker_ConcurrentSessions(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	tracker, _ := newScenarioTracker(t)
	ctx := context.Background()
	_, err := tracker.Enroll(ctx, "U", "C")
	require.NoError(t, err)

	g, ctx := errgroup.WithContext(ctx)
	for _, video := range []struct{ step, id string }{{"step1", "a"}, {"step1", "b"}, {"step2", "c"}} {
		g.Go(func() error {
			for i := 0; i < 20; i++ {
				if _, err := tracker.UpdateVideo(ctx, scenarioKey(video.step, video.id), float64(i), i == 19, 1); err != nil {
					return err
				}
				if _, err := tracker.AddNote(ctx, scenarioKey(video.step, video.id), float64(i), "tab note"); err != nil {
					return err
				}
			}
			return nil
		})
		g.Go(func() error {
			_, err := tracker.GetCompletion(ctx, "U", "C")
			return err
		})
	}
	require.NoError(t, g.Wait())

	report, err := tracker.GetCompletion(context.Background(), "U", "C")
	require.NoError(t, err)
	assert.Equal(t, float64(100), report.Percent)

	p, err := tracker.GetProgress(context.Background(), "U")
	require.NoError(t, err)
	for _, step := range p.Collections[0].Steps {
		for _, v := range step.Videos {
			assert.Equal(t, float64(20), v.TimeSpent)
			assert.Len(t, v.Notes, 20)
		}
	}
}
