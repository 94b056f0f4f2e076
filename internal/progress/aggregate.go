package progress

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
)

// userAggregate is the in-memory form of UserProgress.
// Nodes are keyed by id, and order slices keep insertion order for snapshots.
type userAggregate struct {
	userID          string
	collectionOrder []string
	collections     map[string]*collectionNode
	achievements    map[string]struct{}
	preferences     map[string]string
}

type collectionNode struct {
	id         string
	enrolledAt time.Time
	bookmarked bool
	stepOrder  []string
	steps      map[string]*stepNode
}

type stepNode struct {
	id         string
	videoOrder []string
	videos     map[string]*videoNode
}

type videoNode struct {
	id              string
	watchedDuration float64
	completed       bool
	bookmarked      bool
	timeSpent       float64
	noteOrder       []string
	notes           map[string]*Note
}

func newUserAggregate(userID string) *userAggregate {
	return &userAggregate{
		userID:       userID,
		collections:  make(map[string]*collectionNode),
		achievements: make(map[string]struct{}),
		preferences:  make(map[string]string),
	}
}

// aggregateFromSnapshot rebuilds the indexed form of a persisted UserProgress.
func aggregateFromSnapshot(p UserProgress) *userAggregate {
	agg := newUserAggregate(p.UserID)
	for _, c := range p.Collections {
		cn := agg.insertCollection(c.CollectionID, c.EnrolledAt)
		cn.bookmarked = c.Bookmarked
		for _, s := range c.Steps {
			for _, v := range s.Videos {
				vn := cn.ensureVideo(s.StepID, v.VideoID)
				vn.watchedDuration = v.WatchedDuration
				vn.completed = v.Completed
				vn.bookmarked = v.Bookmarked
				vn.timeSpent = v.TimeSpent
				for _, n := range v.Notes {
					vn.appendNote(n)
				}
			}
			cn.ensureStep(s.StepID)
		}
	}
	for _, a := range p.Achievements {
		agg.achievements[a] = struct{}{}
	}
	for k, v := range p.Preferences {
		agg.preferences[k] = v
	}
	return agg
}

func (a *userAggregate) snapshot() UserProgress {
	p := UserProgress{UserID: a.userID}
	for _, id := range a.collectionOrder {
		p.Collections = append(p.Collections, a.collections[id].snapshot())
	}
	if len(a.achievements) > 0 {
		for id := range a.achievements {
			p.Achievements = append(p.Achievements, id)
		}
		sort.Strings(p.Achievements)
	}
	if len(a.preferences) > 0 {
		p.Preferences = make(map[string]string, len(a.preferences))
		for k, v := range a.preferences {
			p.Preferences[k] = v
		}
	}
	return p
}

func (a *userAggregate) collection(collectionID string) (*collectionNode, error) {
	c, ok := a.collections[collectionID]
	if !ok {
		return nil, notEnrolled(a.userID, collectionID)
	}
	return c, nil
}

func (a *userAggregate) insertCollection(collectionID string, enrolledAt time.Time) *collectionNode {
	if c, ok := a.collections[collectionID]; ok {
		return c
	}
	c := &collectionNode{
		id:         collectionID,
		enrolledAt: enrolledAt,
		steps:      make(map[string]*stepNode),
	}
	a.collections[collectionID] = c
	a.collectionOrder = append(a.collectionOrder, collectionID)
	return c
}

func (c *collectionNode) snapshot() CollectionProgress {
	cp := CollectionProgress{
		CollectionID: c.id,
		EnrolledAt:   c.enrolledAt,
		Bookmarked:   c.bookmarked,
	}
	for _, id := range c.stepOrder {
		cp.Steps = append(cp.Steps, c.steps[id].snapshot())
	}
	return cp
}

func (c *collectionNode) ensureStep(stepID string) *stepNode {
	if s, ok := c.steps[stepID]; ok {
		return s
	}
	s := &stepNode{id: stepID, videos: make(map[string]*videoNode)}
	c.steps[stepID] = s
	c.stepOrder = append(c.stepOrder, stepID)
	return s
}

func (c *collectionNode) ensureVideo(stepID, videoID string) *videoNode {
	s := c.ensureStep(stepID)
	if v, ok := s.videos[videoID]; ok {
		return v
	}
	v := &videoNode{id: videoID, notes: make(map[string]*Note)}
	s.videos[videoID] = v
	s.videoOrder = append(s.videoOrder, videoID)
	return v
}

func (c *collectionNode) video(stepID, videoID string) (*videoNode, bool) {
	s, ok := c.steps[stepID]
	if !ok {
		return nil, false
	}
	v, ok := s.videos[videoID]
	return v, ok
}

func (s *stepNode) snapshot() StepProgress {
	sp := StepProgress{StepID: s.id}
	for _, id := range s.videoOrder {
		sp.Videos = append(sp.Videos, s.videos[id].snapshot())
	}
	return sp
}

func (v *videoNode) snapshot() VideoProgress {
	vp := VideoProgress{
		VideoID:         v.id,
		WatchedDuration: v.watchedDuration,
		Completed:       v.completed,
		Bookmarked:      v.bookmarked,
		TimeSpent:       v.timeSpent,
	}
	for _, id := range v.noteOrder {
		vp.Notes = append(vp.Notes, cloneNote(*v.notes[id]))
	}
	return vp
}

func (v *videoNode) appendNote(n Note) {
	stored := cloneNote(n)
	v.notes[n.ID] = &stored
	v.noteOrder = append(v.noteOrder, n.ID)
}

func (v *videoNode) removeNote(noteID string) bool {
	if _, ok := v.notes[noteID]; !ok {
		return false
	}
	delete(v.notes, noteID)
	if i := slices.Index(v.noteOrder, noteID); i >= 0 {
		v.noteOrder = slices.Delete(v.noteOrder, i, i+1)
	}
	return true
}

func cloneNote(n Note) Note {
	if n.UpdatedAt != nil {
		updatedAt := *n.UpdatedAt
		n.UpdatedAt = &updatedAt
	}
	return n
}

// aggregateBackend serializes access to one user's aggregate.
// update persists the aggregate only when fn succeeds.
type aggregateBackend interface {
	view(ctx context.Context, userID string, fn func(*userAggregate) error) error
	update(ctx context.Context, userID string, fn func(*userAggregate) error) error
}

// aggregateStore implements Store on top of an aggregateBackend.
type aggregateStore struct {
	backend aggregateBackend
	newID   func() string
}

func newAggregateStore(backend aggregateBackend) aggregateStore {
	return aggregateStore{backend: backend, newID: uuid.NewString}
}

func (s *aggregateStore) GetUserProgress(ctx context.Context, userID string) (UserProgress, error) {
	var p UserProgress
	err := s.backend.view(ctx, userID, func(a *userAggregate) error {
		p = a.snapshot()
		return nil
	})
	return p, err
}

func (s *aggregateStore) GetCollection(ctx context.Context, userID, collectionID string) (CollectionProgress, error) {
	var cp CollectionProgress
	err := s.backend.view(ctx, userID, func(a *userAggregate) error {
		c, err := a.collection(collectionID)
		if err != nil {
			return err
		}
		cp = c.snapshot()
		return nil
	})
	return cp, err
}

func (s *aggregateStore) InsertCollectionIfAbsent(ctx context.Context, userID, collectionID string, enrolledAt time.Time) (CollectionProgress, error) {
	var cp CollectionProgress
	err := s.backend.update(ctx, userID, func(a *userAggregate) error {
		cp = a.insertCollection(collectionID, enrolledAt).snapshot()
		return nil
	})
	return cp, err
}

func (s *aggregateStore) UpsertVideoProgress(ctx context.Context, key VideoKey, update VideoUpdate) (VideoProgress, error) {
	var vp VideoProgress
	err := s.backend.update(ctx, key.UserID, func(a *userAggregate) error {
		c, err := a.collection(key.CollectionID)
		if err != nil {
			return err
		}
		v := c.ensureVideo(key.StepID, key.VideoID)
		v.watchedDuration = update.WatchedDuration
		v.completed = update.Completed
		v.timeSpent += update.TimeSpentDelta
		vp = v.snapshot()
		return nil
	})
	return vp, err
}

func (s *aggregateStore) InsertNote(ctx context.Context, key VideoKey, note Note) (Note, error) {
	note.ID = s.newID()
	err := s.backend.update(ctx, key.UserID, func(a *userAggregate) error {
		c, err := a.collection(key.CollectionID)
		if err != nil {
			return err
		}
		c.ensureVideo(key.StepID, key.VideoID).appendNote(note)
		return nil
	})
	if err != nil {
		return Note{}, err
	}
	return note, nil
}

func (s *aggregateStore) UpdateNote(ctx context.Context, key NoteKey, content string, updatedAt time.Time) (Note, error) {
	var updated Note
	err := s.backend.update(ctx, key.UserID, func(a *userAggregate) error {
		c, err := a.collection(key.CollectionID)
		if err != nil {
			return err
		}
		v, ok := c.video(key.StepID, key.VideoID)
		if !ok {
			return noteNotFound(key)
		}
		n, ok := v.notes[key.NoteID]
		if !ok {
			return noteNotFound(key)
		}
		n.Content = content
		n.UpdatedAt = &updatedAt
		updated = cloneNote(*n)
		return nil
	})
	return updated, err
}

func (s *aggregateStore) DeleteNote(ctx context.Context, key NoteKey) error {
	return s.backend.update(ctx, key.UserID, func(a *userAggregate) error {
		c, err := a.collection(key.CollectionID)
		if err != nil {
			return err
		}
		v, ok := c.video(key.StepID, key.VideoID)
		if !ok || !v.removeNote(key.NoteID) {
			return noteNotFound(key)
		}
		return nil
	})
}

func (s *aggregateStore) ToggleCollectionBookmark(ctx context.Context, userID, collectionID string) (bool, error) {
	var bookmarked bool
	err := s.backend.update(ctx, userID, func(a *userAggregate) error {
		c, err := a.collection(collectionID)
		if err != nil {
			return err
		}
		c.bookmarked = !c.bookmarked
		bookmarked = c.bookmarked
		return nil
	})
	return bookmarked, err
}

func (s *aggregateStore) ToggleVideoBookmark(ctx context.Context, key VideoKey) (bool, error) {
	var bookmarked bool
	err := s.backend.update(ctx, key.UserID, func(a *userAggregate) error {
		c, err := a.collection(key.CollectionID)
		if err != nil {
			return err
		}
		v := c.ensureVideo(key.StepID, key.VideoID)
		v.bookmarked = !v.bookmarked
		bookmarked = v.bookmarked
		return nil
	})
	return bookmarked, err
}

func (s *aggregateStore) SetPreference(ctx context.Context, userID, key, value string) error {
	return s.backend.update(ctx, userID, func(a *userAggregate) error {
		a.preferences[key] = value
		return nil
	})
}

func (s *aggregateStore) AddAchievement(ctx context.Context, userID, achievementID string, _ time.Time) error {
	return s.backend.update(ctx, userID, func(a *userAggregate) error {
		a.achievements[achievementID] = struct{}{}
		return nil
	})
}
