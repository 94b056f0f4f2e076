// Package progress tracks per-user learning progress, notes and bookmarks.
package progress

import "time"

// UserProgress is the aggregate of everything recorded for one user.
type UserProgress struct {
	UserID       string               `yaml:"user_id" json:"user_id"`
	Collections  []CollectionProgress `yaml:"collections,omitempty" json:"collections"`
	Achievements []string             `yaml:"achievements,omitempty" json:"achievements"`
	Preferences  map[string]string    `yaml:"preferences,omitempty" json:"preferences"`
}

// Collection returns the entry for collectionID, or nil when the user is not enrolled.
func (p *UserProgress) Collection(collectionID string) *CollectionProgress {
	for i := range p.Collections {
		if p.Collections[i].CollectionID == collectionID {
			return &p.Collections[i]
		}
	}
	return nil
}

type CollectionProgress struct {
	CollectionID string         `yaml:"collection_id" json:"collection_id"`
	EnrolledAt   time.Time      `yaml:"enrolled_at" json:"enrolled_at"`
	Bookmarked   bool           `yaml:"bookmarked,omitempty" json:"bookmarked"`
	Steps        []StepProgress `yaml:"steps,omitempty" json:"steps"`
}

// Step returns the entry for stepID, or nil when the step has no activity.
func (c *CollectionProgress) Step(stepID string) *StepProgress {
	for i := range c.Steps {
		if c.Steps[i].StepID == stepID {
			return &c.Steps[i]
		}
	}
	return nil
}

type StepProgress struct {
	StepID string          `yaml:"step_id" json:"step_id"`
	Videos []VideoProgress `yaml:"videos,omitempty" json:"videos"`
}

// Video returns the entry for videoID, or nil when the video has no activity.
func (s *StepProgress) Video(videoID string) *VideoProgress {
	for i := range s.Videos {
		if s.Videos[i].VideoID == videoID {
			return &s.Videos[i]
		}
	}
	return nil
}

type VideoProgress struct {
	VideoID         string  `yaml:"video_id" json:"video_id"`
	WatchedDuration float64 `yaml:"watched_duration,omitempty" json:"watched_duration"`
	Completed       bool    `yaml:"completed,omitempty" json:"completed"`
	Bookmarked      bool    `yaml:"bookmarked,omitempty" json:"bookmarked"`
	TimeSpent       float64 `yaml:"time_spent,omitempty" json:"time_spent"`
	Notes           []Note  `yaml:"notes,omitempty" json:"notes"`
}

// State derives the lifecycle state of the video.
func (v VideoProgress) State() VideoState {
	switch {
	case v.Completed:
		return VideoStateCompleted
	case v.WatchedDuration > 0 || v.TimeSpent > 0:
		return VideoStateInProgress
	default:
		return VideoStateNotStarted
	}
}

// Note is a timestamped annotation on a video.
type Note struct {
	ID        string     `yaml:"id" json:"id"`
	Timestamp float64    `yaml:"timestamp" json:"timestamp"`
	Content   string     `yaml:"content" json:"content"`
	CreatedAt time.Time  `yaml:"created_at" json:"created_at"`
	UpdatedAt *time.Time `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type VideoState string

const (
	VideoStateNotStarted VideoState = "not_started"
	VideoStateInProgress VideoState = "in_progress"
	VideoStateCompleted  VideoState = "completed"
)

// VideoKey addresses a single video under a user's collection.
type VideoKey struct {
	UserID       string
	CollectionID string
	StepID       string
	VideoID      string
}

// NoteKey addresses a single note of a video.
type NoteKey struct {
	VideoKey
	NoteID string
}

// VideoUpdate is the payload of a video progress report.
type VideoUpdate struct {
	WatchedDuration float64
	Completed       bool
	TimeSpentDelta  float64
}
