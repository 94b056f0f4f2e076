package server

import (
	"time"

	"github.com/at-ishikawa/learnpath/internal/progress"
)

type EnrollRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	CollectionID string `json:"collection_id" validate:"required"`
}

type EnrollResponse struct {
	Collection progress.CollectionProgress `json:"collection"`
}

type UpdateVideoProgressRequest struct {
	UserID          string  `json:"user_id" validate:"required"`
	CollectionID    string  `json:"collection_id" validate:"required"`
	StepID          string  `json:"step_id" validate:"required"`
	VideoID         string  `json:"video_id" validate:"required"`
	WatchedDuration float64 `json:"watched_duration" validate:"gte=0"`
	Completed       bool    `json:"completed"`
	TimeSpentDelta  float64 `json:"time_spent_delta" validate:"gte=0"`
}

type UpdateVideoProgressResponse struct {
	Video progress.VideoProgress `json:"video"`
}

type AddNoteRequest struct {
	UserID       string  `json:"user_id" validate:"required"`
	CollectionID string  `json:"collection_id" validate:"required"`
	StepID       string  `json:"step_id" validate:"required"`
	VideoID      string  `json:"video_id" validate:"required"`
	Timestamp    float64 `json:"timestamp" validate:"gte=0"`
	Content      string  `json:"content" validate:"required"`
}

type AddNoteResponse struct {
	Note progress.Note `json:"note"`
}

type EditNoteRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	CollectionID string `json:"collection_id" validate:"required"`
	StepID       string `json:"step_id" validate:"required"`
	VideoID      string `json:"video_id" validate:"required"`
	NoteID       string `json:"note_id" validate:"required"`
	Content      string `json:"content" validate:"required"`
}

type EditNoteResponse struct {
	Note progress.Note `json:"note"`
}

type DeleteNoteRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	CollectionID string `json:"collection_id" validate:"required"`
	StepID       string `json:"step_id" validate:"required"`
	VideoID      string `json:"video_id" validate:"required"`
	NoteID       string `json:"note_id" validate:"required"`
}

type DeleteNoteResponse struct{}

type ToggleBookmarkRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	Scope        string `json:"scope" validate:"required,oneof=collection video"`
	CollectionID string `json:"collection_id" validate:"required"`
	StepID       string `json:"step_id" validate:"required_if=Scope video"`
	VideoID      string `json:"video_id" validate:"required_if=Scope video"`
}

type ToggleBookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

type GetProgressRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type GetProgressResponse struct {
	Progress progress.UserProgress `json:"progress"`
}

type GetCompletionRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	CollectionID string `json:"collection_id" validate:"required"`
}

type GetCompletionResponse struct {
	Report progress.CompletionReport `json:"report"`
}

type SetPreferenceRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Key    string `json:"key" validate:"required"`
	Value  string `json:"value"`
}

type SetPreferenceResponse struct{}

type GrantAchievementRequest struct {
	UserID        string `json:"user_id" validate:"required"`
	AchievementID string `json:"achievement_id" validate:"required"`
}

type GrantAchievementResponse struct{}

// GetTaskMetricsRequest evaluates items at Now, or at the server time when Now is omitted.
type GetTaskMetricsRequest struct {
	Items []progress.TaskItem `json:"items"`
	Now   *time.Time          `json:"now,omitempty"`
}

type GetTaskMetricsResponse struct {
	Metrics progress.TaskMetrics `json:"metrics"`
}
