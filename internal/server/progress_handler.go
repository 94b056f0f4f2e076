package server

import (
	"context"
	"fmt"
	"time"

	"connectrpc.com/connect"

	"github.com/at-ishikawa/learnpath/internal/progress"
)

// ProgressHandler implements the progress service on top of a Tracker.
type ProgressHandler struct {
	tracker   *progress.Tracker
	validator *requestValidator
	now       func() time.Time
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(tracker *progress.Tracker) (*ProgressHandler, error) {
	v, err := newRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("newRequestValidator() > %w", err)
	}
	return &ProgressHandler{
		tracker:   tracker,
		validator: v,
		now:       time.Now,
	}, nil
}

func (h *ProgressHandler) Enroll(ctx context.Context, req *connect.Request[EnrollRequest]) (*connect.Response[EnrollResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}
	cp, err := h.tracker.Enroll(ctx, req.Msg.UserID, req.Msg.CollectionID)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&EnrollResponse{Collection: cp}), nil
}

func (h *ProgressHandler) UpdateVideoProgress(ctx context.Context, req *connect.Request[UpdateVideoProgressRequest]) (*connect.Response[UpdateVideoProgressResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}
	msg := req.Msg
	key := progress.VideoKey{
		UserID:       msg.UserID,
		CollectionID: msg.CollectionID,
		StepID:       msg.StepID,
		VideoID:      msg.VideoID,
	}
	vp, err := h.tracker.UpdateVideo(ctx, key, msg.WatchedDuration, msg.Completed, msg.TimeSpentDelta)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&UpdateVideoProgressResponse{Video: vp}), nil
}

func (h *ProgressHandler) AddNote(ctx context.Context, req *connect.Request[AddNoteRequest]) (*connect.Response[AddNoteResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}
	msg := req.Msg
	key := progress.VideoKey{
		UserID:       msg.UserID,
		CollectionID: msg.CollectionID,
		StepID:       msg.StepID,
		VideoID:      msg.VideoID,
	}
	note, err := h.tracker.AddNote(ctx, key, msg.Timestamp, msg.Content)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&AddNoteResponse{Note: note}), nil
}

func (h *ProgressHandler) EditNote(ctx context.Context, req *connect.Request[EditNoteRequest]) (*connect.Response[EditNoteResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}
	msg := req.Msg
	note, err := h.tracker.EditNote(ctx, noteKey(msg.UserID, msg.CollectionID, msg.StepID, msg.VideoID, msg.NoteID), msg.Content)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&EditNoteResponse{Note: note}), nil
}

func (h *ProgressHandler) DeleteNote(ctx context.Context, req *connect.Request[DeleteNoteRequest]) (*connect.Response[DeleteNoteResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}
	msg := req.Msg
	if err := h.tracker.DeleteNote(ctx, noteKey(msg.UserID, msg.CollectionID, msg.StepID, msg.VideoID, msg.NoteID)); err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&DeleteNoteResponse{}), nil
}

func (h *ProgressHandler) ToggleBookmark(ctx context.Context, req *connect.Request[ToggleBookmarkRequest]) (*connect.Response[ToggleBookmarkResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}
	msg := req.Msg
	target := progress.BookmarkTarget{
		CollectionID: msg.CollectionID,
		StepID:       msg.StepID,
		VideoID:      msg.VideoID,
	}
	bookmarked, err := h.tracker.ToggleBookmark(ctx, msg.UserID, progress.BookmarkScope(msg.Scope), target)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&ToggleBookmarkResponse{Bookmarked: bookmarked}), nil
}

func (h *ProgressHandler) GetProgress(ctx context.Context, req *connect.Request[GetProgressRequest]) (*connect.Response[GetProgressResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}
	p, err := h.tracker.GetProgress(ctx, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&GetProgressResponse{Progress: p}), nil
}

func (h *ProgressHandler) GetCompletion(ctx context.Context, req *connect.Request[GetCompletionRequest]) (*connect.Response[GetCompletionResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}
	report, err := h.tracker.GetCompletion(ctx, req.Msg.UserID, req.Msg.CollectionID)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&GetCompletionResponse{Report: report}), nil
}

func (h *ProgressHandler) SetPreference(ctx context.Context, req *connect.Request[SetPreferenceRequest]) (*connect.Response[SetPreferenceResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := h.tracker.SetPreference(ctx, req.Msg.UserID, req.Msg.Key, req.Msg.Value); err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&SetPreferenceResponse{}), nil
}

func (h *ProgressHandler) GrantAchievement(ctx context.Context, req *connect.Request[GrantAchievementRequest]) (*connect.Response[GrantAchievementResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := h.tracker.GrantAchievement(ctx, req.Msg.UserID, req.Msg.AchievementID); err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&GrantAchievementResponse{}), nil
}

func (h *ProgressHandler) GetTaskMetrics(_ context.Context, req *connect.Request[GetTaskMetricsRequest]) (*connect.Response[GetTaskMetricsResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}
	now := h.now()
	if req.Msg.Now != nil {
		now = *req.Msg.Now
	}
	metrics := progress.CalculateTaskMetrics(req.Msg.Items, now)
	return connect.NewResponse(&GetTaskMetricsResponse{Metrics: metrics}), nil
}

func noteKey(userID, collectionID, stepID, videoID, noteID string) progress.NoteKey {
	return progress.NoteKey{
		VideoKey: progress.VideoKey{
			UserID:       userID,
			CollectionID: collectionID,
			StepID:       stepID,
			VideoID:      videoID,
		},
		NoteID: noteID,
	}
}
