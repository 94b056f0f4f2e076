// Package server provides Connect RPC handlers for the progress service.
package server

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const ProgressServiceName = "learnpath.v1.ProgressService"

const (
	ProgressServiceEnrollProcedure              = "/learnpath.v1.ProgressService/Enroll"
	ProgressServiceUpdateVideoProgressProcedure = "/learnpath.v1.ProgressService/UpdateVideoProgress"
	ProgressServiceAddNoteProcedure             = "/learnpath.v1.ProgressService/AddNote"
	ProgressServiceEditNoteProcedure            = "/learnpath.v1.ProgressService/EditNote"
	ProgressServiceDeleteNoteProcedure          = "/learnpath.v1.ProgressService/DeleteNote"
	ProgressServiceToggleBookmarkProcedure      = "/learnpath.v1.ProgressService/ToggleBookmark"
	ProgressServiceGetProgressProcedure         = "/learnpath.v1.ProgressService/GetProgress"
	ProgressServiceGetCompletionProcedure       = "/learnpath.v1.ProgressService/GetCompletion"
	ProgressServiceSetPreferenceProcedure       = "/learnpath.v1.ProgressService/SetPreference"
	ProgressServiceGrantAchievementProcedure    = "/learnpath.v1.ProgressService/GrantAchievement"
	ProgressServiceGetTaskMetricsProcedure      = "/learnpath.v1.ProgressService/GetTaskMetrics"
)

// NewProgressServiceHandler builds an HTTP handler serving every procedure of the service.
// It returns the path to mount the handler on.
func NewProgressServiceHandler(h *ProgressHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ProgressServiceEnrollProcedure, connect.NewUnaryHandler(ProgressServiceEnrollProcedure, h.Enroll, opts...))
	mux.Handle(ProgressServiceUpdateVideoProgressProcedure, connect.NewUnaryHandler(ProgressServiceUpdateVideoProgressProcedure, h.UpdateVideoProgress, opts...))
	mux.Handle(ProgressServiceAddNoteProcedure, connect.NewUnaryHandler(ProgressServiceAddNoteProcedure, h.AddNote, opts...))
	mux.Handle(ProgressServiceEditNoteProcedure, connect.NewUnaryHandler(ProgressServiceEditNoteProcedure, h.EditNote, opts...))
	mux.Handle(ProgressServiceDeleteNoteProcedure, connect.NewUnaryHandler(ProgressServiceDeleteNoteProcedure, h.DeleteNote, opts...))
	mux.Handle(ProgressServiceToggleBookmarkProcedure, connect.NewUnaryHandler(ProgressServiceToggleBookmarkProcedure, h.ToggleBookmark, opts...))
	mux.Handle(ProgressServiceGetProgressProcedure, connect.NewUnaryHandler(ProgressServiceGetProgressProcedure, h.GetProgress, opts...))
	mux.Handle(ProgressServiceGetCompletionProcedure, connect.NewUnaryHandler(ProgressServiceGetCompletionProcedure, h.GetCompletion, opts...))
	mux.Handle(ProgressServiceSetPreferenceProcedure, connect.NewUnaryHandler(ProgressServiceSetPreferenceProcedure, h.SetPreference, opts...))
	mux.Handle(ProgressServiceGrantAchievementProcedure, connect.NewUnaryHandler(ProgressServiceGrantAchievementProcedure, h.GrantAchievement, opts...))
	mux.Handle(ProgressServiceGetTaskMetricsProcedure, connect.NewUnaryHandler(ProgressServiceGetTaskMetricsProcedure, h.GetTaskMetrics, opts...))
	return "/" + ProgressServiceName + "/", mux
}

// ProgressServiceClient calls the service over Connect with the JSON codec.
type ProgressServiceClient struct {
	enroll              *connect.Client[EnrollRequest, EnrollResponse]
	updateVideoProgress *connect.Client[UpdateVideoProgressRequest, UpdateVideoProgressResponse]
	addNote             *connect.Client[AddNoteRequest, AddNoteResponse]
	editNote            *connect.Client[EditNoteRequest, EditNoteResponse]
	deleteNote          *connect.Client[DeleteNoteRequest, DeleteNoteResponse]
	toggleBookmark      *connect.Client[ToggleBookmarkRequest, ToggleBookmarkResponse]
	getProgress         *connect.Client[GetProgressRequest, GetProgressResponse]
	getCompletion       *connect.Client[GetCompletionRequest, GetCompletionResponse]
	setPreference       *connect.Client[SetPreferenceRequest, SetPreferenceResponse]
	grantAchievement    *connect.Client[GrantAchievementRequest, GrantAchievementResponse]
	getTaskMetrics      *connect.Client[GetTaskMetricsRequest, GetTaskMetricsResponse]
}

func NewProgressServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ProgressServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &ProgressServiceClient{
		enroll:              connect.NewClient[EnrollRequest, EnrollResponse](httpClient, baseURL+ProgressServiceEnrollProcedure, opts...),
		updateVideoProgress: connect.NewClient[UpdateVideoProgressRequest, UpdateVideoProgressResponse](httpClient, baseURL+ProgressServiceUpdateVideoProgressProcedure, opts...),
		addNote:             connect.NewClient[AddNoteRequest, AddNoteResponse](httpClient, baseURL+ProgressServiceAddNoteProcedure, opts...),
		editNote:            connect.NewClient[EditNoteRequest, EditNoteResponse](httpClient, baseURL+ProgressServiceEditNoteProcedure, opts...),
		deleteNote:          connect.NewClient[DeleteNoteRequest, DeleteNoteResponse](httpClient, baseURL+ProgressServiceDeleteNoteProcedure, opts...),
		toggleBookmark:      connect.NewClient[ToggleBookmarkRequest, ToggleBookmarkResponse](httpClient, baseURL+ProgressServiceToggleBookmarkProcedure, opts...),
		getProgress:         connect.NewClient[GetProgressRequest, GetProgressResponse](httpClient, baseURL+ProgressServiceGetProgressProcedure, opts...),
		getCompletion:       connect.NewClient[GetCompletionRequest, GetCompletionResponse](httpClient, baseURL+ProgressServiceGetCompletionProcedure, opts...),
		setPreference:       connect.NewClient[SetPreferenceRequest, SetPreferenceResponse](httpClient, baseURL+ProgressServiceSetPreferenceProcedure, opts...),
		grantAchievement:    connect.NewClient[GrantAchievementRequest, GrantAchievementResponse](httpClient, baseURL+ProgressServiceGrantAchievementProcedure, opts...),
		getTaskMetrics:      connect.NewClient[GetTaskMetricsRequest, GetTaskMetricsResponse](httpClient, baseURL+ProgressServiceGetTaskMetricsProcedure, opts...),
	}
}

func (c *ProgressServiceClient) Enroll(ctx context.Context, req *connect.Request[EnrollRequest]) (*connect.Response[EnrollResponse], error) {
	return c.enroll.CallUnary(ctx, req)
}

func (c *ProgressServiceClient) UpdateVideoProgress(ctx context.Context, req *connect.Request[UpdateVideoProgressRequest]) (*connect.Response[UpdateVideoProgressResponse], error) {
	return c.updateVideoProgress.CallUnary(ctx, req)
}

func (c *ProgressServiceClient) AddNote(ctx context.Context, req *connect.Request[AddNoteRequest]) (*connect.Response[AddNoteResponse], error) {
	return c.addNote.CallUnary(ctx, req)
}

func (c *ProgressServiceClient) EditNote(ctx context.Context, req *connect.Request[EditNoteRequest]) (*connect.Response[EditNoteResponse], error) {
	return c.editNote.CallUnary(ctx, req)
}

func (c *ProgressServiceClient) DeleteNote(ctx context.Context, req *connect.Request[DeleteNoteRequest]) (*connect.Response[DeleteNoteResponse], error) {
	return c.deleteNote.CallUnary(ctx, req)
}

func (c *ProgressServiceClient) ToggleBookmark(ctx context.Context, req *connect.Request[ToggleBookmarkRequest]) (*connect.Response[ToggleBookmarkResponse], error) {
	return c.toggleBookmark.CallUnary(ctx, req)
}

func (c *ProgressServiceClient) GetProgress(ctx context.Context, req *connect.Request[GetProgressRequest]) (*connect.Response[GetProgressResponse], error) {
	return c.getProgress.CallUnary(ctx, req)
}

func (c *ProgressServiceClient) GetCompletion(ctx context.Context, req *connect.Request[GetCompletionRequest]) (*connect.Response[GetCompletionResponse], error) {
	return c.getCompletion.CallUnary(ctx, req)
}

func (c *ProgressServiceClient) SetPreference(ctx context.Context, req *connect.Request[SetPreferenceRequest]) (*connect.Response[SetPreferenceResponse], error) {
	return c.setPreference.CallUnary(ctx, req)
}

func (c *ProgressServiceClient) GrantAchievement(ctx context.Context, req *connect.Request[GrantAchievementRequest]) (*connect.Response[GrantAchievementResponse], error) {
	return c.grantAchievement.CallUnary(ctx, req)
}

func (c *ProgressServiceClient) GetTaskMetrics(ctx context.Context, req *connect.Request[GetTaskMetricsRequest]) (*connect.Response[GetTaskMetricsResponse], error) {
	return c.getTaskMetrics.CallUnary(ctx, req)
}
