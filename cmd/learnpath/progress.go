package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"

	"connectrpc.com/connect"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/learnpath/internal/bootstrap"
	"github.com/at-ishikawa/learnpath/internal/progress"
	"github.com/at-ishikawa/learnpath/internal/server"
)

// progressSource reads progress either from the local store or from a running server.
type progressSource interface {
	GetProgress(ctx context.Context, userID string) (progress.UserProgress, error)
	GetCompletion(ctx context.Context, userID, collectionID string) (progress.CompletionReport, error)
}

type remoteProgress struct {
	client *server.ProgressServiceClient
}

func (r remoteProgress) GetProgress(ctx context.Context, userID string) (progress.UserProgress, error) {
	res, err := r.client.GetProgress(ctx, connect.NewRequest(&server.GetProgressRequest{UserID: userID}))
	if err != nil {
		return progress.UserProgress{}, err
	}
	return res.Msg.Progress, nil
}

func (r remoteProgress) GetCompletion(ctx context.Context, userID, collectionID string) (progress.CompletionReport, error) {
	res, err := r.client.GetCompletion(ctx, connect.NewRequest(&server.GetCompletionRequest{
		UserID:       userID,
		CollectionID: collectionID,
	}))
	if err != nil {
		return progress.CompletionReport{}, err
	}
	return res.Msg.Report, nil
}

func newProgressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Progress commands",
	}
	cmd.AddCommand(newProgressShowCommand())
	return cmd
}

func newProgressShowCommand() *cobra.Command {
	var userID, collectionID, serverURL string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the completion of a user's collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if serverURL != "" {
				source := remoteProgress{client: server.NewProgressServiceClient(http.DefaultClient, serverURL)}
				return showProgress(ctx, cmd.OutOrStdout(), source, userID, collectionID)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			app := bootstrap.New()
			return app.Run(ctx, func(ctx context.Context) error {
				tracker, _, err := openTracker(ctx, app, cfg)
				if err != nil {
					return err
				}
				return showProgress(ctx, cmd.OutOrStdout(), tracker, userID, collectionID)
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&collectionID, "collection", "", "collection id (defaults to every enrolled collection)")
	cmd.Flags().StringVar(&serverURL, "server", "", "read from a running learnpath-server instead of the local store")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func showProgress(ctx context.Context, w io.Writer, source progressSource, userID, collectionID string) error {
	p, err := source.GetProgress(ctx, userID)
	if err != nil {
		return fmt.Errorf("GetProgress(%s) > %w", userID, err)
	}

	var collectionIDs []string
	if collectionID != "" {
		collectionIDs = []string{collectionID}
	} else {
		for _, cp := range p.Collections {
			collectionIDs = append(collectionIDs, cp.CollectionID)
		}
		sort.Strings(collectionIDs)
	}
	if len(collectionIDs) == 0 {
		_, err := fmt.Fprintf(w, "%s is not enrolled in any collection\n", userID)
		return err
	}

	for _, id := range collectionIDs {
		report, err := source.GetCompletion(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("GetCompletion(%s, %s) > %w", userID, id, err)
		}
		if err := writeCompletion(w, report, p.Collection(id)); err != nil {
			return err
		}
	}
	if len(p.Achievements) > 0 {
		if _, err := fmt.Fprintf(w, "Achievements: %v\n", p.Achievements); err != nil {
			return err
		}
	}
	return nil
}

func writeCompletion(w io.Writer, report progress.CompletionReport, cp *progress.CollectionProgress) error {
	title := color.New(color.Bold)
	if cp != nil && cp.Bookmarked {
		title = color.New(color.Bold, color.FgYellow)
	}
	if _, err := title.Fprintf(w, "%s %s\n", report.CollectionID, formatPercent(report.Percent)); err != nil {
		return err
	}

	for _, step := range report.Steps {
		if _, err := fmt.Fprintf(w, "  %-20s %d/%d ", step.StepID, step.CompletedVideos, step.TotalVideos); err != nil {
			return err
		}
		if _, err := percentColor(step.Percent).Fprintln(w, formatPercent(step.Percent)); err != nil {
			return err
		}
	}
	return nil
}

func formatPercent(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

func percentColor(percent float64) *color.Color {
	switch {
	case percent >= 100:
		return color.New(color.FgGreen)
	case percent > 0:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgWhite)
	}
}
