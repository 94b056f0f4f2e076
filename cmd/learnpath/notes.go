package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/learnpath/internal/bootstrap"
	"github.com/at-ishikawa/learnpath/internal/catalog"
	"github.com/at-ishikawa/learnpath/internal/export"
	"github.com/at-ishikawa/learnpath/internal/progress"
)

func newNotesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Notes commands",
	}
	cmd.AddCommand(newNotesExportCommand())
	return cmd
}

func newNotesExportCommand() *cobra.Command {
	var userID, collectionID, outputDirectory, templatePath string
	var generatePDF bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the notes of a collection as Markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			opts := export.Options{
				OutputDirectory: outputDirectory,
				TemplatePath:    templatePath,
				GeneratePDF:     generatePDF,
			}
			if opts.OutputDirectory == "" {
				opts.OutputDirectory = cfg.Outputs.NotesDirectory
			}

			app := bootstrap.New()
			return app.Run(cmd.Context(), func(ctx context.Context) error {
				tracker, contents, err := openTracker(ctx, app, cfg)
				if err != nil {
					return err
				}
				var definitions collectionLookup
				if contents.Files != nil {
					definitions = contents.Files
				}
				return exportNotes(ctx, cmd.OutOrStdout(), tracker, definitions, userID, collectionID, opts)
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&collectionID, "collection", "", "collection id")
	cmd.Flags().StringVar(&outputDirectory, "output", "", "output directory (defaults to outputs.notes_directory of the config)")
	cmd.Flags().StringVar(&templatePath, "template", "", "markdown template file")
	cmd.Flags().BoolVar(&generatePDF, "pdf", false, "also generate a PDF")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("collection")
	return cmd
}

type collectionLookup interface {
	Collection(collectionID string) (catalog.Collection, bool)
}

func exportNotes(
	ctx context.Context,
	w io.Writer,
	tracker *progress.Tracker,
	definitions collectionLookup,
	userID, collectionID string,
	opts export.Options,
) error {
	p, err := tracker.GetProgress(ctx, userID)
	if err != nil {
		return fmt.Errorf("GetProgress(%s) > %w", userID, err)
	}
	cp := p.Collection(collectionID)
	if cp == nil {
		return fmt.Errorf("%s is not enrolled in %s: %w", userID, collectionID, progress.ErrNotEnrolled)
	}

	var definition *catalog.Collection
	if definitions != nil {
		if c, ok := definitions.Collection(collectionID); ok {
			definition = &c
		}
	}

	doc := export.BuildNotesDocument(userID, *cp, definition)
	paths, err := export.ExportNotes(doc, collectionID, opts)
	if err != nil {
		return fmt.Errorf("export.ExportNotes() > %w", err)
	}
	for _, path := range paths {
		if _, err := fmt.Fprintf(w, "Notes written to: %s\n", path); err != nil {
			return err
		}
	}
	return nil
}
