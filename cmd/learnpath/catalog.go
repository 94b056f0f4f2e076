package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/learnpath/internal/catalog"
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog commands",
	}
	cmd.AddCommand(newCatalogValidateCommand())
	return cmd
}

func newCatalogValidateCommand() *cobra.Command {
	var directory string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the collection definitions of a catalog directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if directory == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				directory = cfg.Catalog.Directory
			}

			collections, err := catalog.LoadCollections(directory, validator.New())
			if err != nil {
				_, _ = color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "Invalid catalog: %v\n", err)
				return fmt.Errorf("catalog.LoadCollections(%s) > %w", directory, err)
			}

			out := cmd.OutOrStdout()
			var videos int
			for _, c := range collections {
				videos += catalog.TotalVideos(c.Steps)
			}
			_, err = color.New(color.FgGreen).Fprintf(out, "%d collections, %d videos in %s\n", len(collections), videos, directory)
			return err
		},
	}
	cmd.Flags().StringVar(&directory, "directory", "", "catalog directory (defaults to catalog.directory of the config)")
	return cmd
}
