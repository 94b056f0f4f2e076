// Package export renders a learner's notes into Markdown and PDF documents.
package export

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/at-ishikawa/learnpath/internal/catalog"
	"github.com/at-ishikawa/learnpath/internal/progress"
)

//go:embed templates/notes.md.go.tmpl
var fallbackNotesTemplate string

// NotesDocument is the template data of a notes export.
type NotesDocument struct {
	Title      string
	UserID     string
	EnrolledAt time.Time
	Bookmarked bool
	Steps      []NotesStep
}

type NotesStep struct {
	ID     string
	Title  string
	Videos []NotesVideo
}

type NotesVideo struct {
	ID         string
	Title      string
	Bookmarked bool
	Notes      []NotesEntry
}

// NotesEntry is a single note with its position rendered as [h:]mm:ss.
type NotesEntry struct {
	Timestamp string
	Content   string
}

// BuildNotesDocument collects the notes of a collection, following the catalog order when a definition is given.
// Videos without notes are left out. Steps and videos unknown to the catalog keep their progress order after the known ones.
func BuildNotesDocument(userID string, cp progress.CollectionProgress, definition *catalog.Collection) NotesDocument {
	doc := NotesDocument{
		Title:      cp.CollectionID,
		UserID:     userID,
		EnrolledAt: cp.EnrolledAt,
		Bookmarked: cp.Bookmarked,
	}

	titles := make(map[string]string)
	var stepOrder []string
	videoOrder := make(map[string][]string)
	if definition != nil {
		if definition.Title != "" {
			doc.Title = definition.Title
		}
		for _, s := range definition.Steps {
			titles[s.ID] = s.Title
			stepOrder = append(stepOrder, s.ID)
			for _, v := range s.Videos {
				titles[s.ID+"/"+v.ID] = v.Title
				videoOrder[s.ID] = append(videoOrder[s.ID], v.ID)
			}
		}
	}
	for _, s := range cp.Steps {
		if !slices.Contains(stepOrder, s.StepID) {
			stepOrder = append(stepOrder, s.StepID)
		}
		for _, v := range s.Videos {
			if !slices.Contains(videoOrder[s.StepID], v.VideoID) {
				videoOrder[s.StepID] = append(videoOrder[s.StepID], v.VideoID)
			}
		}
	}

	for _, stepID := range stepOrder {
		sp := cp.Step(stepID)
		if sp == nil {
			continue
		}
		step := NotesStep{ID: stepID, Title: fallback(titles[stepID], stepID)}
		for _, videoID := range videoOrder[stepID] {
			vp := sp.Video(videoID)
			if vp == nil || len(vp.Notes) == 0 {
				continue
			}
			video := NotesVideo{
				ID:         videoID,
				Title:      fallback(titles[stepID+"/"+videoID], videoID),
				Bookmarked: vp.Bookmarked,
			}
			for _, n := range vp.Notes {
				video.Notes = append(video.Notes, NotesEntry{
					Timestamp: FormatTimestamp(n.Timestamp),
					Content:   strings.TrimSpace(n.Content),
				})
			}
			step.Videos = append(step.Videos, video)
		}
		if len(step.Videos) > 0 {
			doc.Steps = append(doc.Steps, step)
		}
	}
	return doc
}

// WriteNotes renders doc as Markdown. An empty templatePath uses the embedded template.
func WriteNotes(output io.Writer, templatePath string, doc NotesDocument) error {
	tmpl, err := parseTemplateWithFallback(templatePath, fallbackNotesTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, doc); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// Options controls where and how ExportNotes writes its files.
type Options struct {
	OutputDirectory string
	TemplatePath    string
	GeneratePDF     bool
}

// ExportNotes writes doc to <OutputDirectory>/<user>-<collection>.md and returns the written paths.
func ExportNotes(doc NotesDocument, collectionID string, opts Options) ([]string, error) {
	if err := os.MkdirAll(opts.OutputDirectory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", opts.OutputDirectory, err)
	}

	name := url.PathEscape(doc.UserID) + "-" + url.PathEscape(collectionID) + ".md"
	outputFilename := filepath.Join(opts.OutputDirectory, name)
	output, err := os.Create(outputFilename)
	if err != nil {
		return nil, fmt.Errorf("os.Create(%s) > %w", outputFilename, err)
	}
	if err := WriteNotes(output, opts.TemplatePath, doc); err != nil {
		_ = output.Close()
		return nil, fmt.Errorf("WriteNotes(%s) > %w", outputFilename, err)
	}
	if err := output.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", outputFilename, err)
	}
	slog.Default().Debug("Notes written", "path", outputFilename)

	paths := []string{outputFilename}
	if opts.GeneratePDF {
		pdfPath, err := ConvertMarkdownToPDF(outputFilename)
		if err != nil {
			return paths, fmt.Errorf("ConvertMarkdownToPDF(%s) > %w", outputFilename, err)
		}
		paths = append(paths, pdfPath)
	}
	return paths, nil
}

// FormatTimestamp formats seconds as mm:ss, or h:mm:ss from one hour on.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func fallback(value, otherwise string) string {
	if value == "" {
		return otherwise
	}
	return value
}
