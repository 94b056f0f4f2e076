package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/learnpath/internal/catalog"
	"github.com/at-ishikawa/learnpath/internal/progress"
)

const goBasicsYAML = `id: go-basics
title: Go Basics
steps:
  - id: intro
    title: Introduction
    videos:
      - id: v1
        title: Hello
      - id: v2
  - id: types
    videos:
      - id: v3
`

// setConfigFile sets the global configFile variable and registers a cleanup to restore it.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

type workspace struct {
	dir        string
	configPath string
	catalogDir string
	storeDir   string
	notesDir   string
}

// setupWorkspace writes a catalog with one collection and a config using the yaml store.
func setupWorkspace(t *testing.T, storage string) workspace {
	t.Helper()
	dir := t.TempDir()
	ws := workspace{
		dir:        dir,
		configPath: filepath.Join(dir, "config.yml"),
		catalogDir: filepath.Join(dir, "catalog"),
		storeDir:   filepath.Join(dir, "progress"),
		notesDir:   filepath.Join(dir, "notes"),
	}
	require.NoError(t, os.MkdirAll(ws.catalogDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(ws.catalogDir, "go-basics.yml"), []byte(goBasicsYAML), 0644))

	if storage == "" {
		storage = fmt.Sprintf("driver: yaml\n  yaml_directory: %s", ws.storeDir)
	}
	cfg := fmt.Sprintf(`storage:
  %s
catalog:
  directory: %s
outputs:
  notes_directory: %s
`, storage, ws.catalogDir, ws.notesDir)
	require.NoError(t, os.WriteFile(ws.configPath, []byte(cfg), 0644))
	return ws
}

// seedProgress enrolls alice, completes both intro videos and adds a note.
func seedProgress(t *testing.T, ws workspace) {
	t.Helper()
	store, err := progress.NewYAMLStore(ws.storeDir)
	require.NoError(t, err)
	contents, err := catalog.NewYAMLCatalog(ws.catalogDir)
	require.NoError(t, err)
	tracker := progress.NewTracker(store, contents, progress.WithClock(func() time.Time {
		return time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	}))

	ctx := context.Background()
	_, err = tracker.Enroll(ctx, "alice", "go-basics")
	require.NoError(t, err)
	for _, videoID := range []string{"v1", "v2"} {
		key := progress.VideoKey{UserID: "alice", CollectionID: "go-basics", StepID: "intro", VideoID: videoID}
		_, err := tracker.UpdateVideo(ctx, key, 100, true, 100)
		require.NoError(t, err)
	}
	key := progress.VideoKey{UserID: "alice", CollectionID: "go-basics", StepID: "intro", VideoID: "v1"}
	_, err = tracker.AddNote(ctx, key, 65, "main is the entry point")
	require.NoError(t, err)
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	setConfigFile(t, "")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
