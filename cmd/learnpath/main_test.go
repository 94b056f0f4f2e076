package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/learnpath/internal/catalog"
	"github.com/at-ishikawa/learnpath/internal/progress"
	"github.com/at-ishikawa/learnpath/internal/server"
)

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"migrate", "catalog", "progress", "notes"})
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("exports variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("LEARNPATH_TEST_DOTENV=loaded\n"), 0644))
		t.Cleanup(func() { _ = os.Unsetenv("LEARNPATH_TEST_DOTENV") })

		require.NoError(t, loadDotEnv(path))
		assert.Equal(t, "loaded", os.Getenv("LEARNPATH_TEST_DOTENV"))
	})
}

func TestCommands_configError(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "migrate", args: []string{"migrate"}},
		{name: "catalog validate", args: []string{"catalog", "validate"}},
		{name: "progress show", args: []string{"progress", "show", "--user", "alice"}},
		{name: "notes export", args: []string{"notes", "export", "--user", "alice", "--collection", "go-basics"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := setupBrokenConfigFile(t)
			_, err := runCommand(t, append([]string{"--config", cfgPath}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "load config")
		})
	}
}

func TestMigrateCommand(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		ws := setupWorkspace(t, "driver: sqlite\n  sqlite_path: "+filepath.Join(t.TempDir(), "learnpath.db"))

		out, err := runCommand(t, "--config", ws.configPath, "migrate")
		require.NoError(t, err)
		assert.Contains(t, out, "Schema of sqlite is up to date")
	})

	t.Run("yaml store has no schema", func(t *testing.T) {
		ws := setupWorkspace(t, "")

		_, err := runCommand(t, "--config", ws.configPath, "migrate")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `storage driver "yaml" has no database schema`)
	})
}

func TestCatalogValidateCommand(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		ws := setupWorkspace(t, "")

		out, err := runCommand(t, "catalog", "validate", "--directory", ws.catalogDir)
		require.NoError(t, err)
		assert.Contains(t, out, "1 collections, 3 videos")
	})

	t.Run("duplicate video", func(t *testing.T) {
		dir := t.TempDir()
		body := "id: broken\nsteps:\n  - id: s\n    videos:\n      - id: v\n      - id: v\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yml"), []byte(body), 0644))

		out, err := runCommand(t, "catalog", "validate", "--directory", dir)
		require.Error(t, err)
		assert.Contains(t, out, "Invalid catalog")
	})
}

func TestProgressShowCommand(t *testing.T) {
	t.Run("local store", func(t *testing.T) {
		ws := setupWorkspace(t, "")
		seedProgress(t, ws)

		out, err := runCommand(t, "--config", ws.configPath, "progress", "show", "--user", "alice")
		require.NoError(t, err)
		assert.Contains(t, out, "go-basics 50.0%")
		assert.Contains(t, out, "2/2 100.0%")
		assert.Contains(t, out, "0/1 0.0%")
	})

	t.Run("user without enrollments", func(t *testing.T) {
		ws := setupWorkspace(t, "")

		out, err := runCommand(t, "--config", ws.configPath, "progress", "show", "--user", "bob")
		require.NoError(t, err)
		assert.Contains(t, out, "bob is not enrolled in any collection")
	})

	t.Run("not enrolled in the requested collection", func(t *testing.T) {
		ws := setupWorkspace(t, "")

		_, err := runCommand(t, "--config", ws.configPath, "progress", "show", "--user", "bob", "--collection", "go-basics")
		require.Error(t, err)
		assert.ErrorIs(t, err, progress.ErrNotEnrolled)
	})

	t.Run("remote server", func(t *testing.T) {
		ws := setupWorkspace(t, "")
		seedProgress(t, ws)

		store, err := progress.NewYAMLStore(ws.storeDir)
		require.NoError(t, err)
		contents, err := catalog.NewYAMLCatalog(ws.catalogDir)
		require.NoError(t, err)
		handler, err := server.NewProgressHandler(progress.NewTracker(store, contents))
		require.NoError(t, err)
		path, h := server.NewProgressServiceHandler(handler)
		mux := http.NewServeMux()
		mux.Handle(path, h)
		srv := httptest.NewServer(mux)
		t.Cleanup(srv.Close)

		out, err := runCommand(t, "progress", "show", "--user", "alice", "--collection", "go-basics", "--server", srv.URL)
		require.NoError(t, err)
		assert.Contains(t, out, "go-basics 50.0%")
	})
}

func TestNotesExportCommand(t *testing.T) {
	t.Run("writes markdown", func(t *testing.T) {
		ws := setupWorkspace(t, "")
		seedProgress(t, ws)

		out, err := runCommand(t, "--config", ws.configPath, "notes", "export", "--user", "alice", "--collection", "go-basics")
		require.NoError(t, err)

		path := filepath.Join(ws.notesDir, "alice-go-basics.md")
		assert.Contains(t, out, "Notes written to: "+path)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "# Go Basics")
		assert.Contains(t, string(content), "### Hello")
		assert.Contains(t, string(content), "- **01:05** main is the entry point")
	})

	t.Run("not enrolled", func(t *testing.T) {
		ws := setupWorkspace(t, "")

		_, err := runCommand(t, "--config", ws.configPath, "notes", "export", "--user", "bob", "--collection", "go-basics")
		require.Error(t, err)
		assert.ErrorIs(t, err, progress.ErrNotEnrolled)
	})
}

func TestNormalizeFlagName(t *testing.T) {
	assert.Equal(t, "output-dir", string(normalizeFlagName(nil, "output_dir")))
	assert.Equal(t, "user", string(normalizeFlagName(nil, "user")))
}
