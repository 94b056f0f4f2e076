package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const reloadDebounce = 200 * time.Millisecond

// YAMLCatalog reads collection definitions from a directory of YAML files, one collection per file.
type YAMLCatalog struct {
	directory string
	validate  *validator.Validate

	mu          sync.RWMutex
	collections map[string]Collection
}

// NewYAMLCatalog loads every collection under directory.
func NewYAMLCatalog(directory string) (*YAMLCatalog, error) {
	c := &YAMLCatalog{
		directory: directory,
		validate:  validator.New(),
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// StepsOf implements Catalog.
func (c *YAMLCatalog) StepsOf(_ context.Context, collectionID string) ([]Step, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	collection, ok := c.collections[collectionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, collectionID)
	}
	return collection.Steps, nil
}

// Collection returns the full definition of a collection.
func (c *YAMLCatalog) Collection(collectionID string) (Collection, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	collection, ok := c.collections[collectionID]
	return collection, ok
}

// Collections returns all collections sorted by id.
func (c *YAMLCatalog) Collections() []Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Collection, 0, len(c.collections))
	for _, collection := range c.collections {
		result = append(result, collection)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Reload re-reads the directory. The previous definitions stay in place when loading fails.
func (c *YAMLCatalog) Reload() error {
	collections, err := LoadCollections(c.directory, c.validate)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.collections = collections
	c.mu.Unlock()
	return nil
}

// Watch reloads the catalog whenever a file in the directory changes, until ctx is done.
// onReload is called after every reload attempt with its result.
func (c *YAMLCatalog) Watch(ctx context.Context, onReload func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(c.directory); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch catalog directory(%s): %w", c.directory, err)
	}

	go c.watchLoop(ctx, watcher, onReload)
	return nil
}

func (c *YAMLCatalog) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, onReload func(error)) {
	defer func() {
		_ = watcher.Close()
	}()

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isYAMLFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			slog.Default().Debug("Catalog file changed",
				"path", event.Name,
				"op", event.Op.String())
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(reloadDebounce, func() {
				err := c.Reload()
				if err != nil {
					slog.Default().Error("Catalog reload failed",
						"directory", c.directory,
						"error", err)
				}
				if onReload != nil {
					onReload(err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Default().Error("Catalog watcher error", "error", err)
		}
	}
}

// LoadCollections reads and validates every YAML file under directory.
func LoadCollections(directory string, validate *validator.Validate) (map[string]Collection, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("read catalog directory(%s): %w", directory, err)
	}

	collections := make(map[string]Collection)
	sources := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}

		path := filepath.Join(directory, entry.Name())
		collection, err := readCollection(path)
		if err != nil {
			return nil, err
		}
		if err := validate.Struct(collection); err != nil {
			return nil, fmt.Errorf("invalid collection in %s: %w", path, err)
		}
		if previous, ok := sources[collection.ID]; ok {
			return nil, fmt.Errorf("collection %q is defined in both %s and %s", collection.ID, previous, path)
		}

		collections[collection.ID] = collection
		sources[collection.ID] = path
	}
	return collections, nil
}

func readCollection(path string) (Collection, error) {
	var collection Collection

	file, err := os.Open(path)
	if err != nil {
		return collection, fmt.Errorf("os.Open(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&collection); err != nil {
		return collection, fmt.Errorf("decode collection(%s): %w", path, err)
	}
	return collection, nil
}

func isYAMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yml" || ext == ".yaml"
}
