// Package catalog provides read-only access to collection definitions.
package catalog

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -source=catalog.go -destination=../mocks/catalog/mock_catalog.go -package=mock_catalog

// ErrCollectionNotFound is returned when a collection id is not defined in the catalog.
var ErrCollectionNotFound = errors.New("collection not found")

// Catalog returns the ordered steps of a collection.
type Catalog interface {
	StepsOf(ctx context.Context, collectionID string) ([]Step, error)
}

// Collection is a course or roadmap made of ordered steps.
type Collection struct {
	ID    string `yaml:"id" json:"id" validate:"required"`
	Title string `yaml:"title" json:"title"`
	Steps []Step `yaml:"steps" json:"steps" validate:"unique=ID,dive"`
}

// Step is an ordered unit of a collection.
type Step struct {
	ID     string  `yaml:"id" json:"id" validate:"required"`
	Title  string  `yaml:"title" json:"title"`
	Videos []Video `yaml:"videos" json:"videos" validate:"unique=ID,dive"`
}

// Video is the smallest trackable item of a step.
type Video struct {
	ID           string  `yaml:"id" json:"id" validate:"required"`
	Title        string  `yaml:"title,omitempty" json:"title,omitempty"`
	DurationHint float64 `yaml:"duration_hint,omitempty" json:"duration_hint,omitempty" validate:"min=0"`
}

// StaticCatalog serves a fixed set of collections.
type StaticCatalog struct {
	collections map[string]Collection
}

// NewStaticCatalog creates a StaticCatalog from collections.
func NewStaticCatalog(collections ...Collection) *StaticCatalog {
	m := make(map[string]Collection, len(collections))
	for _, c := range collections {
		m[c.ID] = c
	}
	return &StaticCatalog{collections: m}
}

// StepsOf implements Catalog.
func (c *StaticCatalog) StepsOf(_ context.Context, collectionID string) ([]Step, error) {
	collection, ok := c.collections[collectionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, collectionID)
	}
	return collection.Steps, nil
}

// Collection returns the full definition of a collection.
func (c *StaticCatalog) Collection(collectionID string) (Collection, bool) {
	collection, ok := c.collections[collectionID]
	return collection, ok
}

// TotalVideos counts the videos across the steps.
func TotalVideos(steps []Step) int {
	var total int
	for _, s := range steps {
		total += len(s.Videos)
	}
	return total
}
