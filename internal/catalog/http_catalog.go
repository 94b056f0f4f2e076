package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPCatalog reads collection steps from a remote catalog service.
//
// The service answers GET {baseURL}/collections/{id}/steps with
// {"steps": [...]} and 404 for unknown collections.
type HTTPCatalog struct {
	client *resty.Client
}

type stepsResponse struct {
	Steps []Step `json:"steps"`
}

// NewHTTPCatalog creates an HTTPCatalog for baseURL.
func NewHTTPCatalog(baseURL string, timeout time.Duration) *HTTPCatalog {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &HTTPCatalog{client: client}
}

// StepsOf implements Catalog.
func (c *HTTPCatalog) StepsOf(ctx context.Context, collectionID string) ([]Step, error) {
	var body stepsResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetPathParam("collectionID", collectionID).
		SetResult(&body).
		Get("/collections/{collectionID}/steps")
	if err != nil {
		return nil, fmt.Errorf("fetch steps of %s: %w", collectionID, err)
	}

	switch res.StatusCode() {
	case http.StatusOK:
		return body.Steps, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, collectionID)
	default:
		return nil, fmt.Errorf("fetch steps of %s: status code: %d, body: %s", collectionID, res.StatusCode(), string(res.Body()))
	}
}
