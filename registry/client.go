// Package registry fetches trained model artifacts from the model store.
package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"crimepredict/ml"
)

const artifactCacheSize = 8

// Client retrieves the latest production artifact of a named model over HTTP.
// Decoded artifacts are cached so repeated resolves of the same model do not
// re-download.
type Client struct {
	baseURL string
	client  *http.Client
	cache   *lru.Cache[string, *ml.Forest]
}

func NewClient(baseURL string) *Client {
	cache, _ := lru.New[string, *ml.Forest](artifactCacheSize)
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache,
	}
}

// Latest fetches the most recent version of the named model and decodes its
// forest artifact.
func (c *Client) Latest(ctx context.Context, name string) (*ml.Forest, error) {
	if cached, ok := c.cache.Get(name); ok {
		return cached, nil
	}

	endpoint := fmt.Sprintf("%s/models/%s/latest", c.baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model registry returned status: %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var forest ml.Forest
	if err := forest.UnmarshalArtifact(payload); err != nil {
		return nil, fmt.Errorf("failed to decode artifact for %s: %w", name, err)
	}

	c.cache.Add(name, &forest)
	return &forest, nil
}
