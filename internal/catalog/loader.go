// Package catalog loads the immutable catalog document the tracker is
// built around. The document is a JSON array of items, served either as
// a local file or over HTTP by cmd/catalog-server; it is fetched once
// per process and never written back.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"watchhub/pkg/models"
)

// Loader reads catalog documents from a file path or an http(s) URL.
type Loader struct {
	Client *http.Client
}

func NewLoader() *Loader {
	return &Loader{
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Load fetches and decodes the catalog from source, preserving document
// order. A fetch or decode failure is terminal for this load attempt;
// the caller decides what to do with an empty collection.
func (l *Loader) Load(ctx context.Context, source string) ([]models.CatalogItem, error) {
	var (
		raw []byte
		err error
	)

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		raw, err = l.fetchHTTP(ctx, source)
	} else {
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", source, err)
	}

	var items []models.CatalogItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", source, err)
	}

	for i, it := range items {
		if strings.TrimSpace(it.ID) == "" {
			return nil, fmt.Errorf("catalog: item %d has empty id", i)
		}
		if strings.TrimSpace(it.Title) == "" {
			return nil, fmt.Errorf("catalog: item %q has empty title", it.ID)
		}
	}

	return items, nil
}

func (l *Loader) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
