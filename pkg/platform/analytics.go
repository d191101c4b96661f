package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// GetDashboardStats fetches the analytics dashboard summary.
func (c *Client) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	const op = "analytics.dashboard"

	env, err := c.Get(ctx, op, "/api/analytics/dashboard", nil)
	if err != nil {
		return nil, err
	}
	stats, err := UnmarshalData[DashboardStats](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse stats: %w", err))
	}
	return &stats, nil
}

// SearchResult is one hit from the cross-entity search endpoint.
type SearchResult struct {
	Type  string          `json:"type"`
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Item  json.RawMessage `json:"item,omitempty"`
}

// Search performs a cross-entity search over products, shipments, and
// marketplace listings.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	const op = "search"

	q := url.Values{}
	q.Set("q", term)
	env, err := c.Get(ctx, op, "/api/search", q)
	if err != nil {
		return nil, err
	}
	results, err := UnmarshalData[[]SearchResult](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse results: %w", err))
	}
	return results, nil
}

// Export requests a server-side export of the given entity type
// ("products", "shipments", ...) and returns the raw document.
func (c *Client) Export(ctx context.Context, entity string) ([]byte, error) {
	const op = "export"

	env, err := c.Get(ctx, op, "/api/export/"+url.PathEscape(entity), nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}
