package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rshade/registrar/internal/table"
)

// PageRequest selects one server-side page. Page is 0-based.
type PageRequest struct {
	Page  int
	Size  int
	Query string
}

// PageResult is one page of records with the service's totals.
type PageResult struct {
	Rows          []table.Row
	Number        int
	Size          int
	TotalPages    int
	TotalElements int
}

// ServerDriven converts the totals into the engine's server pagination state.
func (p *PageResult) ServerDriven() table.ServerDriven {
	return table.ServerDriven{
		Page:          p.Number,
		Size:          p.Size,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
	}
}

type pageEnvelope struct {
	Content       []table.Row `json:"content"`
	Number        int         `json:"number"`
	Size          int         `json:"size"`
	TotalPages    int         `json:"totalPages"`
	TotalElements int         `json:"totalElements"`
}

// Page fetches one page of resource from the paged endpoint.
func (c *Client) Page(ctx context.Context, resource string, req PageRequest) (*PageResult, error) {
	q := url.Values{
		"page": {strconv.Itoa(max(req.Page, 0))},
	}
	if req.Size > 0 {
		q.Set("size", strconv.Itoa(req.Size))
	}
	if req.Query != "" {
		q.Set("q", req.Query)
	}

	body, err := c.get(ctx, "page", []string{resource, "paged"}, q)
	if err != nil {
		return nil, err
	}

	var env pageEnvelope
	if err = json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %s page %d: %w", ErrBadResponse, resource, req.Page, err)
	}
	if env.Content == nil {
		env.Content = []table.Row{}
	}
	return &PageResult{
		Rows:          env.Content,
		Number:        env.Number,
		Size:          env.Size,
		TotalPages:    env.TotalPages,
		TotalElements: env.TotalElements,
	}, nil
}
