package backend

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/registrar/internal/table"
)

// Relation names a collection fetched alongside a record: the Resource rows
// whose Field equals the record's id.
type Relation struct {
	Name     string
	Resource string
	Field    string
}

// DetailResult is a record with its related collections, keyed by Relation.Name.
type DetailResult struct {
	Record  table.Row
	Related map[string][]table.Row
}

// Detail fetches a record and its relations concurrently. Any failure cancels
// the remaining requests and is returned.
func (c *Client) Detail(ctx context.Context, resource, id string, relations ...Relation) (*DetailResult, error) {
	g, gctx := errgroup.WithContext(ctx)
	res := &DetailResult{Related: make(map[string][]table.Row, len(relations))}
	var mu sync.Mutex

	g.Go(func() error {
		row, err := c.Get(gctx, resource, id)
		if err != nil {
			return err
		}
		res.Record = row
		return nil
	})

	for _, rel := range relations {
		g.Go(func() error {
			rows, err := c.Related(gctx, rel.Resource, rel.Field, id)
			if err != nil {
				return err
			}
			mu.Lock()
			res.Related[rel.Name] = rows
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
