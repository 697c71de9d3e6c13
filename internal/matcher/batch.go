// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matcher

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/citematch/pkg/types"
)

// MatchAll matches every marker with at most workers concurrent Match
// calls (unbounded when workers <= 0). Results are in marker order. If ctx
// is cancelled, MatchAll stops scheduling markers and returns ctx.Err().
func MatchAll(ctx context.Context, m *Matcher, markers [][]types.Token, workers int) ([][]types.MatchResult, error) {
	results := make([][]types.MatchResult, len(markers))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, toks := range markers {
		if gctx.Err() != nil {
			break
		}
		i, toks := i, toks
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = m.Match(toks)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
