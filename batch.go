package zkimg

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// VerifyBatch verifies inputs concurrently, at most limit at a time
// (limit <= 0 means one per CPU). The result at index i belongs to inputs[i];
// nil inputs are invalid. If ctx is cancelled the context error is returned.
func VerifyBatch(ctx context.Context, inputs []*SignatureInput, limit int) ([]bool, error) {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	results := make([]bool, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, in := range inputs {
		if in == nil {
			continue
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = in.Verify()
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
