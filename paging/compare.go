package paging

import (
	"context"
	"errors"
	"sync"
)

// Compare runs each policy over the same reference string in parallel.
// Runs share nothing but the read-only reference string. Results come back
// in the order of kinds; the first error cancels the comparison.
func (s *Simulator) Compare(ctx context.Context, frameSize int, refs []PageID, kinds ...PolicyKind) ([]*SimulationResult, error) {
	if len(kinds) == 0 {
		kinds = AllPolicies
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*SimulationResult, len(kinds))
	errs := make([]error, len(kinds))

	var wg sync.WaitGroup
	for i, kind := range kinds {
		wg.Add(1)
		go func(i int, kind PolicyKind) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}

			result, err := s.Run(kind, frameSize, refs)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			results[i] = result
		}(i, kind)
	}
	wg.Wait()

	// Run errors take precedence over the cancellations they caused
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return nil, err
		}
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
