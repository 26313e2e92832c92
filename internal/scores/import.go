package scores

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ImportResult counts what Import did.
type ImportResult struct {
	Imported int
	Skipped  int
	Failed   int
}

// Import copies src into dst, skipping scores dst already holds. A failed
// save is counted and the import carries on; only reading dst aborts it.
func Import(ctx context.Context, dst Store, src []Score) (ImportResult, error) {
	var res ImportResult

	existing, err := dst.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list destination scores: %w", err)
	}
	seen := make(map[uuid.UUID]struct{}, len(existing))
	for _, s := range existing {
		seen[s.ID] = struct{}{}
	}

	for _, s := range src {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, ok := seen[s.ID]; ok {
			res.Skipped++
			continue
		}
		if err := dst.Save(ctx, s); err != nil {
			res.Failed++
			continue
		}
		seen[s.ID] = struct{}{}
		res.Imported++
	}
	return res, nil
}
