package seeder

import (
	"context"
	"fmt"
	"net/url"

	"github.com/moveboard/moveboard/internal/adapters/catalog"
	"github.com/moveboard/moveboard/internal/domain/types"
)

// verifyTierList fetches the tier list for a category and checks it against
// the catalog: every move appears in exactly one tier and no tier holds a
// move the catalog does not know.
func verifyTierList(ctx context.Context, cfg *Config, provider *catalog.Provider, category string) (*types.TierList, error) {
	client := newHTTPClient(cfg.Timeout)

	var tl types.TierList
	endpoint := cfg.BaseURL + "/tierlist?category=" + url.QueryEscape(category)
	if err := client.getJSON(ctx, endpoint, &tl); err != nil {
		return nil, err
	}

	moves, err := provider.Items(category)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	for tier, entries := range tl.Tiers {
		for _, e := range entries {
			if prev, dup := seen[e.ItemID]; dup {
				return nil, fmt.Errorf("move %s appears in tiers %s and %s", e.ItemID, prev, tier)
			}
			seen[e.ItemID] = tier
			if !provider.Resolve(e.ItemID, category) {
				return nil, fmt.Errorf("tier %s holds unknown move %s", tier, e.ItemID)
			}
		}
	}

	if len(seen) != len(moves) {
		return nil, fmt.Errorf("tier list covers %d of %d catalog moves", len(seen), len(moves))
	}
	return &tl, nil
}
