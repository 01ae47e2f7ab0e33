package seeder

import (
	"context"
	"fmt"

	"github.com/moveboard/moveboard/internal/adapters/catalog"
	"github.com/moveboard/moveboard/internal/domain/ranking"
	"github.com/moveboard/moveboard/internal/domain/types"
	"github.com/moveboard/moveboard/pkg/logger"
)

// Run executes a full seeding pass: load the bundle, generate biased
// comparisons, submit them, then verify the resulting tier list.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get().Named("seeder")

	provider, err := catalog.Load(ctx, cfg.BundlePath)
	if err != nil {
		return fmt.Errorf("load bundle: %w", err)
	}

	categories := []string{cfg.Category}
	if cfg.Category == "" {
		categories = provider.Categories()
	}

	stats := &Stats{}
	perCategory := cfg.NumEvents / len(categories)
	if perCategory < 1 {
		perCategory = 1
	}

	for _, category := range categories {
		moves, err := provider.Items(category)
		if err != nil {
			return err
		}
		if len(moves) < 2 {
			log.Warn(ctx, "skipping category with fewer than two moves",
				logger.String("category", category))
			continue
		}

		events := generateComparisons(moves, category, perCategory)
		stats.EventsGenerated += len(events)
		log.Info(ctx, "submitting comparisons",
			logger.String("category", category),
			logger.Int("count", len(events)),
			logger.Int("workers", cfg.Workers),
		)

		submitComparisons(ctx, cfg, events, stats)
	}

	log.Info(ctx, "submission finished",
		logger.Int("generated", stats.EventsGenerated),
		logger.Int("submitted", stats.EventsSubmitted),
		logger.Int("successful", stats.EventsSuccessful),
		logger.Int("duplicate", stats.EventsDuplicate),
		logger.Int("failed", stats.EventsFailed),
	)
	if stats.EventsFailed > 0 {
		return fmt.Errorf("%d of %d submissions failed", stats.EventsFailed, stats.EventsSubmitted)
	}

	for _, category := range categories {
		tl, err := verifyTierList(ctx, cfg, provider, category)
		if err != nil {
			return fmt.Errorf("verify %s: %w", category, err)
		}
		report(ctx, log, category, tl)
	}

	return nil
}

func report(ctx context.Context, log logger.Logger, category string, tl *types.TierList) {
	for _, tier := range ranking.TierOrder {
		entries := tl.Tiers[string(tier)]
		if len(entries) == 0 {
			continue
		}
		top := entries[0]
		log.Info(ctx, "tier summary",
			logger.String("category", category),
			logger.String("tier", string(tier)),
			logger.Int("moves", len(entries)),
			logger.String("best", top.ItemID),
			logger.Float64("score", top.Score),
		)
	}
}
