// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/moveboard/moveboard/internal/adapters/catalog"
	"github.com/moveboard/moveboard/internal/adapters/eventstore"
	eventqueue "github.com/moveboard/moveboard/internal/adapters/mq/queue"
	workerpool "github.com/moveboard/moveboard/internal/adapters/mq/worker"
	"github.com/moveboard/moveboard/internal/domain/dedupe"
	"github.com/moveboard/moveboard/internal/domain/model"
	"github.com/moveboard/moveboard/internal/domain/ranking"
	"github.com/moveboard/moveboard/internal/domain/types"
	"github.com/moveboard/moveboard/pkg/logger"
	"github.com/moveboard/moveboard/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultWorkerCount = 4
	defaultQueueSize   = 10000
	defaultDedupeSize  = 50000
	defaultBundlePath  = "data/moves.json"
)

// Service wires the catalog, the event log, the queue and the worker pool
// into the operations the API exposes.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog    *catalog.Provider
	store      eventstore.Store
	deduper    dedupe.Deduper
	eventQueue eventqueue.Queue
	workerPool *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	bundlePath  string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: defaultWorkerCount,
		queueSize:   defaultQueueSize,
		dedupeSize:  defaultDedupeSize,
		bundlePath:  defaultBundlePath,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the catalog and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting moveboard service...")

	provider, err := catalog.Load(ctx, s.bundlePath)
	if err != nil {
		return err
	}
	s.catalog = provider
	metrics.UpdateCatalogMoves(provider.Count())

	s.store = eventstore.NewMemoryStore()
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.eventQueue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, s.catalog, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "moveboard service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("catalogMoves", provider.Count()),
		logger.Int("categories", len(provider.Categories())),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping moveboard service...")

	// Shutting down the pool closes the queue first, so the backlog is
	// drained into the log before the workers exit.
	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "moveboard service stopped")
}

// SeenAndRecord atomically checks if an event id was seen and records it if not.
// Returns true if the event was already seen, false if it was newly recorded.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordComparisonDuplicate()
	}
	return seen
}

// Unrecord removes an event id from the seen list, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits a comparison event for asynchronous processing.
// Returns false when the queue refuses the event.
func (s *Service) Enqueue(ctx context.Context, e model.Event) bool {
	ok := s.eventQueue.Enqueue(ctx, e)
	if !ok {
		s.logger.Warn(ctx, "queue refused comparison",
			logger.String("eventID", e.EventID),
			logger.String("category", e.Category),
		)
	}
	return ok
}

// Resolve reports whether a move id exists in a category.
func (s *Service) Resolve(id, category string) bool {
	return s.catalog.Resolve(id, category)
}

// Categories lists the categories known to the catalog.
func (s *Service) Categories() []string {
	return s.catalog.Categories()
}

func (s *Service) ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// compute rebuilds the standings of one category from the full event log.
func (s *Service) compute(ctx context.Context, category string) (ranking.Standings, error) {
	if !s.ready() {
		return ranking.Standings{}, ErrNotStarted
	}

	items, err := s.catalog.RankingItems(category)
	if err != nil {
		return ranking.Standings{}, err
	}
	events, err := s.store.List(ctx, category)
	if err != nil {
		return ranking.Standings{}, err
	}

	start := time.Now()
	standings := ranking.Compute(items, events, category)
	metrics.RecordRecompute(float64(time.Since(start).Microseconds()) / 1000.0)

	return standings, nil
}

// TierList returns the tiered view of a category.
func (s *Service) TierList(ctx context.Context, category string) (types.TierList, error) {
	standings, err := s.compute(ctx, category)
	if err != nil {
		return types.TierList{}, err
	}

	tl := ranking.AssignTiers(standings)

	out := types.TierList{
		Category:         tl.Category,
		Order:            make([]string, 0, len(ranking.TierOrder)+1),
		Tiers:            make(map[string][]types.Standing, len(tl.Tiers)),
		InsufficientData: tl.InsufficientData,
	}
	for _, tier := range ranking.TierOrder {
		out.Order = append(out.Order, string(tier))
	}
	out.Order = append(out.Order, string(ranking.TierUnranked))

	for tier, entries := range tl.Tiers {
		bucket := make([]types.Standing, len(entries))
		for i, e := range entries {
			bucket[i] = s.apiStanding(e, string(tier))
		}
		out.Tiers[string(tier)] = bucket
	}

	return out, nil
}

// Standings returns the flat ranking of a category, best first.
func (s *Service) Standings(ctx context.Context, category string) ([]types.Standing, error) {
	standings, err := s.compute(ctx, category)
	if err != nil {
		return nil, err
	}

	tiers := tierByItem(ranking.AssignTiers(standings))

	entries := make([]ranking.Standing, len(standings.Entries))
	copy(entries, standings.Entries)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ItemID < entries[j].ItemID
	})

	out := make([]types.Standing, len(entries))
	for i, e := range entries {
		out[i] = s.apiStanding(e, tiers[e.ItemID])
	}
	return out, nil
}

// Predict returns the head-to-head diagnostic for two moves of a category.
func (s *Service) Predict(ctx context.Context, category, idA, idB string) (types.Prediction, error) {
	if !s.ready() {
		return types.Prediction{}, ErrNotStarted
	}
	if !s.catalog.Resolve(idA, category) {
		return types.Prediction{}, unknownItem(idA, category)
	}
	if !s.catalog.Resolve(idB, category) {
		return types.Prediction{}, unknownItem(idB, category)
	}

	standings, err := s.compute(ctx, category)
	if err != nil {
		return types.Prediction{}, err
	}

	var a, b ranking.Standing
	for _, e := range standings.Entries {
		switch e.ItemID {
		case idA:
			a = e
		case idB:
			b = e
		}
	}

	p := ranking.PredictOutcome(a, b)
	return types.Prediction{
		ItemA:           p.ItemA,
		ItemB:           p.ItemB,
		ScoreA:          p.ScoreA,
		ScoreB:          p.ScoreB,
		PredictedWinner: p.Winner,
		Confidence:      p.Confidence,
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.eventQueue.Len(ctx)
		totalEvents := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalEvents"] = totalEvents
		stats["catalogMoves"] = s.catalog.Count()
		stats["categories"] = s.catalog.Categories()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateEventLogSize(totalEvents)
		metrics.UpdateWorkerCount(s.workerPool.Size())
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// apiStanding converts an engine standing to its API shape, annotated
// with catalog metadata when the move is known.
func (s *Service) apiStanding(e ranking.Standing, tier string) types.Standing {
	out := types.Standing{
		ItemID:     e.ItemID,
		Score:      e.Score,
		Wins:       e.Wins,
		Total:      e.Total,
		WinRate:    e.WinRate,
		Confidence: e.Confidence,
		Tier:       tier,
	}
	if m, ok := s.catalog.Lookup(e.ItemID); ok {
		out.Name = m.Name
		out.Character = m.Character
	}
	return out
}

// tierByItem flattens a tier list into an item id to tier name index.
func tierByItem(tl ranking.TierList) map[string]string {
	out := make(map[string]string)
	for tier, entries := range tl.Tiers {
		for _, e := range entries {
			out[e.ItemID] = string(tier)
		}
	}
	return out
}
