package orders

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/csvsource"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/store"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/config"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
	pkgerrors "github.com/Leo-Marbehan/arrivage-data-visualization/pkg/errors"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/redis"
)

// Cache is the slice of the Redis client the order store needs. A nil Cache
// disables the short-circuit entirely.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Repository holds the merged order list. The list is written once by
// Initialize (or Reset) and read-only afterwards.
type Repository struct {
	loader    csvsource.Loader
	extractor *Extractor
	cfg       config.DataConfig
	log       *logger.Logger
	cache     Cache
	cacheKey  string

	mu     sync.RWMutex
	state  store.State
	orders []Order
}

func NewRepository(loader csvsource.Loader, extractor *Extractor, cfg config.DataConfig, log *logger.Logger, cache Cache, cacheKey string) *Repository {
	return &Repository{
		loader:    loader,
		extractor: extractor,
		cfg:       cfg,
		log:       log,
		cache:     cache,
		cacheKey:  cacheKey,
		state:     store.StateUninitialized,
	}
}

// State reports the repository's lifecycle state.
func (r *Repository) State() store.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Orders returns the merged order list.
func (r *Repository) Orders() []Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.orders
}

// Initialize populates the store. When the cache holds a non-empty merged
// list, parsing and merging are skipped entirely; otherwise the six exports
// are loaded in sequence, merged, and the result written back to the cache.
func (r *Repository) Initialize(ctx context.Context) error {
	r.mu.Lock()
	r.state = store.StateLoading
	r.mu.Unlock()

	if cached, ok := r.fromCache(ctx); ok {
		r.mu.Lock()
		r.orders = cached
		r.state = store.StateReady
		r.mu.Unlock()
		r.log.Info(r.log.WithField(ctx, "orders", len(cached)), "order store initialized from cache")
		return nil
	}

	merged, err := r.loadAndMerge(ctx)
	if err != nil {
		r.mu.Lock()
		r.state = store.StateFailed
		r.mu.Unlock()
		r.log.Error(ctx, "order store failed to initialize", err)
		return err
	}

	r.toCache(ctx, merged)

	r.mu.Lock()
	r.orders = merged
	r.state = store.StateReady
	r.mu.Unlock()
	r.log.Info(r.log.WithField(ctx, "orders", len(merged)), "order store initialized")
	return nil
}

// Reset clears the cache and the in-memory list, then reloads from source.
func (r *Repository) Reset(ctx context.Context) error {
	if r.cache != nil {
		if err := r.cache.Del(ctx, r.cacheKey); err != nil {
			r.log.Error(ctx, "clearing order cache", err)
		}
	}

	r.mu.Lock()
	r.orders = nil
	r.state = store.StateUninitialized
	r.mu.Unlock()

	return r.Initialize(ctx)
}

func (r *Repository) loadAndMerge(ctx context.Context) ([]Order, error) {
	sources := []struct {
		file   string
		status enums.OrderStatus
	}{
		{r.cfg.CancelledOrdersFile, enums.OrderStatusCancelled},
		{r.cfg.CompletedOrdersFile, enums.OrderStatusCompleted},
		{r.cfg.ConfirmedOrdersFile, enums.OrderStatusConfirmed},
		{r.cfg.DeliveredOrdersFile, enums.OrderStatusDelivered},
		{r.cfg.PaidOrdersFile, enums.OrderStatusPaid},
		{r.cfg.SubmittedOrdersFile, enums.OrderStatusSubmitted},
	}

	batches := make([][]Order, 0, len(sources))
	for _, src := range sources {
		batch, err := r.loadFile(ctx, src.file, src.status)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return MergeAll(batches...), nil
}

func (r *Repository) loadFile(ctx context.Context, file string, status enums.OrderStatus) ([]Order, error) {
	records, err := r.loader.Load(ctx, file)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading orders for status "+status.String())
	}

	source := status.String()
	batch := make([]Order, 0, len(records))
	for index, rec := range records {
		if order := r.extractor.Extract(ctx, rec, source, index); order != nil {
			batch = append(batch, *order)
		}
	}

	batch = r.extractor.dedupeByID(ctx, source, batch)
	for i := range batch {
		batch[i].AllStatuses = append(batch[i].AllStatuses, status)
	}
	return batch, nil
}

func (r *Repository) fromCache(ctx context.Context) ([]Order, bool) {
	if r.cache == nil {
		return nil, false
	}

	raw, err := r.cache.Get(ctx, r.cacheKey)
	if err != nil {
		if !redis.IsMiss(err) {
			r.log.Error(ctx, "reading order cache", err)
		}
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var cached []Order
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		r.log.Error(ctx, "decoding order cache", err)
		return nil, false
	}
	if len(cached) == 0 {
		return nil, false
	}
	return cached, true
}

func (r *Repository) toCache(ctx context.Context, merged []Order) {
	if r.cache == nil {
		return
	}

	encoded, err := json.Marshal(merged)
	if err != nil {
		r.log.Error(ctx, "encoding order cache", err)
		return
	}
	if err := r.cache.Set(ctx, r.cacheKey, encoded, 0); err != nil {
		r.log.Error(ctx, "writing order cache", err)
	}
}
