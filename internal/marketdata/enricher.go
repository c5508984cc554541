package marketdata

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// AttachmentStatus is the per-record enrichment state. Each record
// moves pending -> (success | not_found | fetch_error) exactly once;
// only a whole-collection refresh re-enters pending.
type AttachmentStatus string

const (
	AttachmentPending    AttachmentStatus = "pending"
	AttachmentSuccess    AttachmentStatus = "success"
	AttachmentNotFound   AttachmentStatus = "not_found"
	AttachmentFetchError AttachmentStatus = "fetch_error"
)

// Attachment is the market-data state attached to one listing record.
// NotFound and FetchError render identically downstream (placeholder
// cells); the status split exists for logging.
type Attachment struct {
	Status  AttachmentStatus `json:"status"`
	Loading bool             `json:"loading"`
	Error   string           `json:"error,omitempty"`
	Data    *MarketData      `json:"data,omitempty"`
}

// Target identifies one record to enrich.
type Target struct {
	ID      string
	Network string
	Address string
}

// Fetcher is the market-data source the enricher pulls from.
type Fetcher interface {
	TokenMarketData(ctx context.Context, network, address string) (*MarketData, error)
}

// Enricher runs per-record market-data fetches concurrently and keeps
// the results keyed by record id. Fetches never block each other or
// the callers reading snapshots; a record whose fetch is still in
// flight reads as pending/loading. Close cancels everything in flight.
type Enricher struct {
	fetcher     Fetcher
	cache       *Cache
	timeout     time.Duration
	maxInFlight int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	sem    chan struct{}

	mu          sync.Mutex
	attachments map[string]Attachment
	generation  uint64
}

const (
	defaultFetchTimeout = 15 * time.Second
	defaultMaxInFlight  = 8
)

// NewEnricher builds an enricher over the given fetcher. cache may be
// nil when Redis is not configured.
func NewEnricher(fetcher Fetcher, cache *Cache) *Enricher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Enricher{
		fetcher:     fetcher,
		cache:       cache,
		timeout:     defaultFetchTimeout,
		maxInFlight: defaultMaxInFlight,
		ctx:         ctx,
		cancel:      cancel,
		sem:         make(chan struct{}, defaultMaxInFlight),
		attachments: make(map[string]Attachment),
	}
}

// Begin starts enrichment for any target not yet tracked. Targets that
// already resolved (or are in flight) are left alone. Returns
// immediately; results land asynchronously.
func (e *Enricher) Begin(targets []Target) {
	e.mu.Lock()
	gen := e.generation
	fresh := make([]Target, 0, len(targets))
	for _, t := range targets {
		if _, ok := e.attachments[t.ID]; ok {
			continue
		}
		e.attachments[t.ID] = Attachment{Status: AttachmentPending, Loading: true}
		fresh = append(fresh, t)
	}
	e.mu.Unlock()

	for _, t := range fresh {
		e.spawn(t, gen)
	}
}

// Refresh resets every given target to pending and re-fetches, bumping
// the generation so stale in-flight results from before the refresh
// are discarded. The cache entries are invalidated first so the
// re-fetch actually reaches the API.
func (e *Enricher) Refresh(targets []Target) {
	e.cache.Invalidate(e.ctx, targets)

	e.mu.Lock()
	e.generation++
	gen := e.generation
	for _, t := range targets {
		e.attachments[t.ID] = Attachment{Status: AttachmentPending, Loading: true}
	}
	e.mu.Unlock()

	for _, t := range targets {
		e.spawn(t, gen)
	}
}

// Snapshot returns the current attachment for a record id. Unknown ids
// read as pending.
func (e *Enricher) Snapshot(id string) Attachment {
	e.mu.Lock()
	defer e.mu.Unlock()
	if a, ok := e.attachments[id]; ok {
		return a
	}
	return Attachment{Status: AttachmentPending, Loading: true}
}

// Close cancels all in-flight fetches and waits for workers to exit.
func (e *Enricher) Close() {
	e.cancel()
	e.wg.Wait()
}

func (e *Enricher) spawn(t Target, gen uint64) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		select {
		case e.sem <- struct{}{}:
			defer func() { <-e.sem }()
		case <-e.ctx.Done():
			return
		}

		e.resolve(t, gen)
	}()
}

func (e *Enricher) resolve(t Target, gen uint64) {
	ctx, cancel := context.WithTimeout(e.ctx, e.timeout)
	defer cancel()

	if md, ok := e.cache.Get(ctx, t.Network, t.Address); ok {
		e.apply(t.ID, gen, md, nil)
		return
	}

	md, err := e.fetcher.TokenMarketData(ctx, t.Network, t.Address)
	if err == nil {
		e.cache.Set(ctx, t.Network, t.Address, md)
	}
	e.apply(t.ID, gen, md, err)
}

// apply commits one fetch outcome. It only transitions a record that
// is still pending in the current generation, which makes result
// application idempotent and order-independent across records.
func (e *Enricher) apply(id string, gen uint64, md *MarketData, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation {
		return
	}
	current, ok := e.attachments[id]
	if !ok || current.Status != AttachmentPending {
		return
	}

	switch {
	case err == nil:
		e.attachments[id] = Attachment{Status: AttachmentSuccess, Data: md}
	case errors.Is(err, ErrNoPairs):
		e.attachments[id] = Attachment{Status: AttachmentNotFound, Error: err.Error()}
	case errors.Is(err, context.Canceled):
		// Teardown, not an outcome; leave the record pending.
	default:
		log.Warn().Err(err).Str("record_id", id).Msg("market data enrichment failed")
		e.attachments[id] = Attachment{Status: AttachmentFetchError, Error: err.Error()}
	}
}
