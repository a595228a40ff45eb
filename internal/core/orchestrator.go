package core

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

const defaultTimeout = 15 * time.Second

type Orchestrator struct {
	router   *Router
	resolver *Resolver
	timeout  time.Duration
	cache    SnapshotCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

type OrchestratorOption func(*Orchestrator)

func WithTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithSnapshotCache serves provider snapshots from c while they are younger
// than ttl.
func WithSnapshotCache(c SnapshotCache, ttl time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		o.cache = c
		o.cacheTTL = ttl
	}
}

func WithLogger(l *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

func NewOrchestrator(router *Router, resolver *Resolver, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		router:   router,
		resolver: resolver,
		timeout:  defaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type snapshot struct {
	provider string
	legs     []FlightLeg
	err      *ProviderError
}

// Resolve fetches the leg snapshot from every active provider and resolves
// the query against it. Provider failures are reported in the result and
// never fail the search.
func (o *Orchestrator) Resolve(ctx context.Context, q Query) (*SearchResult, error) {
	providers := o.router.ActiveLegProviders()

	var errs []ProviderError
	if len(providers) == 0 {
		errs = append(errs, ProviderError{
			Provider: "none",
			Reason:   "no active leg providers for current mode",
			Fallback: "synthetic options only",
		})
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	snapshots := make([]snapshot, len(providers))
	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, provider LegProvider) {
			defer wg.Done()
			snapshots[i] = o.fetch(ctx, provider, q)
		}(i, p)
	}
	wg.Wait()

	var (
		legs     []FlightLeg
		provUsed []string
	)
	for _, s := range snapshots {
		if s.err != nil {
			o.logger.WarnContext(ctx, "leg provider failed", "provider", s.provider, "reason", s.err.Reason)
			errs = append(errs, *s.err)
			continue
		}
		legs = append(legs, s.legs...)
		provUsed = append(provUsed, s.provider)
	}

	legs = DedupeLegs(legs)
	options := o.resolver.Resolve(legs, q)

	o.logger.DebugContext(ctx, "flight options resolved",
		"origin", q.Origin, "destination", q.Destination,
		"legs", len(legs), "options", len(options))

	return &SearchResult{
		Query:      q,
		Mode:       o.router.Mode(),
		Providers:  provUsed,
		Options:    options,
		TotalFound: len(options),
		Errors:     errs,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

func (o *Orchestrator) fetch(ctx context.Context, provider LegProvider, q Query) snapshot {
	name := provider.Name()
	key := SnapshotKey(provider, q)

	if o.cache != nil {
		if data, ok := o.cache.Get(key, o.cacheTTL); ok {
			var legs []FlightLeg
			if err := json.Unmarshal(data, &legs); err == nil {
				return snapshot{provider: name, legs: legs}
			}
		}
	}

	done := make(chan struct{})
	var legs []FlightLeg
	var err error

	go func() {
		legs, err = provider.Legs(ctx, q)
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return timedOut(name)
	}

	if err != nil {
		if ctx.Err() != nil {
			return timedOut(name)
		}
		return snapshot{provider: name, err: &ProviderError{Provider: name, Reason: err.Error()}}
	}

	if o.cache != nil {
		if data, mErr := json.Marshal(legs); mErr == nil {
			if sErr := o.cache.Set(key, data); sErr != nil {
				o.logger.WarnContext(ctx, "snapshot cache write failed", "provider", name, "error", sErr)
			}
		}
	}

	return snapshot{provider: name, legs: legs}
}

func timedOut(name string) snapshot {
	return snapshot{provider: name, err: &ProviderError{
		Provider: name,
		Reason:   "timeout",
		Fallback: "results from other providers may still be available",
	}}
}

// SnapshotKey identifies a provider snapshot in the cache. Providers that
// implement SnapshotSource add their source so a changed path, database
// or day never reuses an older snapshot.
func SnapshotKey(p LegProvider, q Query) string {
	key := "legs|" + p.Name()
	if s, ok := p.(SnapshotSource); ok {
		key += "|" + s.SnapshotSource(q)
	}
	return key
}
