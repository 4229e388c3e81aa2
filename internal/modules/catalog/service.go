package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type Sort string

const (
	SortNone     Sort = ""
	SortPriceAsc Sort = "price_asc"
	SortNewest   Sort = "newest"
	SortOldest   Sort = "oldest"
	SortNameAsc  Sort = "name_asc"
)

// Filter mirrors the shop page controls: toggles combine with AND, a
// tag narrows by category, Query matches the name case-insensitively.
type Filter struct {
	InStockOnly  bool
	PremiumOnly  bool
	TrendingOnly bool
	Tag          string
	Query        string
	Sort         Sort
}

// Service caches the full product list in memory; the listing page
// filters and pages over that cache on every render. singleflight keeps
// a cold cache from fanning out into parallel identical queries.
type Service struct {
	repo Repository
	ttl  time.Duration
	sfg  singleflight.Group

	mu        sync.RWMutex
	cached    []Product
	fetchedAt time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, ttl: 5 * time.Minute}
}

// All returns the cached product list, refreshing it when stale.
func (s *Service) All(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.ttl {
		items := s.cached
		s.mu.RUnlock()
		return items, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.sfg.Do("all", func() (any, error) {
		items, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cached = items
		s.fetchedAt = time.Now()
		s.mu.Unlock()
		return items, nil
	})
	if err != nil {
		// Serve the stale cache rather than an empty shop if we have one.
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.cached != nil {
			return s.cached, nil
		}
		return nil, err
	}
	return v.([]Product), nil
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.repo.Get(ctx, id)
}

// Search applies the shop filters and sort over the cached list. The
// result is a fresh slice; callers may page over it freely.
func (s *Service) Search(ctx context.Context, f Filter) ([]Product, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	tag := strings.TrimSpace(f.Tag)

	out := make([]Product, 0, len(all))
	for _, p := range all {
		if f.InStockOnly && !p.InStock {
			continue
		}
		if f.PremiumOnly && !p.Premium {
			continue
		}
		if f.TrendingOnly && !p.Trending {
			continue
		}
		if tag != "" && !strings.EqualFold(p.Tag, tag) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceCents < out[j].PriceCents })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out, nil
}

// Invalidate drops the cache; the seeding tool calls it after an import.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.fetchedAt = time.Time{}
}
