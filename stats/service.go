package stats

import (
	"context"
	"encoding/json"
	"time"
)

const usageCacheKey = "usage-stats"

type StarCounter interface {
	Count(ctx context.Context) int
}

type UsageCounter interface {
	Get(ctx context.Context, key string) int64
	Hit(ctx context.Context, key string) int64
}

type Snapshot struct {
	Stars     int       `json:"stars"`
	Usage     int64     `json:"usage"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Service combines the star count and the export counter behind one cache.
// Either collaborator may be nil.
type Service struct {
	Stars    StarCounter
	Usage    UsageCounter
	UsageKey string
	Cache    Cache
}

func (s *Service) Snapshot(ctx context.Context) Snapshot {
	snap := Snapshot{FetchedAt: time.Now().UTC()}
	if s.Stars != nil {
		snap.Stars = s.Stars.Count(ctx)
	}
	snap.Usage = s.usage(ctx)
	return snap
}

func (s *Service) usage(ctx context.Context) int64 {
	if s.Usage == nil {
		return 0
	}
	if s.Cache != nil {
		if raw, ok := s.Cache.Get(usageCacheKey); ok {
			var cached counterValue
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached.Value
			}
		}
	}
	v := s.Usage.Get(ctx, s.UsageKey)
	s.remember(v)
	return v
}

func (s *Service) remember(v int64) {
	if s.Cache == nil || v == 0 {
		return
	}
	raw, _ := json.Marshal(counterValue{Value: v})
	s.Cache.Set(usageCacheKey, raw)
}

// RecordExport bumps the export counter in the background. The returned
// channel is closed once the hit has been sent, for callers that care.
func (s *Service) RecordExport(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if s.Usage == nil {
		close(done)
		return done
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(ctx, defaultCounterTimeout)
		defer cancel()
		s.remember(s.Usage.Hit(ctx, s.UsageKey))
	}()
	return done
}
