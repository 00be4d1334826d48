// Package cache holds the Redis-backed summary cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"promanager/internal/core/domain"
	"promanager/internal/core/ports"
)

const DefaultPrefix = "promanager:summary:"

type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Sets    uint64 `json:"sets"`
	Deletes uint64 `json:"deletes"`
	Errors  uint64 `json:"errors"`
}

// SummaryCache stores per-owner task summaries as JSON with a fixed TTL.
type SummaryCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  Stats
}

// summaryEntry keeps the cached payload independent of the domain struct.
type summaryEntry struct {
	TotalBacklogTasks        int `json:"totalBacklogTasks"`
	TotalTodoTasks           int `json:"totalTodoTasks"`
	TotalProgressTasks       int `json:"totalProgressTasks"`
	TotalDoneTasks           int `json:"totalDoneTasks"`
	HighPriorityTasksCount   int `json:"highPriorityTasksCount"`
	MediumPriorityTasksCount int `json:"mediumPriorityTasksCount"`
	LowPriorityTasksCount    int `json:"lowPriorityTasksCount"`
	DueDatePassedTasksCount  int `json:"dueDatePassedTasksCount"`
}

var _ ports.SummaryCache = (*SummaryCache)(nil)

func NewSummaryCache(client *redis.Client, prefix string, ttl time.Duration) *SummaryCache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &SummaryCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *SummaryCache) key(ownerID string) string {
	return c.prefix + ownerID
}

func (c *SummaryCache) GetSummary(ctx context.Context, ownerID string) (domain.StatusPrioritySummary, bool, error) {
	data, err := c.client.Get(ctx, c.key(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			atomic.AddUint64(&c.stats.Misses, 1)
			return domain.StatusPrioritySummary{}, false, nil
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		return domain.StatusPrioritySummary{}, false, fmt.Errorf("cache get error: %w", err)
	}

	var entry summaryEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return domain.StatusPrioritySummary{}, false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	atomic.AddUint64(&c.stats.Hits, 1)
	return domain.StatusPrioritySummary(entry), true, nil
}

func (c *SummaryCache) SetSummary(ctx context.Context, ownerID string, summary domain.StatusPrioritySummary) error {
	data, err := json.Marshal(summaryEntry(summary))
	if err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, c.key(ownerID), data, c.ttl).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache set error: %w", err)
	}

	atomic.AddUint64(&c.stats.Sets, 1)
	return nil
}

func (c *SummaryCache) InvalidateSummary(ctx context.Context, ownerID string) error {
	if err := c.client.Del(ctx, c.key(ownerID)).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache delete error: %w", err)
	}

	atomic.AddUint64(&c.stats.Deletes, 1)
	return nil
}

// GetStats returns a snapshot of the counters.
func (c *SummaryCache) GetStats() Stats {
	return Stats{
		Hits:    atomic.LoadUint64(&c.stats.Hits),
		Misses:  atomic.LoadUint64(&c.stats.Misses),
		Sets:    atomic.LoadUint64(&c.stats.Sets),
		Deletes: atomic.LoadUint64(&c.stats.Deletes),
		Errors:  atomic.LoadUint64(&c.stats.Errors),
	}
}

func (c *SummaryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *SummaryCache) Close() error {
	return c.client.Close()
}
