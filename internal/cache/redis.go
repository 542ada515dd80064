package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
)

// NewClient connects to redis at addr. Callers treat a nil client as
// "cache disabled" and run straight through to the provider.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// QuoteCache stores latest quotes with a TTL so bursts of stock requests
// do not hammer the market-data provider.
type QuoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewQuoteCache(client *redis.Client, ttl time.Duration) *QuoteCache {
	return &QuoteCache{client: client, ttl: ttl}
}

func quoteKey(ticker string) string { return "quote:" + ticker }

// Get returns the cached quote or nil on miss. Cache errors are returned
// so the caller can log and degrade; they never fail a request.
func (c *QuoteCache) Get(ctx context.Context, ticker string) (*domain.Quote, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, quoteKey(ticker)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var q domain.Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *QuoteCache) Set(ctx context.Context, q *domain.Quote) error {
	if c == nil || c.client == nil || q == nil {
		return nil
	}
	raw, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, quoteKey(q.Ticker), raw, c.ttl).Err()
}
