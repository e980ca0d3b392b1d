package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker provides idempotency checks for process events backed by Redis.
// Key format: dedup:<protocol>:<status>:<unix_timestamp>
type DedupChecker struct {
	client redis.Cmdable
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client redis.Cmdable) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact event has already been applied.
func (d *DedupChecker) IsDuplicate(ctx context.Context, protocol, status string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(protocol, status, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been applied (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, protocol, status string, ts time.Time) error {
	return d.client.Set(ctx, dedupKey(protocol, status, ts), "1", dedupTTL).Err()
}

func dedupKey(protocol, status string, ts time.Time) string {
	return fmt.Sprintf("dedup:%s:%s:%d", protocol, status, ts.Unix())
}
