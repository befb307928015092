package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Atomic increment with TTL set on first use. The key expires at the
// end of its UTC day, so counters reset daily without a sweeper.
const quotaLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// QuotaCounter tracks per-user daily AI request usage.
type QuotaCounter struct {
	client *redis.Client
	script *redis.Script
}

func NewQuotaCounter(client *redis.Client) *QuotaCounter {
	return &QuotaCounter{
		client: client,
		script: redis.NewScript(quotaLuaScript),
	}
}

func quotaKey(userID string, day time.Time) string {
	return "ai:quota:" + userID + ":" + day.UTC().Format("2006-01-02")
}

// Consume records one AI request and returns the count used today,
// including this one. Callers compare against the applicable limit.
func (q *QuotaCounter) Consume(ctx context.Context, userID string) (int, error) {
	now := time.Now().UTC()
	midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	ttl := int(midnight.Sub(now).Seconds()) + 1

	count, err := q.script.Run(ctx, q.client, []string{quotaKey(userID, now)}, ttl).Int()
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Used reports today's usage without consuming.
func (q *QuotaCounter) Used(ctx context.Context, userID string) (int, error) {
	count, err := q.client.Get(ctx, quotaKey(userID, time.Now().UTC())).Int()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}
