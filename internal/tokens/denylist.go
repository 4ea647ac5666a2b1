package tokens

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRevoked is returned by Verify for a token revoked at logout.
var ErrRevoked = errors.New("token has been revoked")

const denylistPrefix = "resume:revoked:"

// Denylist remembers revoked access tokens until they would have expired.
// With a nil Redis client it keeps them in process.
type Denylist struct {
	rdb *redis.Client

	mu    sync.Mutex
	local map[string]time.Time
	now   func() time.Time
}

func NewDenylist(rdb *redis.Client) *Denylist {
	return &Denylist{rdb: rdb, local: make(map[string]time.Time), now: time.Now}
}

// Add revokes raw for ttl. A non-positive ttl is a no-op.
func (d *Denylist) Add(ctx context.Context, raw string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if d.rdb != nil {
		return d.rdb.Set(ctx, denylistPrefix+raw, "1", ttl).Err()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.local[raw] = d.now().Add(ttl)
	return nil
}

func (d *Denylist) Contains(ctx context.Context, raw string) (bool, error) {
	if d.rdb != nil {
		n, err := d.rdb.Exists(ctx, denylistPrefix+raw).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.local[raw]
	if !ok {
		return false, nil
	}
	if !d.now().Before(until) {
		delete(d.local, raw)
		return false, nil
	}
	return true, nil
}
