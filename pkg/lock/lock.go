// Package lock provides best-effort leader locks for periodic jobs that must
// not run on several replicas at once.
package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Locker hands out a lease on key for at most ttl. ok is false when someone
// else holds it. release is safe to call more than once.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// deletes the key only while it still carries our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	rdb *redis.Client
}

func NewRedisLocker(rdb *redis.Client) Locker {
	return &redisLocker{rdb: rdb}
}

func (l *redisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, lockKey(key), token, ttl).Result()
	if err != nil {
		return nil, false, errors.Wrap(err, "redis SetNX")
	}
	if !ok {
		return func() {}, false, nil
	}
	var once sync.Once
	release := func() {
		once.Do(func() {
			// detached so a cancelled job still frees the lease
			_ = releaseScript.Run(context.Background(), l.rdb, []string{lockKey(key)}, token).Err()
		})
	}
	return release, true, nil
}

func lockKey(key string) string { return "lendix:lock:" + key }

type localLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	nowFn func() time.Time
}

// NewLocalLocker is the single-replica Locker.
func NewLocalLocker() Locker {
	return &localLocker{held: make(map[string]time.Time), nowFn: time.Now}
}

func (l *localLocker) TryLock(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	if until, ok := l.held[key]; ok && now.Before(until) {
		return func() {}, false, nil
	}
	until := now.Add(ttl)
	l.held[key] = until

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if l.held[key].Equal(until) {
				delete(l.held, key)
			}
		})
	}
	return release, true, nil
}
