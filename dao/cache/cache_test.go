package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })
	return mr, rds
}

func TestUnreadStorage(t *testing.T) {
	_, rds := newRedis(t)
	u := NewUnreadStorage(rds)
	ctx := context.Background()

	if _, ok := u.Get(ctx, 1); ok {
		t.Fatalf("expected cache miss")
	}

	// 未命中时自增不应创建 key
	if err := u.Incr(ctx, 1); err != nil {
		t.Fatalf("incr: %v", err)
	}
	if _, ok := u.Get(ctx, 1); ok {
		t.Fatalf("incr on a missing key must not create it")
	}

	if err := u.Set(ctx, 1, 3); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := u.Incr(ctx, 1); err != nil {
		t.Fatalf("incr: %v", err)
	}
	if n, ok := u.Get(ctx, 1); !ok || n != 4 {
		t.Fatalf("expected 4, got %d (hit=%v)", n, ok)
	}

	if err := u.Del(ctx, 1); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, ok := u.Get(ctx, 1); ok {
		t.Fatalf("expected miss after del")
	}
}

func TestUnreadStorageRedisDown(t *testing.T) {
	mr, rds := newRedis(t)
	u := NewUnreadStorage(rds)
	mr.Close()

	if _, ok := u.Get(context.Background(), 1); ok {
		t.Fatalf("redis errors must be reported as a miss")
	}
}

func TestActionLock(t *testing.T) {
	mr, rds := newRedis(t)
	l := NewActionLock(rds)
	ctx := context.Background()

	if !l.Acquire(ctx, "report-photo", 1, 10) {
		t.Fatalf("first acquire should succeed")
	}
	if l.Acquire(ctx, "report-photo", 1, 10) {
		t.Fatalf("second acquire within the window should fail")
	}
	if !l.Acquire(ctx, "report-photo", 2, 10) {
		t.Fatalf("another user should not be blocked")
	}

	mr.FastForward(2 * time.Second)
	if !l.Acquire(ctx, "report-photo", 1, 10) {
		t.Fatalf("acquire after the window should succeed")
	}
}
