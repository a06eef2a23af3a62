package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 未读通知数缓存过期时间
const unreadExpireAt = 24 * time.Hour

// UnreadStorage 用户未读通知数, 数据库为准, redis 只做缓存
type UnreadStorage struct {
	redis *redis.Client
}

func NewUnreadStorage(rds *redis.Client) *UnreadStorage {
	return &UnreadStorage{rds}
}

// Get 返回缓存中的未读数, 未命中或出错时 ok 为 false
func (u *UnreadStorage) Get(ctx context.Context, uid uint64) (int64, bool) {
	n, err := u.redis.Get(ctx, u.name(uid)).Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

func (u *UnreadStorage) Set(ctx context.Context, uid uint64, count int64) error {
	return u.redis.Set(ctx, u.name(uid), count, unreadExpireAt).Err()
}

// Incr 仅在缓存存在时自增, 避免在未命中时写入错误的初始值
func (u *UnreadStorage) Incr(ctx context.Context, uid uint64) error {
	name := u.name(uid)
	exist, err := u.redis.Exists(ctx, name).Result()
	if err != nil || exist == 0 {
		return err
	}
	pipe := u.redis.TxPipeline()
	pipe.Incr(ctx, name)
	pipe.Expire(ctx, name, unreadExpireAt)
	_, err = pipe.Exec(ctx)
	return err
}

func (u *UnreadStorage) Del(ctx context.Context, uid uint64) error {
	return u.redis.Del(ctx, u.name(uid)).Err()
}

// moments:notification:unread:uid
func (u *UnreadStorage) name(uid uint64) string {
	return fmt.Sprintf("moments:notification:unread:%d", uid)
}
