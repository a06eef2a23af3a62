package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 同一用户对同一目标重复提交的拦截窗口
const actionLockTTL = time.Second

// ActionLock 拦截短时间内的重复提交, 例如连点举报
type ActionLock struct {
	redis *redis.Client
}

func NewActionLock(rds *redis.Client) *ActionLock {
	return &ActionLock{rds}
}

// Acquire 获取成功返回 true. redis 不可用时放行
func (a *ActionLock) Acquire(ctx context.Context, action string, uid, target uint64) bool {
	ok, err := a.redis.SetNX(ctx, a.name(action, uid, target), 1, actionLockTTL).Result()
	if err != nil {
		return true
	}
	return ok
}

// moments:lock:action:uid:target
func (a *ActionLock) name(action string, uid, target uint64) string {
	return fmt.Sprintf("moments:lock:%s:%d:%d", action, uid, target)
}
