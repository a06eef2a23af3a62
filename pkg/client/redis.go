package client

import (
	"Moments/config"
	"Moments/pkg/log"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient 用于通知未读数缓存和操作频率锁, 连不上直接退出
func NewRedisClient(conf *config.Config) *redis.Client {
	addr := fmt.Sprintf("%s:%d", conf.Redis.Address, conf.Redis.Port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.Redis.Password,
		Username: conf.Redis.Username,
		DB:       conf.Redis.Database,
		PoolSize: conf.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.L.Fatal("connect redis error", zap.String("addr", addr), zap.Error(err))
	}
	log.L.Info("redis client success", zap.String("addr", addr), zap.Int("db", conf.Redis.Database))
	return client
}
