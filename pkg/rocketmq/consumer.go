package rocketmq

import (
	"Moments/config"
	"Moments/pkg/log"
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"go.uber.org/zap"
)

// HandleFunc 处理一条消息, 返回 error 时稍后重投
type HandleFunc func(ctx context.Context, body []byte) error

// Subscriber 订阅 topic, 未配置 nameserver 时为空实现
type Subscriber interface {
	Subscribe(topic string, fn HandleFunc) error
	Start() error
	Shutdown() error
}

type noopSubscriber struct{}

func (noopSubscriber) Subscribe(string, HandleFunc) error { return nil }
func (noopSubscriber) Start() error                       { return nil }
func (noopSubscriber) Shutdown() error                    { return nil }

type pushSubscriber struct {
	consumer rocketmq.PushConsumer
}

func (s *pushSubscriber) Subscribe(topic string, fn HandleFunc) error {
	return s.consumer.Subscribe(topic, consumer.MessageSelector{},
		func(ctx context.Context, msgs ...*primitive.MessageExt) (consumer.ConsumeResult, error) {
			for _, msg := range msgs {
				if err := fn(ctx, msg.Body); err != nil {
					log.L.Warn("consume message", zap.String("topic", topic), zap.String("msg_id", msg.MsgId), zap.Error(err))
					return consumer.ConsumeRetryLater, nil
				}
			}
			return consumer.ConsumeSuccess, nil
		})
}

func (s *pushSubscriber) Start() error {
	return s.consumer.Start()
}

func (s *pushSubscriber) Shutdown() error {
	return s.consumer.Shutdown()
}

// NewSubscriber 广播模式的消费者, 每个推送节点都会收到全部消息
func NewSubscriber(cfg *config.RocketMQConfig) (Subscriber, error) {
	if cfg == nil || len(cfg.NameServer) == 0 {
		return noopSubscriber{}, nil
	}
	c, err := rocketmq.NewPushConsumer(
		consumer.WithNameServer(cfg.NameServer),
		consumer.WithGroupName(cfg.Consumer.Group),
		consumer.WithConsumerModel(consumer.BroadCasting),
		consumer.WithConsumeFromWhere(consumer.ConsumeFromLastOffset),
	)
	if err != nil {
		return nil, err
	}
	log.L.Info("init consumer success", zap.Strings("nameserver", cfg.NameServer), zap.String("group", cfg.Consumer.Group))
	return &pushSubscriber{consumer: c}, nil
}
