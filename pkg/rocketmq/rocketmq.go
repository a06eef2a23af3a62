package rocketmq

import (
	"Moments/config"
	"Moments/pkg/log"
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

// Publisher 发布领域事件, 未配置 nameserver 时为空实现
type Publisher interface {
	Publish(ctx context.Context, topic string, body []byte) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, []byte) error { return nil }

type producerPublisher struct {
	producer rocketmq.Producer
}

func (p *producerPublisher) Publish(ctx context.Context, topic string, body []byte) error {
	_, err := p.producer.SendSync(ctx, primitive.NewMessage(topic, body))
	return err
}

// NewPublisher 初始化生产者, 启动失败时退化为空实现, 不影响主流程
func NewPublisher(cfg *config.RocketMQConfig) Publisher {
	if cfg == nil || len(cfg.NameServer) == 0 {
		return noopPublisher{}
	}

	retry := cfg.Producer.Retry
	if retry <= 0 {
		retry = 2
	}
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(retry),
	)
	if err != nil {
		log.L.Error("init rocketmq producer", zap.Error(err))
		return noopPublisher{}
	}
	if err = p.Start(); err != nil {
		log.L.Error("start rocketmq producer", zap.Error(err))
		return noopPublisher{}
	}
	log.L.Info("init producer success", zap.Strings("nameserver", cfg.NameServer))

	return &producerPublisher{producer: p}
}
