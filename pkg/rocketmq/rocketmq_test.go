package rocketmq

import (
	"Moments/config"
	"context"
	"testing"
)

func TestNewPublisherWithoutNameServer(t *testing.T) {
	p := NewPublisher(&config.RocketMQConfig{})
	if _, ok := p.(noopPublisher); !ok {
		t.Fatalf("expected noop publisher, got %T", p)
	}
	if err := p.Publish(context.Background(), "moments_notification", []byte("{}")); err != nil {
		t.Fatalf("noop publish: %v", err)
	}

	if _, ok := NewPublisher(nil).(noopPublisher); !ok {
		t.Fatalf("expected noop publisher for nil config")
	}
}

func TestNewSubscriberWithoutNameServer(t *testing.T) {
	s, err := NewSubscriber(&config.RocketMQConfig{})
	if err != nil {
		t.Fatalf("new subscriber: %v", err)
	}
	if _, ok := s.(noopSubscriber); !ok {
		t.Fatalf("expected noop subscriber, got %T", s)
	}
	if err := s.Subscribe("moments_notification", func(context.Context, []byte) error { return nil }); err != nil {
		t.Fatalf("noop subscribe: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("noop start: %v", err)
	}
}
