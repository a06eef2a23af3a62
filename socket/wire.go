package socket

import (
	"Moments/pkg/rocketmq"
	"Moments/pkg/socket"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	socket.NewHub,
	rocketmq.NewSubscriber,
	NewEngine,
	wire.Struct(new(AppProvider), "*"),
)
