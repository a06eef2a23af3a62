//go:build wireinject
// +build wireinject

package main

import (
	"Moments/config"
	"Moments/socket"

	"github.com/google/wire"
)

func InitSocketServer(cfg *config.Config) (*socket.AppProvider, error) {
	wire.Build(
		config.ProvideRocketMQConfig,
		socket.ProviderSet,
	)
	return nil, nil
}
