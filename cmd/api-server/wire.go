//go:build wireinject
// +build wireinject

package main

import (
	"Moments/config"
	"Moments/dao"
	"Moments/dao/cache"
	"Moments/handler"
	"Moments/middleware"
	"Moments/pkg/client"
	"Moments/pkg/database"
	"Moments/pkg/llm"
	"Moments/pkg/mailer"
	"Moments/pkg/rocketmq"
	"Moments/pkg/server"
	"Moments/pkg/socket"
	"Moments/service"

	"github.com/google/wire"
)

var infraSet = wire.NewSet(
	client.NewRedisClient,
	database.NewDB,
	config.ProvideOssConfig,
	config.ProvideRocketMQConfig,
	config.ProvideLLMConfig,
	rocketmq.NewPublisher,
	mailer.NewSender,
	llm.NewTagSuggester,
	socket.NewHub,
	cache.ProviderSet,
	dao.ProviderSet,
	service.ProviderSet,
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		infraSet,

		wire.Struct(new(middleware.Authenticator), "*"),
		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.Settings), "*"),
		wire.Struct(new(handler.Photo), "*"),
		wire.Struct(new(handler.Comment), "*"),
		wire.Struct(new(handler.Tag), "*"),
		wire.Struct(new(handler.Search), "*"),
		wire.Struct(new(handler.Notification), "*"),
		wire.Struct(new(handler.Admin), "*"),
		wire.Struct(new(handler.Media), "*"),

		wire.Struct(new(server.Handlers), "*"),
		server.NewGinEngine,
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil
}

func InitCommands(cfg *config.Config) *server.CommandProvider {
	wire.Build(
		infraSet,
		wire.Struct(new(server.CommandProvider), "*"),
	)
	return nil
}
