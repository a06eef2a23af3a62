package main

import (
	"Moments/config"
	"Moments/pkg/log"
	s "Moments/socket"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)
	cfg.App.Env = env
	log.SetDebug(cfg.Debug())

	serve := func(ctx *cli.Context) error {
		conn, err := InitSocketServer(cfg)
		if err != nil {
			return err
		}
		return s.Run(ctx, conn)
	}

	cliApp := &cli.App{
		Name:  "conn-server",
		Usage: "websocket push gateway for notification events",
		// 默认启动行为
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Action: serve,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}
