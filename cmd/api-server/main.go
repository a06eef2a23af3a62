package main

import (
	"Moments/config"
	"Moments/pkg/log"
	"Moments/pkg/server"
	"Moments/service"
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

	cliApp := &cli.App{
		Name:  "moments",
		Usage: "photo sharing api server",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					return server.Run(ctx, InitServer(cfg))
				},
			},
			{
				Name:  "init-db",
				Usage: "create tables",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "drop", Usage: "drop all tables first"},
				},
				Action: func(ctx *cli.Context) error {
					return InitCommands(cfg).InitDB(ctx.Bool("drop"))
				},
			},
			{
				Name:  "init-app",
				Usage: "create tables, roles and permissions",
				Action: func(ctx *cli.Context) error {
					return InitCommands(cfg).InitApp(ctx.Context)
				},
			},
			{
				Name:  "lorem",
				Usage: "rebuild database with fake data",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "user", Value: 10, Usage: "number of users"},
					&cli.IntFlag{Name: "follow", Value: 30, Usage: "number of follows"},
					&cli.IntFlag{Name: "photo", Value: 30, Usage: "number of photos"},
					&cli.IntFlag{Name: "tag", Value: 20, Usage: "number of tags"},
					&cli.IntFlag{Name: "collect", Value: 50, Usage: "number of collects"},
					&cli.IntFlag{Name: "comment", Value: 100, Usage: "number of comments"},
				},
				Action: func(ctx *cli.Context) error {
					return InitCommands(cfg).GenerateLorem(ctx.Context, service.LoremOptions{
						User:    ctx.Int("user"),
						Follow:  ctx.Int("follow"),
						Photo:   ctx.Int("photo"),
						Tag:     ctx.Int("tag"),
						Collect: ctx.Int("collect"),
						Comment: ctx.Int("comment"),
					})
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to run command", zap.Error(err))
	}
}
