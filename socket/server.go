package socket

import (
	"Moments/config"
	"Moments/pkg/jwt"
	"Moments/pkg/log"
	"Moments/pkg/rocketmq"
	"Moments/pkg/socket"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrServerClosed = errors.New("shutting down server")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// AppProvider 推送节点, 从消息队列消费通知事件并转发给本节点上的 websocket 连接
type AppProvider struct {
	Config     *config.Config
	Engine     *gin.Engine
	Hub        *socket.Hub
	Subscriber rocketmq.Subscriber
}

func NewEngine(cfg *config.Config, hub *socket.Hub) *gin.Engine {
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/ws", connect(cfg, hub))
	return r
}

// connect 只校验 access token, 不查库
func connect(cfg *config.Config, hub *socket.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if v := c.GetHeader("Authorization"); strings.HasPrefix(v, "Bearer ") {
			token = strings.TrimPrefix(v, "Bearer ")
		}
		claims, err := jwt.ParseToken([]byte(cfg.Jwt.Secret), jwt.TokenAccess, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "msg": "Please log in to access this page."})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.L.Warn("websocket upgrade", zap.Uint64("uid", claims.UserID), zap.Error(err))
			return
		}
		hub.Register(claims.UserID, conn).Serve(hub)
	}
}

// Relay 把一条通知事件投递给接收者在本节点的连接
func Relay(hub *socket.Hub) rocketmq.HandleFunc {
	return func(_ context.Context, body []byte) error {
		receiver := gjson.GetBytes(body, "receiver_id")
		if !receiver.Exists() || receiver.Uint() == 0 {
			log.L.Warn("drop notification event without receiver", zap.ByteString("body", body))
			return nil
		}
		n := hub.Push(receiver.Uint(), body)
		log.L.Debug("relay notification", zap.Uint64("uid", receiver.Uint()), zap.Int("delivered", n))
		return nil
	}
}

func Run(ctx *cli.Context, app *AppProvider) error {
	eg, groupCtx := errgroup.WithContext(ctx.Context)

	if err := app.Subscriber.Subscribe(app.Config.RocketMQ.Topic, Relay(app.Hub)); err != nil {
		return err
	}
	if err := app.Subscriber.Start(); err != nil {
		return err
	}
	defer func() {
		if err := app.Subscriber.Shutdown(); err != nil {
			log.L.Warn("shutdown subscriber", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)

	log.L.Info("server Pid", zap.Int("server_pid", os.Getpid()))
	log.L.Info("websocket listen", zap.Int("port", app.Config.Server.Websocket), zap.String("topic", app.Config.RocketMQ.Topic))

	return start(c, eg, groupCtx, app)
}

func start(c chan os.Signal, eg *errgroup.Group, ctx context.Context, app *AppProvider) error {
	serv := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.Config.Server.Websocket),
		Handler: app.Engine,
	}

	eg.Go(func() error {
		if err := serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() (err error) {
		defer func() {
			log.L.Info("Shutting down component...")

			timeCtx, timeCancel := context.WithTimeout(context.TODO(), 3*time.Second)
			defer timeCancel()

			if err := serv.Shutdown(timeCtx); err != nil {
				log.L.Error("Server Shutdown Failed", zap.Error(err))
			}

			err = ErrServerClosed
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c:
			return nil
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrServerClosed) {
		log.L.Error("Server forced to shutdown", zap.Error(err))
	}

	log.L.Info("Server exiting")
	return nil
}
