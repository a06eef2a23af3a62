package handler

import (
	"Moments/middleware"
	"Moments/pkg/context"
	"Moments/pkg/log"
	"Moments/pkg/response"
	"Moments/pkg/socket"
	"Moments/service"
	"Moments/types"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Notification struct {
	Authenticator       *middleware.Authenticator
	NotificationService service.INotificationService
	Hub                 *socket.Hub
}

func (h *Notification) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/notifications")
	g.Use(h.Authenticator.Required())
	g.GET("", context.Wrap(h.List))
	g.GET("/count", context.Wrap(h.Count))
	g.POST("/read/:id", context.Wrap(h.Read))
	g.POST("/read-all", context.Wrap(h.ReadAll))
	// 握手时通过 ?token= 鉴权
	g.GET("/ws", context.Wrap(h.Connect))
}

// List ?filter=all|unread
func (h *Notification) List(c *gin.Context) error {
	items, p, err := h.NotificationService.List(c.Request.Context(), context.CurrentUser(c), c.DefaultQuery("filter", "all"), page(c))
	if err != nil {
		return bizError(err)
	}
	list := make([]*types.NotificationItem, 0, len(items))
	for _, n := range items {
		list = append(list, &types.NotificationItem{
			ID:        n.ID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	response.Success(c, types.NewListResp(list, p))
	return nil
}

func (h *Notification) Count(c *gin.Context) error {
	n, err := h.NotificationService.UnreadCount(c.Request.Context(), context.CurrentUser(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, types.CountResponse{Count: n})
	return nil
}

func (h *Notification) Read(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.NotificationService.Read(c.Request.Context(), context.CurrentUser(c), id); err != nil {
		return bizError(err)
	}
	response.Message(c, "Notification archived.", nil)
	return nil
}

func (h *Notification) ReadAll(c *gin.Context) error {
	n, err := h.NotificationService.ReadAll(c.Request.Context(), context.CurrentUser(c))
	if err != nil {
		return bizError(err)
	}
	response.Message(c, "All notifications archived.", types.CountResponse{Count: n})
	return nil
}

// Connect 升级为 websocket, 连接建立后先推送一次未读数, 之后由 NotificationService 推送新通知
func (h *Notification) Connect(c *gin.Context) error {
	user := context.CurrentUser(c)
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 已经写过错误响应
		log.L.Warn("websocket upgrade", zap.Uint64("uid", user.ID), zap.Error(err))
		return nil
	}

	client := h.Hub.Register(user.ID, conn)
	unread, err := h.NotificationService.UnreadCount(c.Request.Context(), user)
	if err != nil {
		log.L.Warn("count unread notification", zap.Uint64("uid", user.ID), zap.Error(err))
	}
	body, _ := json.Marshal(service.NotificationEvent{
		Event:      "unread",
		ReceiverID: user.ID,
		Unread:     unread,
		CreatedAt:  time.Now(),
	})
	client.Write(body)

	client.Serve(h.Hub)
	return nil
}
