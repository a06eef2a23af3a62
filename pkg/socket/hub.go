package socket

import (
	"Moments/pkg/log"
	"strconv"
	"sync/atomic"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

// Hub 当前节点上在线的 websocket 客户端, 按客户端 ID 索引
type Hub struct {
	clients cmap.ConcurrentMap[string, *Client]
	seq     atomic.Int64
}

func NewHub() *Hub {
	return &Hub{clients: cmap.New[*Client]()}
}

// Register 登记一个已完成握手的连接
func (h *Hub) Register(userID uint64, conn Conn) *Client {
	c := newClient(h.seq.Add(1), userID, conn)
	h.clients.Set(c.key(), c)
	log.L.Debug("socket client registered", zap.Int64("cid", c.cid), zap.Uint64("uid", userID))
	return c
}

func (h *Hub) Unregister(c *Client) {
	if _, ok := h.clients.Get(c.key()); !ok {
		return
	}
	h.clients.Remove(c.key())
	c.Close(1000, "bye")
}

// Push 向用户的所有连接投递消息, 返回投递成功的连接数
func (h *Hub) Push(userID uint64, payload []byte) int {
	n := 0
	for item := range h.clients.IterBuffered() {
		c := item.Val
		if c.userID != userID {
			continue
		}
		if c.Write(payload) {
			n++
		}
	}
	return n
}

// Online 用户在本节点的连接数
func (h *Hub) Online(userID uint64) int {
	n := 0
	h.clients.IterCb(func(_ string, c *Client) {
		if c.userID == userID {
			n++
		}
	})
	return n
}

func (c *Client) key() string {
	return strconv.FormatInt(c.cid, 10)
}
