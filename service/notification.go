package service

import (
	"Moments/config"
	"Moments/dao"
	"Moments/dao/cache"
	"Moments/models"
	"Moments/pkg/log"
	"Moments/pkg/rocketmq"
	"Moments/pkg/socket"
	"Moments/types"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"time"

	"go.uber.org/zap"
)

var _ INotificationService = (*NotificationService)(nil)

type INotificationService interface {
	PushFollow(ctx context.Context, follower, receiver *models.User)
	PushCollect(ctx context.Context, collector *models.User, photo *models.Photo, receiver *models.User)
	PushComment(ctx context.Context, actor *models.User, photoID uint64, page int, receiver *models.User)
	List(ctx context.Context, user *models.User, filter string, page int) ([]*models.Notification, types.Pagination, error)
	Read(ctx context.Context, user *models.User, id uint64) error
	ReadAll(ctx context.Context, user *models.User) (int64, error)
	UnreadCount(ctx context.Context, user *models.User) (int64, error)
}

type NotificationService struct {
	Config          *config.Config
	NotificationDAO *dao.NotificationDAO
	Unread          *cache.UnreadStorage
	Hub             *socket.Hub
	Publisher       rocketmq.Publisher
}

// NotificationEvent 推送给 websocket 客户端和消息队列的事件
type NotificationEvent struct {
	Event      string    `json:"event"`
	ReceiverID uint64    `json:"receiver_id"`
	Message    string    `json:"message"`
	Unread     int64     `json:"unread"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *NotificationService) PushFollow(ctx context.Context, follower, receiver *models.User) {
	if !receiver.ReceiveFollowNotification || follower.ID == receiver.ID {
		return
	}
	msg := fmt.Sprintf(`User <a href="%s">%s</a> followed you.`,
		userPath(follower.Username), html.EscapeString(follower.Username))
	s.push(ctx, receiver.ID, msg)
}

func (s *NotificationService) PushCollect(ctx context.Context, collector *models.User, photo *models.Photo, receiver *models.User) {
	if !receiver.ReceiveCollectNotification || collector.ID == receiver.ID {
		return
	}
	msg := fmt.Sprintf(`User <a href="%s">%s</a> collected your <a href="%s">photo</a>`,
		userPath(collector.Username), html.EscapeString(collector.Username), photoPath(photo.ID))
	s.push(ctx, receiver.ID, msg)
}

func (s *NotificationService) PushComment(ctx context.Context, actor *models.User, photoID uint64, page int, receiver *models.User) {
	if !receiver.ReceiveCommentNotification || actor.ID == receiver.ID {
		return
	}
	if page < 1 {
		page = 1
	}
	msg := fmt.Sprintf(`<a href="%s?page=%d#comments">This photo</a> has new comment/reply.`, photoPath(photoID), page)
	s.push(ctx, receiver.ID, msg)
}

// push 写入通知. 任何失败只记日志, 不影响触发通知的操作
func (s *NotificationService) push(ctx context.Context, receiverID uint64, message string) {
	n := &models.Notification{
		Message:    message,
		ReceiverID: receiverID,
		CreatedAt:  time.Now(),
	}
	if err := s.NotificationDAO.Create(ctx, n); err != nil {
		log.L.Error("create notification", zap.Uint64("receiver_id", receiverID), zap.Error(err))
		return
	}

	if err := s.Unread.Incr(ctx, receiverID); err != nil {
		log.L.Warn("incr unread cache", zap.Uint64("receiver_id", receiverID), zap.Error(err))
	}
	unread, err := s.unreadCount(ctx, receiverID)
	if err != nil {
		log.L.Warn("count unread notification", zap.Uint64("receiver_id", receiverID), zap.Error(err))
	}

	body, _ := json.Marshal(NotificationEvent{
		Event:      "notification",
		ReceiverID: receiverID,
		Message:    message,
		Unread:     unread,
		CreatedAt:  n.CreatedAt,
	})
	s.Hub.Push(receiverID, body)
	if err := s.Publisher.Publish(ctx, s.Config.RocketMQ.Topic, body); err != nil {
		log.L.Warn("publish notification event", zap.Uint64("receiver_id", receiverID), zap.Error(err))
	}
}

func (s *NotificationService) List(ctx context.Context, user *models.User, filter string, page int) ([]*models.Notification, types.Pagination, error) {
	if filter != dao.NotificationFilterUnread {
		filter = dao.NotificationFilterAll
	}
	return s.NotificationDAO.List(ctx, user.ID, filter, page, s.Config.Moments.NotificationPerPage)
}

func (s *NotificationService) Read(ctx context.Context, user *models.User, id uint64) error {
	n, err := s.NotificationDAO.FindById(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if n.ReceiverID != user.ID {
		return ErrPermissionDenied
	}
	if n.IsRead {
		return nil
	}
	if err := s.NotificationDAO.MarkRead(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, user.ID)
	return nil
}

func (s *NotificationService) ReadAll(ctx context.Context, user *models.User) (int64, error) {
	n, err := s.NotificationDAO.MarkAllRead(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, user.ID)
	return n, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, user *models.User) (int64, error) {
	return s.unreadCount(ctx, user.ID)
}

func (s *NotificationService) unreadCount(ctx context.Context, uid uint64) (int64, error) {
	if n, ok := s.Unread.Get(ctx, uid); ok {
		return n, nil
	}
	n, err := s.NotificationDAO.CountUnread(ctx, uid)
	if err != nil {
		return 0, err
	}
	if err := s.Unread.Set(ctx, uid, n); err != nil {
		log.L.Warn("set unread cache", zap.Uint64("uid", uid), zap.Error(err))
	}
	return n, nil
}

func (s *NotificationService) invalidate(ctx context.Context, uid uint64) {
	if err := s.Unread.Del(ctx, uid); err != nil {
		log.L.Warn("del unread cache", zap.Uint64("uid", uid), zap.Error(err))
	}
}

func userPath(username string) string {
	return "/user/" + url.PathEscape(username)
}

func photoPath(photoID uint64) string {
	return fmt.Sprintf("/photo/%d", photoID)
}
