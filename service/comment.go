package service

import (
	"Moments/config"
	"Moments/dao"
	"Moments/dao/cache"
	"Moments/models"
	"Moments/pkg/log"
	"Moments/types"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

const actionReportComment = "report_comment"

var _ ICommentService = (*CommentService)(nil)

type ICommentService interface {
	// Create 发表评论, req.ReplyTo 非 0 时为回复
	Create(ctx context.Context, actor *models.User, photoID uint64, req *types.CommentRequest) (*types.CommentItem, error)
	Get(ctx context.Context, id uint64) (*types.CommentItem, error)
	List(ctx context.Context, photoID uint64, page int) (*types.ListResp[*types.CommentItem], error)
	// Delete 评论作者, 照片作者或有 MODERATE 权限的用户可删除, 连同全部回复
	Delete(ctx context.Context, actor *models.User, id uint64) error
	Report(ctx context.Context, actor *models.User, id uint64) error
}

type CommentService struct {
	Config     *config.Config
	CommentDAO *dao.CommentDAO
	PhotoDAO   *dao.PhotoDAO
	UserDAO    *dao.Users
	Roles      IRoleService
	Storage    IStorage
	Lock       *cache.ActionLock
	Notifier   INotificationService
}

func (s *CommentService) Create(ctx context.Context, actor *models.User, photoID uint64, req *types.CommentRequest) (*types.CommentItem, error) {
	photo, err := s.PhotoDAO.FindById(ctx, photoID)
	if err != nil {
		return nil, notFound(err)
	}
	if !photo.CanComment {
		return nil, ErrCommentDisabled
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, ErrEmptyComment
	}

	comment := &models.Comment{
		Body:      body,
		AuthorID:  actor.ID,
		PhotoID:   photo.ID,
		CreatedAt: time.Now(),
	}
	var replied *models.Comment
	if req.ReplyTo != 0 {
		replied, err = s.CommentDAO.FindById(ctx, req.ReplyTo)
		if err != nil {
			return nil, notFound(err)
		}
		if replied.PhotoID != photo.ID {
			return nil, ErrNotFound
		}
		comment.RepliedID = &replied.ID
	}
	if err := s.CommentDAO.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notify(ctx, actor, photo, replied)
	return s.present(ctx, []*models.Comment{comment})[0], nil
}

// notify 通知照片作者和被回复者, 同一人只通知一次
func (s *CommentService) notify(ctx context.Context, actor *models.User, photo *models.Photo, replied *models.Comment) {
	count, err := s.CommentDAO.CountByPhoto(ctx, photo.ID)
	if err != nil {
		log.L.Warn("count comments", zap.Uint64("photo_id", photo.ID), zap.Error(err))
	}
	// 新评论所在的最后一页
	perPage := int64(s.Config.Moments.CommentPerPage)
	page := int((count + perPage - 1) / perPage)

	if author, err := s.UserDAO.FindById(ctx, photo.AuthorID); err == nil {
		s.Notifier.PushComment(ctx, actor, photo.ID, page, author)
	} else {
		log.L.Warn("load photo author", zap.Uint64("photo_id", photo.ID), zap.Error(err))
	}

	if replied == nil || replied.AuthorID == photo.AuthorID {
		return
	}
	if receiver, err := s.UserDAO.FindById(ctx, replied.AuthorID); err == nil {
		s.Notifier.PushComment(ctx, actor, photo.ID, page, receiver)
	} else {
		log.L.Warn("load replied author", zap.Uint64("comment_id", replied.ID), zap.Error(err))
	}
}

func (s *CommentService) Get(ctx context.Context, id uint64) (*types.CommentItem, error) {
	comment, err := s.CommentDAO.FindById(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return s.present(ctx, []*models.Comment{comment})[0], nil
}

func (s *CommentService) List(ctx context.Context, photoID uint64, page int) (*types.ListResp[*types.CommentItem], error) {
	if _, err := s.PhotoDAO.FindById(ctx, photoID); err != nil {
		return nil, notFound(err)
	}
	comments, p, err := s.CommentDAO.ListByPhoto(ctx, photoID, page, s.Config.Moments.CommentPerPage)
	if err != nil {
		return nil, err
	}
	return types.NewListResp(s.present(ctx, comments), p), nil
}

func (s *CommentService) Delete(ctx context.Context, actor *models.User, id uint64) error {
	comment, err := s.CommentDAO.FindById(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if comment.AuthorID != actor.ID && !s.Roles.Can(ctx, actor, models.PermModerate) {
		photo, err := s.PhotoDAO.FindById(ctx, comment.PhotoID)
		if err != nil {
			return notFound(err)
		}
		if photo.AuthorID != actor.ID {
			return ErrPermissionDenied
		}
	}
	n, err := s.CommentDAO.DeleteTree(ctx, comment.ID)
	if err != nil {
		return notFound(err)
	}
	log.L.Info("comment deleted", zap.Uint64("comment_id", comment.ID), zap.Int("count", n), zap.Uint64("operator", actor.ID))
	return nil
}

// Report 每次举报计数加一, 不去重
func (s *CommentService) Report(ctx context.Context, actor *models.User, id uint64) error {
	if !s.Lock.Acquire(ctx, actionReportComment, actor.ID, id) {
		return ErrTooFrequent
	}
	return notFound(s.CommentDAO.IncrFlag(ctx, id))
}

// present 填充作者及被回复评论的作者
func (s *CommentService) present(ctx context.Context, comments []*models.Comment) []*types.CommentItem {
	repliedIDs := make([]uint64, 0)
	for _, c := range comments {
		if c.RepliedID != nil {
			repliedIDs = append(repliedIDs, *c.RepliedID)
		}
	}
	repliedAuthor := make(map[uint64]uint64, len(repliedIDs))
	if replied, err := s.CommentDAO.FindByIds(ctx, repliedIDs); err == nil {
		for _, r := range replied {
			repliedAuthor[r.ID] = r.AuthorID
		}
	} else {
		log.L.Warn("load replied comments", zap.Error(err))
	}

	userIDs := make([]uint64, 0, len(comments)+len(repliedAuthor))
	for _, c := range comments {
		userIDs = append(userIDs, c.AuthorID)
	}
	for _, uid := range repliedAuthor {
		userIDs = append(userIDs, uid)
	}
	users, err := s.UserDAO.FindByIdsMap(ctx, userIDs)
	if err != nil {
		log.L.Warn("load comment authors", zap.Error(err))
		users = map[uint64]*models.User{}
	}

	items := make([]*types.CommentItem, 0, len(comments))
	for _, c := range comments {
		item := &types.CommentItem{
			ID:        c.ID,
			Body:      c.Body,
			Flag:      c.Flag,
			CreatedAt: c.CreatedAt,
			PhotoID:   c.PhotoID,
			RepliedID: c.RepliedID,
			Author:    toUserBrief(s.Storage, users[c.AuthorID]),
		}
		if c.RepliedID != nil {
			if uid, ok := repliedAuthor[*c.RepliedID]; ok {
				item.RepliedAuthor = toUserBrief(s.Storage, users[uid])
			}
		}
		items = append(items, item)
	}
	return items
}
