package service

import (
	"Moments/config"
	"Moments/dao"
	"Moments/models"
	"Moments/pkg/log"
	"Moments/types"
	"context"

	"go.uber.org/zap"
)

var _ ICollectService = (*CollectService)(nil)

type ICollectService interface {
	// Collect 返回是否新收藏, 已收藏时返回 false
	Collect(ctx context.Context, actor *models.User, photoID uint64) (bool, error)
	Uncollect(ctx context.Context, actor *models.User, photoID uint64) (bool, error)
	IsCollecting(ctx context.Context, userID, photoID uint64) (bool, error)
	CollectorsCount(ctx context.Context, photoID uint64) (int64, error)
	Collectors(ctx context.Context, photoID uint64, page int) (*types.ListResp[*types.UserBrief], error)
}

type CollectService struct {
	Config        *config.Config
	CollectionDAO *dao.CollectionDAO
	PhotoDAO      *dao.PhotoDAO
	UserDAO       *dao.Users
	Storage       IStorage
	Notifier      INotificationService
}

func (s *CollectService) Collect(ctx context.Context, actor *models.User, photoID uint64) (bool, error) {
	photo, err := s.PhotoDAO.FindById(ctx, photoID)
	if err != nil {
		return false, notFound(err)
	}
	inserted, err := s.CollectionDAO.Insert(ctx, actor.ID, photo.ID)
	if err != nil || !inserted {
		return false, err
	}

	author, err := s.UserDAO.FindById(ctx, photo.AuthorID)
	if err != nil {
		log.L.Warn("load photo author", zap.Uint64("photo_id", photo.ID), zap.Error(err))
		return true, nil
	}
	s.Notifier.PushCollect(ctx, actor, photo, author)
	return true, nil
}

func (s *CollectService) Uncollect(ctx context.Context, actor *models.User, photoID uint64) (bool, error) {
	if _, err := s.PhotoDAO.FindById(ctx, photoID); err != nil {
		return false, notFound(err)
	}
	return s.CollectionDAO.Delete(ctx, actor.ID, photoID)
}

func (s *CollectService) IsCollecting(ctx context.Context, userID, photoID uint64) (bool, error) {
	return s.CollectionDAO.IsCollecting(ctx, userID, photoID)
}

func (s *CollectService) CollectorsCount(ctx context.Context, photoID uint64) (int64, error) {
	if _, err := s.PhotoDAO.FindById(ctx, photoID); err != nil {
		return 0, notFound(err)
	}
	return s.CollectionDAO.CountByPhoto(ctx, photoID)
}

func (s *CollectService) Collectors(ctx context.Context, photoID uint64, page int) (*types.ListResp[*types.UserBrief], error) {
	if _, err := s.PhotoDAO.FindById(ctx, photoID); err != nil {
		return nil, notFound(err)
	}
	users, p, err := s.CollectionDAO.Collectors(ctx, photoID, page, s.Config.Moments.UserPerPage)
	if err != nil {
		return nil, err
	}
	return types.NewListResp(toUserBriefs(s.Storage, users), p), nil
}
