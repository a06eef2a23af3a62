package service

import (
	"Moments/dao"
	"Moments/models"
	"context"
)

var _ IFollowService = (*FollowService)(nil)

type IFollowService interface {
	// Follow 返回是否新建了关注关系, 已关注或关注自己时返回 false
	Follow(ctx context.Context, actor *models.User, username string) (bool, error)
	Unfollow(ctx context.Context, actor *models.User, username string) (bool, error)
	IsFollowing(ctx context.Context, follower, followed uint64) (bool, error)
	IsFollowedBy(ctx context.Context, user, other uint64) (bool, error)
	FollowersCount(ctx context.Context, userID uint64) (int64, error)
	FollowingCount(ctx context.Context, userID uint64) (int64, error)
}

type FollowService struct {
	FollowDAO *dao.FollowDAO
	UserDAO   *dao.Users
	Notifier  INotificationService
}

func (s *FollowService) Follow(ctx context.Context, actor *models.User, username string) (bool, error) {
	target, err := s.UserDAO.FindByUsername(ctx, username)
	if err != nil {
		return false, notFound(err)
	}
	if target.ID == actor.ID {
		return false, nil
	}
	inserted, err := s.FollowDAO.Insert(ctx, actor.ID, target.ID)
	if err != nil {
		return false, err
	}
	if inserted {
		s.Notifier.PushFollow(ctx, actor, target)
	}
	return inserted, nil
}

func (s *FollowService) Unfollow(ctx context.Context, actor *models.User, username string) (bool, error) {
	target, err := s.UserDAO.FindByUsername(ctx, username)
	if err != nil {
		return false, notFound(err)
	}
	return s.FollowDAO.Delete(ctx, actor.ID, target.ID)
}

func (s *FollowService) IsFollowing(ctx context.Context, follower, followed uint64) (bool, error) {
	return s.FollowDAO.IsFollowing(ctx, follower, followed)
}

// IsFollowedBy user 是否被 other 关注
func (s *FollowService) IsFollowedBy(ctx context.Context, user, other uint64) (bool, error) {
	return s.FollowDAO.IsFollowing(ctx, other, user)
}

func (s *FollowService) FollowersCount(ctx context.Context, userID uint64) (int64, error) {
	return s.FollowDAO.FollowerCount(ctx, userID)
}

func (s *FollowService) FollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return s.FollowDAO.FollowingCount(ctx, userID)
}
