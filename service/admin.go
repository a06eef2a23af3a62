package service

import (
	"Moments/config"
	"Moments/dao"
	"Moments/models"
	"Moments/pkg/log"
	"Moments/types"
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var _ IAdminService = (*AdminService)(nil)

type IAdminService interface {
	Dashboard(ctx context.Context) (*types.Dashboard, error)
	// EditProfile 修改任意用户资料和角色, 角色为 Locked 时同时锁定
	EditProfile(ctx context.Context, id uint64, req *types.AdminEditProfileRequest) error
	Lock(ctx context.Context, operator *models.User, id uint64) error
	Unlock(ctx context.Context, operator *models.User, id uint64) error
	Block(ctx context.Context, operator *models.User, id uint64) error
	Unblock(ctx context.Context, operator *models.User, id uint64) error
	ManageUsers(ctx context.Context, filter string, page int) (*types.ListResp[*types.UserProfile], error)
	ManagePhotos(ctx context.Context, order string, page int) (*types.ListResp[*types.PhotoItem], error)
	ManageTags(ctx context.Context, page int) (*types.ListResp[*types.TagItem], error)
	ManageComments(ctx context.Context, order string, page int) (*types.ListResp[*types.CommentItem], error)
}

type AdminService struct {
	Config     *config.Config
	UserDAO    *dao.Users
	PhotoDAO   *dao.PhotoDAO
	TagDAO     *dao.TagDAO
	CommentDAO *dao.CommentDAO
	OutboxDAO  *dao.MailOutboxDAO
	Roles      IRoleService
	Comments   *CommentService
	Storage    IStorage
}

func (s *AdminService) Dashboard(ctx context.Context) (*types.Dashboard, error) {
	var d types.Dashboard
	g, ctx := errgroup.WithContext(ctx)
	counts := []struct {
		dst *int64
		fn  func() (int64, error)
	}{
		{&d.UserCount, func() (int64, error) { return s.UserDAO.Count(ctx, "") }},
		{&d.LockedUserCount, func() (int64, error) { return s.UserDAO.Count(ctx, "locked = ?", true) }},
		{&d.BlockedUserCount, func() (int64, error) { return s.UserDAO.Count(ctx, "active = ?", false) }},
		{&d.PhotoCount, func() (int64, error) { return s.PhotoDAO.Count(ctx, "") }},
		{&d.ReportedPhotos, func() (int64, error) { return s.PhotoDAO.Count(ctx, "flag > ?", 0) }},
		{&d.TagCount, func() (int64, error) { return s.TagDAO.Count(ctx, "") }},
		{&d.CommentCount, func() (int64, error) { return s.CommentDAO.Count(ctx, "") }},
		{&d.ReportedComments, func() (int64, error) { return s.CommentDAO.Count(ctx, "flag > ?", 0) }},
		{&d.PendingMailCount, func() (int64, error) { return s.OutboxDAO.CountByStatus(ctx, models.MailPending) }},
		{&d.FailedMailCount, func() (int64, error) { return s.OutboxDAO.CountByStatus(ctx, models.MailFailed) }},
	}
	for _, c := range counts {
		g.Go(func() error {
			n, err := c.fn()
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *AdminService) EditProfile(ctx context.Context, id uint64, req *types.AdminEditProfileRequest) error {
	user, err := s.UserDAO.FindById(ctx, id)
	if err != nil {
		return notFound(err)
	}
	role, err := s.Roles.RoleByName(ctx, req.Role)
	if err != nil {
		return err
	}
	if req.Username != user.Username {
		exist, err := s.UserDAO.IsUsernameExist(ctx, req.Username)
		if err != nil {
			return err
		}
		if exist {
			return ErrUsernameTaken
		}
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != user.Email {
		exist, err := s.UserDAO.IsEmailExist(ctx, email)
		if err != nil {
			return err
		}
		if exist {
			return ErrEmailTaken
		}
	}
	return s.UserDAO.UpdateById(ctx, user.ID, map[string]any{
		"name":      req.Name,
		"username":  req.Username,
		"email":     email,
		"website":   req.Website,
		"location":  req.Location,
		"bio":       req.Bio,
		"role_id":   role.ID,
		"locked":    role.Name == models.RoleLocked,
		"active":    req.Active,
		"confirmed": req.Confirmed,
	})
}

// guarded 管理员和协管员不能被锁定或封禁
func (s *AdminService) guarded(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.UserDAO.FindById(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	switch s.Roles.RoleName(ctx, user.RoleID) {
	case models.RoleAdministrator, models.RoleModerator:
		return nil, ErrPermissionDenied
	}
	return user, nil
}

func (s *AdminService) Lock(ctx context.Context, operator *models.User, id uint64) error {
	user, err := s.guarded(ctx, id)
	if err != nil {
		return err
	}
	return s.setRole(ctx, operator, user, models.RoleLocked)
}

func (s *AdminService) Unlock(ctx context.Context, operator *models.User, id uint64) error {
	user, err := s.UserDAO.FindById(ctx, id)
	if err != nil {
		return notFound(err)
	}
	return s.setRole(ctx, operator, user, models.RoleUser)
}

func (s *AdminService) setRole(ctx context.Context, operator, user *models.User, roleName string) error {
	role, err := s.Roles.RoleByName(ctx, roleName)
	if err != nil {
		return err
	}
	err = s.UserDAO.UpdateById(ctx, user.ID, map[string]any{
		"role_id": role.ID,
		"locked":  roleName == models.RoleLocked,
	})
	if err != nil {
		return err
	}
	log.L.Info("user role changed", zap.Uint64("uid", user.ID), zap.String("role", roleName), zap.Uint64("operator", operator.ID))
	return nil
}

func (s *AdminService) Block(ctx context.Context, operator *models.User, id uint64) error {
	user, err := s.guarded(ctx, id)
	if err != nil {
		return err
	}
	return s.setActive(ctx, operator, user, false)
}

func (s *AdminService) Unblock(ctx context.Context, operator *models.User, id uint64) error {
	user, err := s.UserDAO.FindById(ctx, id)
	if err != nil {
		return notFound(err)
	}
	return s.setActive(ctx, operator, user, true)
}

func (s *AdminService) setActive(ctx context.Context, operator, user *models.User, active bool) error {
	if err := s.UserDAO.UpdateById(ctx, user.ID, map[string]any{"active": active}); err != nil {
		return err
	}
	log.L.Info("user active changed", zap.Uint64("uid", user.ID), zap.Bool("active", active), zap.Uint64("operator", operator.ID))
	return nil
}

func (s *AdminService) ManageUsers(ctx context.Context, filter string, page int) (*types.ListResp[*types.UserProfile], error) {
	var roleID uint64
	switch filter {
	case dao.UserFilterAdministrator, dao.UserFilterModerator:
		name := models.RoleAdministrator
		if filter == dao.UserFilterModerator {
			name = models.RoleModerator
		}
		role, err := s.Roles.RoleByName(ctx, name)
		if err != nil {
			return nil, err
		}
		roleID = role.ID
	case dao.UserFilterLocked, dao.UserFilterBlocked:
	default:
		filter = dao.UserFilterAll
	}

	users, p, err := s.UserDAO.Manage(ctx, filter, roleID, page, s.Config.Moments.ManageUserPerPage)
	if err != nil {
		return nil, err
	}
	items := make([]*types.UserProfile, 0, len(users))
	for _, u := range users {
		items = append(items, &types.UserProfile{
			UserBrief:         *toUserBrief(s.Storage, u),
			Website:           u.Website,
			Bio:               u.Bio,
			Location:          u.Location,
			MemberSince:       u.MemberSince,
			Role:              s.Roles.RoleName(ctx, u.RoleID),
			Confirmed:         u.Confirmed,
			Locked:            u.Locked,
			Active:            u.Active,
			PublicCollections: u.PublicCollections,
		})
	}
	return types.NewListResp(items, p), nil
}

func (s *AdminService) ManagePhotos(ctx context.Context, order string, page int) (*types.ListResp[*types.PhotoItem], error) {
	if order != dao.OrderByFlag {
		order = dao.OrderByTime
	}
	photos, p, err := s.PhotoDAO.Manage(ctx, order, page, s.Config.Moments.ManagePhotoPerPage)
	if err != nil {
		return nil, err
	}
	items, err := photoItems(ctx, s.UserDAO, s.Storage, photos)
	if err != nil {
		return nil, err
	}
	return types.NewListResp(items, p), nil
}

func (s *AdminService) ManageTags(ctx context.Context, page int) (*types.ListResp[*types.TagItem], error) {
	tags, p, err := s.TagDAO.Manage(ctx, page, s.Config.Moments.ManageTagPerPage)
	if err != nil {
		return nil, err
	}
	items := toTagItems(tags)
	for _, item := range items {
		if item.PhotoCount, err = s.TagDAO.CountPhotos(ctx, item.ID); err != nil {
			return nil, err
		}
	}
	return types.NewListResp(items, p), nil
}

func (s *AdminService) ManageComments(ctx context.Context, order string, page int) (*types.ListResp[*types.CommentItem], error) {
	if order != dao.OrderByFlag {
		order = dao.OrderByTime
	}
	comments, p, err := s.CommentDAO.Manage(ctx, order, page, s.Config.Moments.ManageCommentPerPage)
	if err != nil {
		return nil, err
	}
	return types.NewListResp(s.Comments.present(ctx, comments), p), nil
}
