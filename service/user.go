package service

import (
	"Moments/config"
	"Moments/dao"
	"Moments/models"
	"Moments/pkg/encrypt"
	"Moments/pkg/jwt"
	"Moments/types"
	"context"
	"errors"
	"io"
	"strings"

	"gorm.io/gorm"
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uint64) (*models.User, error)
	Profile(ctx context.Context, viewer *models.User, username string) (*types.UserProfile, error)
	UserPhotos(ctx context.Context, username string, page int) (*types.ListResp[*types.PhotoItem], error)
	// UserCollections 收藏不公开时只有本人可见
	UserCollections(ctx context.Context, viewer *models.User, username string, page int) (*types.ListResp[*types.PhotoItem], error)
	Followers(ctx context.Context, username string, page int) (*types.ListResp[*types.UserBrief], error)
	Following(ctx context.Context, username string, page int) (*types.ListResp[*types.UserBrief], error)

	EditProfile(ctx context.Context, user *models.User, req *types.EditProfileRequest) error
	ChangePassword(ctx context.Context, user *models.User, req *types.ChangePasswordRequest) error
	RequestEmailChange(ctx context.Context, user *models.User, email string) error
	ChangeEmail(ctx context.Context, viewer *models.User, token string) error
	UpdateNotificationSettings(ctx context.Context, user *models.User, req *types.NotificationSettingRequest) error
	UpdatePrivacy(ctx context.Context, user *models.User, req *types.PrivacySettingRequest) error
	UploadAvatar(ctx context.Context, user *models.User, filename string, r io.Reader) (*types.AvatarResponse, error)
	CropAvatar(ctx context.Context, user *models.User, req *types.CropAvatarRequest) (*types.AvatarResponse, error)
	DeleteAccount(ctx context.Context, user *models.User, username string) error
}

type UserService struct {
	Config        *config.Config
	UserDAO       *dao.Users
	PhotoDAO      *dao.PhotoDAO
	CollectionDAO *dao.CollectionDAO
	FollowDAO     *dao.FollowDAO
	Roles         IRoleService
	Mail          IMailService
	Avatars       IAvatarService
	Storage       IStorage
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.UserDAO.FindByUsername(ctx, username)
	return user, notFound(err)
}

func (s *UserService) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.UserDAO.FindById(ctx, id)
	return user, notFound(err)
}

func (s *UserService) Profile(ctx context.Context, viewer *models.User, username string) (*types.UserProfile, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profile := &types.UserProfile{
		UserBrief:         *toUserBrief(s.Storage, user),
		Website:           user.Website,
		Bio:               user.Bio,
		Location:          user.Location,
		MemberSince:       user.MemberSince,
		Role:              s.Roles.RoleName(ctx, user.RoleID),
		Confirmed:         user.Confirmed,
		Locked:            user.Locked,
		Active:            user.Active,
		PublicCollections: user.PublicCollections,
	}
	if profile.PhotoCount, err = s.PhotoDAO.CountByAuthor(ctx, user.ID); err != nil {
		return nil, err
	}
	if profile.CollectionCount, err = s.CollectionDAO.CountByUser(ctx, user.ID); err != nil {
		return nil, err
	}
	if profile.FollowerCount, err = s.FollowDAO.FollowerCount(ctx, user.ID); err != nil {
		return nil, err
	}
	if profile.FollowingCount, err = s.FollowDAO.FollowingCount(ctx, user.ID); err != nil {
		return nil, err
	}
	if viewer != nil && viewer.ID != user.ID {
		if profile.IsFollowing, err = s.FollowDAO.IsFollowing(ctx, viewer.ID, user.ID); err != nil {
			return nil, err
		}
		if profile.IsFollowedBy, err = s.FollowDAO.IsFollowing(ctx, user.ID, viewer.ID); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func (s *UserService) UserPhotos(ctx context.Context, username string, page int) (*types.ListResp[*types.PhotoItem], error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	photos, p, err := s.PhotoDAO.ByAuthor(ctx, user.ID, page, s.Config.Moments.PhotoPerPage)
	if err != nil {
		return nil, err
	}
	items := make([]*types.PhotoItem, 0, len(photos))
	for _, photo := range photos {
		items = append(items, toPhotoItem(s.Storage, photo, user))
	}
	return types.NewListResp(items, p), nil
}

func (s *UserService) UserCollections(ctx context.Context, viewer *models.User, username string, page int) (*types.ListResp[*types.PhotoItem], error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.PublicCollections && (viewer == nil || viewer.ID != user.ID) {
		return nil, ErrPermissionDenied
	}
	photos, p, err := s.CollectionDAO.CollectedPhotos(ctx, user.ID, page, s.Config.Moments.PhotoPerPage)
	if err != nil {
		return nil, err
	}
	items, err := photoItems(ctx, s.UserDAO, s.Storage, photos)
	if err != nil {
		return nil, err
	}
	return types.NewListResp(items, p), nil
}

func (s *UserService) Followers(ctx context.Context, username string, page int) (*types.ListResp[*types.UserBrief], error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	users, p, err := s.FollowDAO.Followers(ctx, user.ID, page, s.Config.Moments.UserPerPage)
	if err != nil {
		return nil, err
	}
	return types.NewListResp(toUserBriefs(s.Storage, users), p), nil
}

func (s *UserService) Following(ctx context.Context, username string, page int) (*types.ListResp[*types.UserBrief], error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	users, p, err := s.FollowDAO.Following(ctx, user.ID, page, s.Config.Moments.UserPerPage)
	if err != nil {
		return nil, err
	}
	return types.NewListResp(toUserBriefs(s.Storage, users), p), nil
}

func (s *UserService) EditProfile(ctx context.Context, user *models.User, req *types.EditProfileRequest) error {
	if req.Username != user.Username {
		exist, err := s.UserDAO.IsUsernameExist(ctx, req.Username)
		if err != nil {
			return err
		}
		if exist {
			return ErrUsernameTaken
		}
	}
	err := s.UserDAO.UpdateById(ctx, user.ID, map[string]any{
		"name":     req.Name,
		"username": req.Username,
		"website":  req.Website,
		"location": req.Location,
		"bio":      req.Bio,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUsernameTaken
	}
	return err
}

func (s *UserService) ChangePassword(ctx context.Context, user *models.User, req *types.ChangePasswordRequest) error {
	if !encrypt.VerifyPassword(user.PasswordHash, req.OldPassword) {
		return ErrWrongPassword
	}
	hash, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return err
	}
	return s.UserDAO.UpdateById(ctx, user.ID, map[string]any{"password_hash": hash})
}

func (s *UserService) RequestEmailChange(ctx context.Context, user *models.User, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	exist, err := s.UserDAO.IsEmailExist(ctx, email)
	if err != nil {
		return err
	}
	if exist {
		return ErrEmailTaken
	}
	token, err := jwt.GenerateOperationToken([]byte(s.Config.Jwt.Secret), user.ID, jwt.OperationChangeEmail, email, s.Config.Jwt.OperationExpire())
	if err != nil {
		return err
	}
	return s.Mail.SendChangeEmail(ctx, user, email, token)
}

func (s *UserService) ChangeEmail(ctx context.Context, viewer *models.User, token string) error {
	var owner uint64
	if viewer != nil {
		owner = viewer.ID
	}
	claims, ok := jwt.ParseOperationToken([]byte(s.Config.Jwt.Secret), owner, jwt.OperationChangeEmail, token)
	if !ok {
		return ErrInvalidToken
	}
	email := strings.ToLower(claims.NewEmail)
	// 令牌签发后邮箱可能已被占用
	exist, err := s.UserDAO.IsEmailExist(ctx, email)
	if err != nil {
		return err
	}
	if exist {
		return ErrInvalidToken
	}
	if err := s.UserDAO.UpdateById(ctx, claims.UserID, map[string]any{"email": email}); err != nil {
		if dao.IsNotFound(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

func (s *UserService) UpdateNotificationSettings(ctx context.Context, user *models.User, req *types.NotificationSettingRequest) error {
	return s.UserDAO.UpdateById(ctx, user.ID, map[string]any{
		"receive_comment_notification": req.ReceiveCommentNotification,
		"receive_follow_notification":  req.ReceiveFollowNotification,
		"receive_collect_notification": req.ReceiveCollectNotification,
	})
}

func (s *UserService) UpdatePrivacy(ctx context.Context, user *models.User, req *types.PrivacySettingRequest) error {
	return s.UserDAO.UpdateById(ctx, user.ID, map[string]any{"public_collections": req.PublicCollections})
}

func (s *UserService) UploadAvatar(ctx context.Context, user *models.User, filename string, r io.Reader) (*types.AvatarResponse, error) {
	raw, err := s.Avatars.SaveRaw(ctx, filename, r)
	if err != nil {
		return nil, err
	}
	if err := s.UserDAO.UpdateById(ctx, user.ID, map[string]any{"avatar_raw": raw}); err != nil {
		removeFiles(ctx, s.Storage, avatarKeys(raw)...)
		return nil, err
	}
	// 只保留最近一次上传的原图
	if user.AvatarRaw != "" && user.AvatarRaw != raw {
		removeFiles(ctx, s.Storage, avatarKeys(user.AvatarRaw)...)
	}
	return &types.AvatarResponse{
		AvatarS:   avatarURL(s.Storage, user.AvatarS),
		AvatarM:   avatarURL(s.Storage, user.AvatarM),
		AvatarL:   avatarURL(s.Storage, user.AvatarL),
		AvatarRaw: avatarURL(s.Storage, raw),
	}, nil
}

func (s *UserService) CropAvatar(ctx context.Context, user *models.User, req *types.CropAvatarRequest) (*types.AvatarResponse, error) {
	if user.AvatarRaw == "" {
		return nil, ErrInvalidImage
	}
	names, err := s.Avatars.Crop(ctx, user.AvatarRaw, req.X, req.Y, req.W, req.H)
	if err != nil {
		return nil, err
	}
	err = s.UserDAO.UpdateById(ctx, user.ID, map[string]any{
		"avatar_s": names[0],
		"avatar_m": names[1],
		"avatar_l": names[2],
	})
	if err != nil {
		return nil, err
	}
	removeFiles(ctx, s.Storage, avatarKeys(user.AvatarS, user.AvatarM, user.AvatarL)...)
	return &types.AvatarResponse{
		AvatarS:   avatarURL(s.Storage, names[0]),
		AvatarM:   avatarURL(s.Storage, names[1]),
		AvatarL:   avatarURL(s.Storage, names[2]),
		AvatarRaw: avatarURL(s.Storage, user.AvatarRaw),
	}, nil
}

// DeleteAccount 需要输入自己的用户名确认
func (s *UserService) DeleteAccount(ctx context.Context, user *models.User, username string) error {
	if username != user.Username {
		return ErrUsernameMismatch
	}
	files, err := s.UserDAO.DeleteCascade(ctx, user.ID)
	if err != nil {
		return notFound(err)
	}
	removeFiles(ctx, s.Storage, files...)
	return nil
}
