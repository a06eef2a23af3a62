package service

import (
	"Moments/config"
	"Moments/dao"
	"Moments/models"
	"Moments/pkg/encrypt"
	"Moments/pkg/jwt"
	"Moments/pkg/log"
	"Moments/types"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	// Confirm 确认邮箱. viewer 为空时只校验令牌, 返回值表示之前是否已确认
	Confirm(ctx context.Context, viewer *models.User, token string) (bool, error)
	ResendConfirmation(ctx context.Context, user *models.User) error
	ForgetPassword(ctx context.Context, email string) error
	ValidateResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, email, password string) error
	IssueAccessToken(user *models.User) (*types.TokenResponse, error)
}

type AuthService struct {
	Config  *config.Config
	UserDAO *dao.Users
	Roles   IRoleService
	Mail    IMailService
	Avatars IAvatarService
}

func (s *AuthService) secret() []byte {
	return []byte(s.Config.Jwt.Secret)
}

// conflict 并发注册时唯一索引兜底, 按邮箱是否已存在区分冲突字段
func (s *AuthService) conflict(ctx context.Context, email string, err error) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	if exist, checkErr := s.UserDAO.IsEmailExist(ctx, email); checkErr == nil && exist {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if exist, err := s.UserDAO.IsEmailExist(ctx, email); err != nil {
		return nil, err
	} else if exist {
		return nil, ErrEmailTaken
	}
	if exist, err := s.UserDAO.IsUsernameExist(ctx, req.Username); err != nil {
		return nil, err
	} else if exist {
		return nil, ErrUsernameTaken
	}

	hash, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	roleName := models.RoleUser
	if admin := s.Config.Moments.AdminEmail; admin != "" && strings.EqualFold(admin, email) {
		roleName = models.RoleAdministrator
	}
	role, err := s.Roles.RoleByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(req.Name, req.Username, email)
	user.PasswordHash = hash
	user.RoleID = role.ID
	if names, err := s.Avatars.Generate(ctx, req.Username); err != nil {
		log.L.Warn("generate avatar", zap.String("username", req.Username), zap.Error(err))
	} else {
		user.AvatarS, user.AvatarM, user.AvatarL = names[0], names[1], names[2]
	}

	if err := s.UserDAO.Create(ctx, user); err != nil {
		return nil, s.conflict(ctx, email, err)
	}

	if err := s.sendConfirmation(ctx, user); err != nil {
		log.L.Error("send confirm email", zap.Uint64("uid", user.ID), zap.Error(err))
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.UserDAO.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !encrypt.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrBlocked
	}
	return user, nil
}

func (s *AuthService) Confirm(ctx context.Context, viewer *models.User, token string) (bool, error) {
	var owner uint64
	if viewer != nil {
		if viewer.Confirmed {
			return true, nil
		}
		owner = viewer.ID
	}
	claims, ok := jwt.ParseOperationToken(s.secret(), owner, jwt.OperationConfirm, token)
	if !ok {
		return false, ErrInvalidToken
	}
	user, err := s.UserDAO.FindById(ctx, claims.UserID)
	if err != nil {
		if dao.IsNotFound(err) {
			return false, ErrInvalidToken
		}
		return false, err
	}
	if user.Confirmed {
		return true, nil
	}
	return false, s.UserDAO.UpdateById(ctx, user.ID, map[string]any{"confirmed": true})
}

func (s *AuthService) ResendConfirmation(ctx context.Context, user *models.User) error {
	if user.Confirmed {
		return ErrAlreadyConfirmed
	}
	return s.sendConfirmation(ctx, user)
}

func (s *AuthService) sendConfirmation(ctx context.Context, user *models.User) error {
	token, err := jwt.GenerateOperationToken(s.secret(), user.ID, jwt.OperationConfirm, "", s.Config.Jwt.OperationExpire())
	if err != nil {
		return err
	}
	return s.Mail.SendConfirmation(ctx, user, token)
}

func (s *AuthService) ForgetPassword(ctx context.Context, email string) error {
	user, err := s.UserDAO.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return notFound(err)
	}
	token, err := jwt.GenerateOperationToken(s.secret(), user.ID, jwt.OperationResetPassword, "", s.Config.Jwt.OperationExpire())
	if err != nil {
		return err
	}
	return s.Mail.SendResetPassword(ctx, user, token)
}

func (s *AuthService) ValidateResetToken(_ context.Context, token string) error {
	if _, ok := jwt.ParseOperationToken(s.secret(), 0, jwt.OperationResetPassword, token); !ok {
		return ErrInvalidToken
	}
	return nil
}

// ResetPassword 令牌必须属于该邮箱的用户, 任何不匹配都视为令牌无效
func (s *AuthService) ResetPassword(ctx context.Context, token, email, password string) error {
	user, err := s.UserDAO.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if dao.IsNotFound(err) {
			return ErrInvalidToken
		}
		return err
	}
	if _, ok := jwt.ParseOperationToken(s.secret(), user.ID, jwt.OperationResetPassword, token); !ok {
		return ErrInvalidToken
	}
	hash, err := encrypt.HashPassword(password)
	if err != nil {
		return err
	}
	return s.UserDAO.UpdateById(ctx, user.ID, map[string]any{"password_hash": hash})
}

func (s *AuthService) IssueAccessToken(user *models.User) (*types.TokenResponse, error) {
	expire := s.Config.Jwt.AccessExpire()
	token, err := jwt.GenerateToken(s.secret(), user.ID, jwt.TokenAccess, expire)
	if err != nil {
		return nil, err
	}
	return &types.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(expire.Seconds()),
		TokenType:   "Bearer",
	}, nil
}
