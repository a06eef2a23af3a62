package dao

import (
	"Moments/models"
	"Moments/types"
	"context"

	"gorm.io/gorm"
)

// 后台用户列表筛选
const (
	UserFilterAll           = "all"
	UserFilterLocked        = "locked"
	UserFilterBlocked       = "blocked"
	UserFilterAdministrator = "administrator"
	UserFilterModerator     = "moderator"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "email = ?", email)
}

func (u *Users) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "username = ?", username)
}

func (u *Users) IsEmailExist(ctx context.Context, email string) (bool, error) {
	return u.Repo.IsExist(ctx, "email = ?", email)
}

func (u *Users) IsUsernameExist(ctx context.Context, username string) (bool, error) {
	return u.Repo.IsExist(ctx, "username = ?", username)
}

// FindByIdsMap 批量查询, 以 ID 为键
func (u *Users) FindByIdsMap(ctx context.Context, ids []uint64) (map[uint64]*models.User, error) {
	users, err := u.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := make(map[uint64]*models.User, len(users))
	for _, user := range users {
		m[user.ID] = user
	}
	return m, nil
}

// Manage 后台用户列表, 按注册时间倒序
func (u *Users) Manage(ctx context.Context, filter string, roleID uint64, page, perPage int) ([]*models.User, types.Pagination, error) {
	return u.PaginateClamped(ctx, page, perPage, "member_since DESC, id DESC", func(tx *gorm.DB) *gorm.DB {
		switch filter {
		case UserFilterLocked:
			return tx.Where("locked = ?", true)
		case UserFilterBlocked:
			return tx.Where("active = ?", false)
		case UserFilterAdministrator, UserFilterModerator:
			return tx.Where("role_id = ?", roleID)
		}
		return tx
	})
}

func (u *Users) Search(ctx context.Context, q string, page, perPage int) ([]*models.User, types.Pagination, error) {
	like := containsPattern(q)
	return u.Paginate(ctx, page, perPage, "id DESC", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("username LIKE ? ESCAPE '!' OR name LIKE ? ESCAPE '!'", like, like)
	})
}

// DeleteCascade 删除用户及其全部内容, 返回需要清理的文件
func (u *Users) DeleteCascade(ctx context.Context, userID uint64) ([]string, error) {
	files := make([]string, 0)
	err := u.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		var photos []models.Photo
		if err := tx.Select("id, filename, filename_s, filename_m").
			Where("author_id = ?", userID).Find(&photos).Error; err != nil {
			return err
		}
		photoIDs := make([]uint64, 0, len(photos))
		for _, p := range photos {
			photoIDs = append(photoIDs, p.ID)
			files = append(files, p.Files()...)
		}

		var roots []uint64
		if err := tx.Model(&models.Comment{}).
			Where("author_id = ? OR photo_id IN ?", userID, photoIDs).
			Pluck("id", &roots).Error; err != nil {
			return err
		}
		if err := deleteCommentTree(tx, roots); err != nil {
			return err
		}

		if err := tx.Where("user_id = ? OR photo_id IN ?", userID, photoIDs).Delete(&models.Collection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id IN ?", photoIDs).Delete(&models.PhotoTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", userID).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", userID, userID).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("receiver_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.User{}, userID).Error; err != nil {
			return err
		}

		for _, name := range []string{user.AvatarS, user.AvatarM, user.AvatarL, user.AvatarRaw} {
			if name != "" {
				files = append(files, models.AvatarKey(name))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
