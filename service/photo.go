package service

import (
	"Moments/config"
	"Moments/dao"
	"Moments/dao/cache"
	"Moments/models"
	"Moments/pkg/llm"
	"Moments/pkg/log"
	"Moments/pkg/utils"
	"Moments/types"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// 首页探索随机展示的照片数
const explorePhotoCount = 12

const actionReportPhoto = "report_photo"

var _ IPhotoService = (*PhotoService)(nil)

type IPhotoService interface {
	Upload(ctx context.Context, user *models.User, filename string, r io.Reader, description string) (*models.Photo, error)
	Get(ctx context.Context, id uint64) (*models.Photo, error)
	Detail(ctx context.Context, viewer *models.User, id uint64) (*types.PhotoDetail, error)
	Feed(ctx context.Context, user *models.User, page int) (*types.ListResp[*types.PhotoItem], error)
	Explore(ctx context.Context) ([]*types.PhotoItem, error)
	// Next 同一作者更早的照片
	Next(ctx context.Context, id uint64) (uint64, error)
	// Previous 同一作者更新的照片
	Previous(ctx context.Context, id uint64) (uint64, error)
	EditDescription(ctx context.Context, user *models.User, id uint64, description string) error
	// ToggleComment 开关评论, 返回新的状态
	ToggleComment(ctx context.Context, user *models.User, id uint64) (bool, error)
	Report(ctx context.Context, user *models.User, id uint64) error
	Delete(ctx context.Context, user *models.User, id uint64) error
	ShareCode(ctx context.Context, id uint64) (string, error)
	ByShareCode(ctx context.Context, code string) (*models.Photo, error)
	SuggestTags(ctx context.Context, user *models.User, id uint64) ([]string, error)
}

type PhotoService struct {
	Config        *config.Config
	PhotoDAO      *dao.PhotoDAO
	TagDAO        *dao.TagDAO
	CommentDAO    *dao.CommentDAO
	CollectionDAO *dao.CollectionDAO
	UserDAO       *dao.Users
	Roles         IRoleService
	Storage       IStorage
	Lock          *cache.ActionLock
	Suggester     llm.TagSuggester
}

// Upload 保存原图及 small/medium 缩略图. 原图不超过目标宽度时缩略图直接复用原图
func (s *PhotoService) Upload(ctx context.Context, user *models.User, filename string, r io.Reader, description string) (*models.Photo, error) {
	cfg := s.Config.Moments
	data, err := readUpload(r, cfg.MaxUploadSize)
	if err != nil {
		return nil, err
	}
	img, format, err := decodeUpload(filename, data)
	if err != nil {
		return nil, err
	}

	name := renameImage(filename)
	saved := make([]string, 0, 3)
	cleanup := func() { removeFiles(ctx, s.Storage, saved...) }

	if err := s.Storage.Save(ctx, name, data); err != nil {
		return nil, err
	}
	saved = append(saved, name)

	photo := &models.Photo{
		Description: strings.TrimSpace(description),
		Filename:    name,
		CanComment:  true,
		AuthorID:    user.ID,
		CreatedAt:   time.Now(),
	}
	for _, v := range []struct {
		base   int
		suffix string
		dst    *string
	}{
		{cfg.PhotoSmallSize, cfg.PhotoSmallSuffix, &photo.FilenameS},
		{cfg.PhotoMediumSize, cfg.PhotoMedSuffix, &photo.FilenameM},
	} {
		vname, vdata, err := variant(img, format, name, v.base, v.suffix)
		if err != nil {
			cleanup()
			return nil, err
		}
		if vdata != nil {
			if err := s.Storage.Save(ctx, vname, vdata); err != nil {
				cleanup()
				return nil, err
			}
			saved = append(saved, vname)
		}
		*v.dst = vname
	}

	if err := s.PhotoDAO.Create(ctx, photo); err != nil {
		cleanup()
		return nil, err
	}
	log.L.Info("photo uploaded", zap.Uint64("photo_id", photo.ID), zap.Uint64("uid", user.ID))
	return photo, nil
}

func (s *PhotoService) Get(ctx context.Context, id uint64) (*models.Photo, error) {
	photo, err := s.PhotoDAO.FindById(ctx, id)
	return photo, notFound(err)
}

func (s *PhotoService) Detail(ctx context.Context, viewer *models.User, id uint64) (*types.PhotoDetail, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	author, err := s.UserDAO.FindById(ctx, photo.AuthorID)
	if err != nil {
		return nil, notFound(err)
	}
	tags, err := s.TagDAO.TagsOfPhoto(ctx, photo.ID)
	if err != nil {
		return nil, err
	}

	detail := &types.PhotoDetail{
		PhotoItem: *toPhotoItem(s.Storage, photo, author),
		Tags:      toTagItems(tags),
		ShareCode: utils.GenHashID(s.Config.Moments.HashIDSalt, photo.ID),
	}
	if detail.CollectCount, err = s.CollectionDAO.CountByPhoto(ctx, photo.ID); err != nil {
		return nil, err
	}
	if detail.CommentCount, err = s.CommentDAO.CountByPhoto(ctx, photo.ID); err != nil {
		return nil, err
	}
	if viewer != nil {
		if detail.IsCollecting, err = s.CollectionDAO.IsCollecting(ctx, viewer.ID, photo.ID); err != nil {
			return nil, err
		}
		detail.CanEdit = viewer.ID == photo.AuthorID
		detail.CanModerate = s.Roles.Can(ctx, viewer, models.PermModerate)
	}
	return detail, nil
}

func (s *PhotoService) Feed(ctx context.Context, user *models.User, page int) (*types.ListResp[*types.PhotoItem], error) {
	photos, p, err := s.PhotoDAO.Feed(ctx, user.ID, page, s.Config.Moments.PhotoPerPage)
	if err != nil {
		return nil, err
	}
	items, err := photoItems(ctx, s.UserDAO, s.Storage, photos)
	if err != nil {
		return nil, err
	}
	return types.NewListResp(items, p), nil
}

func (s *PhotoService) Explore(ctx context.Context) ([]*types.PhotoItem, error) {
	photos, err := s.PhotoDAO.Random(ctx, explorePhotoCount)
	if err != nil {
		return nil, err
	}
	return photoItems(ctx, s.UserDAO, s.Storage, photos)
}

func (s *PhotoService) Next(ctx context.Context, id uint64) (uint64, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	next, err := s.PhotoDAO.Next(ctx, photo)
	if err != nil {
		if dao.IsNotFound(err) {
			return 0, ErrLastPhoto
		}
		return 0, err
	}
	return next.ID, nil
}

func (s *PhotoService) Previous(ctx context.Context, id uint64) (uint64, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	prev, err := s.PhotoDAO.Previous(ctx, photo)
	if err != nil {
		if dao.IsNotFound(err) {
			return 0, ErrFirstPhoto
		}
		return 0, err
	}
	return prev.ID, nil
}

// authored 只有作者本人可以操作
func (s *PhotoService) authored(ctx context.Context, user *models.User, id uint64) (*models.Photo, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if photo.AuthorID != user.ID {
		return nil, ErrPermissionDenied
	}
	return photo, nil
}

// moderated 作者本人或有 MODERATE 权限的用户可以操作
func (s *PhotoService) moderated(ctx context.Context, user *models.User, id uint64) (*models.Photo, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if photo.AuthorID != user.ID && !s.Roles.Can(ctx, user, models.PermModerate) {
		return nil, ErrPermissionDenied
	}
	return photo, nil
}

func (s *PhotoService) EditDescription(ctx context.Context, user *models.User, id uint64, description string) error {
	photo, err := s.moderated(ctx, user, id)
	if err != nil {
		return err
	}
	return s.PhotoDAO.UpdateById(ctx, photo.ID, map[string]any{"description": strings.TrimSpace(description)})
}

func (s *PhotoService) ToggleComment(ctx context.Context, user *models.User, id uint64) (bool, error) {
	photo, err := s.authored(ctx, user, id)
	if err != nil {
		return false, err
	}
	enabled := !photo.CanComment
	if err := s.PhotoDAO.UpdateById(ctx, photo.ID, map[string]any{"can_comment": enabled}); err != nil {
		return false, err
	}
	return enabled, nil
}

// Report 每次举报计数加一, 不去重
func (s *PhotoService) Report(ctx context.Context, user *models.User, id uint64) error {
	if !s.Lock.Acquire(ctx, actionReportPhoto, user.ID, id) {
		return ErrTooFrequent
	}
	return notFound(s.PhotoDAO.IncrFlag(ctx, id))
}

// Delete 作者本人或有 MODERATE 权限的用户可删除
func (s *PhotoService) Delete(ctx context.Context, user *models.User, id uint64) error {
	photo, err := s.moderated(ctx, user, id)
	if err != nil {
		return err
	}
	if err := s.PhotoDAO.DeleteCascade(ctx, photo.ID); err != nil {
		return notFound(err)
	}
	removeFiles(ctx, s.Storage, photo.Files()...)
	log.L.Info("photo deleted", zap.Uint64("photo_id", photo.ID), zap.Uint64("operator", user.ID))
	return nil
}

func (s *PhotoService) ShareCode(ctx context.Context, id uint64) (string, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return utils.GenHashID(s.Config.Moments.HashIDSalt, photo.ID), nil
}

func (s *PhotoService) ByShareCode(ctx context.Context, code string) (*models.Photo, error) {
	id, err := utils.DecodeHashID(s.Config.Moments.HashIDSalt, code)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *PhotoService) SuggestTags(ctx context.Context, user *models.User, id uint64) ([]string, error) {
	photo, err := s.authored(ctx, user, id)
	if err != nil {
		return nil, err
	}
	tags, err := s.Suggester.SuggestTags(ctx, s.Storage.URL(photo.FilenameM))
	if err != nil {
		if !errors.Is(err, llm.ErrDisabled) {
			log.L.Warn("suggest tags", zap.Uint64("photo_id", photo.ID), zap.Error(err))
		}
		return nil, ErrSuggestUnavailable
	}
	return tags, nil
}
