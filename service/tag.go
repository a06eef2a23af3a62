package service

import (
	"Moments/config"
	"Moments/dao"
	"Moments/models"
	"Moments/types"
	"context"
	"strings"
	"unicode/utf8"
)

// 标签名最大长度
const maxTagLength = 64

var _ ITagService = (*TagService)(nil)

type ITagService interface {
	// AddTags 按空白切分, 按输入顺序创建并关联, 返回照片当前的全部标签
	AddTags(ctx context.Context, user *models.User, photoID uint64, text string) ([]*types.TagItem, error)
	// RemoveTag 解除关联, 返回标签是否因不再被引用而删除
	RemoveTag(ctx context.Context, user *models.User, photoID, tagID uint64) (bool, error)
	Get(ctx context.Context, id uint64) (*types.TagItem, error)
	TagPhotos(ctx context.Context, tagID uint64, order string, page int) (*types.ListResp[*types.PhotoItem], error)
	PopularTags(ctx context.Context, limit int) ([]*types.TagItem, error)
	Delete(ctx context.Context, tagID uint64) error
}

type TagService struct {
	Config   *config.Config
	TagDAO   *dao.TagDAO
	PhotoDAO *dao.PhotoDAO
	UserDAO  *dao.Users
	Roles    IRoleService
	Storage  IStorage
}

// ParseTagNames 切分标签文本, 去重并保持顺序
func ParseTagNames(text string) ([]string, error) {
	fields := strings.Fields(text)
	names := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, name := range fields {
		if utf8.RuneCountInString(name) > maxTagLength {
			return nil, ErrInvalidTag
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, ErrInvalidTag
	}
	return names, nil
}

func (s *TagService) AddTags(ctx context.Context, user *models.User, photoID uint64, text string) ([]*types.TagItem, error) {
	photo, err := s.PhotoDAO.FindById(ctx, photoID)
	if err != nil {
		return nil, notFound(err)
	}
	if photo.AuthorID != user.ID && !s.Roles.Can(ctx, user, models.PermModerate) {
		return nil, ErrPermissionDenied
	}
	// 先校验全部名称, 不做部分写入
	names, err := ParseTagNames(text)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		tag, err := s.TagDAO.FindOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		if _, err := s.TagDAO.Attach(ctx, photo.ID, tag.ID); err != nil {
			return nil, err
		}
	}
	tags, err := s.TagDAO.TagsOfPhoto(ctx, photo.ID)
	if err != nil {
		return nil, err
	}
	return toTagItems(tags), nil
}

func (s *TagService) RemoveTag(ctx context.Context, user *models.User, photoID, tagID uint64) (bool, error) {
	photo, err := s.PhotoDAO.FindById(ctx, photoID)
	if err != nil {
		return false, notFound(err)
	}
	if photo.AuthorID != user.ID && !s.Roles.Can(ctx, user, models.PermModerate) {
		return false, ErrPermissionDenied
	}
	removed, err := s.TagDAO.Detach(ctx, photo.ID, tagID)
	return removed, notFound(err)
}

func (s *TagService) Get(ctx context.Context, id uint64) (*types.TagItem, error) {
	tag, err := s.TagDAO.FindById(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	count, err := s.TagDAO.CountPhotos(ctx, tag.ID)
	if err != nil {
		return nil, err
	}
	return &types.TagItem{ID: tag.ID, Name: tag.Name, PhotoCount: count}, nil
}

func (s *TagService) TagPhotos(ctx context.Context, tagID uint64, order string, page int) (*types.ListResp[*types.PhotoItem], error) {
	if _, err := s.TagDAO.FindById(ctx, tagID); err != nil {
		return nil, notFound(err)
	}
	if order != dao.OrderByCollects {
		order = dao.OrderByTime
	}
	photos, p, err := s.PhotoDAO.ByTag(ctx, tagID, order, page, s.Config.Moments.PhotoPerPage)
	if err != nil {
		return nil, err
	}
	items, err := photoItems(ctx, s.UserDAO, s.Storage, photos)
	if err != nil {
		return nil, err
	}
	return types.NewListResp(items, p), nil
}

func (s *TagService) PopularTags(ctx context.Context, limit int) ([]*types.TagItem, error) {
	stats, err := s.TagDAO.Popular(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]*types.TagItem, 0, len(stats))
	for _, st := range stats {
		items = append(items, &types.TagItem{ID: st.ID, Name: st.Name, PhotoCount: st.PhotoCount})
	}
	return items, nil
}

func (s *TagService) Delete(ctx context.Context, tagID uint64) error {
	return notFound(s.TagDAO.DeleteCascade(ctx, tagID))
}
