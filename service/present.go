package service

import (
	"Moments/dao"
	"Moments/models"
	"Moments/pkg/log"
	"Moments/types"
	"context"

	"go.uber.org/zap"
)

func avatarURL(st IStorage, name string) string {
	if name == "" {
		return ""
	}
	return st.URL(models.AvatarKey(name))
}

func toUserBrief(st IStorage, u *models.User) *types.UserBrief {
	if u == nil {
		return nil
	}
	return &types.UserBrief{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		AvatarS:  avatarURL(st, u.AvatarS),
		AvatarM:  avatarURL(st, u.AvatarM),
		AvatarL:  avatarURL(st, u.AvatarL),
	}
}

func toUserBriefs(st IStorage, users []*models.User) []*types.UserBrief {
	items := make([]*types.UserBrief, 0, len(users))
	for _, u := range users {
		items = append(items, toUserBrief(st, u))
	}
	return items
}

func toPhotoItem(st IStorage, p *models.Photo, author *models.User) *types.PhotoItem {
	return &types.PhotoItem{
		ID:          p.ID,
		Description: p.Description,
		URL:         st.URL(p.Filename),
		URLSmall:    st.URL(p.FilenameS),
		URLMedium:   st.URL(p.FilenameM),
		CanComment:  p.CanComment,
		Flag:        p.Flag,
		CreatedAt:   p.CreatedAt,
		Author:      toUserBrief(st, author),
	}
}

// photoItems 批量加载作者后转换
func photoItems(ctx context.Context, users *dao.Users, st IStorage, photos []*models.Photo) ([]*types.PhotoItem, error) {
	ids := make([]uint64, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.AuthorID)
	}
	authors, err := users.FindByIdsMap(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]*types.PhotoItem, 0, len(photos))
	for _, p := range photos {
		items = append(items, toPhotoItem(st, p, authors[p.AuthorID]))
	}
	return items, nil
}

func toTagItems(tags []*models.Tag) []*types.TagItem {
	items := make([]*types.TagItem, 0, len(tags))
	for _, t := range tags {
		items = append(items, &types.TagItem{ID: t.ID, Name: t.Name})
	}
	return items
}

func avatarKeys(names ...string) []string {
	keys := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" {
			keys = append(keys, models.AvatarKey(name))
		}
	}
	return keys
}

// removeFiles 删除存储中的文件, 失败只记录日志
func removeFiles(ctx context.Context, st IStorage, keys ...string) {
	for _, key := range keys {
		if err := st.Delete(ctx, key); err != nil {
			log.L.Warn("delete file", zap.String("key", key), zap.Error(err))
		}
	}
}
