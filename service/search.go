package service

import (
	"Moments/config"
	"Moments/dao"
	"Moments/types"
	"context"
	"strings"
)

// 搜索分类
const (
	SearchUser  = "user"
	SearchPhoto = "photo"
	SearchTag   = "tag"
)

var _ ISearchService = (*SearchService)(nil)

type ISearchService interface {
	// Search 按分类模糊匹配, 未知分类按照片搜索
	Search(ctx context.Context, q, category string, page int) (*types.SearchResult, error)
}

type SearchService struct {
	Config   *config.Config
	UserDAO  *dao.Users
	PhotoDAO *dao.PhotoDAO
	TagDAO   *dao.TagDAO
	Storage  IStorage
}

func (s *SearchService) Search(ctx context.Context, q, category string, page int) (*types.SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	perPage := s.Config.Moments.SearchResultPerPage
	result := &types.SearchResult{Query: q}

	switch category {
	case SearchUser:
		result.Category = SearchUser
		users, p, err := s.UserDAO.Search(ctx, q, page, perPage)
		if err != nil {
			return nil, err
		}
		result.Users, result.Pagination = toUserBriefs(s.Storage, users), p
	case SearchTag:
		result.Category = SearchTag
		tags, p, err := s.TagDAO.Search(ctx, q, page, perPage)
		if err != nil {
			return nil, err
		}
		result.Tags, result.Pagination = toTagItems(tags), p
	default:
		result.Category = SearchPhoto
		photos, p, err := s.PhotoDAO.Search(ctx, q, page, perPage)
		if err != nil {
			return nil, err
		}
		items, err := photoItems(ctx, s.UserDAO, s.Storage, photos)
		if err != nil {
			return nil, err
		}
		result.Photos, result.Pagination = items, p
	}
	return result, nil
}
