package dao

import (
	"Moments/types"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Repo 通用的单表操作, 各 DAO 通过嵌入复用
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r *Repo[T]) Create(ctx context.Context, data *T) error {
	return r.Db.WithContext(ctx).Create(data).Error
}

func (r *Repo[T]) FindById(ctx context.Context, id any) (*T, error) {
	var item T
	if err := r.Db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	if err := r.Db.WithContext(ctx).Where(where, args...).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) FindByIds(ctx context.Context, ids []uint64) ([]*T, error) {
	items := make([]*T, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	err := r.Db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	err := r.Db.WithContext(ctx).Model(new(T)).Where(where, args...).Limit(1).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repo[T]) Count(ctx context.Context, where string, args ...any) (int64, error) {
	var count int64
	tx := r.Db.WithContext(ctx).Model(new(T))
	if where != "" {
		tx = tx.Where(where, args...)
	}
	err := tx.Count(&count).Error
	return count, err
}

// IDs 全部主键
func (r *Repo[T]) IDs(ctx context.Context) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := r.Db.WithContext(ctx).Model(new(T)).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *Repo[T]) UpdateById(ctx context.Context, id any, data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	res := r.Db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(data)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 值未变化时 mysql 也返回 0, 需要再确认记录是否存在
		exist, err := r.IsExist(ctx, "id = ?", id)
		if err != nil {
			return err
		}
		if !exist {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// Paginate 单表分页, query 为空时查询全部
func (r *Repo[T]) Paginate(ctx context.Context, page, perPage int, order string, query func(*gorm.DB) *gorm.DB) ([]*T, types.Pagination, error) {
	return paginate[T](ctx, r.Db, page, perPage, false, order, query)
}

// PaginateClamped 页码越界时返回最后一页
func (r *Repo[T]) PaginateClamped(ctx context.Context, page, perPage int, order string, query func(*gorm.DB) *gorm.DB) ([]*T, types.Pagination, error) {
	return paginate[T](ctx, r.Db, page, perPage, true, order, query)
}

func paginate[T any](ctx context.Context, db *gorm.DB, page, perPage int, clamp bool, order string, query func(*gorm.DB) *gorm.DB) ([]*T, types.Pagination, error) {
	if query == nil {
		query = func(tx *gorm.DB) *gorm.DB { return tx }
	}

	var total int64
	if err := db.WithContext(ctx).Model(new(T)).Scopes(query).Count(&total).Error; err != nil {
		return nil, types.Pagination{}, err
	}

	p := types.NewPagination(page, perPage, total)
	if clamp {
		p = p.Clamp()
	}

	items := make([]*T, 0, perPage)
	if total == 0 {
		return items, p, nil
	}

	tx := db.WithContext(ctx).Model(new(T)).Scopes(query)
	if table := tableName[T](db); table != "" {
		// 联表查询时只取主表字段
		tx = tx.Select(table + ".*")
	}
	if order != "" {
		tx = tx.Order(order)
	}
	err := tx.Offset(p.Offset()).Limit(p.PerPage).Find(&items).Error
	return items, p, err
}

func tableName[T any](db *gorm.DB) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return ""
	}
	return stmt.Schema.Table
}

// IsNotFound 记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// likeEscaper 配合 LIKE ... ESCAPE '!' 使用, 用户输入中的通配符按字面匹配.
// 不用反斜杠, MySQL 字符串字面量里反斜杠本身需要转义.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern 子串匹配的 LIKE 模式
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
