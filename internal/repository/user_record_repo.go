package repository

import (
	"Gloom/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRecordRepo users 集合的记录访问契约。
// 底层存储只保证单条记录的主键唯一，不提供跨记录事务，
// 按 id 的筛选由调用方在内存中完成。
type UserRecordRepo interface {
	SelectAll(ctx context.Context) ([]*model.User, error)
	Insert(ctx context.Context, user *model.User) error
	Upsert(ctx context.Context, user *model.User) error
}

type UserRecordRepoImpl struct {
	db *gorm.DB
}

func NewUserRecordRepo(db *gorm.DB) UserRecordRepo {
	return &UserRecordRepoImpl{db: db}
}

// SelectAll 拉取全部用户记录
func (s *UserRecordRepoImpl) SelectAll(ctx context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0)
	result := s.db.WithContext(ctx).Find(&users)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "select users")
	}
	return users, nil
}

// Insert 插入新用户记录，主键冲突视为错误
func (s *UserRecordRepoImpl) Insert(ctx context.Context, user *model.User) error {
	result := s.db.WithContext(ctx).Create(user)
	return errors.Wrap(result.Error, "insert user")
}

// Upsert 按主键插入或整体替换
func (s *UserRecordRepoImpl) Upsert(ctx context.Context, user *model.User) error {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(user)
	return errors.Wrap(result.Error, "upsert user")
}
