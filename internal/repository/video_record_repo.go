package repository

import (
	"Gloom/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// VideoRecordRepo videos 集合的记录访问契约。
// 记录只增不改，id 与 created_at 均由存储端在插入时分配。
type VideoRecordRepo interface {
	SelectAll(ctx context.Context) ([]*model.Video, error)
	Insert(ctx context.Context, video *model.Video) (*model.Video, error)
}

type VideoRecordRepoImpl struct {
	db *gorm.DB
}

func NewVideoRecordRepo(db *gorm.DB) VideoRecordRepo {
	return &VideoRecordRepoImpl{db: db}
}

// SelectAll 拉取全部视频记录
func (s *VideoRecordRepoImpl) SelectAll(ctx context.Context) ([]*model.Video, error) {
	videos := make([]*model.Video, 0)
	result := s.db.WithContext(ctx).Find(&videos)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "select videos")
	}
	return videos, nil
}

// Insert 插入视频记录并返回带存储端分配 id 的记录
func (s *VideoRecordRepoImpl) Insert(ctx context.Context, video *model.Video) (*model.Video, error) {
	result := s.db.WithContext(ctx).Create(video)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "insert video")
	}
	return video, nil
}
