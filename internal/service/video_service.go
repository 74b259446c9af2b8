package service

import (
	"Gloom/internal/api/dto"
	"Gloom/internal/model"
	"Gloom/internal/repository"
	"context"
	"sort"
)

type VideoService interface {
	Feed(ctx context.Context) ([]*dto.VideoDTO, error)
	ListByUploader(ctx context.Context, uploaderID string) ([]*dto.VideoDTO, error)
}

type videoServiceImpl struct {
	videoRepo repository.VideoRecordRepo
}

func NewVideoService(videoRepo repository.VideoRecordRepo) VideoService {
	return &videoServiceImpl{videoRepo: videoRepo}
}

// Feed 全量视频流，按发布时间倒序。
// 底层契约只有整表读取，筛选与排序都在内存中完成
func (s *videoServiceImpl) Feed(ctx context.Context) ([]*dto.VideoDTO, error) {
	videos, err := s.videoRepo.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	sortVideosDesc(videos)
	return dto.ToVideoDTOs(videos), nil
}

// ListByUploader 某个用户发布的视频，按发布时间倒序
func (s *videoServiceImpl) ListByUploader(ctx context.Context, uploaderID string) ([]*dto.VideoDTO, error) {
	videos, err := s.videoRepo.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	own := make([]*model.Video, 0)
	for _, v := range videos {
		if v.UploaderID == uploaderID {
			own = append(own, v)
		}
	}
	sortVideosDesc(own)
	return dto.ToVideoDTOs(own), nil
}

func sortVideosDesc(videos []*model.Video) {
	sort.Slice(videos, func(i, j int) bool {
		return videos[i].CreatedAt.After(videos[j].CreatedAt)
	})
}
