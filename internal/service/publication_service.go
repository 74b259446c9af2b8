package service

import (
	"Gloom/internal/model"
	"Gloom/internal/pkg/util"
	"Gloom/internal/repository"
	"bytes"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// publishState 发布 saga 的状态机。两步远端写入（先传文件，后写记录）
// 之间没有事务边界，记录写入失败时删除已上传文件作为补偿；
// 补偿也失败则终止于 Failed 并上报孤儿对象。
// 每一步只尝试一次，不做内部重试。
type publishState int

const (
	publishIdle publishState = iota
	publishUploading
	publishUploaded
	publishRegistering
	publishCommitted
	publishCompensating
	publishFailed
)

func (s publishState) String() string {
	switch s {
	case publishIdle:
		return "idle"
	case publishUploading:
		return "uploading"
	case publishUploaded:
		return "uploaded"
	case publishRegistering:
		return "registering"
	case publishCommitted:
		return "committed"
	case publishCompensating:
		return "compensating"
	default:
		return "failed"
	}
}

type PublicationService interface {
	Publish(ctx context.Context, asset []byte, suggestedName, title, uploaderID string) (*model.Video, error)
}

type publicationServiceImpl struct {
	videoRepo repository.VideoRecordRepo
	blobRepo  repository.BlobRepo
	bucket    string
	now       func() time.Time
}

func NewPublicationService(videoRepo repository.VideoRecordRepo, blobRepo repository.BlobRepo, bucket string) PublicationService {
	return &publicationServiceImpl{
		videoRepo: videoRepo,
		blobRepo:  blobRepo,
		bucket:    bucket,
		now:       time.Now,
	}
}

// Publish 发布一条视频。
// 副作用顺序固定：文件写入先于记录写入，记录在插入成功前不会被任何
// 其他实体引用，所以部分失败只会留下“有文件、无记录”的中间态，
// 可由补偿或清扫任务回收，不会出现“有记录、无文件”。
// 并发的两次发布各自生成独立对象名与独立记录，互不冲突。
func (s *publicationServiceImpl) Publish(ctx context.Context, asset []byte, suggestedName, title, uploaderID string) (*model.Video, error) {
	if len(asset) == 0 {
		return nil, ErrVideoAssetEmpty
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrVideoTitleBlank
	}
	if _, err := uuid.Parse(uploaderID); err != nil {
		return nil, ErrUploaderIDInvalid
	}

	state := publishIdle

	// 时间前缀保证对象名的实际唯一性，碰撞概率可忽略但未被消除
	objectName := util.VideoObjectName(s.now(), suggestedName)

	state = publishUploading
	err := s.blobRepo.Upload(ctx, s.bucket, objectName, bytes.NewReader(asset), int64(len(asset)), "video/mp4")
	if err != nil {
		state = publishFailed
		log.ErrorContext(ctx, "video upload failed",
			"state", state.String(), "object", objectName, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrVideoUpload, err)
	}

	state = publishUploaded
	url := s.blobRepo.PublicURL(s.bucket, objectName)

	state = publishRegistering
	video, err := s.videoRepo.Insert(ctx, &model.Video{
		Title:      title,
		URL:        url,
		UploaderID: uploaderID,
	})
	if err == nil {
		state = publishCommitted
		log.InfoContext(ctx, "video published",
			"state", state.String(), "videoId", video.ID, "object", objectName)
		return video, nil
	}

	registerErr := err
	state = publishCompensating
	log.WarnContext(ctx, "video register failed, compensating",
		"state", state.String(), "object", objectName, "err", registerErr)

	if delErr := s.blobRepo.Delete(ctx, s.bucket, objectName); delErr != nil {
		state = publishFailed
		log.ErrorContext(ctx, "compensation failed, orphan blob left",
			"state", state.String(), "object", objectName,
			"registerErr", registerErr, "deleteErr", delErr)
		return nil, &OrphanBlobError{
			ObjectName:  objectName,
			RegisterErr: registerErr,
			DeleteErr:   delErr,
		}
	}

	state = publishFailed
	log.WarnContext(ctx, "video register failed, blob cleaned up",
		"state", state.String(), "object", objectName)
	return nil, fmt.Errorf("%w: %v", ErrVideoRegister, registerErr)
}
