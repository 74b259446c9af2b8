package job

import (
	"Gloom/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// BlobSweepJob 孤儿文件清扫：发布 saga 的补偿失败后，存储桶里会残留
// 没有任何记录引用的对象。定期比对桶内对象与 videos 记录的 URL，
// 删除超过宽限期且无人引用的对象。宽限期用于避开正在进行中的发布
// （文件已写入、记录尚未插入的窗口）。
type BlobSweepJob struct {
	videoRepo repository.VideoRecordRepo
	blobRepo  repository.BlobRepo
	bucket    string
	grace     time.Duration
}

func NewBlobSweepJob(videoRepo repository.VideoRecordRepo, blobRepo repository.BlobRepo, bucket string, grace time.Duration) *BlobSweepJob {
	return &BlobSweepJob{
		videoRepo: videoRepo,
		blobRepo:  blobRepo,
		bucket:    bucket,
		grace:     grace,
	}
}

func (s *BlobSweepJob) Run() {
	ctx := context.Background()
	log.Info("start blob sweep job", "bucket", s.bucket)

	videos, err := s.videoRepo.SelectAll(ctx)
	if err != nil {
		log.Error("failed to select videos", "err", err)
		return
	}

	referenced := make(map[string]struct{}, len(videos))
	for _, v := range videos {
		referenced[v.URL] = struct{}{}
	}

	blobs, err := s.blobRepo.List(ctx, s.bucket)
	if err != nil {
		log.Error("failed to list bucket", "bucket", s.bucket, "err", err)
		return
	}

	deadline := time.Now().Add(-s.grace)
	count := 0

	for _, blob := range blobs {
		if blob.LastModified.After(deadline) {
			continue
		}
		url := s.blobRepo.PublicURL(s.bucket, blob.ObjectName)
		if _, ok := referenced[url]; ok {
			continue
		}

		if err = s.blobRepo.Delete(ctx, s.bucket, blob.ObjectName); err != nil {
			log.Error("failed to delete orphan blob", "object", blob.ObjectName, "err", err)
			continue
		}
		count++
		log.Info("orphan blob removed", "object", blob.ObjectName, "size", blob.Size)
	}

	if count > 0 {
		log.Info("blob sweep job finished", "cleaned_count", count)
	}
}
