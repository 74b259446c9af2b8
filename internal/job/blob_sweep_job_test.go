package job

import (
	"Gloom/internal/model"
	"Gloom/internal/repository"
	"context"
	"io"
	"testing"
	"time"
)

type stubVideoRepo struct {
	videos []*model.Video
}

func (s *stubVideoRepo) SelectAll(ctx context.Context) ([]*model.Video, error) {
	return s.videos, nil
}

func (s *stubVideoRepo) Insert(ctx context.Context, video *model.Video) (*model.Video, error) {
	s.videos = append(s.videos, video)
	return video, nil
}

type stubBlobRepo struct {
	blobs   map[string]time.Time
	deleted []string
}

func (s *stubBlobRepo) Upload(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, contentType string) error {
	return nil
}

func (s *stubBlobRepo) PublicURL(bucket, objectName string) string {
	return "https://cdn.test/" + bucket + "/" + objectName
}

func (s *stubBlobRepo) Delete(ctx context.Context, bucket, objectName string) error {
	s.deleted = append(s.deleted, objectName)
	delete(s.blobs, objectName)
	return nil
}

func (s *stubBlobRepo) List(ctx context.Context, bucket string) ([]repository.BlobInfo, error) {
	out := make([]repository.BlobInfo, 0, len(s.blobs))
	for name, mod := range s.blobs {
		out = append(out, repository.BlobInfo{ObjectName: name, LastModified: mod})
	}
	return out, nil
}

func TestBlobSweepRemovesOnlyStaleOrphans(t *testing.T) {
	old := time.Now().Add(-2 * time.Hour)
	blobRepo := &stubBlobRepo{blobs: map[string]time.Time{
		"1700000000000_kept.mp4":   old,             // 有记录引用
		"1700000000001_orphan.mp4": old,             // 无引用且已过宽限期
		"1700000000002_fresh.mp4":  time.Now(),      // 无引用但仍在宽限期内
	}}
	videoRepo := &stubVideoRepo{videos: []*model.Video{
		{ID: 1, URL: "https://cdn.test/videos/1700000000000_kept.mp4", UploaderID: "u1"},
	}}

	job := NewBlobSweepJob(videoRepo, blobRepo, "videos", time.Hour)
	job.Run()

	if len(blobRepo.deleted) != 1 || blobRepo.deleted[0] != "1700000000001_orphan.mp4" {
		t.Fatalf("expected only the stale orphan deleted, got %v", blobRepo.deleted)
	}
	if _, ok := blobRepo.blobs["1700000000000_kept.mp4"]; !ok {
		t.Fatal("referenced blob must survive the sweep")
	}
	if _, ok := blobRepo.blobs["1700000000002_fresh.mp4"]; !ok {
		t.Fatal("fresh blob inside the grace window must survive the sweep")
	}
}
