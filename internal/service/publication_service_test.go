package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

const testUploaderID = "4f1f9fcd-6f4e-4b36-9d36-8a0e2b1f0a11"

func newPublicationService(videoRepo *fakeVideoRecordRepo, blobRepo *fakeBlobRepo) *publicationServiceImpl {
	return &publicationServiceImpl{
		videoRepo: videoRepo,
		blobRepo:  blobRepo,
		bucket:    "videos",
		now: func() time.Time {
			return time.UnixMilli(1700000000000)
		},
	}
}

func TestPublishSuccess(t *testing.T) {
	videoRepo := &fakeVideoRecordRepo{}
	blobRepo := newFakeBlobRepo()
	svc := newPublicationService(videoRepo, blobRepo)

	video, err := svc.Publish(context.Background(), []byte("abc"), "clip", "hi", testUploaderID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if video.Title != "hi" {
		t.Fatalf("expected title hi, got %q", video.Title)
	}
	if video.UploaderID != testUploaderID {
		t.Fatalf("expected uploader %s, got %q", testUploaderID, video.UploaderID)
	}
	if video.ID == 0 {
		t.Fatal("expected server-assigned video id")
	}

	wantObject := "1700000000000_clip.mp4"
	wantURL := "https://cdn.test/videos/" + wantObject
	if video.URL != wantURL {
		t.Fatalf("expected url %s, got %q", wantURL, video.URL)
	}

	// URL 必须指向刚上传的那份字节
	if !bytes.Equal(blobRepo.objects["videos/"+wantObject], []byte("abc")) {
		t.Fatal("uploaded bytes do not match asset")
	}

	// 恰好一条记录引用该路径
	all, _ := videoRepo.SelectAll(context.Background())
	count := 0
	for _, v := range all {
		if v.URL == wantURL {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 record referencing url, got %d", count)
	}
}

func TestPublishValidation(t *testing.T) {
	tests := []struct {
		name       string
		asset      []byte
		title      string
		uploaderID string
		wantErr    error
	}{
		{"empty asset", nil, "hi", testUploaderID, ErrVideoAssetEmpty},
		{"blank title", []byte("abc"), "   ", testUploaderID, ErrVideoTitleBlank},
		{"bad uploader id", []byte("abc"), "hi", "not-a-uuid", ErrUploaderIDInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videoRepo := &fakeVideoRecordRepo{}
			blobRepo := newFakeBlobRepo()
			svc := newPublicationService(videoRepo, blobRepo)

			_, err := svc.Publish(context.Background(), tt.asset, "clip", tt.title, tt.uploaderID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			// 校验失败不允许发起任何远端调用
			if len(blobRepo.uploads) != 0 || videoRepo.inserts != 0 {
				t.Fatal("remote call made before validation passed")
			}
		})
	}
}

func TestPublishUploadFailure(t *testing.T) {
	videoRepo := &fakeVideoRecordRepo{}
	blobRepo := newFakeBlobRepo()
	blobRepo.uploadErr = errors.New("connection reset")
	svc := newPublicationService(videoRepo, blobRepo)

	_, err := svc.Publish(context.Background(), []byte("abc"), "clip", "hi", testUploaderID)
	if !errors.Is(err, ErrVideoUpload) {
		t.Fatalf("expected ErrVideoUpload, got %v", err)
	}
	if videoRepo.inserts != 0 {
		t.Fatal("record insert attempted after failed upload")
	}
	if len(blobRepo.deletes) != 0 {
		t.Fatal("no compensation expected when nothing was uploaded")
	}
}

func TestPublishRegisterFailureCompensates(t *testing.T) {
	videoRepo := &fakeVideoRecordRepo{insertErr: errors.New("constraint violation")}
	blobRepo := newFakeBlobRepo()
	svc := newPublicationService(videoRepo, blobRepo)

	_, err := svc.Publish(context.Background(), []byte("abc"), "clip", "hi", testUploaderID)
	if !errors.Is(err, ErrVideoRegister) {
		t.Fatalf("expected ErrVideoRegister, got %v", err)
	}

	// 补偿成功后该路径必须已被删除，不留孤儿
	if blobRepo.has("videos", "1700000000000_clip.mp4") {
		t.Fatal("orphan blob left after successful compensation")
	}
}

func TestPublishCompensationFailure(t *testing.T) {
	videoRepo := &fakeVideoRecordRepo{insertErr: errors.New("constraint violation")}
	blobRepo := newFakeBlobRepo()
	blobRepo.deleteErr = errors.New("access denied")
	svc := newPublicationService(videoRepo, blobRepo)

	_, err := svc.Publish(context.Background(), []byte("abc"), "clip", "hi", testUploaderID)
	if !errors.Is(err, ErrVideoOrphanBlob) {
		t.Fatalf("expected ErrVideoOrphanBlob, got %v", err)
	}
	if errors.Is(err, ErrVideoRegister) {
		t.Fatal("orphan outcome must be distinct from plain register failure")
	}

	var orphan *OrphanBlobError
	if !errors.As(err, &orphan) {
		t.Fatalf("expected *OrphanBlobError, got %T", err)
	}
	if orphan.ObjectName != "1700000000000_clip.mp4" {
		t.Fatalf("unexpected orphan object name %q", orphan.ObjectName)
	}

	// 对象仍然存在，后续对账清扫可以发现它
	if !blobRepo.has("videos", orphan.ObjectName) {
		t.Fatal("expected orphan blob to remain in store")
	}
}

func TestPublishDefaultName(t *testing.T) {
	videoRepo := &fakeVideoRecordRepo{}
	blobRepo := newFakeBlobRepo()
	svc := newPublicationService(videoRepo, blobRepo)

	video, err := svc.Publish(context.Background(), []byte("abc"), "", "hi", testUploaderID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	want := "https://cdn.test/videos/1700000000000_video.mp4"
	if video.URL != want {
		t.Fatalf("expected url %s, got %q", want, video.URL)
	}
}
