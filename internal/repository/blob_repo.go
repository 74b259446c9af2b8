package repository

import (
	"Gloom/internal/pkg/minio"
	"context"
	"fmt"
	"io"
	"time"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// BlobInfo 对象存储中一个对象的摘要信息
type BlobInfo struct {
	ObjectName   string
	Size         int64
	LastModified time.Time
}

// BlobRepo 对象存储契约。
// Upload 在同一路径上是覆盖写；PublicURL 是纯推导，不发起网络请求；
// Delete 尽力而为，失败必须原样上报（发布补偿依赖这一点）。
type BlobRepo interface {
	Upload(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, contentType string) error
	PublicURL(bucket, objectName string) string
	Delete(ctx context.Context, bucket, objectName string) error
	List(ctx context.Context, bucket string) ([]BlobInfo, error)
}

type MinioBlobRepo struct {
	client *miniogo.Client
}

func NewBlobRepo(client *miniogo.Client) BlobRepo {
	return &MinioBlobRepo{client: client}
}

// Upload 上传对象，PutObject 本身即覆盖写语义
func (s *MinioBlobRepo) Upload(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, objectName, reader, size, miniogo.PutObjectOptions{
		ContentType: contentType,
	})
	return errors.Wrap(err, "put object")
}

// PublicURL 由桶与对象名推导公开访问地址
func (s *MinioBlobRepo) PublicURL(bucket, objectName string) string {
	endpoint, useSSL := minio.PublicEndpoint()
	protocol := "http"
	if useSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, bucket, objectName)
}

// Delete 删除对象
func (s *MinioBlobRepo) Delete(ctx context.Context, bucket, objectName string) error {
	err := s.client.RemoveObject(ctx, bucket, objectName, miniogo.RemoveObjectOptions{})
	return errors.Wrap(err, "remove object")
}

// List 列出桶内全部对象
func (s *MinioBlobRepo) List(ctx context.Context, bucket string) ([]BlobInfo, error) {
	blobs := make([]BlobInfo, 0)
	for object := range s.client.ListObjects(ctx, bucket, miniogo.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return nil, errors.Wrap(object.Err, "list objects")
		}
		blobs = append(blobs, BlobInfo{
			ObjectName:   object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
	}
	return blobs, nil
}
