package service

import (
	"Gloom/internal/model"
	"Gloom/internal/repository"
	"context"
	"io"
	"sync"
	"time"
)

// 内存假实现，可在任意一步注入确定性失败，
// 用于在无真实网络依赖的前提下复现每一种终态。

type fakeBlobRepo struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	deleteErr error
	uploads   []string
	deletes   []string
}

func newFakeBlobRepo() *fakeBlobRepo {
	return &fakeBlobRepo{objects: make(map[string][]byte)}
}

func (f *fakeBlobRepo) key(bucket, objectName string) string {
	return bucket + "/" + objectName
}

func (f *fakeBlobRepo) Upload(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[f.key(bucket, objectName)] = data
	f.uploads = append(f.uploads, objectName)
	return nil
}

func (f *fakeBlobRepo) PublicURL(bucket, objectName string) string {
	return "https://cdn.test/" + bucket + "/" + objectName
}

func (f *fakeBlobRepo) Delete(ctx context.Context, bucket, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, objectName)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, f.key(bucket, objectName))
	return nil
}

func (f *fakeBlobRepo) List(ctx context.Context, bucket string) ([]repository.BlobInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	blobs := make([]repository.BlobInfo, 0)
	prefix := bucket + "/"
	for k, v := range f.objects {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			blobs = append(blobs, repository.BlobInfo{
				ObjectName: k[len(prefix):],
				Size:       int64(len(v)),
			})
		}
	}
	return blobs, nil
}

func (f *fakeBlobRepo) has(bucket, objectName string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[f.key(bucket, objectName)]
	return ok
}

type fakeVideoRecordRepo struct {
	mu        sync.Mutex
	videos    []*model.Video
	insertErr error
	nextID    uint64
	inserts   int
}

func (f *fakeVideoRecordRepo) SelectAll(ctx context.Context) ([]*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Video, 0, len(f.videos))
	for _, v := range f.videos {
		c := *v
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeVideoRecordRepo) Insert(ctx context.Context, video *model.Video) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	c := *video
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	f.videos = append(f.videos, &c)
	return &c, nil
}

type fakeUserRecordRepo struct {
	mu        sync.Mutex
	users     map[string]*model.User
	selectErr error
	insertErr error
	upsertErr map[string]error
	upserts   []string
}

func newFakeUserRecordRepo(users ...*model.User) *fakeUserRecordRepo {
	f := &fakeUserRecordRepo{
		users:     make(map[string]*model.User),
		upsertErr: make(map[string]error),
	}
	for _, u := range users {
		f.users[u.ID] = cloneUser(u)
	}
	return f
}

func cloneUser(u *model.User) *model.User {
	c := *u
	c.FollowerIDs = append(model.IDList{}, u.FollowerIDs...)
	c.FollowingIDs = append(model.IDList{}, u.FollowingIDs...)
	return &c
}

func (f *fakeUserRecordRepo) SelectAll(ctx context.Context) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	out := make([]*model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (f *fakeUserRecordRepo) Insert(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.users[user.ID] = cloneUser(user)
	return nil
}

func (f *fakeUserRecordRepo) Upsert(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, user.ID)
	if err := f.upsertErr[user.ID]; err != nil {
		return err
	}
	f.users[user.ID] = cloneUser(user)
	return nil
}

func (f *fakeUserRecordRepo) get(id string) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil
	}
	return cloneUser(u)
}
