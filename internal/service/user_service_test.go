package service

import (
	"Gloom/internal/api/dto"
	"Gloom/internal/model"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/uuid"
)

func newUserService(userRepo *fakeUserRecordRepo, videoRepo *fakeVideoRecordRepo, blobRepo *fakeBlobRepo) UserService {
	return NewUserService(userRepo, videoRepo, blobRepo, "profile-pictures")
}

func TestRegisterCreatesUserWithEmptyLists(t *testing.T) {
	repo := newFakeUserRecordRepo()
	svc := newUserService(repo, &fakeVideoRecordRepo{}, newFakeBlobRepo())

	user, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Email:    "Alice@Example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := uuid.Parse(user.ID); err != nil {
		t.Fatalf("expected uuid-shaped id, got %q", user.ID)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Username != "alice" {
		t.Fatalf("expected username from email local part, got %q", user.Username)
	}
	if user.FollowerCount != 0 || user.FollowingCount != 0 {
		t.Fatal("expected empty follow lists at sign-up")
	}

	stored := repo.get(user.ID)
	if stored == nil {
		t.Fatal("expected user record in store")
	}
	if stored.PasswordHash == "secret123" || stored.PasswordHash == "" {
		t.Fatal("expected hashed password in record")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRecordRepo(&model.User{ID: "u1", Email: "alice@example.com"})
	svc := newUserService(repo, &fakeVideoRecordRepo{}, newFakeBlobRepo())

	_, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrUserEmailExist) {
		t.Fatalf("expected ErrUserEmailExist, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRecordRepo()
	svc := newUserService(repo, &fakeVideoRecordRepo{}, newFakeBlobRepo())

	registered, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Email:    "bob@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), &dto.CredentialDTO{
		Email:    "bob@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected session token")
	}
	if result.User.ID != registered.ID {
		t.Fatalf("expected user %s, got %s", registered.ID, result.User.ID)
	}

	if _, err = svc.Login(context.Background(), &dto.CredentialDTO{
		Email:    "bob@example.com",
		Password: "wrong",
	}); !errors.Is(err, ErrPasswordIncorrect) {
		t.Fatalf("expected ErrPasswordIncorrect, got %v", err)
	}

	if _, err = svc.Login(context.Background(), &dto.CredentialDTO{
		Email:    "ghost@example.com",
		Password: "secret123",
	}); !errors.Is(err, ErrPasswordIncorrect) {
		t.Fatalf("expected ErrPasswordIncorrect for unknown email, got %v", err)
	}
}

func TestGetProfile(t *testing.T) {
	u1 := &model.User{ID: "u1", Username: "alice", FollowerIDs: model.IDList{"u2"}, FollowingIDs: model.IDList{}}
	u2 := &model.User{ID: "u2", Username: "bob", FollowerIDs: model.IDList{}, FollowingIDs: model.IDList{"u1"}}
	repo := newFakeUserRecordRepo(u1, u2)

	videoRepo := &fakeVideoRecordRepo{}
	for _, title := range []string{"first", "second"} {
		if _, err := videoRepo.Insert(context.Background(), &model.Video{Title: title, UploaderID: "u1"}); err != nil {
			t.Fatalf("insert video: %v", err)
		}
	}
	if _, err := videoRepo.Insert(context.Background(), &model.Video{Title: "other", UploaderID: "u2"}); err != nil {
		t.Fatalf("insert video: %v", err)
	}

	svc := newUserService(repo, videoRepo, newFakeBlobRepo())

	profile, err := svc.GetProfile(context.Background(), "u1", "u2")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.PostCount != 2 || len(profile.Videos) != 2 {
		t.Fatalf("expected 2 own videos, got count=%d len=%d", profile.PostCount, len(profile.Videos))
	}
	if !profile.IsFollowing {
		t.Fatal("expected viewer u2 to be following u1")
	}

	// 未登录访客视角
	anon, err := svc.GetProfile(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if anon.IsFollowing {
		t.Fatal("expected isFollowing false for anonymous viewer")
	}

	if _, err = svc.GetProfile(context.Background(), "ghost", ""); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateProfilePicture(t *testing.T) {
	u1 := &model.User{ID: "u1", Username: "alice"}
	repo := newFakeUserRecordRepo(u1)
	blobRepo := newFakeBlobRepo()
	svc := newUserService(repo, &fakeVideoRecordRepo{}, blobRepo)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, x, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}

	user, err := svc.UpdateProfilePicture(context.Background(), "u1", buf.Bytes())
	if err != nil {
		t.Fatalf("update profile picture: %v", err)
	}

	// 固定路径覆盖写
	if !blobRepo.has("profile-pictures", "u1/profile.jpg") {
		t.Fatal("expected avatar at u1/profile.jpg")
	}
	wantURL := "https://cdn.test/profile-pictures/u1/profile.jpg"
	if user.ProfilePicURL != wantURL {
		t.Fatalf("expected url %s, got %q", wantURL, user.ProfilePicURL)
	}
	if repo.get("u1").ProfilePicURL != wantURL {
		t.Fatal("expected url persisted on user record")
	}
}

func TestUpdateProfilePictureRejectsGarbage(t *testing.T) {
	repo := newFakeUserRecordRepo(&model.User{ID: "u1"})
	svc := newUserService(repo, &fakeVideoRecordRepo{}, newFakeBlobRepo())

	if _, err := svc.UpdateProfilePicture(context.Background(), "u1", []byte("not an image")); !errors.Is(err, ErrFileNotSupported) {
		t.Fatalf("expected ErrFileNotSupported, got %v", err)
	}
}
