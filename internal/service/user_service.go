package service

import (
	"Gloom/internal/api/dto"
	"Gloom/internal/model"
	"Gloom/internal/pkg/consts"
	"Gloom/internal/pkg/redis"
	"Gloom/internal/pkg/security"
	"Gloom/internal/pkg/util"
	"Gloom/internal/repository"
	"bytes"
	"context"
	log "log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
)

type UserService interface {
	Register(ctx context.Context, reg *dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, cred *dto.CredentialDTO) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, tokenSignature string) error
	GetProfile(ctx context.Context, profileUserID, viewerID string) (*dto.ProfileDTO, error)
	UpdateProfilePicture(ctx context.Context, userID string, image []byte) (*dto.UserDTO, error)
}

type userServiceImpl struct {
	userRepo     repository.UserRecordRepo
	videoRepo    repository.VideoRecordRepo
	blobRepo     repository.BlobRepo
	avatarBucket string
}

func NewUserService(userRepo repository.UserRecordRepo, videoRepo repository.VideoRecordRepo, blobRepo repository.BlobRepo, avatarBucket string) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		videoRepo:    videoRepo,
		blobRepo:     blobRepo,
		avatarBucket: avatarBucket,
	}
}

// Register 注册新用户，用户 ID 在此签发且终身不变，
// 关注列表初始为空，用户名默认取邮箱 @ 前的部分
func (s *userServiceImpl) Register(ctx context.Context, reg *dto.RegisterDTO) (*dto.UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))

	users, err := s.userRepo.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, ErrUserEmailExist
		}
	}

	hash, err := security.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     strings.SplitN(email, "@", 2)[0],
		PasswordHash: hash,
		FollowerIDs:  model.IDList{},
		FollowingIDs: model.IDList{},
	}

	if err = s.userRepo.Insert(ctx, user); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "user registered", "userId", user.ID)
	return dto.ToUserDTO(user), nil
}

// Login 校验凭证并签发会话 Token
func (s *userServiceImpl) Login(ctx context.Context, cred *dto.CredentialDTO) (*dto.LoginResultDTO, error) {
	email := strings.ToLower(strings.TrimSpace(cred.Email))

	users, err := s.userRepo.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	var user *model.User
	for _, u := range users {
		if u.Email == email {
			user = u
			break
		}
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}

	if err = security.CheckPasswordHash(cred.Password, user.PasswordHash); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResultDTO{
		Token: token,
		User:  dto.ToUserDTO(user),
	}, nil
}

// Logout 将 Token 签名加入黑名单直至其自然过期
func (s *userServiceImpl) Logout(ctx context.Context, tokenSignature string) error {
	return redis.SetWithExpiration(ctx, consts.TokenBlockKey+tokenSignature, "1", security.JWTExpirationTime)
}

// GetProfile 个人主页：用户记录加上其作品列表（按发布时间倒序）
// 与 viewer 视角的关注状态
func (s *userServiceImpl) GetProfile(ctx context.Context, profileUserID, viewerID string) (*dto.ProfileDTO, error) {
	users, err := s.userRepo.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	var user *model.User
	for _, u := range users {
		if u.ID == profileUserID {
			user = u
			break
		}
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	videos, err := s.videoRepo.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	own := make([]*model.Video, 0)
	for _, v := range videos {
		if v.UploaderID == profileUserID {
			own = append(own, v)
		}
	}
	sort.Slice(own, func(i, j int) bool {
		return own[i].CreatedAt.After(own[j].CreatedAt)
	})

	return &dto.ProfileDTO{
		User:        dto.ToUserDTO(user),
		PostCount:   len(own),
		IsFollowing: viewerID != "" && user.FollowerIDs.Contains(viewerID),
		Videos:      dto.ToVideoDTOs(own),
	}, nil
}

// UpdateProfilePicture 更新头像：统一重编码后覆盖写入固定路径
// {userId}/profile.jpg，再把公开地址写回用户记录。
// 两步之间没有补偿，路径固定且覆盖写使得整体重试幂等。
func (s *userServiceImpl) UpdateProfilePicture(ctx context.Context, userID string, image []byte) (*dto.UserDTO, error) {
	normalized, err := util.NormalizeAvatar(image)
	if err != nil {
		return nil, ErrFileNotSupported
	}

	objectName := util.ProfilePicturePath(userID)
	if err = s.blobRepo.Upload(ctx, s.avatarBucket, objectName,
		bytes.NewReader(normalized), int64(len(normalized)), "image/jpeg"); err != nil {
		return nil, err
	}

	url := s.blobRepo.PublicURL(s.avatarBucket, objectName)

	users, err := s.userRepo.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	var user *model.User
	for _, u := range users {
		if u.ID == userID {
			user = u
			break
		}
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.ProfilePicURL = url
	if err = s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "profile picture updated", "userId", userID)
	return dto.ToUserDTO(user), nil
}
