package dto

import (
	"Gloom/internal/model"
	"time"

	"github.com/jinzhu/copier"
)

// RegisterDTO 注册
type RegisterDTO struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=6,max=72"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// UserDTO 用户
type UserDTO struct {
	ID             string       `json:"id"`
	Email          string       `json:"email"`
	Username       string       `json:"username"`
	ProfilePicURL  string       `json:"profilePic"`
	FollowerIDs    model.IDList `json:"followerList"`
	FollowingIDs   model.IDList `json:"followingList"`
	FollowerCount  int          `json:"followerCount"`
	FollowingCount int          `json:"followingCount"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// LoginResultDTO 登录结果
type LoginResultDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// ProfileDTO 个人主页
type ProfileDTO struct {
	User        *UserDTO    `json:"user"`
	PostCount   int         `json:"postCount"`
	IsFollowing bool        `json:"isFollowing"`
	Videos      []*VideoDTO `json:"videos"`
}

// ToUserDTO 模型转 DTO，冗余计数由列表长度得出
func ToUserDTO(user *model.User) *UserDTO {
	out := &UserDTO{}
	_ = copier.Copy(out, user)
	out.FollowerCount = len(user.FollowerIDs)
	out.FollowingCount = len(user.FollowingIDs)
	return out
}
