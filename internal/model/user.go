package model

import (
	"time"
)

// IDList 用户 ID 列表，整体以 JSON 数组存入单列
type IDList []string

// Contains 判断 id 是否在列表中
func (l IDList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Append 返回追加 id 后的新列表，不做去重
func (l IDList) Append(id string) IDList {
	out := make(IDList, 0, len(l)+1)
	out = append(out, l...)
	return append(out, id)
}

// Remove 返回删除 id 后的新列表，保持原有顺序
func (l IDList) Remove(id string) IDList {
	out := make(IDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

type User struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex:idx_email" json:"email"`
	Username      string    `gorm:"type:varchar(50)" json:"username"`
	PasswordHash  string    `gorm:"type:varchar(255)" json:"-"`
	ProfilePicURL string    `gorm:"type:varchar(512)" json:"profilePic"`
	FollowerIDs   IDList    `gorm:"type:json;serializer:json" json:"followerList"`
	FollowingIDs  IDList    `gorm:"type:json;serializer:json" json:"followingList"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
