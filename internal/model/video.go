package model

import (
	"time"
)

type Video struct {
	ID         uint64    `gorm:"primaryKey" json:"videoId"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	URL        string    `gorm:"type:varchar(512);not null" json:"url"`
	UploaderID string    `gorm:"type:char(36);not null;index:idx_uploader_id" json:"uploaderId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Video) TableName() string {
	return "videos"
}
