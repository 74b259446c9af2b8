package dto

import (
	"Gloom/internal/model"
	"time"

	"github.com/jinzhu/copier"
)

// VideoDTO 视频
type VideoDTO struct {
	ID         uint64    `json:"videoId"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	UploaderID string    `json:"uploaderId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToVideoDTO 模型转 DTO
func ToVideoDTO(video *model.Video) *VideoDTO {
	out := &VideoDTO{}
	_ = copier.Copy(out, video)
	return out
}

// ToVideoDTOs 批量转换
func ToVideoDTOs(videos []*model.Video) []*VideoDTO {
	out := make([]*VideoDTO, 0, len(videos))
	for _, v := range videos {
		out = append(out, ToVideoDTO(v))
	}
	return out
}
