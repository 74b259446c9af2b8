package dto

// FollowToggleDTO 关注切换结果，携带两端更新后的记录，
// 调用方可直接渲染计数而无需再次读取
type FollowToggleDTO struct {
	IsFollowing bool     `json:"isFollowing"`
	Source      *UserDTO `json:"source"`
	Target      *UserDTO `json:"target"`
}
