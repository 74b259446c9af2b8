package api

import "Gloom/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler   *handler.UserHandler
	VideoHandler  *handler.VideoHandler
	FollowHandler *handler.FollowHandler
}
