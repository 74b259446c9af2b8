package handler

import (
	"Gloom/internal/pkg/response"
	"Gloom/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	followSvc service.FollowService
}

func NewFollowHandler(followSvc service.FollowService) *FollowHandler {
	return &FollowHandler{followSvc: followSvc}
}

// Toggle 切换当前用户对目标用户的关注关系
func (s *FollowHandler) Toggle(c *gin.Context) {
	sourceID := c.GetString("user_id")
	targetID := c.Param("target_id")
	if targetID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.followSvc.Toggle(c.Request.Context(), sourceID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
