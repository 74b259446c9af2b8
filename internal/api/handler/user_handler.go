package handler

import (
	"Gloom/internal/api/dto"
	"Gloom/internal/pkg/consts"
	"Gloom/internal/pkg/response"
	"Gloom/internal/pkg/util"
	"Gloom/internal/service"
	"io"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (s *UserHandler) Register(c *gin.Context) {
	var reg dto.RegisterDTO
	if err := c.ShouldBindJSON(&reg); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&reg); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	user, err := s.userSvc.Register(c.Request.Context(), &reg)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) Login(c *gin.Context) {
	var cred dto.CredentialDTO
	if err := c.ShouldBindJSON(&cred); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.userSvc.Login(c.Request.Context(), &cred)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *UserHandler) Logout(c *gin.Context) {
	signature := c.GetString("token_signature")
	if signature == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.userSvc.Logout(c.Request.Context(), signature); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetProfile(c *gin.Context) {
	profileUserID := c.Param("user_id")
	if profileUserID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	viewerID := c.GetString("user_id")

	profile, err := s.userSvc.GetProfile(c.Request.Context(), profileUserID, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *UserHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetString("user_id")

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	contentType := util.DetectContentType(data)
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	user, err := s.userSvc.UpdateProfilePicture(c.Request.Context(), userID, data)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "avatar update failed", "err", err)
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}
