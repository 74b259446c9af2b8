package handler

import (
	"Gloom/internal/pkg/consts"
	"Gloom/internal/pkg/response"
	"Gloom/internal/pkg/util"
	"Gloom/internal/service"
	"io"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	publicationSvc service.PublicationService
	videoSvc       service.VideoService
}

func NewVideoHandler(publicationSvc service.PublicationService, videoSvc service.VideoService) *VideoHandler {
	return &VideoHandler{publicationSvc: publicationSvc, videoSvc: videoSvc}
}

// Publish 发布视频：multipart 的 file + title，上传者取自登录态
func (s *VideoHandler) Publish(c *gin.Context) {
	uploaderID := c.GetString("user_id")
	title := c.PostForm("title")

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrVideoAssetEmpty)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	asset, err := io.ReadAll(reader)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	contentType := util.DetectContentType(asset)
	if !strings.HasPrefix(contentType, consts.MimePrefixVideo) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	video, err := s.publicationSvc.Publish(c.Request.Context(), asset, file.Filename, title, uploaderID)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "video publish failed", "err", err)
		response.Error(c, err)
		return
	}
	response.Success(c, video)
}

func (s *VideoHandler) Feed(c *gin.Context) {
	videos, err := s.videoSvc.Feed(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, videos)
}

func (s *VideoHandler) ListByUser(c *gin.Context) {
	uploaderID := c.Param("user_id")
	if uploaderID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	videos, err := s.videoSvc.ListByUploader(c.Request.Context(), uploaderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, videos)
}
