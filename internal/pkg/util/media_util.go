package util

import (
	"Gloom/internal/pkg/consts"
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

const avatarMaxSize = 512

// VideoObjectName 视频对象名，格式 {上传起始毫秒时间戳}_{原始文件名或默认值}.mp4
// 命名规则属于与存储桶的约定，新老资产要保持兼容，不能随意改动
func VideoObjectName(startedAt time.Time, originalName string) string {
	name := strings.TrimSpace(originalName)
	if name == "" {
		name = consts.DefaultVideoName
	}
	return fmt.Sprintf("%d_%s.mp4", startedAt.UnixMilli(), name)
}

// ProfilePicturePath 头像对象路径，固定为 {userId}/profile.jpg，覆盖写
func ProfilePicturePath(userID string) string {
	return userID + "/profile.jpg"
}

// DetectContentType 基于内容嗅探 MIME 类型，不信任客户端声明
func DetectContentType(data []byte) string {
	if len(data) > 512 {
		data = data[:512]
	}
	return http.DetectContentType(data)
}

// NormalizeAvatar 将头像统一缩放并重编码为 JPEG
func NormalizeAvatar(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("头像解码失败: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > avatarMaxSize || bounds.Dy() > avatarMaxSize {
		img = imaging.Fit(img, avatarMaxSize, avatarMaxSize, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("头像编码失败: %w", err)
	}
	return buf.Bytes(), nil
}
