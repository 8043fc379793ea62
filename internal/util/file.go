package util

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

var ErrInvalidImage = errors.New("invalid image file")

// DetectImageType 根据文件头判断是否为图片，返回 MIME 类型
func DetectImageType(head []byte) (string, error) {
	if len(head) > 512 {
		head = head[:512]
	}
	mimeType := http.DetectContentType(head)
	if !IsImage(mimeType) {
		return mimeType, errors.New("invalid file type: " + mimeType)
	}
	return mimeType, nil
}

// IsImage 检测是否为图片
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeImage)
}

// ImageExtension 根据 MIME 推断扩展名
func ImageExtension(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ".img"
}

func IsAllowedImageExt(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedImageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
