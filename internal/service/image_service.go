package service

import (
	"bytes"
	"context"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/internal/util"
	"encoding/base64"
	"fmt"
	"path"
	"strings"
)

const maxPuzzleImageBytes = util.MaxPuzzleImageMB << 20

// ImageService 拼图图片上传，支持 data URI 与 multipart 两种来源
type ImageService struct {
	Storage *StorageService
}

func NewImageService(storage *StorageService) *ImageService {
	return &ImageService{Storage: storage}
}

// UploadPuzzleImage 校验图片内容后上传，返回可访问的 URL
func (s *ImageService) UploadPuzzleImage(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", util.WrapValidation(util.ErrInvalidImage)
	}
	if len(data) > maxPuzzleImageBytes {
		return "", util.NewValidationError("image exceeds %dMB", util.MaxPuzzleImageMB)
	}
	mimeType, err := util.DetectImageType(data)
	if err != nil {
		return "", util.WrapValidation(fmt.Errorf("%w: %v", util.ErrInvalidImage, err))
	}
	filename := path.Join("puzzles", model.GenerateUUID()+util.ImageExtension(mimeType))
	return s.Storage.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), mimeType)
}

// ResolveImage data URI 会被上传并替换为 URL，普通 URL 原样返回
func (s *ImageService) ResolveImage(ctx context.Context, value string) (string, error) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, util.DataURIPrefix) {
		return value, nil
	}
	meta, encoded, ok := strings.Cut(strings.TrimPrefix(value, util.DataURIPrefix), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") || !util.IsImage(strings.TrimSuffix(meta, ";base64")) {
		return "", util.WrapValidation(util.ErrInvalidImage)
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", util.WrapValidation(fmt.Errorf("%w: %v", util.ErrInvalidImage, err))
	}
	return s.UploadPuzzleImage(ctx, data)
}
