package service

import (
	"context"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/internal/repository"
	"edu_challenge_backend/internal/util"
	"edu_challenge_backend/pkg/logger"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const pointsCacheTTL = 10 * time.Minute

type SettingService struct {
	Repo    *repository.SettingRepository
	Cache   *Cache
	Scoring *ScoringSettings
}

func NewSettingService(repo *repository.SettingRepository, cache *Cache, scoring *ScoringSettings) *SettingService {
	return &SettingService{Repo: repo, Cache: cache, Scoring: scoring}
}

func pointsCacheKey(lessonType string) string {
	return "settings:" + model.LessonPointsKey(lessonType)
}

func normalizeLessonType(lessonType string) string {
	return strings.ToLower(strings.TrimSpace(lessonType))
}

// GetPoints 课时类型对应的积分：settings 表 > 配置文件 lesson_points > default_lesson_points
func (s *SettingService) GetPoints(ctx context.Context, lessonType string) (float64, error) {
	lessonType = normalizeLessonType(lessonType)
	var cached float64
	if s.Cache.GetJSON(ctx, pointsCacheKey(lessonType), &cached) {
		return cached, nil
	}

	points, err := s.lookupPoints(ctx, lessonType)
	if err != nil {
		return 0, err
	}
	s.Cache.SetJSON(ctx, pointsCacheKey(lessonType), points, pointsCacheTTL)
	return points, nil
}

func (s *SettingService) lookupPoints(ctx context.Context, lessonType string) (float64, error) {
	setting, err := s.Repo.Get(ctx, model.LessonPointsKey(lessonType))
	if err != nil {
		return 0, err
	}
	if setting != nil {
		v, err := strconv.ParseFloat(setting.Value, 64)
		if err == nil {
			return v, nil
		}
		logger.Log.Warn("Invalid points setting, falling back to config",
			zap.String("key", setting.Key),
			zap.String("value", setting.Value),
		)
	}
	cfg := s.Scoring.Get()
	if v, ok := cfg.LessonPoints[lessonType]; ok {
		return v, nil
	}
	return cfg.DefaultLessonPoints, nil
}

func (s *SettingService) SetPoints(ctx context.Context, lessonType string, points float64) error {
	lessonType = normalizeLessonType(lessonType)
	if lessonType == "" {
		return util.NewValidationError("lesson type is required")
	}
	if points < 0 || math.IsNaN(points) || math.IsInf(points, 0) {
		return util.NewValidationError("points must be a non-negative number")
	}
	value := strconv.FormatFloat(points, 'f', -1, 64)
	if err := s.Repo.Upsert(ctx, model.LessonPointsKey(lessonType), value); err != nil {
		return err
	}
	s.Cache.Del(ctx, pointsCacheKey(lessonType))
	logger.Log.Info("Lesson points updated", zap.String("lessonType", lessonType), zap.Float64("points", points))
	return nil
}

// ListPoints 合并配置文件与 settings 表，后者优先
func (s *SettingService) ListPoints(ctx context.Context) (map[string]float64, error) {
	cfg := s.Scoring.Get()
	out := make(map[string]float64, len(cfg.LessonPoints))
	for k, v := range cfg.LessonPoints {
		out[k] = v
	}
	settings, err := s.Repo.ListByPrefix(ctx, model.LessonPointsKeyPrefix)
	if err != nil {
		return nil, err
	}
	for _, setting := range settings {
		v, err := strconv.ParseFloat(setting.Value, 64)
		if err != nil {
			continue
		}
		out[strings.TrimPrefix(setting.Key, model.LessonPointsKeyPrefix)] = v
	}
	return out, nil
}
