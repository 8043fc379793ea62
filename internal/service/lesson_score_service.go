package service

import (
	"context"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/internal/repository"
	"edu_challenge_backend/internal/util"
	"edu_challenge_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
)

// LessonScoreService 课时完成回调，写入课时积分供排行榜汇总
type LessonScoreService struct {
	Repo     *repository.LessonScoreRepository
	UserRepo *repository.UserRepository
	Settings *SettingService
	Cache    *Cache
}

func NewLessonScoreService(repo *repository.LessonScoreRepository, userRepo *repository.UserRepository, settings *SettingService, cache *Cache) *LessonScoreService {
	return &LessonScoreService{Repo: repo, UserRepo: userRepo, Settings: settings, Cache: cache}
}

type LessonCompletion struct {
	LessonID   string  `json:"lessonId"`
	LessonType string  `json:"lessonType"`
	Points     float64 `json:"points"`
	Awarded    bool    `json:"awarded"`
}

// RecordCompletion 同一课时只在首次完成时计分，重复调用返回已有记录
func (s *LessonScoreService) RecordCompletion(ctx context.Context, userID uint, lessonID, lessonType string) (*LessonCompletion, error) {
	lessonID = strings.TrimSpace(lessonID)
	lessonType = normalizeLessonType(lessonType)
	if lessonID == "" {
		return nil, util.NewValidationError("lesson id is required")
	}
	if lessonType == "" {
		return nil, util.NewValidationError("lesson type is required")
	}
	if _, err := s.UserRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	points, err := s.Settings.GetPoints(ctx, lessonType)
	if err != nil {
		return nil, err
	}
	created, err := s.Repo.CreateIfAbsent(ctx, &model.UserLessonScore{
		UserID:     userID,
		LessonID:   lessonID,
		LessonType: lessonType,
		Score:      points,
	})
	if err != nil {
		return nil, err
	}
	if !created {
		existing, err := s.Repo.FindByUserAndLesson(ctx, userID, lessonID)
		if err != nil {
			return nil, err
		}
		return &LessonCompletion{LessonID: lessonID, LessonType: existing.LessonType, Points: existing.Score}, nil
	}

	s.Cache.Bump(ctx, leaderboardVersionKey)
	logger.Log.Info("Lesson completed",
		zap.Uint("userId", userID),
		zap.String("lessonId", lessonID),
		zap.Float64("points", points),
	)
	return &LessonCompletion{LessonID: lessonID, LessonType: lessonType, Points: points, Awarded: true}, nil
}
