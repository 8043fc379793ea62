package service

import (
	"context"
	"edu_challenge_backend/internal/grading"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/internal/repository"
	"edu_challenge_backend/pkg/logger"
	"edu_challenge_backend/pkg/monitoring"
	"edu_challenge_backend/pkg/tracing"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type SubmissionService struct {
	ChallengeRepo *repository.ChallengeRepository
	ScoreRepo     *repository.ScoreRepository
	Grader        *grading.Grader
	Cache         *Cache
	now           func() time.Time
}

func NewSubmissionService(challengeRepo *repository.ChallengeRepository, scoreRepo *repository.ScoreRepository, grader *grading.Grader, cache *Cache) *SubmissionService {
	return &SubmissionService{
		ChallengeRepo: challengeRepo,
		ScoreRepo:     scoreRepo,
		Grader:        grader,
		Cache:         cache,
		now:           time.Now,
	}
}

type SubmitResult struct {
	ChallengeID    string      `json:"challengeId"`
	Score          float64     `json:"score"`
	TotalQuestions int         `json:"totalQuestions"`
	CorrectAnswers int         `json:"correctAnswers"`
	SubmittedAt    time.Time   `json:"submittedAt"`
	Details        interface{} `json:"details"`
}

// Submit 评分并覆盖该用户在此挑战上的成绩（最后一次提交为准）。
// 评分失败时不写任何记录；读取挑战与写入成绩在同一事务中，挑战行持共享锁
func (s *SubmissionService) Submit(ctx context.Context, challengeID string, userID uint, sub *grading.Submission) (*SubmitResult, error) {
	ctx, span := tracing.Start(ctx, "SubmissionService.Submit",
		attribute.String("challenge.id", challengeID),
		attribute.Int64("user.id", int64(userID)),
	)
	result, err := s.submit(ctx, challengeID, userID, sub)
	if result != nil {
		span.SetAttributes(attribute.Float64("submission.score", result.Score))
	}
	tracing.End(span, err)
	return result, err
}

func (s *SubmissionService) submit(ctx context.Context, challengeID string, userID uint, sub *grading.Submission) (*SubmitResult, error) {
	var (
		c     *model.Challenge
		res   *grading.Result
		saved *model.ChallengeScore
	)
	err := s.ChallengeRepo.Transaction(ctx, func(repo *repository.ChallengeRepository) error {
		var err error
		c, err = repo.FindPublishedByIDForShare(ctx, challengeID)
		if err != nil {
			return err
		}
		payload, err := repo.LoadPayload(ctx, c)
		if err != nil {
			return err
		}

		res, err = s.Grader.Grade(c.Type, payload, sub)
		if err != nil {
			return err
		}

		details, err := json.Marshal(res.Details)
		if err != nil {
			return err
		}
		saved, err = s.ScoreRepo.WithDB(repo.DB).Upsert(ctx, &model.ChallengeScore{
			UserID:      userID,
			ChallengeID: c.ID,
			Score:       res.Score,
			Details:     datatypes.JSON(details),
			SubmittedAt: s.now(),
		})
		if err != nil {
			logger.Log.Error("Failed to save challenge score",
				zap.String("challengeId", c.ID),
				zap.Uint("userId", userID),
				zap.Error(err),
			)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Bump(ctx, leaderboardVersionKey)
	monitoring.ObserveSubmission(string(c.Type), res.Score)
	logger.Log.Info("Challenge submitted",
		zap.String("challengeId", c.ID),
		zap.Uint("userId", userID),
		zap.String("type", string(c.Type)),
		zap.Float64("score", res.Score),
	)

	return &SubmitResult{
		ChallengeID:    c.ID,
		Score:          res.Score,
		TotalQuestions: res.TotalQuestions,
		CorrectAnswers: res.CorrectAnswers,
		SubmittedAt:    saved.SubmittedAt,
		Details:        res.Details,
	}, nil
}
