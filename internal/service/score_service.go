package service

import (
	"context"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/internal/repository"
	"edu_challenge_backend/internal/util"
	"edu_challenge_backend/pkg/monitoring"
	"edu_challenge_backend/pkg/tracing"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const (
	leaderboardVersionKey = "leaderboard:version"
	defaultTopUsers       = 5
)

type ScoreService struct {
	ScoreRepo  *repository.ScoreRepository
	LessonRepo *repository.LessonScoreRepository
	Cache      *Cache
	Scoring    *ScoringSettings
}

func NewScoreService(
	scoreRepo *repository.ScoreRepository,
	lessonRepo *repository.LessonScoreRepository,
	cache *Cache,
	scoring *ScoringSettings,
) *ScoreService {
	return &ScoreService{
		ScoreRepo:  scoreRepo,
		LessonRepo: lessonRepo,
		Cache:      cache,
		Scoring:    scoring,
	}
}

type ChallengeScoreBreakdown struct {
	Total     float64 `json:"total"`
	Quiz      float64 `json:"quiz"`
	Puzzle    float64 `json:"puzzle"`
	Ordering  float64 `json:"ordering"`
	FillBlank float64 `json:"fillBlank"`
}

type DetailedScore struct {
	UserID         uint                    `json:"userId"`
	TotalScore     float64                 `json:"totalScore"`
	LessonScore    float64                 `json:"lessonScore"`
	ChallengeScore ChallengeScoreBreakdown `json:"challengeScore"`
}

type UserRank struct {
	UserID         uint                    `json:"userId"`
	Rank           int                     `json:"rank"`
	TotalScore     float64                 `json:"totalScore"`
	LessonScore    float64                 `json:"lessonScore"`
	ChallengeScore ChallengeScoreBreakdown `json:"challengeScore"`
}

// UserDetailedScore 课时总分 + 挑战总分（按类型拆分）
func (s *ScoreService) UserDetailedScore(ctx context.Context, userID uint) (*DetailedScore, error) {
	ctx, span := tracing.Start(ctx, "ScoreService.UserDetailedScore", attribute.Int64("user.id", int64(userID)))
	var (
		lessonTotal float64
		byType      map[model.ChallengeType]float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lessonTotal, err = s.LessonRepo.SumByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		byType, err = s.ScoreRepo.SumByType(gctx, userID)
		return err
	})
	err := g.Wait()
	tracing.End(span, err)
	if err != nil {
		return nil, err
	}

	breakdown := newBreakdown(byType)
	return &DetailedScore{
		UserID:         userID,
		TotalScore:     lessonTotal + breakdown.Total,
		LessonScore:    lessonTotal,
		ChallengeScore: breakdown,
	}, nil
}

func newBreakdown(byType map[model.ChallengeType]float64) ChallengeScoreBreakdown {
	b := ChallengeScoreBreakdown{
		Quiz:      byType[model.ChallengeQuiz],
		Puzzle:    byType[model.ChallengePuzzle],
		Ordering:  byType[model.ChallengeOrdering],
		FillBlank: byType[model.ChallengeFillBlank],
	}
	for _, t := range model.ChallengeTypes {
		b.Total += byType[t]
	}
	return b
}

// ClampLimit 非正数取默认值，超过上限取上限
func (s *ScoreService) ClampLimit(limit int) int {
	cfg := s.Scoring.Get()
	if limit <= 0 {
		return cfg.LeaderboardDefaultLimit
	}
	if limit > cfg.LeaderboardMaxLimit {
		return cfg.LeaderboardMaxLimit
	}
	return limit
}

// Leaderboard 总分降序；cohort 为年级，空表示全站。结果按版本号缓存，成绩写入后版本递增
func (s *ScoreService) Leaderboard(ctx context.Context, limit int, cohort string) ([]repository.LeaderboardRow, error) {
	limit = s.ClampLimit(limit)
	ctx, span := tracing.Start(ctx, "ScoreService.Leaderboard",
		attribute.Int("leaderboard.limit", limit),
		attribute.String("leaderboard.cohort", cohort),
	)

	key := fmt.Sprintf("leaderboard:v%d:%s:%d", s.Cache.Version(ctx, leaderboardVersionKey), cohort, limit)
	var rows []repository.LeaderboardRow
	if s.Cache.GetJSON(ctx, key, &rows) {
		monitoring.LeaderboardCache.WithLabelValues("hit").Inc()
		tracing.End(span, nil)
		return rows, nil
	}
	if s.Cache.Enabled() {
		monitoring.LeaderboardCache.WithLabelValues("miss").Inc()
	}

	rows, err := s.ScoreRepo.Leaderboard(ctx, limit, cohort)
	tracing.End(span, err)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.LeaderboardRow{}
	}
	s.Cache.SetJSON(ctx, key, rows, s.Scoring.Get().LeaderboardCacheTTL())
	return rows, nil
}

// UserRank 排名 = 1 + 总分严格高于该用户的人数，同分同名次。
// 总分、名次与分类型明细在同一个只读快照中读取
func (s *ScoreService) UserRank(ctx context.Context, userID uint) (*UserRank, error) {
	var (
		totals *repository.LeaderboardRow
		above  int64
		byType map[model.ChallengeType]float64
	)
	err := s.ScoreRepo.Snapshot(ctx, func(repo *repository.ScoreRepository) error {
		var err error
		if totals, err = repo.UserTotals(ctx, userID); err != nil {
			return err
		}
		if totals == nil {
			return util.ErrUserNotFound
		}
		if above, err = repo.CountAbove(ctx, totals.TotalScore); err != nil {
			return err
		}
		byType, err = repo.SumByType(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &UserRank{
		UserID:         userID,
		Rank:           int(above) + 1,
		TotalScore:     totals.TotalScore,
		LessonScore:    totals.LessonScore,
		ChallengeScore: newBreakdown(byType),
	}, nil
}

// ListUserScores 管理端按总分分页查看用户成绩
func (s *ScoreService) ListUserScores(ctx context.Context, page, perPage int, search string) (*util.PageResponse, error) {
	page, perPage = normalizePage(page, perPage)
	rows, total, err := s.ScoreRepo.ListUserScores(ctx, page, perPage, search)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.UserScoreRow{}
	}
	resp := util.NewPageResponse(rows, total, page, perPage)
	return &resp, nil
}

// TopUsers 仪表盘前几名，默认 5 个
func (s *ScoreService) TopUsers(ctx context.Context, limit int) ([]repository.LeaderboardRow, error) {
	if limit <= 0 {
		limit = defaultTopUsers
	}
	return s.Leaderboard(ctx, limit, "")
}
