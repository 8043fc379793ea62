package service

import (
	"context"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/internal/repository"
	"edu_challenge_backend/internal/util"
	"edu_challenge_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

type ChallengeService struct {
	Repo      *repository.ChallengeRepository
	ScoreRepo *repository.ScoreRepository
	Scoring   *ScoringSettings
}

func NewChallengeService(repo *repository.ChallengeRepository, scoreRepo *repository.ScoreRepository, scoring *ScoringSettings) *ChallengeService {
	return &ChallengeService{Repo: repo, ScoreRepo: scoreRepo, Scoring: scoring}
}

type ChallengeQuery struct {
	Search  string                `form:"search"`
	Status  model.ChallengeStatus `form:"status"`
	Type    model.ChallengeType   `form:"type"`
	Page    int                   `form:"page"`
	PerPage int                   `form:"perPage"`
}

// ChallengeListItem 列表行：挑战主体 + 类型摘要 + 完成人数
type ChallengeListItem struct {
	model.Challenge
	Summary         *repository.ChallengeSummary `json:"summary"`
	CompletionCount int64                        `json:"completionCount"`
}

// ChallengeDetail 详情，data 以变体名为键，只包含当前类型
type ChallengeDetail struct {
	model.Challenge
	Data            map[model.ChallengeType]model.ChallengePayload `json:"data"`
	UserScore       *model.ChallengeScore                          `json:"userScore"`
	MaxScore        float64                                        `json:"maxScore"`
	CompletionCount *int64                                         `json:"completionCount,omitempty"`
}

// List 用户端只能看到已发布的挑战
func (s *ChallengeService) List(ctx context.Context, q ChallengeQuery) (*util.PageResponse, error) {
	q.Status = model.ChallengePublished
	return s.list(ctx, q)
}

// Get 用户端详情，未发布视为不存在
func (s *ChallengeService) Get(ctx context.Context, id string, userID uint) (*ChallengeDetail, error) {
	ctx, span := tracing.Start(ctx, "ChallengeService.Get", attribute.String("challenge.id", id))
	c, err := s.Repo.FindPublishedByID(ctx, id)
	if err != nil {
		tracing.End(span, err)
		return nil, err
	}
	detail, err := s.detail(ctx, s.Repo, c)
	if err != nil {
		tracing.End(span, err)
		return nil, err
	}
	if userID != 0 {
		detail.UserScore, err = s.ScoreRepo.FindByUserAndChallenge(ctx, userID, id)
	}
	tracing.End(span, err)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *ChallengeService) list(ctx context.Context, q ChallengeQuery) (*util.PageResponse, error) {
	if q.Type != "" && !q.Type.Valid() {
		return nil, util.NewValidationError("unknown challenge type %q", q.Type)
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, util.NewValidationError("unknown challenge status %q", q.Status)
	}
	page, perPage := normalizePage(q.Page, q.PerPage)

	challenges, total, err := s.Repo.List(ctx, repository.ChallengeFilter{
		Search:  q.Search,
		Status:  q.Status,
		Type:    q.Type,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(challenges))
	for i, c := range challenges {
		ids[i] = c.ID
	}

	var (
		summaries map[string]*repository.ChallengeSummary
		counts    map[string]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summaries, err = s.Repo.Summaries(gctx, challenges)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.ScoreRepo.CompletionCounts(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	previewLen := s.Scoring.Get().PreviewLength
	items := make([]ChallengeListItem, len(challenges))
	for i, c := range challenges {
		summary := summaries[c.ID]
		if summary != nil {
			summary.FirstQuestion = preview(summary.FirstQuestion, previewLen)
			summary.Instruction = preview(summary.Instruction, previewLen)
		}
		items[i] = ChallengeListItem{Challenge: c, Summary: summary, CompletionCount: counts[c.ID]}
	}

	resp := util.NewPageResponse(items, total, page, perPage)
	return &resp, nil
}

// detail 组装变体数据与最高分，repo 由调用方决定是否处于事务中
func (s *ChallengeService) detail(ctx context.Context, repo *repository.ChallengeRepository, c *model.Challenge) (*ChallengeDetail, error) {
	payload, err := repo.LoadPayload(ctx, c)
	if err != nil {
		return nil, err
	}
	maxScore, err := repository.NewScoreRepository(repo.DB).MaxScore(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	detail := &ChallengeDetail{
		Challenge: *c,
		Data:      map[model.ChallengeType]model.ChallengePayload{},
		MaxScore:  maxScore,
	}
	if payload != nil {
		detail.Data[c.Type] = payload
	}
	return detail, nil
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = util.DefaultPage
	}
	if perPage < 1 {
		perPage = util.DefaultPerPage
	}
	if perPage > util.MaxPerPage {
		perPage = util.MaxPerPage
	}
	return page, perPage
}

func preview(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
