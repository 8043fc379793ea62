package service

import (
	"context"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/internal/repository"
	"edu_challenge_backend/internal/util"
	"edu_challenge_backend/pkg/logger"
	"edu_challenge_backend/pkg/tracing"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type ChallengeAdminService struct {
	Repo    *repository.ChallengeRepository
	Reader  *ChallengeService
	Images  *ImageService
	Scoring *ScoringSettings
	now     func() time.Time
}

func NewChallengeAdminService(
	repo *repository.ChallengeRepository,
	reader *ChallengeService,
	images *ImageService,
	scoring *ScoringSettings,
) *ChallengeAdminService {
	return &ChallengeAdminService{
		Repo:    repo,
		Reader:  reader,
		Images:  images,
		Scoring: scoring,
		now:     time.Now,
	}
}

// ChallengeInput 创建与更新共用；更新时未提供的字段保持不变。
// 选择题题目位于顶层 questions，其余类型各自一个对象
type ChallengeInput struct {
	Title       *string                   `json:"title"`
	Slug        *string                   `json:"slug"`
	Description *string                   `json:"description"`
	Type        model.ChallengeType       `json:"type"`
	Status      model.ChallengeStatus     `json:"status"`
	Order       *int                      `json:"order"`
	Questions   []model.ChallengeQuestion `json:"questions"`
	Puzzle      *model.PuzzleChallenge    `json:"puzzle"`
	Ordering    *model.OrderingChallenge  `json:"ordering"`
	FillBlank   *model.FillBlankChallenge `json:"fillBlank"`
}

// payload 取出请求中的变体数据；没有时返回 nil，多于一个或类型不符时报错
func (in *ChallengeInput) payload(challengeType model.ChallengeType) (model.ChallengePayload, error) {
	var found []model.ChallengePayload
	if in.Questions != nil {
		found = append(found, &model.QuizPayload{Questions: in.Questions})
	}
	if in.Puzzle != nil {
		found = append(found, in.Puzzle)
	}
	if in.Ordering != nil {
		found = append(found, in.Ordering)
	}
	if in.FillBlank != nil {
		found = append(found, in.FillBlank)
	}
	switch {
	case len(found) == 0:
		return nil, nil
	case len(found) > 1:
		return nil, util.NewValidationError("exactly one challenge payload is allowed")
	case found[0].ChallengeType() != challengeType:
		return nil, util.NewValidationError("payload %s does not match challenge type %s", found[0].ChallengeType(), challengeType)
	}
	return found[0], nil
}

// preparePayload 先校验再处理拼图图片上传，校验失败不会留下孤立文件
func (s *ChallengeAdminService) preparePayload(ctx context.Context, p model.ChallengePayload) error {
	if err := util.WrapValidation(p.Validate()); err != nil {
		return err
	}
	if puzzle, ok := p.(*model.PuzzleChallenge); ok && s.Images != nil {
		url, err := s.Images.ResolveImage(ctx, puzzle.Image)
		if err != nil {
			return err
		}
		puzzle.Image = url
	}
	return nil
}

func (s *ChallengeAdminService) Create(ctx context.Context, in ChallengeInput) (*ChallengeDetail, error) {
	ctx, span := tracing.Start(ctx, "ChallengeAdminService.Create", attribute.String("challenge.type", string(in.Type)))
	detail, err := s.create(ctx, in)
	tracing.End(span, err)
	return detail, err
}

func (s *ChallengeAdminService) create(ctx context.Context, in ChallengeInput) (*ChallengeDetail, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, util.NewValidationError("title is required")
	}
	if !in.Type.Valid() {
		return nil, util.NewValidationError("unknown challenge type %q", in.Type)
	}
	status := in.Status
	if status == "" {
		status = model.ChallengeDraft
	}
	if !status.Valid() {
		return nil, util.NewValidationError("unknown challenge status %q", status)
	}

	payload, err := in.payload(in.Type)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, util.NewValidationError("%s payload is required", in.Type)
	}
	if err := s.preparePayload(ctx, payload); err != nil {
		return nil, err
	}

	c := &model.Challenge{
		Title:  strings.TrimSpace(*in.Title),
		Type:   in.Type,
		Status: status,
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Order != nil {
		c.Order = *in.Order
	}
	base := c.Title
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		base = *in.Slug
	}

	var detail *ChallengeDetail
	err = s.Repo.Transaction(ctx, func(repo *repository.ChallengeRepository) error {
		slug, err := uniqueSlug(ctx, repo, Slugify(base), "", s.Scoring.Get().SlugMaxAttempts, s.now)
		if err != nil {
			return err
		}
		c.Slug = slug
		if err := repo.Create(ctx, c); err != nil {
			return err
		}
		model.AttachPayload(payload, c.ID)
		if err := repo.CreatePayload(ctx, payload); err != nil {
			return err
		}
		detail, err = s.Reader.detail(ctx, repo, c)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Challenge created",
		zap.String("id", c.ID),
		zap.String("slug", c.Slug),
		zap.String("type", string(c.Type)),
	)
	return detail, nil
}

// Update 标量字段单独修改；类型变化或提供了变体数据时，在同一事务内清空全部变体子表后重建
func (s *ChallengeAdminService) Update(ctx context.Context, id string, in ChallengeInput) (*ChallengeDetail, error) {
	ctx, span := tracing.Start(ctx, "ChallengeAdminService.Update", attribute.String("challenge.id", id))
	detail, err := s.update(ctx, id, in)
	tracing.End(span, err)
	return detail, err
}

func (s *ChallengeAdminService) update(ctx context.Context, id string, in ChallengeInput) (*ChallengeDetail, error) {
	if in.Type != "" && !in.Type.Valid() {
		return nil, util.NewValidationError("unknown challenge type %q", in.Type)
	}
	if in.Status != "" && !in.Status.Valid() {
		return nil, util.NewValidationError("unknown challenge status %q", in.Status)
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, util.NewValidationError("title must not be empty")
	}

	// 图片上传不能放进事务，先按请求里的类型预处理
	if in.Puzzle != nil {
		if err := s.preparePayload(ctx, in.Puzzle); err != nil {
			return nil, err
		}
	}

	var (
		detail   *ChallengeDetail
		replaced bool
	)
	err := s.Repo.Transaction(ctx, func(repo *repository.ChallengeRepository) error {
		c, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		nextType := c.Type
		if in.Type != "" {
			nextType = in.Type
		}
		payload, err := in.payload(nextType)
		if err != nil {
			return err
		}
		if nextType != c.Type && payload == nil {
			return util.NewValidationError("changing type to %s requires a %s payload", nextType, nextType)
		}

		fields := map[string]interface{}{}
		if in.Title != nil {
			fields["title"] = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			fields["description"] = *in.Description
		}
		if in.Order != nil {
			fields["order"] = *in.Order
		}
		if nextType != c.Type {
			fields["type"] = nextType
		}
		if in.Status != "" && in.Status != c.Status {
			if !c.Status.CanTransitionTo(in.Status) {
				return util.NewValidationError("cannot change status from %s to %s", c.Status, in.Status)
			}
			fields["status"] = in.Status
		}
		if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
			base := Slugify(*in.Slug)
			if base != c.Slug {
				slug, err := uniqueSlug(ctx, repo, base, c.ID, s.Scoring.Get().SlugMaxAttempts, s.now)
				if err != nil {
					return err
				}
				fields["slug"] = slug
			}
		}

		if payload != nil {
			if err := util.WrapValidation(payload.Validate()); err != nil {
				return err
			}
			if err := repo.ReplacePayload(ctx, c.ID, payload); err != nil {
				return err
			}
			replaced = true
		}

		if len(fields) > 0 {
			fields["updated_at"] = s.now()
		}
		if err := repo.UpdateFields(ctx, c.ID, fields); err != nil {
			return err
		}

		updated, err := repo.FindByID(ctx, c.ID)
		if err != nil {
			return err
		}
		detail, err = s.Reader.detail(ctx, repo, updated)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Challenge updated",
		zap.String("id", id),
		zap.Bool("payloadReplaced", replaced),
	)
	return detail, nil
}

// RemoveResult Archived 为 true 表示因已有成绩记录而改为归档
type RemoveResult struct {
	ID       string `json:"id"`
	Deleted  bool   `json:"deleted"`
	Archived bool   `json:"archived"`
	Message  string `json:"message"`
}

// Remove 有成绩记录的挑战只归档，保留历史统计；否则连同变体数据一起物理删除。
// 挑战行加排他锁后再统计成绩，提交方持有共享锁，二者不会交错
func (s *ChallengeAdminService) Remove(ctx context.Context, id string) (*RemoveResult, error) {
	ctx, span := tracing.Start(ctx, "ChallengeAdminService.Remove", attribute.String("challenge.id", id))
	result, err := s.remove(ctx, id)
	tracing.End(span, err)
	return result, err
}

func (s *ChallengeAdminService) remove(ctx context.Context, id string) (*RemoveResult, error) {
	result := &RemoveResult{ID: id}
	err := s.Repo.Transaction(ctx, func(repo *repository.ChallengeRepository) error {
		c, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		count, err := s.Reader.ScoreRepo.WithDB(repo.DB).CountByChallenge(ctx, c.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			result.Archived = true
			result.Message = "challenge has submissions and was archived instead of deleted"
			return repo.UpdateFields(ctx, c.ID, map[string]interface{}{
				"status":     model.ChallengeArchived,
				"updated_at": s.now(),
			})
		}
		if err := repo.DeletePayloads(ctx, c.ID); err != nil {
			return err
		}
		result.Deleted = true
		result.Message = "challenge deleted"
		return repo.Delete(ctx, c.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Challenge removed",
		zap.String("id", id),
		zap.Bool("archived", result.Archived),
	)
	return result, nil
}

// List 管理端列表，不限制状态
func (s *ChallengeAdminService) List(ctx context.Context, q ChallengeQuery) (*util.PageResponse, error) {
	return s.Reader.list(ctx, q)
}

// Get 管理端详情，忽略发布状态
func (s *ChallengeAdminService) Get(ctx context.Context, id string) (*ChallengeDetail, error) {
	c, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail, err := s.Reader.detail(ctx, s.Repo, c)
	if err != nil {
		return nil, err
	}
	count, err := s.Reader.ScoreRepo.CountByChallenge(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.CompletionCount = &count
	return detail, nil
}
