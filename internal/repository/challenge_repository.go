package repository

import (
	"context"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/internal/util"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var orderColumn = clause.OrderByColumn{Column: clause.Column{Name: "order"}}

func byOrder(db *gorm.DB) *gorm.DB {
	return db.Order(orderColumn).Order("id")
}

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

// Transaction 在同一事务中执行 fn，fn 内只能使用传入的 repo
func (r *ChallengeRepository) Transaction(ctx context.Context, fn func(repo *ChallengeRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ChallengeRepository{DB: tx})
	})
}

type ChallengeFilter struct {
	Search  string
	Status  model.ChallengeStatus
	Type    model.ChallengeType
	Page    int
	PerPage int
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return util.ErrChallengeNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return util.NewConflictError("challenge slug already exists")
	}
	return err
}

func (r *ChallengeRepository) Create(ctx context.Context, c *model.Challenge) error {
	return translate(r.DB.WithContext(ctx).Create(c).Error)
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id string) (*model.Challenge, error) {
	var c model.Challenge
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// FindByIDForUpdate 在事务中对挑战行加排他锁，与提交时的共享锁互斥
func (r *ChallengeRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Challenge, error) {
	var c model.Challenge
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ChallengeRepository) FindPublishedByID(ctx context.Context, id string) (*model.Challenge, error) {
	return r.findPublished(ctx, id, nil)
}

// FindPublishedByIDForShare 共享锁，保证成绩写入前挑战不会被删除
func (r *ChallengeRepository) FindPublishedByIDForShare(ctx context.Context, id string) (*model.Challenge, error) {
	return r.findPublished(ctx, id, &clause.Locking{Strength: "SHARE"})
}

func (r *ChallengeRepository) findPublished(ctx context.Context, id string, lock *clause.Locking) (*model.Challenge, error) {
	var c model.Challenge
	db := r.DB.WithContext(ctx)
	if lock != nil {
		db = db.Clauses(*lock)
	}
	err := db.
		Where("id = ? AND status = ?", id, model.ChallengePublished).
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ChallengeRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64
	query := r.DB.WithContext(ctx).Model(&model.Challenge{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateFields 只更新主体字段，键为列名
func (r *ChallengeRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.DB.WithContext(ctx).Model(&model.Challenge{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	return nil
}

func (r *ChallengeRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Challenge{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrChallengeNotFound
	}
	return nil
}

// CreatePayload 写入变体数据，外键须已通过 model.AttachPayload 设置
func (r *ChallengeRepository) CreatePayload(ctx context.Context, p model.ChallengePayload) error {
	db := r.DB.WithContext(ctx)
	switch v := p.(type) {
	case *model.QuizPayload:
		if len(v.Questions) == 0 {
			return nil
		}
		return db.Create(&v.Questions).Error
	case *model.PuzzleChallenge:
		return db.Create(v).Error
	case *model.OrderingChallenge:
		return db.Create(v).Error
	case *model.FillBlankChallenge:
		return db.Create(v).Error
	}
	return model.ErrInvalidPayload
}

// DeletePayloads 清空挑战在全部四类子表中的数据，而不只是当前类型
func (r *ChallengeRepository) DeletePayloads(ctx context.Context, challengeID string) error {
	db := r.DB.WithContext(ctx)

	questionIDs := db.Model(&model.ChallengeQuestion{}).Select("id").Where("challenge_id = ?", challengeID)
	if err := db.Where("challenge_question_id IN (?)", questionIDs).Delete(&model.ChallengeAnswer{}).Error; err != nil {
		return err
	}
	if err := db.Where("challenge_id = ?", challengeID).Delete(&model.ChallengeQuestion{}).Error; err != nil {
		return err
	}

	if err := db.Where("challenge_id = ?", challengeID).Delete(&model.PuzzleChallenge{}).Error; err != nil {
		return err
	}

	orderingIDs := db.Model(&model.OrderingChallenge{}).Select("id").Where("challenge_id = ?", challengeID)
	if err := db.Where("ordering_challenge_id IN (?)", orderingIDs).Delete(&model.OrderingItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("challenge_id = ?", challengeID).Delete(&model.OrderingChallenge{}).Error; err != nil {
		return err
	}

	fillBlankIDs := db.Model(&model.FillBlankChallenge{}).Select("id").Where("challenge_id = ?", challengeID)
	if err := db.Where("fill_blank_challenge_id IN (?)", fillBlankIDs).Delete(&model.FillBlankQuestion{}).Error; err != nil {
		return err
	}
	return db.Where("challenge_id = ?", challengeID).Delete(&model.FillBlankChallenge{}).Error
}

// ReplacePayload 删除旧变体数据并写入新数据，调用方负责放在事务中
func (r *ChallengeRepository) ReplacePayload(ctx context.Context, challengeID string, p model.ChallengePayload) error {
	if err := r.DeletePayloads(ctx, challengeID); err != nil {
		return err
	}
	model.AttachPayload(p, challengeID)
	return r.CreatePayload(ctx, p)
}

// LoadPayload 按挑战类型加载完整变体数据；数据缺失时返回 nil
func (r *ChallengeRepository) LoadPayload(ctx context.Context, c *model.Challenge) (model.ChallengePayload, error) {
	db := r.DB.WithContext(ctx)
	switch c.Type {
	case model.ChallengeQuiz:
		var questions []model.ChallengeQuestion
		err := byOrder(db.Where("challenge_id = ?", c.ID)).
			Preload("Answers", byOrder).
			Find(&questions).Error
		if err != nil {
			return nil, err
		}
		return &model.QuizPayload{Questions: questions}, nil
	case model.ChallengePuzzle:
		var p model.PuzzleChallenge
		if err := db.Where("challenge_id = ?", c.ID).First(&p).Error; err != nil {
			return nilIfNotFound(err)
		}
		return &p, nil
	case model.ChallengeOrdering:
		var p model.OrderingChallenge
		err := db.Where("challenge_id = ?", c.ID).Preload("Items", byOrder).First(&p).Error
		if err != nil {
			return nilIfNotFound(err)
		}
		return &p, nil
	case model.ChallengeFillBlank:
		var p model.FillBlankChallenge
		err := db.Where("challenge_id = ?", c.ID).Preload("Questions", byOrder).First(&p).Error
		if err != nil {
			return nilIfNotFound(err)
		}
		return &p, nil
	}
	return nil, nil
}

func nilIfNotFound(err error) (model.ChallengePayload, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}

func (r *ChallengeRepository) List(ctx context.Context, f ChallengeFilter) ([]model.Challenge, int64, error) {
	query := r.DB.WithContext(ctx).Model(&model.Challenge{})
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(slug) LIKE ?", like, like)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}

	var (
		total int64
		list  []model.Challenge
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return query.Session(&gorm.Session{}).Count(&total).Error
	})
	g.Go(func() error {
		offset := (f.Page - 1) * f.PerPage
		return byOrder(query.Session(&gorm.Session{})).Offset(offset).Limit(f.PerPage).Find(&list).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ChallengeSummary 列表中的轻量摘要，不加载完整题目
type ChallengeSummary struct {
	QuestionCount *int   `json:"questionCount,omitempty"`
	ItemCount     *int   `json:"itemCount,omitempty"`
	FirstQuestion string `json:"firstQuestion,omitempty"`
	Instruction   string `json:"instruction,omitempty"`
}

type countRow struct {
	ChallengeID string
	Instruction string
	Total       int
}

// Summaries 按类型批量查询摘要，返回 challengeID -> 摘要
func (r *ChallengeRepository) Summaries(ctx context.Context, challenges []model.Challenge) (map[string]*ChallengeSummary, error) {
	ids := map[model.ChallengeType][]string{}
	for _, c := range challenges {
		ids[c.Type] = append(ids[c.Type], c.ID)
	}
	out := make(map[string]*ChallengeSummary, len(challenges))
	db := r.DB.WithContext(ctx)

	if quizIDs := ids[model.ChallengeQuiz]; len(quizIDs) > 0 {
		var questions []model.ChallengeQuestion
		err := byOrder(db.Select("id", "challenge_id", "question", "order").Where("challenge_id IN ?", quizIDs)).
			Find(&questions).Error
		if err != nil {
			return nil, err
		}
		for _, id := range quizIDs {
			zero := 0
			out[id] = &ChallengeSummary{QuestionCount: &zero}
		}
		for _, q := range questions {
			s := out[q.ChallengeID]
			if *s.QuestionCount == 0 {
				s.FirstQuestion = q.Question
			}
			*s.QuestionCount++
		}
	}

	if puzzleIDs := ids[model.ChallengePuzzle]; len(puzzleIDs) > 0 {
		var puzzles []model.PuzzleChallenge
		if err := db.Select("challenge_id", "instruction").Where("challenge_id IN ?", puzzleIDs).Find(&puzzles).Error; err != nil {
			return nil, err
		}
		for _, p := range puzzles {
			out[p.ChallengeID] = &ChallengeSummary{Instruction: p.Instruction}
		}
	}

	if orderingIDs := ids[model.ChallengeOrdering]; len(orderingIDs) > 0 {
		var rows []countRow
		err := db.Table("ordering_challenges AS oc").
			Select("oc.challenge_id AS challenge_id, oc.instruction AS instruction, COUNT(oi.id) AS total").
			Joins("LEFT JOIN ordering_items AS oi ON oi.ordering_challenge_id = oc.id").
			Where("oc.challenge_id IN ?", orderingIDs).
			Group("oc.challenge_id, oc.instruction").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			n := row.Total
			out[row.ChallengeID] = &ChallengeSummary{ItemCount: &n, Instruction: row.Instruction}
		}
	}

	if fillIDs := ids[model.ChallengeFillBlank]; len(fillIDs) > 0 {
		var rows []countRow
		err := db.Table("fill_blank_challenges AS fc").
			Select("fc.challenge_id AS challenge_id, COUNT(fq.id) AS total").
			Joins("LEFT JOIN fill_blank_questions AS fq ON fq.fill_blank_challenge_id = fc.id").
			Where("fc.challenge_id IN ?", fillIDs).
			Group("fc.challenge_id").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			n := row.Total
			out[row.ChallengeID] = &ChallengeSummary{QuestionCount: &n}
		}
	}

	return out, nil
}
