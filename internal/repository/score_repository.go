package repository

import (
	"context"
	"database/sql"
	"edu_challenge_backend/internal/model"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

// WithDB 绑定到另一个连接，通常是其他仓库开启的事务
func (r *ScoreRepository) WithDB(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

// Upsert 以 (user_id, challenge_id) 唯一键写入成绩，已存在则覆盖分数与提交时间
func (r *ScoreRepository) Upsert(ctx context.Context, s *model.ChallengeScore) (*model.ChallengeScore, error) {
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "challenge_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "details", "submitted_at", "updated_at"}),
	}).Create(s).Error
	if err != nil {
		return nil, err
	}
	// 冲突更新时内存中的主键不是库里的那一行，重新读取
	return r.FindByUserAndChallenge(ctx, s.UserID, s.ChallengeID)
}

// FindByUserAndChallenge 没有记录时返回 nil, nil
func (r *ScoreRepository) FindByUserAndChallenge(ctx context.Context, userID uint, challengeID string) (*model.ChallengeScore, error) {
	var s model.ChallengeScore
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScoreRepository) MaxScore(ctx context.Context, challengeID string) (float64, error) {
	var max float64
	err := r.DB.WithContext(ctx).Model(&model.ChallengeScore{}).
		Select("COALESCE(MAX(score), 0)").
		Where("challenge_id = ?", challengeID).
		Scan(&max).Error
	return max, err
}

func (r *ScoreRepository) CountByChallenge(ctx context.Context, challengeID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ChallengeScore{}).
		Where("challenge_id = ?", challengeID).
		Count(&count).Error
	return count, err
}

// CompletionCounts 批量统计每个挑战的提交人数
func (r *ScoreRepository) CompletionCounts(ctx context.Context, challengeIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(challengeIDs))
	if len(challengeIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		ChallengeID string
		Total       int64
	}
	err := r.DB.WithContext(ctx).Model(&model.ChallengeScore{}).
		Select("challenge_id, COUNT(*) AS total").
		Where("challenge_id IN ?", challengeIDs).
		Group("challenge_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ChallengeID] = row.Total
	}
	return out, nil
}

// SumByType 按挑战类型汇总用户成绩，没有成绩的类型不出现在结果中
func (r *ScoreRepository) SumByType(ctx context.Context, userID uint) (map[model.ChallengeType]float64, error) {
	var rows []struct {
		ChallengeType model.ChallengeType
		Total         float64
	}
	err := r.DB.WithContext(ctx).Table("challenge_scores AS cs").
		Select("c.type AS challenge_type, COALESCE(SUM(cs.score), 0) AS total").
		Joins("JOIN challenges AS c ON c.id = cs.challenge_id").
		Where("cs.user_id = ?", userID).
		Group("c.type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[model.ChallengeType]float64, len(rows))
	for _, row := range rows {
		out[row.ChallengeType] = row.Total
	}
	return out, nil
}

// LeaderboardRow 公开排行榜的用户总分视图，不含邮箱等联系方式；Rank 由调用方填充
type LeaderboardRow struct {
	ID             uint    `json:"id"`
	FullName       string  `json:"fullName"`
	Avatar         string  `json:"avatar"`
	Grade          string  `json:"grade,omitempty"`
	TotalScore     float64 `json:"totalScore"`
	LessonScore    float64 `json:"lessonScore"`
	ChallengeScore float64 `json:"challengeScore"`
	Rank           int     `json:"rank"`
}

// UserScoreRow 管理端视图，多出邮箱
type UserScoreRow struct {
	LeaderboardRow
	Email string `json:"email"`
}

const totalsColumns = `u.id AS id, u.full_name AS full_name, u.avatar AS avatar, u.grade AS grade,
			COALESCE(ls.total, 0) AS lesson_score,
			COALESCE(cs.total, 0) AS challenge_score,
			COALESCE(ls.total, 0) + COALESCE(cs.total, 0) AS total_score`

// totals 每个用户的课时分、挑战分与总分，实时聚合而非物化列。
// 挑战分与 SumByType 一样只统计仍存在的挑战
func (r *ScoreRepository) totals(ctx context.Context, extra ...string) *gorm.DB {
	db := r.DB.WithContext(ctx)
	lessons := db.Model(&model.UserLessonScore{}).Select("user_id, SUM(score) AS total").Group("user_id")
	challenges := db.Table("challenge_scores AS s").
		Select("s.user_id AS user_id, SUM(s.score) AS total").
		Joins("JOIN challenges AS c ON c.id = s.challenge_id").
		Group("s.user_id")

	columns := totalsColumns
	for _, col := range extra {
		columns += ", " + col
	}
	return db.Table("users AS u").
		Select(columns).
		Joins("LEFT JOIN (?) AS ls ON ls.user_id = u.id", lessons).
		Joins("LEFT JOIN (?) AS cs ON cs.user_id = u.id", challenges).
		Where("u.deleted_at IS NULL")
}

// Leaderboard 按总分降序，总分相同按用户 ID 升序；cohort 为空表示全站
func (r *ScoreRepository) Leaderboard(ctx context.Context, limit int, cohort string) ([]LeaderboardRow, error) {
	query := r.totals(ctx)
	if cohort != "" {
		query = query.Where("u.grade = ?", cohort)
	}
	var rows []LeaderboardRow
	err := query.Order("total_score DESC").Order("u.id ASC").Limit(limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

// UserTotals 单个用户的汇总；用户不存在返回 nil, nil
func (r *ScoreRepository) UserTotals(ctx context.Context, userID uint) (*LeaderboardRow, error) {
	var rows []LeaderboardRow
	if err := r.totals(ctx).Where("u.id = ?", userID).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// CountAbove 总分严格高于 total 的用户数
func (r *ScoreRepository) CountAbove(ctx context.Context, total float64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Table("(?) AS t", r.totals(ctx)).
		Where("t.total_score > ?", total).
		Count(&count).Error
	return count, err
}

// Snapshot 在只读事务中执行 fn，多次聚合读取看到同一份数据
func (r *ScoreRepository) Snapshot(ctx context.Context, fn func(repo *ScoreRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ScoreRepository{DB: tx})
	}, snapshotTxOptions(r.DB))
}

// snapshotTxOptions SQLite 只有一个写连接，本身就是串行的，不传隔离级别
func snapshotTxOptions(db *gorm.DB) *sql.TxOptions {
	if db.Dialector.Name() == "sqlite" {
		return nil
	}
	return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
}

// ListUserScores 管理端用户成绩分页，按总分降序
func (r *ScoreRepository) ListUserScores(ctx context.Context, page, perPage int, search string) ([]UserScoreRow, int64, error) {
	query := r.totals(ctx, "u.email AS email")
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(u.full_name) LIKE ? OR LOWER(u.email) LIKE ?", like, like)
	}

	var total int64
	if err := r.DB.WithContext(ctx).Table("(?) AS t", query).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []UserScoreRow
	err := query.Order("total_score DESC").Order("u.id ASC").
		Offset((page - 1) * perPage).Limit(perPage).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range rows {
		rows[i].Rank = (page-1)*perPage + i + 1
	}
	return rows, total, nil
}
