package repository

import (
	"context"
	"edu_challenge_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LessonScoreRepository struct {
	DB *gorm.DB
}

func NewLessonScoreRepository(db *gorm.DB) *LessonScoreRepository {
	return &LessonScoreRepository{DB: db}
}

func (r *LessonScoreRepository) SumByUser(ctx context.Context, userID uint) (float64, error) {
	var total float64
	err := r.DB.WithContext(ctx).Model(&model.UserLessonScore{}).
		Select("COALESCE(SUM(score), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

// CreateIfAbsent 同一课时只记一次分，返回本次是否新写入
func (r *LessonScoreRepository) CreateIfAbsent(ctx context.Context, s *model.UserLessonScore) (bool, error) {
	res := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}).Create(s)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *LessonScoreRepository) FindByUserAndLesson(ctx context.Context, userID uint, lessonID string) (*model.UserLessonScore, error) {
	var s model.UserLessonScore
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
