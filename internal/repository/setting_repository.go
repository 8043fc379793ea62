package repository

import (
	"context"
	"edu_challenge_backend/internal/model"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	DB *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

// Get 键不存在时返回 nil, nil
func (r *SettingRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	var s model.Setting
	err := r.DB.WithContext(ctx).Where("setting_key = ?", key).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	s := &model.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(s).Error
}

func (r *SettingRepository) ListByPrefix(ctx context.Context, prefix string) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.DB.WithContext(ctx).
		Where("setting_key LIKE ?", prefix+"%").
		Order("setting_key").
		Find(&settings).Error
	return settings, err
}
