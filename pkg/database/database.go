package database

import (
	"edu_challenge_backend/internal/config"
	"edu_challenge_backend/internal/model"
	"fmt"
	"log"
	"strconv"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models 需要自动迁移的全部表
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Setting{},
		&model.Challenge{},
		&model.ChallengeQuestion{},
		&model.ChallengeAnswer{},
		&model.PuzzleChallenge{},
		&model.OrderingChallenge{},
		&model.OrderingItem{},
		&model.FillBlankChallenge{},
		&model.FillBlankQuestion{},
		&model.ChallengeScore{},
		&model.UserLessonScore{},
	}
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.Path), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func InitDB(cfg *config.DatabaseConfig, scoring config.ScoringConfig, migrate bool) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Println("Database migration completed")

	if err := SeedLessonPoints(db, scoring.LessonPoints); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// SeedLessonPoints 首次启动时把配置中的课时积分写入 settings 表，已存在的键不覆盖
func SeedLessonPoints(db *gorm.DB, points map[string]float64) error {
	for lessonType, p := range points {
		var count int64
		key := model.LessonPointsKey(lessonType)
		if err := db.Model(&model.Setting{}).Where("setting_key = ?", key).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		s := &model.Setting{Key: key, Value: strconv.FormatFloat(p, 'f', -1, 64)}
		if err := db.Create(s).Error; err != nil {
			return err
		}
	}
	return nil
}
