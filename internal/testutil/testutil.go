package testutil

import (
	"context"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/pkg/database"
	"fmt"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB 每个测试一个独立的内存 SQLite，单连接保证所有语句看到同一个库
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func SeedUser(tb testing.TB, db *gorm.DB, name, grade string) *model.User {
	tb.Helper()
	u := &model.User{
		FullName: name,
		Email:    fmt.Sprintf("%s-%d@example.com", name, time.Now().UnixNano()),
		Grade:    grade,
		Role:     model.Student,
	}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedLessonScore(tb testing.TB, db *gorm.DB, userID uint, lessonID string, score float64) *model.UserLessonScore {
	tb.Helper()
	s := &model.UserLessonScore{UserID: userID, LessonID: lessonID, LessonType: "video", Score: score}
	if err := db.Create(s).Error; err != nil {
		tb.Fatalf("seed lesson score: %v", err)
	}
	return s
}

// SeedChallenge 直接写入一条不带题目的挑战，供成绩相关测试使用
func SeedChallenge(tb testing.TB, db *gorm.DB, challengeType model.ChallengeType, status model.ChallengeStatus) *model.Challenge {
	tb.Helper()
	id := model.GenerateUUID()
	c := &model.Challenge{
		UUIDBase: model.UUIDBase{ID: id},
		Title:    "seed " + string(challengeType),
		Slug:     "seed-" + id,
		Type:     challengeType,
		Status:   status,
	}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed challenge: %v", err)
	}
	return c
}

func SeedChallengeScore(tb testing.TB, db *gorm.DB, userID uint, challengeID string, score float64) *model.ChallengeScore {
	tb.Helper()
	s := &model.ChallengeScore{
		UserID:      userID,
		ChallengeID: challengeID,
		Score:       score,
		Details:     datatypes.JSON([]byte("[]")),
		SubmittedAt: time.Now(),
	}
	if err := db.WithContext(context.Background()).Create(s).Error; err != nil {
		tb.Fatalf("seed challenge score: %v", err)
	}
	return s
}
