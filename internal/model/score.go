package model

import (
	"time"

	"gorm.io/datatypes"
)

// ChallengeScore 每个 (用户, 挑战) 仅保留最近一次提交的成绩，重复提交直接覆盖
// swagger:model ChallengeScore
type ChallengeScore struct {
	UUIDBase
	UserID      uint           `gorm:"not null;uniqueIndex:idx_challenge_scores_user_challenge" json:"userId"`
	ChallengeID string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_challenge_scores_user_challenge;index:idx_challenge_scores_challenge" json:"challengeId"`
	Score       float64        `gorm:"not null;default:0" json:"score"`
	Details     datatypes.JSON `json:"details,omitempty"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

func (ChallengeScore) TableName() string {
	return "challenge_scores"
}

// UserLessonScore 课时完成积分，由课时进度模块写入，这里只负责汇总
// swagger:model UserLessonScore
type UserLessonScore struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_lesson_scores_user_lesson" json:"userId"`
	LessonID   string    `gorm:"size:64;not null;uniqueIndex:idx_user_lesson_scores_user_lesson" json:"lessonId"`
	LessonType string    `gorm:"size:50" json:"lessonType"`
	Score      float64   `gorm:"not null;default:0" json:"score"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (UserLessonScore) TableName() string {
	return "user_lesson_scores"
}
