package model

import "time"

// Setting 系统键值配置，例如 points.lesson.video = 10
type Setting struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string    `gorm:"column:setting_key;size:100;uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"column:setting_value;size:255" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Setting) TableName() string {
	return "settings"
}

const LessonPointsKeyPrefix = "points.lesson."

func LessonPointsKey(lessonType string) string {
	return LessonPointsKeyPrefix + lessonType
}
