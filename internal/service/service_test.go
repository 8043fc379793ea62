package service

import (
	"context"
	"edu_challenge_backend/internal/config"
	"edu_challenge_backend/internal/grading"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/internal/repository"
	"edu_challenge_backend/internal/testutil"
	"testing"

	"gorm.io/gorm"
)

type testServices struct {
	db         *gorm.DB
	scoring    *ScoringSettings
	challenges *ChallengeService
	admin      *ChallengeAdminService
	submit     *SubmissionService
	scores     *ScoreService
	settings   *SettingService
	lessons    *LessonScoreService
	storageDir string
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := testutil.DB(t)
	dir := t.TempDir()

	scoring := NewScoringSettings(config.ScoringConfig{
		DefaultLessonPoints: 10,
		LessonPoints:        map[string]float64{"video": 10, "reading": 5},
	})
	cache := NewCache(nil)

	challengeRepo := repository.NewChallengeRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	lessonRepo := repository.NewLessonScoreRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	storage := NewStorageService(&config.StorageConfig{Type: "local", LocalPath: dir})
	reader := NewChallengeService(challengeRepo, scoreRepo, scoring)
	settings := NewSettingService(settingRepo, cache, scoring)

	return &testServices{
		db:         db,
		scoring:    scoring,
		challenges: reader,
		admin:      NewChallengeAdminService(challengeRepo, reader, NewImageService(storage), scoring),
		submit:     NewSubmissionService(challengeRepo, scoreRepo, grading.NewGrader(), cache),
		scores:     NewScoreService(scoreRepo, lessonRepo, cache, scoring),
		settings:   settings,
		lessons:    NewLessonScoreService(lessonRepo, userRepo, settings, cache),
		storageDir: dir,
	}
}

func strPtr(s string) *string { return &s }

func quizQuestion(text string, answers ...string) model.ChallengeQuestion {
	q := model.ChallengeQuestion{Question: text}
	for i, a := range answers {
		q.Answers = append(q.Answers, model.ChallengeAnswer{Answer: a, IsCorrect: i == 0})
	}
	return q
}

// createPublishedQuiz 两道题，每题第一个选项正确
func createPublishedQuiz(t *testing.T, s *testServices, title string) *ChallengeDetail {
	t.Helper()
	detail, err := s.admin.Create(context.Background(), ChallengeInput{
		Title:  strPtr(title),
		Type:   model.ChallengeQuiz,
		Status: model.ChallengePublished,
		Questions: []model.ChallengeQuestion{
			quizQuestion("2 + 2 = ?", "4", "5"),
			quizQuestion("Capital of France?", "Paris", "Rome"),
		},
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return detail
}

func quizOf(t *testing.T, d *ChallengeDetail) *model.QuizPayload {
	t.Helper()
	quiz, ok := d.Data[model.ChallengeQuiz].(*model.QuizPayload)
	if !ok {
		t.Fatalf("detail data has no quiz payload: %#v", d.Data)
	}
	return quiz
}

func correctAnswerID(q model.ChallengeQuestion) string {
	for _, a := range q.Answers {
		if a.IsCorrect {
			return a.ID
		}
	}
	return ""
}

func wrongAnswerID(q model.ChallengeQuestion) string {
	for _, a := range q.Answers {
		if !a.IsCorrect {
			return a.ID
		}
	}
	return ""
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
