package app

import (
	"bytes"
	"edu_challenge_backend/internal/config"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/internal/testutil"
	"edu_challenge_backend/internal/util"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const testSecret = "router-test-secret"

type testServer struct {
	app        *App
	storageDir string
	admin      string
	student    string
	studentID  uint
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	scoring := config.DefaultScoringConfig()
	scoring.LessonPoints = map[string]float64{"video": 10, "reading": 5}

	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: gin.TestMode},
		JWT:       config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour},
		Storage:   config.StorageConfig{Type: "local", LocalPath: dir},
		RateLimit: config.RateLimitConfig{MaxRequests: 10000, WindowMinutes: 1},
		Scoring:   scoring,
	}

	a := &App{Config: cfg, DB: testutil.DB(t)}
	a.build()

	student := testutil.SeedUser(t, a.DB, "student", "G5")
	return &testServer{
		app:        a,
		storageDir: dir,
		admin:      token(t, 9999, model.Admin),
		student:    token(t, student.ID, model.Student),
		studentID:  student.ID,
	}
}

func token(t *testing.T, userID uint, role model.UserRole) string {
	t.Helper()
	tok, err := util.GenerateJWT(userID, role, fmt.Sprintf("u%d@example.com", userID), testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate jwt: %v", err)
	}
	return tok
}

func (s *testServer) do(t *testing.T, method, path, tok string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return s.serve(t, req)
}

func (s *testServer) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, env
}

func decode(t *testing.T, raw json.RawMessage, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("decode data %s: %v", raw, err)
	}
}

type quizDetail struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
	Data   struct {
		Quiz struct {
			Questions []struct {
				ID      string `json:"id"`
				Answers []struct {
					ID        string `json:"id"`
					IsCorrect bool   `json:"is_correct"`
				} `json:"answers"`
			} `json:"questions"`
		} `json:"quiz"`
	} `json:"data"`
	MaxScore  float64 `json:"maxScore"`
	UserScore *struct {
		Score float64 `json:"score"`
	} `json:"userScore"`
}

func (s *testServer) createQuiz(t *testing.T, title string) quizDetail {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/admin/challenges", s.admin, gin.H{
		"title":  title,
		"type":   "quiz",
		"status": "published",
		"questions": []gin.H{
			{"question": "2 + 2 = ?", "answers": []gin.H{{"answer": "4", "is_correct": true}, {"answer": "5"}}},
			{"question": "Capital of France?", "answers": []gin.H{{"answer": "Paris", "is_correct": true}, {"answer": "Rome"}}},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create quiz status = %d, body %s", w.Code, w.Body.String())
	}
	var d quizDetail
	decode(t, env.Data, &d)
	return d
}

func TestRouterAuth(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"challenges need token", http.MethodGet, "/api/challenges", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/challenges", "not-a-jwt", http.StatusUnauthorized},
		{"student lists challenges", http.MethodGet, "/api/challenges", s.student, http.StatusOK},
		{"student blocked from admin", http.MethodGet, "/api/admin/challenges", s.student, http.StatusForbidden},
		{"admin lists challenges", http.MethodGet, "/api/admin/challenges", s.admin, http.StatusOK},
		{"leaderboard is public", http.MethodGet, "/api/scores/leaderboard", "", http.StatusOK},
		{"health is public", http.MethodGet, "/api/health", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := s.do(t, tt.method, tt.path, tt.token, nil)
			if w.Code != tt.want {
				t.Fatalf("%s %s = %d, want %d (body %s)", tt.method, tt.path, w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestSubmitFlow(t *testing.T) {
	s := newTestServer(t)
	quiz := s.createQuiz(t, "Warm up")

	if quiz.Slug != "warm-up" {
		t.Fatalf("slug = %q, want warm-up", quiz.Slug)
	}
	if len(quiz.Data.Quiz.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(quiz.Data.Quiz.Questions))
	}

	// 第一题答对，第二题答错
	var answers []gin.H
	for i, q := range quiz.Data.Quiz.Questions {
		for _, a := range q.Answers {
			if a.IsCorrect == (i == 0) {
				answers = append(answers, gin.H{"questionId": q.ID, "answerId": a.ID})
				break
			}
		}
	}

	w, env := s.do(t, http.MethodPost, "/api/challenges/"+quiz.ID+"/submit", s.student, gin.H{"quiz": gin.H{"answers": answers}})
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", w.Code, w.Body.String())
	}
	var result struct {
		ChallengeID    string  `json:"challengeId"`
		Score          float64 `json:"score"`
		TotalQuestions int     `json:"totalQuestions"`
		CorrectAnswers int     `json:"correctAnswers"`
	}
	decode(t, env.Data, &result)
	if result.ChallengeID != quiz.ID || result.Score != 50 || result.TotalQuestions != 2 || result.CorrectAnswers != 1 {
		t.Fatalf("unexpected result %+v", result)
	}

	w, env = s.do(t, http.MethodGet, "/api/challenges/"+quiz.ID, s.student, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var detail quizDetail
	decode(t, env.Data, &detail)
	if detail.UserScore == nil || detail.UserScore.Score != 50 {
		t.Fatalf("userScore = %+v, want 50", detail.UserScore)
	}
	if detail.MaxScore != 50 {
		t.Fatalf("maxScore = %v, want 50", detail.MaxScore)
	}

	w, env = s.do(t, http.MethodGet, "/api/scores/me", s.student, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}
	var me struct {
		TotalScore     float64 `json:"totalScore"`
		ChallengeScore struct {
			Total float64 `json:"total"`
			Quiz  float64 `json:"quiz"`
		} `json:"challengeScore"`
	}
	decode(t, env.Data, &me)
	if me.TotalScore != 50 || me.ChallengeScore.Quiz != 50 {
		t.Fatalf("me = %+v", me)
	}

	w, env = s.do(t, http.MethodGet, "/api/scores/leaderboard?limit=3", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard status = %d", w.Code)
	}
	var rows []struct {
		ID         uint    `json:"id"`
		TotalScore float64 `json:"totalScore"`
		Rank       int     `json:"rank"`
	}
	decode(t, env.Data, &rows)
	if len(rows) != 1 || rows[0].ID != s.studentID || rows[0].Rank != 1 || rows[0].TotalScore != 50 {
		t.Fatalf("leaderboard = %+v", rows)
	}
	// 公开排行榜不暴露邮箱
	var raw []map[string]interface{}
	decode(t, env.Data, &raw)
	if _, ok := raw[0]["email"]; ok {
		t.Fatalf("public leaderboard exposes email: %s", env.Data)
	}

	w, env = s.do(t, http.MethodGet, "/api/scores/me/rank", s.student, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("rank status = %d", w.Code)
	}
	var rank struct {
		Rank int `json:"rank"`
	}
	decode(t, env.Data, &rank)
	if rank.Rank != 1 {
		t.Fatalf("rank = %d, want 1", rank.Rank)
	}
}

func TestSubmitErrors(t *testing.T) {
	s := newTestServer(t)
	quiz := s.createQuiz(t, "Errors")

	tests := []struct {
		name string
		path string
		body interface{}
		want int
	}{
		{"unknown challenge", "/api/challenges/does-not-exist/submit", gin.H{"quiz": gin.H{"answers": []gin.H{}}}, http.StatusNotFound},
		{"empty submission", "/api/challenges/" + quiz.ID + "/submit", gin.H{}, http.StatusBadRequest},
		{"wrong variant", "/api/challenges/" + quiz.ID + "/submit", gin.H{"puzzle": gin.H{"score": 80}}, http.StatusBadRequest},
		{"two variants", "/api/challenges/" + quiz.ID + "/submit", gin.H{"quiz": gin.H{"answers": []gin.H{}}, "puzzle": gin.H{"score": 80}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := s.do(t, http.MethodPost, tt.path, s.student, tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}

	var count int64
	s.app.DB.Model(&model.ChallengeScore{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected submissions wrote %d score rows", count)
	}
}

func TestAdminChallengeLifecycle(t *testing.T) {
	s := newTestServer(t)
	quiz := s.createQuiz(t, "Lifecycle")

	w, _ := s.do(t, http.MethodPost, "/api/admin/challenges", s.admin, gin.H{
		"title": "Broken",
		"type":  "quiz",
		"questions": []gin.H{
			{"question": "No correct", "answers": []gin.H{{"answer": "a"}, {"answer": "b"}}},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid quiz status = %d, want 400", w.Code)
	}

	w, env := s.do(t, http.MethodPut, "/api/admin/challenges/"+quiz.ID, s.admin, gin.H{"status": "draft"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}
	var updated quizDetail
	decode(t, env.Data, &updated)
	if updated.Status != "draft" {
		t.Fatalf("status = %q, want draft", updated.Status)
	}

	// 草稿对学生不可见
	if w, _ := s.do(t, http.MethodGet, "/api/challenges/"+quiz.ID, s.student, nil); w.Code != http.StatusNotFound {
		t.Fatalf("draft visible to student: %d", w.Code)
	}
	if w, _ := s.do(t, http.MethodGet, "/api/admin/challenges/"+quiz.ID, s.admin, nil); w.Code != http.StatusOK {
		t.Fatalf("admin get draft = %d", w.Code)
	}

	w, env = s.do(t, http.MethodDelete, "/api/admin/challenges/"+quiz.ID, s.admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	var removed struct {
		Deleted  bool `json:"deleted"`
		Archived bool `json:"archived"`
	}
	decode(t, env.Data, &removed)
	if !removed.Deleted || removed.Archived {
		t.Fatalf("remove result = %+v, want hard delete", removed)
	}

	if w, _ := s.do(t, http.MethodDelete, "/api/admin/challenges/"+quiz.ID, s.admin, nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete = %d, want 404", w.Code)
	}
}

func TestUploadPuzzleImage(t *testing.T) {
	s := newTestServer(t)

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	tests := []struct {
		name     string
		filename string
		content  []byte
		want     int
	}{
		{"png", "board.png", png, http.StatusCreated},
		{"bad extension", "board.exe", png, http.StatusBadRequest},
		{"not an image", "board.png", []byte("plain text, not an image"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			mw := multipart.NewWriter(&buf)
			part, err := mw.CreateFormFile("file", tt.filename)
			if err != nil {
				t.Fatalf("create form file: %v", err)
			}
			part.Write(tt.content)
			mw.Close()

			req := httptest.NewRequest(http.MethodPost, "/api/admin/challenges/puzzle-image", &buf)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			req.Header.Set("Authorization", "Bearer "+s.admin)

			w, env := s.serve(t, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
			if tt.want != http.StatusCreated {
				return
			}

			var out struct {
				URL string `json:"url"`
			}
			decode(t, env.Data, &out)
			if !strings.HasPrefix(out.URL, "/uploads/puzzles/") {
				t.Fatalf("url = %q", out.URL)
			}
			local := filepath.Join(s.storageDir, strings.TrimPrefix(out.URL, "/uploads/"))
			if _, err := os.Stat(local); err != nil {
				t.Fatalf("uploaded file missing: %v", err)
			}
		})
	}
}

func TestLessonCompletionAndSettings(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodPut, "/api/admin/settings/points/video", s.admin, gin.H{"points": 25})
	if w.Code != http.StatusOK {
		t.Fatalf("set points = %d, body %s", w.Code, w.Body.String())
	}
	if w, _ := s.do(t, http.MethodPut, "/api/admin/settings/points/video", s.admin, gin.H{"points": -1}); w.Code != http.StatusBadRequest {
		t.Fatalf("negative points = %d, want 400", w.Code)
	}

	w, env := s.do(t, http.MethodGet, "/api/admin/settings/points", s.admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list points = %d", w.Code)
	}
	var points map[string]float64
	decode(t, env.Data, &points)
	if points["video"] != 25 || points["reading"] != 5 {
		t.Fatalf("points = %v", points)
	}

	for i, wantAwarded := range []bool{true, false} {
		w, env := s.do(t, http.MethodPost, "/api/lessons/lesson-1/complete", s.student, gin.H{"lessonType": "video"})
		if w.Code != http.StatusOK {
			t.Fatalf("complete #%d = %d, body %s", i+1, w.Code, w.Body.String())
		}
		var done struct {
			Points  float64 `json:"points"`
			Awarded bool    `json:"awarded"`
		}
		decode(t, env.Data, &done)
		if done.Points != 25 || done.Awarded != wantAwarded {
			t.Fatalf("complete #%d = %+v", i+1, done)
		}
	}

	if w, _ := s.do(t, http.MethodPost, "/api/lessons/lesson-2/complete", s.student, gin.H{}); w.Code != http.StatusBadRequest {
		t.Fatalf("missing lessonType = %d, want 400", w.Code)
	}

	w, env = s.do(t, http.MethodGet, "/api/admin/scores/users?page=1&limit=10", s.admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin users = %d", w.Code)
	}
	var page struct {
		Total int64 `json:"total"`
		List  []struct {
			ID          uint    `json:"id"`
			Email       string  `json:"email"`
			LessonScore float64 `json:"lessonScore"`
		} `json:"list"`
	}
	decode(t, env.Data, &page)
	if page.Total != 1 || page.List[0].LessonScore != 25 {
		t.Fatalf("admin users = %+v", page)
	}
	if !strings.HasPrefix(page.List[0].Email, "student-") {
		t.Fatalf("admin view email = %q", page.List[0].Email)
	}
}

func TestApplyConfigUpdatesScoring(t *testing.T) {
	s := newTestServer(t)

	next := *s.app.Config
	next.Scoring = config.DefaultScoringConfig()
	next.Scoring.DefaultLessonPoints = 42
	s.app.ApplyConfig(&next)

	if got := s.app.services.scoring.Get().DefaultLessonPoints; got != 42 {
		t.Fatalf("default lesson points = %v, want 42", got)
	}

	w, env := s.do(t, http.MethodPost, "/api/lessons/lesson-x/complete", s.student, gin.H{"lessonType": "quiz-review"})
	if w.Code != http.StatusOK {
		t.Fatalf("complete = %d", w.Code)
	}
	var done struct {
		Points float64 `json:"points"`
	}
	decode(t, env.Data, &done)
	if done.Points != 42 {
		t.Fatalf("points = %v, want 42", done.Points)
	}
}

func TestSwaggerDocCoversRoutes(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("doc.json status = %d", w.Code)
	}
	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode doc.json: %v", err)
	}
	if doc.BasePath != "/" {
		t.Fatalf("basePath = %q, want /", doc.BasePath)
	}

	for _, r := range s.app.Router.Routes() {
		if !strings.HasPrefix(r.Path, "/api/") {
			continue
		}
		parts := strings.Split(r.Path, "/")
		for i, p := range parts {
			if strings.HasPrefix(p, ":") {
				parts[i] = "{" + p[1:] + "}"
			}
		}
		path := strings.Join(parts, "/")
		if _, ok := doc.Paths[path][strings.ToLower(r.Method)]; !ok {
			t.Errorf("%s %s missing from swagger doc", r.Method, path)
		}
	}
}
