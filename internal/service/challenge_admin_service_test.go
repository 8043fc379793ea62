package service

import (
	"context"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/internal/testutil"
	"edu_challenge_backend/internal/util"
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"
)

func TestCreateChallenge(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	detail := createPublishedQuiz(t, s, "Warm Up")
	if detail.Slug != "warm-up" {
		t.Errorf("slug = %q, want warm-up", detail.Slug)
	}
	quiz := quizOf(t, detail)
	if len(quiz.Questions) != 2 || len(quiz.Questions[0].Answers) != 2 {
		t.Fatalf("unexpected quiz shape: %+v", quiz)
	}
	if quiz.Questions[0].Question != "2 + 2 = ?" || quiz.Questions[1].Question != "Capital of France?" {
		t.Errorf("questions out of order: %q, %q", quiz.Questions[0].Question, quiz.Questions[1].Question)
	}

	second := createPublishedQuiz(t, s, "Warm Up")
	if second.Slug != "warm-up-1" {
		t.Errorf("duplicate slug = %q, want warm-up-1", second.Slug)
	}

	explicit, err := s.admin.Create(ctx, ChallengeInput{
		Title: strPtr("Anything"),
		Slug:  strPtr("My Custom Slug"),
		Type:  model.ChallengeFillBlank,
		FillBlank: &model.FillBlankChallenge{Questions: []model.FillBlankQuestion{
			{Sentence: "The sky is ___", CorrectWord: "blue"},
		}},
	})
	if err != nil {
		t.Fatalf("create fill blank: %v", err)
	}
	if explicit.Slug != "my-custom-slug" || explicit.Status != model.ChallengeDraft {
		t.Errorf("got slug %q status %q", explicit.Slug, explicit.Status)
	}
}

func TestCreateChallengeValidation(t *testing.T) {
	s := newTestServices(t)

	tests := []struct {
		name string
		in   ChallengeInput
	}{
		{"missing title", ChallengeInput{Type: model.ChallengeQuiz, Questions: []model.ChallengeQuestion{quizQuestion("q", "a")}}},
		{"unknown type", ChallengeInput{Title: strPtr("t"), Type: "essay"}},
		{"missing payload", ChallengeInput{Title: strPtr("t"), Type: model.ChallengeOrdering}},
		{"payload for other type", ChallengeInput{Title: strPtr("t"), Type: model.ChallengeQuiz, Puzzle: &model.PuzzleChallenge{Instruction: "i", Image: "/x.png"}}},
		{"two payloads", ChallengeInput{
			Title:     strPtr("t"),
			Type:      model.ChallengeQuiz,
			Questions: []model.ChallengeQuestion{quizQuestion("q", "a")},
			Puzzle:    &model.PuzzleChallenge{Instruction: "i", Image: "/x.png"},
		}},
		{"empty quiz", ChallengeInput{Title: strPtr("t"), Type: model.ChallengeQuiz, Questions: []model.ChallengeQuestion{}}},
		{"question without answers", ChallengeInput{Title: strPtr("t"), Type: model.ChallengeQuiz, Questions: []model.ChallengeQuestion{{Question: "q"}}}},
		{"two correct answers", ChallengeInput{Title: strPtr("t"), Type: model.ChallengeQuiz, Questions: []model.ChallengeQuestion{{
			Question: "q",
			Answers:  []model.ChallengeAnswer{{Answer: "a", IsCorrect: true}, {Answer: "b", IsCorrect: true}},
		}}}},
		{"duplicate correct_order", ChallengeInput{Title: strPtr("t"), Type: model.ChallengeOrdering, Ordering: &model.OrderingChallenge{
			Instruction: "sort",
			Items:       []model.OrderingItem{{Content: "a", CorrectOrder: 1}, {Content: "b", CorrectOrder: 1}},
		}}},
		{"puzzle without image", ChallengeInput{Title: strPtr("t"), Type: model.ChallengePuzzle, Puzzle: &model.PuzzleChallenge{Instruction: "i"}}},
		{"fill blank without word", ChallengeInput{Title: strPtr("t"), Type: model.ChallengeFillBlank, FillBlank: &model.FillBlankChallenge{
			Questions: []model.FillBlankQuestion{{Sentence: "s"}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.admin.Create(context.Background(), tt.in)
			if !errors.Is(err, util.ErrValidation) {
				t.Fatalf("Create() error = %v, want validation error", err)
			}
		})
	}

	if n := countRows(t, s.db, &model.Challenge{}); n != 0 {
		t.Errorf("challenges persisted after failed creates: %d", n)
	}
}

func TestUpdateReplacesPayload(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	created := createPublishedQuiz(t, s, "Replace Me")

	updated, err := s.admin.Update(ctx, created.ID, ChallengeInput{
		Type: model.ChallengeOrdering,
		Ordering: &model.OrderingChallenge{
			Instruction: "Sort ascending",
			Items: []model.OrderingItem{
				{Content: "three", CorrectOrder: 3},
				{Content: "one", CorrectOrder: 1},
				{Content: "two", CorrectOrder: 2},
			},
		},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Type != model.ChallengeOrdering {
		t.Errorf("type = %q, want ordering", updated.Type)
	}
	ordering, ok := updated.Data[model.ChallengeOrdering].(*model.OrderingChallenge)
	if !ok || len(ordering.Items) != 3 || ordering.Items[0].Content != "three" {
		t.Fatalf("unexpected ordering payload: %#v", updated.Data)
	}
	if _, ok := updated.Data[model.ChallengeQuiz]; ok {
		t.Error("old quiz payload still present")
	}
	if n := countRows(t, s.db, &model.ChallengeQuestion{}); n != 0 {
		t.Errorf("challenge_questions rows = %d, want 0", n)
	}
	if n := countRows(t, s.db, &model.ChallengeAnswer{}); n != 0 {
		t.Errorf("challenge_answers rows = %d, want 0", n)
	}
	if updated.Title != "Replace Me" || updated.Slug != created.Slug {
		t.Errorf("scalar fields changed unexpectedly: %q %q", updated.Title, updated.Slug)
	}

	again, err := s.admin.Update(ctx, created.ID, ChallengeInput{
		Ordering: &model.OrderingChallenge{
			Instruction: "Shorter",
			Items:       []model.OrderingItem{{Content: "only", CorrectOrder: 1}},
		},
	})
	if err != nil {
		t.Fatalf("second Update() error = %v", err)
	}
	if n := countRows(t, s.db, &model.OrderingItem{}); n != 1 {
		t.Errorf("ordering_items rows = %d, want 1", n)
	}
	if n := countRows(t, s.db, &model.OrderingChallenge{}); n != 1 {
		t.Errorf("ordering_challenges rows = %d, want 1", n)
	}
	if got := again.Data[model.ChallengeOrdering].(*model.OrderingChallenge).Instruction; got != "Shorter" {
		t.Errorf("instruction = %q", got)
	}
}

func TestUpdateIsAtomic(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	created := createPublishedQuiz(t, s, "Atomic")

	tests := []struct {
		name string
		in   ChallengeInput
	}{
		{"type change without payload", ChallengeInput{Title: strPtr("Changed"), Type: model.ChallengePuzzle}},
		{"invalid replacement", ChallengeInput{Title: strPtr("Changed"), Questions: []model.ChallengeQuestion{{Question: "no answers"}}}},
		{"mismatched payload", ChallengeInput{Title: strPtr("Changed"), FillBlank: &model.FillBlankChallenge{
			Questions: []model.FillBlankQuestion{{Sentence: "s", CorrectWord: "w"}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.admin.Update(ctx, created.ID, tt.in); !errors.Is(err, util.ErrValidation) {
				t.Fatalf("Update() error = %v, want validation error", err)
			}
			got, err := s.admin.Get(ctx, created.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Title != "Atomic" || got.Type != model.ChallengeQuiz {
				t.Errorf("challenge changed: %q %q", got.Title, got.Type)
			}
			if len(quizOf(t, got).Questions) != 2 {
				t.Errorf("quiz payload lost")
			}
		})
	}

	if _, err := s.admin.Update(ctx, "missing", ChallengeInput{Title: strPtr("x")}); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want not found", err)
	}
}

func TestUpdateRollsBackFailedReplacement(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	created := createPublishedQuiz(t, s, "Rollback")

	// 旧题目已被删除后，写入新子表时失败
	failure := errors.New("ordering_items insert failed")
	err := s.db.Callback().Create().Before("gorm:create").Register("test:fail_ordering_items", func(tx *gorm.DB) {
		if tx.Statement.Table == "ordering_items" {
			tx.AddError(failure)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = s.admin.Update(ctx, created.ID, ChallengeInput{
		Title: strPtr("Changed"),
		Type:  model.ChallengeOrdering,
		Ordering: &model.OrderingChallenge{
			Instruction: "Sort",
			Items:       []model.OrderingItem{{Content: "a", CorrectOrder: 1}, {Content: "b", CorrectOrder: 2}},
		},
	})
	if err == nil || !strings.Contains(err.Error(), failure.Error()) {
		t.Fatalf("Update() error = %v, want %v", err, failure)
	}

	got, err := s.admin.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Rollback" || got.Type != model.ChallengeQuiz {
		t.Errorf("challenge changed: %q %q", got.Title, got.Type)
	}
	if len(quizOf(t, got).Questions) != 2 {
		t.Errorf("quiz payload lost")
	}
	if n := countRows(t, s.db, &model.ChallengeAnswer{}); n != 4 {
		t.Errorf("challenge_answers rows = %d, want 4", n)
	}
	if n := countRows(t, s.db, &model.OrderingChallenge{}); n != 0 {
		t.Errorf("ordering_challenges rows = %d, want 0", n)
	}
	if n := countRows(t, s.db, &model.OrderingItem{}); n != 0 {
		t.Errorf("ordering_items rows = %d, want 0", n)
	}
}

func TestUpdateStatusAndSlug(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	first := createPublishedQuiz(t, s, "First")
	second := createPublishedQuiz(t, s, "Second")

	got, err := s.admin.Update(ctx, second.ID, ChallengeInput{Slug: strPtr("first"), Status: model.ChallengeDraft})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Slug != "first-1" {
		t.Errorf("slug = %q, want first-1", got.Slug)
	}
	if got.Status != model.ChallengeDraft {
		t.Errorf("status = %q, want draft", got.Status)
	}

	same, err := s.admin.Update(ctx, first.ID, ChallengeInput{Slug: strPtr("First")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if same.Slug != "first" {
		t.Errorf("own slug should be kept, got %q", same.Slug)
	}

	if _, err := s.admin.Update(ctx, first.ID, ChallengeInput{Status: model.ChallengeArchived}); err != nil {
		t.Fatalf("archive: %v", err)
	}
	for _, next := range []model.ChallengeStatus{model.ChallengeDraft, model.ChallengePublished} {
		if _, err := s.admin.Update(ctx, first.ID, ChallengeInput{Status: next}); !errors.Is(err, util.ErrValidation) {
			t.Errorf("archived -> %s error = %v, want validation error", next, err)
		}
	}
}

func TestRemoveChallenge(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	t.Run("hard delete without scores", func(t *testing.T) {
		c := createPublishedQuiz(t, s, "Disposable")
		res, err := s.admin.Remove(ctx, c.ID)
		if err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if !res.Deleted || res.Archived {
			t.Errorf("Remove() = %+v, want deleted", res)
		}
		if _, err := s.admin.Get(ctx, c.ID); !errors.Is(err, util.ErrNotFound) {
			t.Errorf("Get() after delete error = %v, want not found", err)
		}
		if n := countRows(t, s.db, &model.ChallengeQuestion{}); n != 0 {
			t.Errorf("questions left behind: %d", n)
		}
	})

	t.Run("archive with scores", func(t *testing.T) {
		c := createPublishedQuiz(t, s, "Has History")
		user := testutil.SeedUser(t, s.db, "alice", "G5")
		testutil.SeedChallengeScore(t, s.db, user.ID, c.ID, 50)

		res, err := s.admin.Remove(ctx, c.ID)
		if err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if !res.Archived || res.Deleted || res.Message == "" {
			t.Errorf("Remove() = %+v, want archived", res)
		}
		got, err := s.admin.Get(ctx, c.ID)
		if err != nil {
			t.Fatalf("Get() after archive error = %v", err)
		}
		if got.Status != model.ChallengeArchived {
			t.Errorf("status = %q, want archived", got.Status)
		}
		if got.CompletionCount == nil || *got.CompletionCount != 1 {
			t.Errorf("completion count = %v, want 1", got.CompletionCount)
		}
		if _, err := s.challenges.Get(ctx, c.ID, user.ID); !errors.Is(err, util.ErrNotFound) {
			t.Errorf("user Get() of archived challenge error = %v, want not found", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := s.admin.Remove(ctx, "nope"); !errors.Is(err, util.ErrNotFound) {
			t.Errorf("Remove(missing) error = %v, want not found", err)
		}
	})
}

func TestPuzzleImageDataURI(t *testing.T) {
	s := newTestServices(t)
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	detail, err := s.admin.Create(context.Background(), ChallengeInput{
		Title:  strPtr("Jigsaw"),
		Type:   model.ChallengePuzzle,
		Puzzle: &model.PuzzleChallenge{Instruction: "Put it together", Image: uri},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	puzzle := detail.Data[model.ChallengePuzzle].(*model.PuzzleChallenge)
	if !strings.HasPrefix(puzzle.Image, "/uploads/puzzles/") || !strings.HasSuffix(puzzle.Image, ".png") {
		t.Fatalf("image = %q, want uploaded url", puzzle.Image)
	}
	stored := filepath.Join(s.storageDir, strings.TrimPrefix(puzzle.Image, "/uploads/"))
	if _, err := os.Stat(stored); err != nil {
		t.Errorf("uploaded file missing: %v", err)
	}

	_, err = s.admin.Create(context.Background(), ChallengeInput{
		Title:  strPtr("Bad"),
		Type:   model.ChallengePuzzle,
		Puzzle: &model.PuzzleChallenge{Instruction: "x", Image: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("plain text"))},
	})
	if !errors.Is(err, util.ErrValidation) {
		t.Errorf("non-image data uri error = %v, want validation error", err)
	}
}

func TestInvalidPuzzleLeavesNoUpload(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	_, err := s.admin.Create(ctx, ChallengeInput{
		Title:  strPtr("Blank"),
		Type:   model.ChallengePuzzle,
		Puzzle: &model.PuzzleChallenge{Instruction: "  ", Image: uri},
	})
	if !errors.Is(err, util.ErrValidation) {
		t.Fatalf("Create() error = %v, want validation error", err)
	}

	existing := createPublishedQuiz(t, s, "Existing")
	_, err = s.admin.Update(ctx, existing.ID, ChallengeInput{
		Type:   model.ChallengePuzzle,
		Puzzle: &model.PuzzleChallenge{Image: uri},
	})
	if !errors.Is(err, util.ErrValidation) {
		t.Fatalf("Update() error = %v, want validation error", err)
	}

	var files []string
	err = filepath.WalkDir(s.storageDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk storage: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files uploaded for rejected puzzles: %v", files)
	}
}

func TestListChallenges(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	quiz := createPublishedQuiz(t, s, "Algebra Basics")
	if _, err := s.admin.Create(ctx, ChallengeInput{
		Title: strPtr("Draft Ordering"),
		Type:  model.ChallengeOrdering,
		Ordering: &model.OrderingChallenge{
			Instruction: "Order the planets",
			Items:       []model.OrderingItem{{Content: "Mercury", CorrectOrder: 1}, {Content: "Venus", CorrectOrder: 2}},
		},
	}); err != nil {
		t.Fatalf("create ordering: %v", err)
	}
	user := testutil.SeedUser(t, s.db, "bob", "G6")
	testutil.SeedChallengeScore(t, s.db, user.ID, quiz.ID, 100)

	page, err := s.challenges.List(ctx, ChallengeQuery{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	items := page.List.([]ChallengeListItem)
	if page.Total != 1 || len(items) != 1 {
		t.Fatalf("user list total = %d, want only the published challenge", page.Total)
	}
	if items[0].CompletionCount != 1 {
		t.Errorf("completion count = %d, want 1", items[0].CompletionCount)
	}
	if items[0].Summary == nil || *items[0].Summary.QuestionCount != 2 || items[0].Summary.FirstQuestion != "2 + 2 = ?" {
		t.Errorf("quiz summary = %+v", items[0].Summary)
	}

	all, err := s.admin.List(ctx, ChallengeQuery{Search: "ORDER"})
	if err != nil {
		t.Fatalf("admin List() error = %v", err)
	}
	adminItems := all.List.([]ChallengeListItem)
	if all.Total != 1 || adminItems[0].Type != model.ChallengeOrdering {
		t.Fatalf("admin search result = %+v", adminItems)
	}
	if adminItems[0].Summary == nil || *adminItems[0].Summary.ItemCount != 2 || adminItems[0].Summary.Instruction != "Order the planets" {
		t.Errorf("ordering summary = %+v", adminItems[0].Summary)
	}

	if _, err := s.admin.List(ctx, ChallengeQuery{Type: "essay"}); !errors.Is(err, util.ErrValidation) {
		t.Errorf("unknown type filter error = %v", err)
	}
}
