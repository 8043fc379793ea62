package grading

import (
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/internal/util"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrMissingSubmission = errors.New("submission for the challenge type is required")
	ErrVariantMismatch   = errors.New("submission type does not match challenge type")
	ErrMissingPayload    = errors.New("challenge has no answer key")
)

// Submission 提交体，四个字段中恰好一个与挑战类型一致
type Submission struct {
	Quiz      *QuizSubmission      `json:"quiz,omitempty"`
	Puzzle    *PuzzleSubmission    `json:"puzzle,omitempty"`
	Ordering  *OrderingSubmission  `json:"ordering,omitempty"`
	FillBlank *FillBlankSubmission `json:"fillBlank,omitempty"`
}

type QuizAnswer struct {
	QuestionID string `json:"questionId"`
	AnswerID   string `json:"answerId"`
}

type QuizSubmission struct {
	Answers []QuizAnswer `json:"answers"`
}

type PuzzleSubmission struct {
	Score *float64 `json:"score"`
}

type OrderingPosition struct {
	ItemID   string `json:"itemId"`
	Position int    `json:"position"`
}

type OrderingSubmission struct {
	Items []OrderingPosition `json:"items"`
}

type FillBlankAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type FillBlankSubmission struct {
	Answers []FillBlankAnswer `json:"answers"`
}

// Variants 返回提交中出现的类型
func (s *Submission) Variants() []model.ChallengeType {
	var out []model.ChallengeType
	if s.Quiz != nil {
		out = append(out, model.ChallengeQuiz)
	}
	if s.Puzzle != nil {
		out = append(out, model.ChallengePuzzle)
	}
	if s.Ordering != nil {
		out = append(out, model.ChallengeOrdering)
	}
	if s.FillBlank != nil {
		out = append(out, model.ChallengeFillBlank)
	}
	return out
}

// Result 评分结果，Details 的结构随挑战类型变化
type Result struct {
	Score          float64     `json:"score"`
	TotalQuestions int         `json:"totalQuestions"`
	CorrectAnswers int         `json:"correctAnswers"`
	Details        interface{} `json:"details"`
}

type QuizDetail struct {
	QuestionID       string `json:"questionId"`
	SelectedAnswerID string `json:"selectedAnswerId"`
	CorrectAnswerID  string `json:"correctAnswerId"`
	IsCorrect        bool   `json:"isCorrect"`
}

type OrderingDetail struct {
	ItemID          string `json:"itemId"`
	UserPosition    *int   `json:"userPosition"`
	CorrectPosition int    `json:"correctPosition"`
	IsCorrect       bool   `json:"isCorrect"`
}

type FillBlankDetail struct {
	QuestionID    string `json:"questionId"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

type PuzzleDetail struct {
	SubmittedScore float64 `json:"submittedScore"`
	Score          float64 `json:"score"`
}

// Strategy 对一种挑战类型评分
type Strategy interface {
	Grade(payload model.ChallengePayload, sub *Submission) (*Result, error)
}

// Grader 按挑战类型分派到对应的 Strategy
type Grader struct {
	strategies map[model.ChallengeType]Strategy
}

func NewGrader() *Grader {
	return &Grader{
		strategies: map[model.ChallengeType]Strategy{
			model.ChallengeQuiz:      quizStrategy{},
			model.ChallengePuzzle:    puzzleStrategy{},
			model.ChallengeOrdering:  orderingStrategy{},
			model.ChallengeFillBlank: fillBlankStrategy{},
		},
	}
}

// Grade 纯函数，不触碰存储。提交类型缺失或与挑战类型不符时返回校验错误
func (g *Grader) Grade(challengeType model.ChallengeType, payload model.ChallengePayload, sub *Submission) (*Result, error) {
	if sub == nil {
		return nil, util.WrapValidation(ErrMissingSubmission)
	}
	variants := sub.Variants()
	if len(variants) == 0 {
		return nil, util.WrapValidation(ErrMissingSubmission)
	}
	if len(variants) > 1 || variants[0] != challengeType {
		return nil, util.WrapValidation(fmt.Errorf("%w: expected %s", ErrVariantMismatch, challengeType))
	}
	s, ok := g.strategies[challengeType]
	if !ok {
		return nil, util.NewValidationError("unsupported challenge type %q", challengeType)
	}
	if payload == nil || payload.ChallengeType() != challengeType {
		return nil, util.WrapValidation(ErrMissingPayload)
	}
	return s.Grade(payload, sub)
}

func percent(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) * 100 / float64(total)
}

type quizStrategy struct{}

func (quizStrategy) Grade(payload model.ChallengePayload, sub *Submission) (*Result, error) {
	quiz := payload.(*model.QuizPayload)
	selected := make(map[string]string, len(sub.Quiz.Answers))
	for _, a := range sub.Quiz.Answers {
		selected[a.QuestionID] = a.AnswerID
	}

	details := make([]QuizDetail, 0, len(quiz.Questions))
	correct := 0
	for _, q := range quiz.Questions {
		d := QuizDetail{QuestionID: q.ID, SelectedAnswerID: selected[q.ID]}
		for _, a := range q.Answers {
			if a.IsCorrect {
				d.CorrectAnswerID = a.ID
				break
			}
		}
		d.IsCorrect = d.SelectedAnswerID != "" && d.SelectedAnswerID == d.CorrectAnswerID
		if d.IsCorrect {
			correct++
		}
		details = append(details, d)
	}
	return &Result{
		Score:          percent(correct, len(quiz.Questions)),
		TotalQuestions: len(quiz.Questions),
		CorrectAnswers: correct,
		Details:        details,
	}, nil
}

type puzzleStrategy struct{}

// 拼图没有可比对的答案，只能接受客户端上报的分数并截断到 [0, 100]
func (puzzleStrategy) Grade(_ model.ChallengePayload, sub *Submission) (*Result, error) {
	if sub.Puzzle.Score == nil {
		return nil, util.NewValidationError("puzzle score is required")
	}
	submitted := *sub.Puzzle.Score
	if math.IsNaN(submitted) {
		return nil, util.NewValidationError("puzzle score must be a number")
	}
	score := math.Max(0, math.Min(100, submitted))
	res := &Result{
		Score:          score,
		TotalQuestions: 1,
		Details:        PuzzleDetail{SubmittedScore: submitted, Score: score},
	}
	if score == 100 {
		res.CorrectAnswers = 1
	}
	return res, nil
}

type orderingStrategy struct{}

func (orderingStrategy) Grade(payload model.ChallengePayload, sub *Submission) (*Result, error) {
	ordering := payload.(*model.OrderingChallenge)
	positions := make(map[string]int, len(sub.Ordering.Items))
	for _, item := range sub.Ordering.Items {
		positions[item.ItemID] = item.Position
	}

	details := make([]OrderingDetail, 0, len(ordering.Items))
	correct := 0
	for _, item := range ordering.Items {
		d := OrderingDetail{ItemID: item.ID, CorrectPosition: item.CorrectOrder}
		if pos, ok := positions[item.ID]; ok {
			d.UserPosition = &pos
			d.IsCorrect = pos == item.CorrectOrder
		}
		if d.IsCorrect {
			correct++
		}
		details = append(details, d)
	}
	return &Result{
		Score:          percent(correct, len(ordering.Items)),
		TotalQuestions: len(ordering.Items),
		CorrectAnswers: correct,
		Details:        details,
	}, nil
}

type fillBlankStrategy struct{}

func (fillBlankStrategy) Grade(payload model.ChallengePayload, sub *Submission) (*Result, error) {
	fill := payload.(*model.FillBlankChallenge)
	answers := make(map[string]string, len(sub.FillBlank.Answers))
	for _, a := range sub.FillBlank.Answers {
		answers[a.QuestionID] = a.Answer
	}

	details := make([]FillBlankDetail, 0, len(fill.Questions))
	correct := 0
	for _, q := range fill.Questions {
		answer, ok := answers[q.ID]
		d := FillBlankDetail{QuestionID: q.ID, UserAnswer: answer, CorrectAnswer: q.CorrectWord}
		d.IsCorrect = ok && normalize(answer) == normalize(q.CorrectWord)
		if d.IsCorrect {
			correct++
		}
		details = append(details, d)
	}
	return &Result{
		Score:          percent(correct, len(fill.Questions)),
		TotalQuestions: len(fill.Questions),
		CorrectAnswers: correct,
		Details:        details,
	}, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
