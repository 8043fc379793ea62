package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPayload = errors.New("invalid challenge payload")

// ChallengePayload 挑战的变体数据。接口带有未导出方法，只有本包中的四种类型可以实现，
// 保证一个挑战恰好对应一种与 Type 一致的变体数据。
type ChallengePayload interface {
	ChallengeType() ChallengeType
	Validate() error
	isChallengePayload()
}

// QuizPayload 选择题没有独立的父表，题目直接挂在挑战下
type QuizPayload struct {
	Questions []ChallengeQuestion `json:"questions"`
}

func (*QuizPayload) ChallengeType() ChallengeType       { return ChallengeQuiz }
func (*PuzzleChallenge) ChallengeType() ChallengeType   { return ChallengePuzzle }
func (*OrderingChallenge) ChallengeType() ChallengeType { return ChallengeOrdering }
func (*FillBlankChallenge) ChallengeType() ChallengeType {
	return ChallengeFillBlank
}

func (*QuizPayload) isChallengePayload()        {}
func (*PuzzleChallenge) isChallengePayload()    {}
func (*OrderingChallenge) isChallengePayload()  {}
func (*FillBlankChallenge) isChallengePayload() {}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, fmt.Sprintf(format, args...))
}

// Validate 每道题至少一个选项，且恰好一个正确选项
func (p *QuizPayload) Validate() error {
	if len(p.Questions) == 0 {
		return invalid("quiz requires at least one question")
	}
	for i, q := range p.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return invalid("question %d: text is required", i+1)
		}
		if len(q.Answers) == 0 {
			return invalid("question %d: at least one answer is required", i+1)
		}
		correct := 0
		for j, a := range q.Answers {
			if strings.TrimSpace(a.Answer) == "" {
				return invalid("question %d answer %d: text is required", i+1, j+1)
			}
			if a.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return invalid("question %d: exactly one correct answer is required, got %d", i+1, correct)
		}
	}
	return nil
}

func (p *PuzzleChallenge) Validate() error {
	if strings.TrimSpace(p.Instruction) == "" {
		return invalid("puzzle instruction is required")
	}
	if strings.TrimSpace(p.Image) == "" {
		return invalid("puzzle image is required")
	}
	return nil
}

func (p *OrderingChallenge) Validate() error {
	if len(p.Items) == 0 {
		return invalid("ordering requires at least one item")
	}
	seen := make(map[int]int, len(p.Items))
	for i, item := range p.Items {
		if strings.TrimSpace(item.Content) == "" {
			return invalid("item %d: content is required", i+1)
		}
		if prev, ok := seen[item.CorrectOrder]; ok {
			return invalid("items %d and %d share correct_order %d", prev+1, i+1, item.CorrectOrder)
		}
		seen[item.CorrectOrder] = i
	}
	return nil
}

func (p *FillBlankChallenge) Validate() error {
	if len(p.Questions) == 0 {
		return invalid("fill blank requires at least one question")
	}
	for i, q := range p.Questions {
		if strings.TrimSpace(q.Sentence) == "" {
			return invalid("question %d: sentence is required", i+1)
		}
		if strings.TrimSpace(q.CorrectWord) == "" {
			return invalid("question %d: correct_word is required", i+1)
		}
	}
	return nil
}

// AttachPayload 将变体数据的外键指向挑战，并按当前顺序写入 Order。
// 替换时一律生成新行，因此清空传入的主键
func AttachPayload(p ChallengePayload, challengeID string) {
	switch v := p.(type) {
	case *QuizPayload:
		for i := range v.Questions {
			q := &v.Questions[i]
			q.ID = ""
			q.ChallengeID = challengeID
			q.Order = i
			for j := range q.Answers {
				q.Answers[j].ID = ""
				q.Answers[j].ChallengeQuestionID = ""
				q.Answers[j].Order = j
			}
		}
	case *PuzzleChallenge:
		v.ID = ""
		v.ChallengeID = challengeID
	case *OrderingChallenge:
		v.ID = ""
		v.ChallengeID = challengeID
		for i := range v.Items {
			v.Items[i].ID = ""
			v.Items[i].OrderingChallengeID = ""
			v.Items[i].Order = i
		}
	case *FillBlankChallenge:
		v.ID = ""
		v.ChallengeID = challengeID
		for i := range v.Questions {
			v.Questions[i].ID = ""
			v.Questions[i].FillBlankChallengeID = ""
			v.Questions[i].Order = i
		}
	}
}
