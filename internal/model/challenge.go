package model

type ChallengeType string

const (
	ChallengeQuiz      ChallengeType = "quiz"
	ChallengePuzzle    ChallengeType = "puzzle"
	ChallengeOrdering  ChallengeType = "ordering"
	ChallengeFillBlank ChallengeType = "fillBlank"
)

// ChallengeTypes 按固定顺序列出全部挑战类型
var ChallengeTypes = []ChallengeType{ChallengeQuiz, ChallengePuzzle, ChallengeOrdering, ChallengeFillBlank}

func (t ChallengeType) Valid() bool {
	for _, v := range ChallengeTypes {
		if t == v {
			return true
		}
	}
	return false
}

type ChallengeStatus string

const (
	ChallengeDraft     ChallengeStatus = "draft"
	ChallengePublished ChallengeStatus = "published"
	ChallengeArchived  ChallengeStatus = "archived"
)

func (s ChallengeStatus) Valid() bool {
	switch s {
	case ChallengeDraft, ChallengePublished, ChallengeArchived:
		return true
	}
	return false
}

// CanTransitionTo 归档是终态；草稿与发布之间可以互相切换
func (s ChallengeStatus) CanTransitionTo(next ChallengeStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == ChallengeArchived {
		return next == ChallengeArchived
	}
	return true
}

// Challenge 挑战主体，具体题目数据按 Type 存放在对应的子表中
// swagger:model Challenge
type Challenge struct {
	UUIDBase
	Title       string          `gorm:"size:255;not null" json:"title"`
	Slug        string          `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	Type        ChallengeType   `gorm:"size:20;not null;index" json:"type"`
	Status      ChallengeStatus `gorm:"size:20;not null;default:'draft';index" json:"status"`
	Order       int             `gorm:"column:order;default:0" json:"order"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// ChallengeQuestion 选择题题目，直接挂在挑战下
type ChallengeQuestion struct {
	UUIDBase
	ChallengeID string            `gorm:"type:varchar(36);not null;index" json:"challengeId"`
	Question    string            `gorm:"type:text;not null" json:"question"`
	Explanation string            `gorm:"type:text" json:"explanation,omitempty"`
	Order       int               `gorm:"column:order;default:0" json:"order"`
	Answers     []ChallengeAnswer `gorm:"foreignKey:ChallengeQuestionID" json:"answers"`
}

func (ChallengeQuestion) TableName() string {
	return "challenge_questions"
}

type ChallengeAnswer struct {
	UUIDBase
	ChallengeQuestionID string `gorm:"type:varchar(36);not null;index" json:"challengeQuestionId"`
	Answer              string `gorm:"type:text;not null" json:"answer"`
	IsCorrect           bool   `gorm:"default:false" json:"is_correct"`
	Order               int    `gorm:"column:order;default:0" json:"order"`
}

func (ChallengeAnswer) TableName() string {
	return "challenge_answers"
}

// PuzzleChallenge 拼图挑战，只有说明和图片，得分由客户端上报
type PuzzleChallenge struct {
	UUIDBase
	ChallengeID string `gorm:"type:varchar(36);not null;uniqueIndex" json:"challengeId"`
	Instruction string `gorm:"type:text" json:"instruction"`
	Image       string `gorm:"size:1024" json:"image"`
}

func (PuzzleChallenge) TableName() string {
	return "puzzle_challenges"
}

type OrderingChallenge struct {
	UUIDBase
	ChallengeID string         `gorm:"type:varchar(36);not null;uniqueIndex" json:"challengeId"`
	Instruction string         `gorm:"type:text" json:"instruction"`
	Items       []OrderingItem `gorm:"foreignKey:OrderingChallengeID" json:"items"`
}

func (OrderingChallenge) TableName() string {
	return "ordering_challenges"
}

type OrderingItem struct {
	UUIDBase
	OrderingChallengeID string `gorm:"type:varchar(36);not null;index" json:"orderingChallengeId"`
	Content             string `gorm:"type:text;not null" json:"content"`
	CorrectOrder        int    `gorm:"not null" json:"correct_order"`
	Order               int    `gorm:"column:order;default:0" json:"order"`
}

func (OrderingItem) TableName() string {
	return "ordering_items"
}

type FillBlankChallenge struct {
	UUIDBase
	ChallengeID string              `gorm:"type:varchar(36);not null;uniqueIndex" json:"challengeId"`
	Questions   []FillBlankQuestion `gorm:"foreignKey:FillBlankChallengeID" json:"questions"`
}

func (FillBlankChallenge) TableName() string {
	return "fill_blank_challenges"
}

type FillBlankQuestion struct {
	UUIDBase
	FillBlankChallengeID string `gorm:"type:varchar(36);not null;index" json:"fillBlankChallengeId"`
	Sentence             string `gorm:"type:text;not null" json:"sentence"`
	CorrectWord          string `gorm:"size:255;not null" json:"correct_word"`
	Order                int    `gorm:"column:order;default:0" json:"order"`
}

func (FillBlankQuestion) TableName() string {
	return "fill_blank_questions"
}
