// 从 YAML 文件批量导入挑战
//
// 每条挑战都走与管理端接口相同的校验和 slug 去重，单条失败不影响其余条目。
// 文件格式见 configs/challenges.example.yaml。
//
// 用法: go run scripts/import_challenges.go -file configs/challenges.example.yaml

package main

import (
	"context"
	"edu_challenge_backend/internal/config"
	"edu_challenge_backend/internal/model"
	"edu_challenge_backend/internal/repository"
	"edu_challenge_backend/internal/service"
	"edu_challenge_backend/pkg/database"
	"edu_challenge_backend/pkg/logger"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type challengeFile struct {
	Challenges []challengeDoc `yaml:"challenges"`
}

type challengeDoc struct {
	Title       string         `yaml:"title"`
	Slug        string         `yaml:"slug"`
	Description string         `yaml:"description"`
	Type        string         `yaml:"type"`
	Status      string         `yaml:"status"`
	Order       int            `yaml:"order"`
	Questions   []questionDoc  `yaml:"questions"`
	Puzzle      *puzzleDoc     `yaml:"puzzle"`
	Ordering    *orderingDoc   `yaml:"ordering"`
	FillBlank   []fillBlankDoc `yaml:"fill_blank"`
}

type puzzleDoc struct {
	Instruction string `yaml:"instruction"`
	Image       string `yaml:"image"`
}

type orderingDoc struct {
	Instruction string `yaml:"instruction"`
	// 按正确顺序书写，导入时依次编号
	Items []string `yaml:"items"`
}

type fillBlankDoc struct {
	Sentence string `yaml:"sentence"`
	Answer   string `yaml:"answer"`
}

type questionDoc struct {
	Question    string   `yaml:"question"`
	Explanation string   `yaml:"explanation"`
	Correct     string   `yaml:"correct"`
	Wrong       []string `yaml:"wrong"`
}

func parseChallenges(data []byte) ([]challengeDoc, error) {
	var f challengeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Challenges, nil
}

// toInput 转换为管理端的创建请求，正确选项放在第一位
func toInput(doc challengeDoc) service.ChallengeInput {
	in := service.ChallengeInput{
		Type:   model.ChallengeType(doc.Type),
		Status: model.ChallengeStatus(doc.Status),
		Order:  &doc.Order,
	}
	in.Title = &doc.Title
	if doc.Slug != "" {
		in.Slug = &doc.Slug
	}
	if doc.Description != "" {
		in.Description = &doc.Description
	}

	if len(doc.Questions) > 0 {
		in.Questions = make([]model.ChallengeQuestion, 0, len(doc.Questions))
		for _, q := range doc.Questions {
			question := model.ChallengeQuestion{Question: q.Question, Explanation: q.Explanation}
			question.Answers = append(question.Answers, model.ChallengeAnswer{Answer: q.Correct, IsCorrect: true})
			for _, w := range q.Wrong {
				question.Answers = append(question.Answers, model.ChallengeAnswer{Answer: w})
			}
			in.Questions = append(in.Questions, question)
		}
	}
	if doc.Puzzle != nil {
		in.Puzzle = &model.PuzzleChallenge{Instruction: doc.Puzzle.Instruction, Image: doc.Puzzle.Image}
	}
	if doc.Ordering != nil {
		ordering := &model.OrderingChallenge{Instruction: doc.Ordering.Instruction}
		for i, item := range doc.Ordering.Items {
			ordering.Items = append(ordering.Items, model.OrderingItem{Content: item, CorrectOrder: i + 1})
		}
		in.Ordering = ordering
	}
	if len(doc.FillBlank) > 0 {
		fill := &model.FillBlankChallenge{}
		for _, q := range doc.FillBlank {
			fill.Questions = append(fill.Questions, model.FillBlankQuestion{Sentence: q.Sentence, CorrectWord: q.Answer})
		}
		in.FillBlank = fill
	}
	return in
}

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	file := flag.String("file", "", "挑战定义 YAML 文件")
	flag.Parse()

	if *file == "" {
		log.Fatal("缺少 -file 参数")
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取挑战文件: %v", err)
	}
	docs, err := parseChallenges(data)
	if err != nil {
		log.Fatalf("解析挑战文件失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, cfg.Scoring, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	scoring := service.NewScoringSettings(cfg.Scoring)
	challengeRepo := repository.NewChallengeRepository(db)
	reader := service.NewChallengeService(challengeRepo, repository.NewScoreRepository(db), scoring)
	images := service.NewImageService(service.NewStorageService(&cfg.Storage))
	admin := service.NewChallengeAdminService(challengeRepo, reader, images, scoring)

	ctx := context.Background()
	failed := 0
	for i, doc := range docs {
		detail, err := admin.Create(ctx, toInput(doc))
		if err != nil {
			failed++
			logger.Log.Error("导入挑战失败", zap.Int("index", i), zap.String("title", doc.Title), zap.Error(err))
			continue
		}
		logger.Log.Info("导入挑战", zap.String("id", detail.ID), zap.String("slug", detail.Slug))
	}

	fmt.Printf("完成：成功 %d 条，失败 %d 条\n", len(docs)-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
