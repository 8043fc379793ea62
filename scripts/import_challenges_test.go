package main

import (
	"edu_challenge_backend/internal/model"
	"os"
	"testing"
)

func TestExampleFileConverts(t *testing.T) {
	data, err := os.ReadFile("../configs/challenges.example.yaml")
	if err != nil {
		t.Fatalf("read example: %v", err)
	}
	docs, err := parseChallenges(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(docs) != 4 {
		t.Fatalf("challenges = %d, want 4", len(docs))
	}

	for _, doc := range docs {
		in := toInput(doc)
		var p model.ChallengePayload
		switch in.Type {
		case model.ChallengeQuiz:
			p = &model.QuizPayload{Questions: in.Questions}
		case model.ChallengePuzzle:
			p = in.Puzzle
		case model.ChallengeOrdering:
			p = in.Ordering
		case model.ChallengeFillBlank:
			p = in.FillBlank
		default:
			t.Fatalf("%s: unknown type %q", doc.Title, in.Type)
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("%s: %v", doc.Title, err)
		}
	}
}

func TestToInput(t *testing.T) {
	doc := challengeDoc{
		Title:    "Order",
		Type:     "ordering",
		Ordering: &orderingDoc{Instruction: "sort", Items: []string{"a", "b", "c"}},
	}

	in := toInput(doc)
	if in.Slug != nil {
		t.Fatalf("slug should be left to generation, got %q", *in.Slug)
	}
	if in.Ordering == nil || len(in.Ordering.Items) != 3 {
		t.Fatalf("ordering = %+v", in.Ordering)
	}
	for i, item := range in.Ordering.Items {
		if item.CorrectOrder != i+1 {
			t.Fatalf("item %d correct order = %d", i, item.CorrectOrder)
		}
	}

	quiz := toInput(challengeDoc{
		Type:      "quiz",
		Questions: []questionDoc{{Question: "q", Correct: "yes", Wrong: []string{"no", "maybe"}}},
	})
	answers := quiz.Questions[0].Answers
	if len(answers) != 3 || !answers[0].IsCorrect || answers[1].IsCorrect || answers[2].IsCorrect {
		t.Fatalf("answers = %+v", answers)
	}
}
