package service

import (
	"errors"
	"testing"
)

func TestExtractStructured(t *testing.T) {
	raw := `{
		"skills": ["Go", "SQL", "Go"],
		"questions": [
			{
				"skill": "Go",
				"question": "What does a nil map read return?",
				"options": ["The zero value", "A panic", "An error", "Garbage"],
				"correct_index": 0,
				"explanation": "Reading a nil map yields the zero value."
			}
		]
	}`

	e := NewQuestionExtractor()
	quiz, err := e.ExtractStructured(raw)
	if err != nil {
		t.Fatalf("ExtractStructured returned error: %v", err)
	}
	if len(quiz.Skills) != 2 {
		t.Errorf("expected 2 deduped skills, got %v", quiz.Skills)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(quiz.Questions))
	}
	q := quiz.Questions[0]
	if len(q.Options) != 4 {
		t.Errorf("expected exactly 4 options, got %d", len(q.Options))
	}
	if q.CorrectIndex != 0 || q.NeedsReview {
		t.Errorf("expected trusted correct_index 0, got index=%d needsReview=%v", q.CorrectIndex, q.NeedsReview)
	}
}

func TestExtractStructuredDropsUnusableQuestions(t *testing.T) {
	raw := `{
		"skills": ["Go"],
		"questions": [
			{"skill": "Go", "question": "", "options": ["a","b","c","d"], "correct_index": 1},
			{"skill": "Go", "question": "Too few options?", "options": ["a","b","c"], "correct_index": 0},
			{"skill": "Go", "question": "Keeps the good one?", "options": ["a","b","c","d","e"], "correct_index": 3}
		]
	}`

	quiz, err := NewQuestionExtractor().ExtractStructured(raw)
	if err != nil {
		t.Fatalf("ExtractStructured returned error: %v", err)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("expected only the well-formed question to survive, got %d", len(quiz.Questions))
	}
	if quiz.Questions[0].Text != "Keeps the good one?" {
		t.Errorf("unexpected surviving question: %q", quiz.Questions[0].Text)
	}
	if len(quiz.Questions[0].Options) != 4 {
		t.Errorf("expected extra options truncated to 4, got %d", len(quiz.Questions[0].Options))
	}
}

func TestExtractStructuredFlagsMissingCorrectIndex(t *testing.T) {
	raw := `{
		"skills": ["Go"],
		"questions": [
			{"skill": "Go", "question": "No answer given", "options": ["a","b","c","d"]},
			{"skill": "Go", "question": "Out of range", "options": ["a","b","c","d"], "correct_index": 7}
		]
	}`

	quiz, err := NewQuestionExtractor().ExtractStructured(raw)
	if err != nil {
		t.Fatalf("ExtractStructured returned error: %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("expected both questions kept, got %d", len(quiz.Questions))
	}
	for _, q := range quiz.Questions {
		if !q.NeedsReview {
			t.Errorf("question %q should be flagged for review", q.Text)
		}
	}
}

func TestExtractStructuredEmptyIsError(t *testing.T) {
	_, err := NewQuestionExtractor().ExtractStructured(`{"skills": [], "questions": []}`)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestExtractTextPartialSuccess(t *testing.T) {
	// One well-formed block plus one malformed block (only 3 options).
	raw := `Question 1: Which keyword starts a goroutine?
A) go
B) run
C) async
D) spawn
Answer: A

Question 2: What is a channel?
A) A pipe
B) A file
C) A socket
Answer: B
`
	quiz, err := NewQuestionExtractor().ExtractText(raw)
	if err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("expected exactly 1 question from partial input, got %d", len(quiz.Questions))
	}
	q := quiz.Questions[0]
	if q.Text != "Which keyword starts a goroutine?" {
		t.Errorf("unexpected question text: %q", q.Text)
	}
	if q.CorrectIndex != 0 {
		t.Errorf("expected correct index 0 for answer A, got %d", q.CorrectIndex)
	}
	if len(q.Options) != 4 || q.Options[0] != "go" || q.Options[3] != "spawn" {
		t.Errorf("unexpected options: %v", q.Options)
	}
}

func TestExtractTextFrenchAnswerMarker(t *testing.T) {
	raw := `Question 1: Quelle structure est FIFO ?
A) La pile
B) La file
C) L'arbre
D) Le tas
Réponse : B
`
	quiz, err := NewQuestionExtractor().ExtractText(raw)
	if err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}
	if len(quiz.Questions) != 1 || quiz.Questions[0].CorrectIndex != 1 {
		t.Fatalf("expected one question with correct index 1, got %+v", quiz.Questions)
	}
}

func TestExtractTextNoMatchesIsError(t *testing.T) {
	_, err := NewQuestionExtractor().ExtractText("nothing resembling a question here")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestExtractFallsBackFromFencedJSON(t *testing.T) {
	raw := "```json\n{\"skills\":[\"Go\"],\"questions\":[{\"skill\":\"Go\",\"question\":\"Fenced?\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"correct_index\":2}]}\n```"
	quiz, err := NewQuestionExtractor().Extract(raw)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if len(quiz.Questions) != 1 || quiz.Questions[0].CorrectIndex != 2 {
		t.Fatalf("expected fenced JSON to parse, got %+v", quiz.Questions)
	}
}
