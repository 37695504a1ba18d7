package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

const optionsPerQuestion = 4

// ExtractedQuestion is one normalized MCQ produced by the extractor.
// Options always has exactly four entries and CorrectIndex is in [0,3].
// NeedsReview is set when the model did not provide a trustworthy
// correct_index; such questions must be fixed by an admin before the quiz
// is published, instead of silently treating option A as correct.
type ExtractedQuestion struct {
	Skill        string
	Text         string
	Options      []string
	CorrectIndex int
	Explanation  string
	NeedsReview  bool
}

// ExtractedQuiz is the normalized result of one generation call.
type ExtractedQuiz struct {
	Skills    []string
	Questions []ExtractedQuestion
}

// QuestionExtractor turns raw model output into normalized questions.
// A malformed individual question never aborts the batch; it is dropped
// (or flagged) and the rest is kept. Zero usable questions is an error.
type QuestionExtractor struct{}

func NewQuestionExtractor() *QuestionExtractor {
	return &QuestionExtractor{}
}

// llmQuiz mirrors the JSON shape the prompt demands from the model.
type llmQuiz struct {
	Skills    []string      `json:"skills"`
	Questions []llmQuestion `json:"questions"`
}

type llmQuestion struct {
	Skill        string   `json:"skill"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// Extract tries the structured JSON path first and falls back to the
// line-oriented text convention when the output is not valid JSON.
func (e *QuestionExtractor) Extract(raw string) (*ExtractedQuiz, error) {
	cleaned := stripCodeFences(raw)
	if json.Valid([]byte(cleaned)) {
		return e.ExtractStructured(cleaned)
	}
	return e.ExtractText(cleaned)
}

// ExtractStructured parses strict JSON output. Questions without text or
// with fewer than four options are dropped; extra options are truncated.
// A missing or out-of-range correct_index keeps the question but flags it
// NeedsReview with a placeholder correct option.
func (e *QuestionExtractor) ExtractStructured(raw string) (*ExtractedQuiz, error) {
	var parsed llmQuiz
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("model output is not valid JSON: %w", err)
	}

	quiz := &ExtractedQuiz{Skills: dedupeNonEmpty(parsed.Skills)}
	for _, q := range parsed.Questions {
		text := strings.TrimSpace(q.Question)
		if text == "" {
			log.Warn().Msg("Extractor: dropping question with empty text")
			continue
		}

		options := make([]string, 0, optionsPerQuestion)
		for _, opt := range q.Options {
			if trimmed := strings.TrimSpace(opt); trimmed != "" {
				options = append(options, trimmed)
			}
		}
		if len(options) < optionsPerQuestion {
			log.Warn().Str("question", text).Int("options", len(options)).Msg("Extractor: dropping question with too few options")
			continue
		}
		options = options[:optionsPerQuestion]

		eq := ExtractedQuestion{
			Skill:       strings.TrimSpace(q.Skill),
			Text:        text,
			Options:     options,
			Explanation: strings.TrimSpace(q.Explanation),
		}
		if eq.Skill == "" {
			eq.Skill = "General"
		}
		if q.CorrectIndex == nil || *q.CorrectIndex < 0 || *q.CorrectIndex >= optionsPerQuestion {
			// Do not guess the answer; hand the question to the admin.
			eq.CorrectIndex = 0
			eq.NeedsReview = true
			log.Warn().Str("question", text).Msg("Extractor: missing or out-of-range correct_index, flagging for review")
		} else {
			eq.CorrectIndex = *q.CorrectIndex
		}
		quiz.Questions = append(quiz.Questions, eq)
	}

	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: model output contained no usable questions", ErrGenerationFailed)
	}
	return quiz, nil
}

// questionBlockRe matches one complete "Question N / A)..D) / Answer: X"
// block. Blocks that deviate from this exact shape (a missing option, no
// answer line) simply do not match and are skipped.
var questionBlockRe = regexp.MustCompile(
	`(?m)^Question\s*\d+\s*:?\s*([^\n]+)\n` +
		`((?:[A-D]\)[^\n]*\n){4})` +
		`(?:Answer|Réponse)\s*:\s*([A-D])`)

var optionLineRe = regexp.MustCompile(`(?m)^[A-D]\)\s*([^\n]*)$`)

// ExtractText parses the free-text fallback convention. Skill labels are
// not part of the text format, so every question lands in "General".
func (e *QuestionExtractor) ExtractText(raw string) (*ExtractedQuiz, error) {
	quiz := &ExtractedQuiz{}

	for _, block := range questionBlockRe.FindAllStringSubmatch(raw, -1) {
		text := strings.TrimSpace(block[1])
		optionLines := optionLineRe.FindAllStringSubmatch(block[2], -1)
		if text == "" || len(optionLines) != optionsPerQuestion {
			continue
		}
		options := make([]string, 0, optionsPerQuestion)
		for _, line := range optionLines {
			options = append(options, strings.TrimSpace(line[1]))
		}
		quiz.Questions = append(quiz.Questions, ExtractedQuestion{
			Skill:        "General",
			Text:         text,
			Options:      options,
			CorrectIndex: int(block[3][0] - 'A'),
		})
	}

	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: no question blocks matched the expected text format", ErrGenerationFailed)
	}
	return quiz, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func dedupeNonEmpty(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
