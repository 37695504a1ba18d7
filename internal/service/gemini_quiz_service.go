package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/qcmforge/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// QuizGeneratorService is the boundary to the LLM provider. It returns the
// raw model output; normalization is the QuestionExtractor's job.
type QuizGeneratorService interface {
	GenerateQuiz(ctx context.Context, jobDescription, language string, numQuestions int) (string, error)
	RegenerateQuestion(ctx context.Context, jobDescription, language, skill string) (string, error)
	Ready() bool
}

type geminiQuizService struct {
	model *genai.GenerativeModel
	cfg   *config.Config
}

func NewGeminiQuizService(cfg *config.Config) (QuizGeneratorService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Quiz generation will be non-functional.")
		return &geminiQuizService{cfg: cfg}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	model.ResponseMIMEType = "application/json"
	return &geminiQuizService{model: model, cfg: cfg}, nil
}

func (s *geminiQuizService) Ready() bool {
	return s.model != nil
}

const quizPromptTemplate = `You are an expert test author. Given a job description and a target language, do:
1) Extract 4-6 core skills (short labels).
2) Generate exactly %d high-quality multiple-choice questions (MCQ) in the language: %s.
3) Each MCQ must have:
   - "skill": one of the extracted skills
   - "question": concise, unambiguous
   - "options": exactly 4 distinct plausible options (strings)
   - "correct_index": integer 0..3
   - "explanation": 1-3 sentences why the correct option is right (admin only; never shown to candidate)

Constraints:
- Tailor content strictly to the job description.
- Avoid trivia; test practical knowledge and reasoning.
- Return STRICT JSON ONLY (no markdown, no code fences).

Return JSON object:
{
  "skills": ["..."],
  "questions": [
    {
      "skill": "...",
      "question": "...",
      "options": ["...","...","...","..."],
      "correct_index": 0,
      "explanation": "..."
    }
  ]
}

JOB DESCRIPTION:
%s`

const regeneratePromptTemplate = `You write recruiting MCQs. Output strict JSON only (no markdown).
Regenerate exactly ONE MCQ for the skill "%s" in language: %s.
Schema:
{
  "questions": [
    {
      "skill": "...",
      "question": "...",
      "options": ["...","...","...","..."],
      "correct_index": 0,
      "explanation": "..."
    }
  ]
}

Job description:
%s`

func (s *geminiQuizService) GenerateQuiz(ctx context.Context, jobDescription, language string, numQuestions int) (string, error) {
	prompt := fmt.Sprintf(quizPromptTemplate, numQuestions, language, jobDescription)
	return s.generate(ctx, prompt)
}

func (s *geminiQuizService) RegenerateQuestion(ctx context.Context, jobDescription, language, skill string) (string, error) {
	prompt := fmt.Sprintf(regeneratePromptTemplate, skill, language, jobDescription)
	return s.generate(ctx, prompt)
}

func (s *geminiQuizService) generate(ctx context.Context, prompt string) (string, error) {
	if s.model == nil {
		return "", fmt.Errorf("%w: gemini client not initialized (missing GEMINI_API_KEY)", ErrGenerationFailed)
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during quiz generation")
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response")
		return "", fmt.Errorf("%w: gemini returned no content", ErrGenerationFailed)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: gemini returned no text content", ErrGenerationFailed)
	}
	return sb.String(), nil
}
