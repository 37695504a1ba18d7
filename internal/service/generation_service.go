package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/qcmforge/internal/dto"
	"github.com/lshigami/qcmforge/internal/model"
	"github.com/lshigami/qcmforge/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultNumQuestions = 12

// GenerationService orchestrates the prompt -> LLM -> extractor -> store
// pipeline. A failing LLM call or an empty extraction persists nothing.
type GenerationService interface {
	CreateDraftFromJD(ctx context.Context, req dto.CreateDraftRequest) (*dto.CreateDraftResponse, error)
	RegenerateQuestion(ctx context.Context, qcmID, questionID string) (*dto.RegenerateQuestionResponse, error)
}

type generationService struct {
	qcmRepo      repository.QcmRepository
	questionRepo repository.QuestionRepository
	generator    QuizGeneratorService
	extractor    *QuestionExtractor
	db           *gorm.DB
}

func NewGenerationService(
	qcmRepo repository.QcmRepository,
	questionRepo repository.QuestionRepository,
	generator QuizGeneratorService,
	extractor *QuestionExtractor,
	db *gorm.DB,
) GenerationService {
	return &generationService{
		qcmRepo:      qcmRepo,
		questionRepo: questionRepo,
		generator:    generator,
		extractor:    extractor,
		db:           db,
	}
}

func (s *generationService) CreateDraftFromJD(ctx context.Context, req dto.CreateDraftRequest) (*dto.CreateDraftResponse, error) {
	jd := strings.TrimSpace(req.JobDescription)
	if jd == "" {
		return nil, fmt.Errorf("%w: job_description is required", ErrInvalidInput)
	}
	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = "en"
	}
	numQuestions := req.NumQuestions
	if numQuestions <= 0 {
		numQuestions = defaultNumQuestions
	}

	raw, err := s.generator.GenerateQuiz(ctx, jd, language, numQuestions)
	if err != nil {
		return nil, err
	}

	quiz, err := s.extractor.Extract(raw)
	if err != nil {
		log.Error().Err(err).Msg("CreateDraftFromJD: extraction failed, nothing persisted")
		return nil, err
	}

	skillsJSON, err := json.Marshal(quiz.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}

	qcm := model.Qcm{
		Language:       language,
		JobDescription: jd,
		Status:         model.QcmStatusDraft,
		SkillsJSON:     string(skillsJSON),
		Questions:      buildQuestionModels(quiz.Questions),
	}

	// Quiz, questions and options land in one transaction; a failure on
	// any row leaves no partial draft behind.
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&qcm).Error
	}); err != nil {
		log.Error().Err(err).Msg("CreateDraftFromJD: failed to persist draft")
		return nil, fmt.Errorf("failed to persist draft quiz: %w", err)
	}

	created, err := s.qcmRepo.FindByIDWithQuestions(qcm.ID)
	if err != nil {
		log.Error().Err(err).Str("qcmID", qcm.ID).Msg("CreateDraftFromJD: failed to reload created draft")
		return nil, fmt.Errorf("failed to reload created draft: %w", err)
	}

	log.Info().Str("qcmID", created.ID).Int("questions", len(created.Questions)).Msg("Draft quiz created")
	return &dto.CreateDraftResponse{
		QcmID:     created.ID,
		Skills:    quiz.Skills,
		Questions: toAdminQuestionDTOs(created.Questions),
	}, nil
}

func (s *generationService) RegenerateQuestion(ctx context.Context, qcmID, questionID string) (*dto.RegenerateQuestionResponse, error) {
	qcm, err := s.qcmRepo.FindByID(qcmID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: qcm %s", ErrNotFound, qcmID)
		}
		return nil, err
	}

	target, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: question %s", ErrNotFound, questionID)
		}
		return nil, err
	}
	if target.QcmID != qcm.ID {
		return nil, fmt.Errorf("%w: question %s does not belong to qcm %s", ErrNotFound, questionID, qcmID)
	}
	if target.Locked {
		return nil, fmt.Errorf("%w: question %s is locked", ErrStateConflict, questionID)
	}

	raw, err := s.generator.RegenerateQuestion(ctx, qcm.JobDescription, qcm.Language, target.Skill)
	if err != nil {
		return nil, err
	}
	quiz, err := s.extractor.Extract(raw)
	if err != nil {
		return nil, err
	}
	replacement := quiz.Questions[0]

	// Rewrite text, explanation and options in place; the question keeps
	// its id so sibling questions are untouched.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		target.Skill = replacement.Skill
		target.Text = replacement.Text
		target.Explanation = replacement.Explanation
		target.NeedsReview = replacement.NeedsReview
		if err := tx.Model(&model.Question{}).Where("id = ?", target.ID).Updates(map[string]interface{}{
			"skill":        target.Skill,
			"text":         target.Text,
			"explanation":  target.Explanation,
			"needs_review": target.NeedsReview,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", target.ID).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		return tx.Create(buildOptionModels(target.ID, replacement)).Error
	})
	if err != nil {
		log.Error().Err(err).Str("questionID", questionID).Msg("RegenerateQuestion: failed to replace question")
		return nil, fmt.Errorf("failed to replace question: %w", err)
	}

	updated, err := s.questionRepo.FindByIDWithOptions(target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload regenerated question: %w", err)
	}

	log.Info().Str("qcmID", qcmID).Str("questionID", questionID).Msg("Question regenerated in place")
	return &dto.RegenerateQuestionResponse{Question: toAdminQuestionDTO(updated)}, nil
}

func buildQuestionModels(extracted []ExtractedQuestion) []model.Question {
	questions := make([]model.Question, 0, len(extracted))
	for _, eq := range extracted {
		q := model.Question{
			Skill:       eq.Skill,
			Text:        eq.Text,
			Explanation: eq.Explanation,
			NeedsReview: eq.NeedsReview,
		}
		for i, text := range eq.Options {
			q.Options = append(q.Options, model.Option{
				Text:      text,
				IsCorrect: i == eq.CorrectIndex,
			})
		}
		questions = append(questions, q)
	}
	return questions
}

func buildOptionModels(questionID string, eq ExtractedQuestion) []model.Option {
	options := make([]model.Option, 0, len(eq.Options))
	for i, text := range eq.Options {
		options = append(options, model.Option{
			QuestionID: questionID,
			Text:       text,
			IsCorrect:  i == eq.CorrectIndex,
		})
	}
	return options
}
