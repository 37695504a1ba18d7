package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lshigami/qcmforge/internal/dto"
	"github.com/lshigami/qcmforge/internal/model"
	"github.com/lshigami/qcmforge/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService drives the candidate attempt state machine:
// start (consumes an invite use) -> answer (upsert, no correctness
// feedback) -> finish (exactly once, computes score and duration).
type AttemptService interface {
	Start(req dto.StartAttemptRequest) (*dto.StartAttemptResponse, error)
	SaveAnswer(attemptID string, req dto.SaveAnswerRequest) (*dto.SaveAnswerResponse, error)
	Finish(attemptID string) (*dto.FinishAttemptResponse, error)
}

type attemptService struct {
	qcmRepo      repository.QcmRepository
	questionRepo repository.QuestionRepository
	inviteRepo   repository.InviteRepository
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AnswerRepository
	inviteSvc    InviteService
	db           *gorm.DB
}

func NewAttemptService(
	qcmRepo repository.QcmRepository,
	questionRepo repository.QuestionRepository,
	inviteRepo repository.InviteRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	inviteSvc InviteService,
	db *gorm.DB,
) AttemptService {
	return &attemptService{
		qcmRepo:      qcmRepo,
		questionRepo: questionRepo,
		inviteRepo:   inviteRepo,
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
		inviteSvc:    inviteSvc,
		db:           db,
	}
}

// Start validates the invite, consumes one use when the invite is capped
// and creates the attempt. Start is not idempotent: retrying with the
// same token consumes another use, so capped invites count every entry
// into the quiz.
func (s *attemptService) Start(req dto.StartAttemptRequest) (*dto.StartAttemptResponse, error) {
	invite, err := s.inviteSvc.FindValidByToken(req.Token)
	if err != nil {
		return nil, err
	}

	qcm, err := s.qcmRepo.FindByIDWithQuestions(invite.QcmID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: qcm %s", ErrNotFound, invite.QcmID)
		}
		return nil, err
	}

	attempt := model.Attempt{
		QcmID:          qcm.ID,
		InviteID:       invite.ID,
		CandidateEmail: req.CandidateEmail,
		StartedAt:      time.Now().UTC(),
	}

	// The use consumption and the attempt row commit together, and the
	// consumption itself is a guarded UPDATE: with max_uses=1, two
	// concurrent starts produce exactly one attempt.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if invite.MaxUses > 0 {
			ok, err := s.inviteRepo.ConsumeUse(tx, invite.ID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: invite exhausted", ErrNotFound)
			}
		}
		return tx.Create(&attempt).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		log.Error().Err(err).Str("inviteID", invite.ID).Msg("Start: failed to create attempt")
		return nil, fmt.Errorf("failed to start attempt: %w", err)
	}

	log.Info().Str("attemptID", attempt.ID).Str("qcmID", qcm.ID).Msg("Attempt started")
	return &dto.StartAttemptResponse{
		AttemptID: attempt.ID,
		StartedAt: attempt.StartedAt,
		Qcm:       dto.PublicQcmDTO{ID: qcm.ID, Language: qcm.Language},
		Questions: toPublicQuestionDTOs(qcm.Questions),
	}, nil
}

// SaveAnswer upserts the candidate's choice for one question. It returns
// no correctness information; the candidate never learns how they did
// mid-attempt.
func (s *attemptService) SaveAnswer(attemptID string, req dto.SaveAnswerRequest) (*dto.SaveAnswerResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt %s", ErrNotFound, attemptID)
		}
		return nil, err
	}
	if attempt.Finished() {
		return nil, fmt.Errorf("%w: attempt %s is already finished", ErrStateConflict, attemptID)
	}

	question, err := s.questionRepo.FindByIDWithOptions(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: question %s is not part of this quiz", ErrInvalidInput, req.QuestionID)
		}
		return nil, err
	}
	if question.QcmID != attempt.QcmID {
		return nil, fmt.Errorf("%w: question %s is not part of this quiz", ErrInvalidInput, req.QuestionID)
	}

	var chosen *model.Option
	for i := range question.Options {
		if question.Options[i].ID == req.OptionID {
			chosen = &question.Options[i]
			break
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("%w: option %s does not belong to question %s", ErrInvalidInput, req.OptionID, req.QuestionID)
	}

	answer := model.Answer{
		AttemptID:  attempt.ID,
		QuestionID: question.ID,
		OptionID:   chosen.ID,
		Correct:    chosen.IsCorrect,
	}
	if err := s.answerRepo.Upsert(&answer); err != nil {
		log.Error().Err(err).Str("attemptID", attemptID).Str("questionID", question.ID).Msg("SaveAnswer: upsert failed")
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	return &dto.SaveAnswerResponse{Saved: true}, nil
}

// Finish finalizes the attempt exactly once. A second call fails with
// ErrStateConflict and the first score and duration stay as they were.
func (s *attemptService) Finish(attemptID string) (*dto.FinishAttemptResponse, error) {
	var resp dto.FinishAttemptResponse

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var attempt model.Attempt
		if err := tx.First(&attempt, "id = ?", attemptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: attempt %s", ErrNotFound, attemptID)
			}
			return err
		}
		if attempt.Finished() {
			return fmt.Errorf("%w: attempt %s is already finished", ErrStateConflict, attemptID)
		}

		var totalQuestions int64
		if err := tx.Model(&model.Question{}).Where("qcm_id = ?", attempt.QcmID).Count(&totalQuestions).Error; err != nil {
			return err
		}

		var answers []model.Answer
		if err := tx.Where("attempt_id = ?", attempt.ID).Find(&answers).Error; err != nil {
			return err
		}
		correct := 0
		for _, a := range answers {
			if a.Correct {
				correct++
			}
		}

		score := 0
		if totalQuestions > 0 {
			score = int(math.Round(100 * float64(correct) / float64(totalQuestions)))
		}

		// StartedAt is stored as a UTC instant from creation; re-anchoring
		// both sides to UTC here keeps the duration correct even if the
		// driver scanned the timestamp into another location.
		now := time.Now().UTC()
		duration := int(now.Sub(attempt.StartedAt.UTC()).Seconds())
		if duration < 0 {
			duration = 0
		}

		attempt.FinishedAt = &now
		attempt.Score = &score
		attempt.DurationS = &duration
		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}

		resp = dto.FinishAttemptResponse{
			Score:          score,
			CorrectCount:   correct,
			AnsweredCount:  len(answers),
			TotalQuestions: int(totalQuestions),
			DurationS:      duration,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStateConflict) {
			return nil, err
		}
		log.Error().Err(err).Str("attemptID", attemptID).Msg("Finish: transaction failed")
		return nil, fmt.Errorf("failed to finish attempt: %w", err)
	}

	log.Info().Str("attemptID", attemptID).Int("score", resp.Score).Int("duration_s", resp.DurationS).Msg("Attempt finished")
	return &resp, nil
}
