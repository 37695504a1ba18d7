package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/qcmforge/internal/dto"
	"github.com/lshigami/qcmforge/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminQcmService serves the review surface: full quizzes including
// correctness and explanations, plus attempt results.
type AdminQcmService interface {
	GetQcm(qcmID string) (*dto.AdminQcmResponse, error)
	GetResults(qcmID string) (*dto.QcmResultsResponse, error)
	GetAttemptDetail(attemptID string) (*dto.AttemptDetailResponse, error)
}

type adminQcmService struct {
	qcmRepo      repository.QcmRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AnswerRepository
}

func NewAdminQcmService(
	qcmRepo repository.QcmRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
) AdminQcmService {
	return &adminQcmService{
		qcmRepo:      qcmRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
	}
}

func (s *adminQcmService) GetQcm(qcmID string) (*dto.AdminQcmResponse, error) {
	qcm, err := s.qcmRepo.FindByIDWithQuestions(qcmID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: qcm %s", ErrNotFound, qcmID)
		}
		log.Error().Err(err).Str("qcmID", qcmID).Msg("GetQcm: repository error")
		return nil, err
	}

	return &dto.AdminQcmResponse{
		Qcm: dto.AdminQcmDTO{
			ID:         qcm.ID,
			Language:   qcm.Language,
			Status:     qcm.Status,
			Skills:     decodeSkills(qcm.SkillsJSON),
			ShareToken: qcm.ShareToken,
		},
		Questions: toAdminQuestionDTOs(qcm.Questions),
	}, nil
}

func (s *adminQcmService) GetResults(qcmID string) (*dto.QcmResultsResponse, error) {
	if _, err := s.qcmRepo.FindByID(qcmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: qcm %s", ErrNotFound, qcmID)
		}
		return nil, err
	}

	attempts, err := s.attemptRepo.FindAllByQcmID(qcmID)
	if err != nil {
		log.Error().Err(err).Str("qcmID", qcmID).Msg("GetResults: failed to list attempts")
		return nil, fmt.Errorf("error fetching attempts for qcm %s: %w", qcmID, err)
	}

	resp := &dto.QcmResultsResponse{
		QcmID:        qcmID,
		AttemptCount: len(attempts),
		Attempts:     make([]dto.AttemptSummaryDTO, 0, len(attempts)),
	}

	scoreSum := 0
	for i := range attempts {
		var summary dto.AttemptSummaryDTO
		if err := copier.Copy(&summary, &attempts[i]); err != nil {
			log.Error().Err(err).Str("attemptID", attempts[i].ID).Msg("GetResults: failed to copy attempt summary")
			continue
		}
		resp.Attempts = append(resp.Attempts, summary)
		if attempts[i].Finished() && attempts[i].Score != nil {
			resp.FinishedCount++
			scoreSum += *attempts[i].Score
		}
	}
	if resp.FinishedCount > 0 {
		avg := float64(scoreSum) / float64(resp.FinishedCount)
		resp.AverageScore = &avg
	}
	return resp, nil
}

func (s *adminQcmService) GetAttemptDetail(attemptID string) (*dto.AttemptDetailResponse, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt %s", ErrNotFound, attemptID)
		}
		return nil, err
	}

	questions, err := s.questionRepo.FindByQcmID(attempt.QcmID)
	if err != nil {
		log.Error().Err(err).Str("qcmID", attempt.QcmID).Msg("GetAttemptDetail: failed to fetch questions")
		return nil, fmt.Errorf("error fetching questions for attempt %s: %w", attemptID, err)
	}

	questionByID := make(map[string]int, len(questions))
	optionText := make(map[string]string)
	for i := range questions {
		questionByID[questions[i].ID] = i
		for _, opt := range questions[i].Options {
			optionText[opt.ID] = opt.Text
		}
	}

	resp := &dto.AttemptDetailResponse{
		ID:             attempt.ID,
		QcmID:          attempt.QcmID,
		CandidateEmail: attempt.CandidateEmail,
		StartedAt:      attempt.StartedAt,
		FinishedAt:     attempt.FinishedAt,
		Score:          attempt.Score,
		DurationS:      attempt.DurationS,
		Answers:        make([]dto.AttemptAnswerDTO, 0, len(attempt.Answers)),
	}
	for _, ans := range attempt.Answers {
		row := dto.AttemptAnswerDTO{
			QuestionID: ans.QuestionID,
			OptionID:   ans.OptionID,
			OptionText: optionText[ans.OptionID],
			Correct:    ans.Correct,
		}
		if idx, ok := questionByID[ans.QuestionID]; ok {
			row.QuestionText = questions[idx].Text
			row.SkillTag = questions[idx].Skill
		}
		resp.Answers = append(resp.Answers, row)
	}
	return resp, nil
}
