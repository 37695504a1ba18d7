package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/qcmforge/internal/dto"
	"github.com/lshigami/qcmforge/internal/repository"
	"gorm.io/gorm"
)

// PublicQcmService serves the candidate-facing read path: a quiz resolved
// through a currently-valid invite token, stripped of correctness and
// explanations.
type PublicQcmService interface {
	GetByToken(token string) (*dto.PublicQcmResponse, error)
}

type publicQcmService struct {
	qcmRepo   repository.QcmRepository
	inviteSvc InviteService
}

func NewPublicQcmService(qcmRepo repository.QcmRepository, inviteSvc InviteService) PublicQcmService {
	return &publicQcmService{qcmRepo: qcmRepo, inviteSvc: inviteSvc}
}

func (s *publicQcmService) GetByToken(token string) (*dto.PublicQcmResponse, error) {
	invite, err := s.inviteSvc.FindValidByToken(token)
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

	return &dto.PublicQcmResponse{
		Qcm:       dto.PublicQcmDTO{ID: qcm.ID, Language: qcm.Language},
		Questions: toPublicQuestionDTOs(qcm.Questions),
	}, nil
}
