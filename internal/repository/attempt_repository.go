package repository

import (
	"github.com/lshigami/qcmforge/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	FindByID(id string) (*model.Attempt, error)
	FindByIDWithAnswers(id string) (*model.Attempt, error)
	FindAllByQcmID(qcmID string) ([]model.Attempt, error)
	Update(attempt *model.Attempt) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) FindByID(id string) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDWithAnswers(id string) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.Preload("Answers").First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByQcmID(qcmID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Where("qcm_id = ?", qcmID).Order("started_at DESC").Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) Update(attempt *model.Attempt) error {
	return r.db.Save(attempt).Error
}
