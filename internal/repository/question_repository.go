package repository

import (
	"github.com/lshigami/qcmforge/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByID(id string) (*model.Question, error)
	FindByIDWithOptions(id string) (*model.Question, error)
	FindByQcmID(qcmID string) ([]model.Question, error)
	Update(question *model.Question) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDWithOptions(id string) (*model.Question, error) {
	var question model.Question
	if err := r.db.Preload("Options").First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByQcmID(qcmID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Preload("Options").
		Where("qcm_id = ?", qcmID).
		Order("created_at ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}
