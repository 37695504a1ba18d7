package repository

import (
	"github.com/lshigami/qcmforge/internal/model"
	"gorm.io/gorm"
)

type QcmRepository interface {
	FindByID(id string) (*model.Qcm, error)
	FindByIDWithQuestions(id string) (*model.Qcm, error)
	Update(qcm *model.Qcm) error
	Delete(id string) error
}

type qcmRepository struct {
	db *gorm.DB
}

func NewQcmRepository(db *gorm.DB) QcmRepository {
	return &qcmRepository{db: db}
}

func (r *qcmRepository) FindByID(id string) (*model.Qcm, error) {
	var qcm model.Qcm
	if err := r.db.First(&qcm, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &qcm, nil
}

func (r *qcmRepository) FindByIDWithQuestions(id string) (*model.Qcm, error) {
	var qcm model.Qcm
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.created_at ASC")
		}).
		Preload("Questions.Options").
		First(&qcm, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &qcm, nil
}

func (r *qcmRepository) Update(qcm *model.Qcm) error {
	return r.db.Save(qcm).Error
}

func (r *qcmRepository) Delete(id string) error {
	return r.db.Delete(&model.Qcm{}, "id = ?", id).Error
}
