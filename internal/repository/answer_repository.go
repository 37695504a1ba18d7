package repository

import (
	"github.com/lshigami/qcmforge/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	// Upsert writes one Answer per (attempt, question): a second save for
	// the same question overwrites the option and its correctness.
	Upsert(answer *model.Answer) error
	FindByAttemptID(attemptID string) ([]model.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Upsert(answer *model.Answer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"option_id", "correct", "updated_at"}),
	}).Create(answer).Error
}

func (r *answerRepository) FindByAttemptID(attemptID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Where("attempt_id = ?", attemptID).Order("created_at ASC").Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}
