package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Option is one of exactly four choices of a Question; exactly one option
// per question carries IsCorrect. Correctness is never serialized on
// candidate-facing responses, only through the admin DTOs.
type Option struct {
	ID         string `gorm:"type:varchar(36);primaryKey" json:"id"`
	QuestionID string `gorm:"type:varchar(36);not null;index" json:"question_id"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"is_correct"`
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
