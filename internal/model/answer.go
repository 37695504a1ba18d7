package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer records the candidate's chosen option for one question of an
// attempt. One row per (attempt, question); a later save overwrites the
// option and recomputes Correct from the option's IsCorrect flag.
type Answer struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	AttemptID  string    `gorm:"type:varchar(36);not null;index:idx_answers_attempt_question,unique" json:"attempt_id"`
	QuestionID string    `gorm:"type:varchar(36);not null;index:idx_answers_attempt_question,unique" json:"question_id"`
	OptionID   string    `gorm:"type:varchar(36);not null" json:"option_id"`
	Correct    bool      `gorm:"not null;default:false" json:"correct"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
