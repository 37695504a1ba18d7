package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question belongs to exactly one Qcm. Regeneration rewrites Skill, Text,
// Explanation and the Options in place while keeping the same ID.
type Question struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	QcmID       string    `gorm:"type:varchar(36);not null;index" json:"qcm_id"`
	Skill       string    `gorm:"type:varchar(64);not null" json:"skill"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Explanation string    `gorm:"type:text" json:"explanation,omitempty"` // admin only
	Locked      bool      `gorm:"not null;default:false" json:"locked"`
	NeedsReview bool      `gorm:"not null;default:false" json:"needs_review"`
	Options     []Option  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
