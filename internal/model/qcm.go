package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	QcmStatusDraft     = "draft"
	QcmStatusPublished = "published"
)

// Qcm is a multiple-choice quiz generated from a job description.
// Status only ever moves draft -> published, and JobDescription is
// immutable after creation.
type Qcm struct {
	ID             string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Language       string     `gorm:"type:varchar(8);not null;default:'en'" json:"language"`
	JobDescription string     `gorm:"type:text;not null" json:"job_description"`
	Status         string     `gorm:"type:varchar(16);not null;default:'draft'" json:"status"`
	SkillsJSON     string     `gorm:"type:text" json:"-"` // serialized []string
	ShareToken     *string    `gorm:"type:varchar(255)" json:"share_token,omitempty"`
	Questions      []Question `gorm:"foreignKey:QcmID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Invites        []Invite   `gorm:"foreignKey:QcmID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (q *Qcm) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
