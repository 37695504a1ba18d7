package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attempt is one candidate's run through a published Qcm. StartedAt and
// FinishedAt are always stored as UTC instants; Score and DurationS stay
// nil until Finish, which happens exactly once.
type Attempt struct {
	ID             string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	QcmID          string     `gorm:"type:varchar(36);not null;index" json:"qcm_id"`
	InviteID       string     `gorm:"type:varchar(36);not null;index" json:"invite_id"`
	CandidateEmail *string    `gorm:"type:varchar(255)" json:"candidate_email,omitempty"`
	StartedAt      time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	Score          *int       `json:"score,omitempty"` // 0..100
	DurationS      *int       `json:"duration_s,omitempty"`
	Answers        []Answer   `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Finished reports whether the attempt has already been finalized.
func (a *Attempt) Finished() bool {
	return a.FinishedAt != nil
}
