package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invite grants candidate access to a published Qcm through an opaque
// token. MaxUses of 0 means unlimited; UsedCount is only ever advanced
// through a conditional UPDATE so capped invites cannot be oversold.
type Invite struct {
	ID        string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	QcmID     string     `gorm:"type:varchar(36);not null;index" json:"qcm_id"`
	Token     string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	MaxUses   int        `gorm:"not null;default:0" json:"max_uses"`
	UsedCount int        `gorm:"not null;default:0" json:"used_count"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (i *Invite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// IsValidAt reports whether the invite can still be used at the given
// instant. Pure function of the invite's own fields.
func (i *Invite) IsValidAt(now time.Time) bool {
	if i.ExpiresAt != nil && now.After(*i.ExpiresAt) {
		return false
	}
	if i.MaxUses > 0 && i.UsedCount >= i.MaxUses {
		return false
	}
	return true
}
