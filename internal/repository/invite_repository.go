package repository

import (
	"github.com/lshigami/qcmforge/internal/model"
	"gorm.io/gorm"
)

type InviteRepository interface {
	Create(invite *model.Invite) error
	FindByToken(token string) (*model.Invite, error)
	FindByID(id string) (*model.Invite, error)
	// ConsumeUse advances used_count by one iff the invite is still below
	// its cap. Returns false when the cap has been reached. The guard and
	// the increment are a single UPDATE so two concurrent starts against a
	// capped invite cannot both pass.
	ConsumeUse(tx *gorm.DB, inviteID string) (bool, error)
}

type inviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) Create(invite *model.Invite) error {
	return r.db.Create(invite).Error
}

func (r *inviteRepository) FindByToken(token string) (*model.Invite, error) {
	var invite model.Invite
	if err := r.db.First(&invite, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepository) FindByID(id string) (*model.Invite, error) {
	var invite model.Invite
	if err := r.db.First(&invite, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepository) ConsumeUse(tx *gorm.DB, inviteID string) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&model.Invite{}).
		Where("id = ? AND (max_uses = 0 OR used_count < max_uses)", inviteID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
