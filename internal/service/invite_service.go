package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lshigami/qcmforge/config"
	"github.com/lshigami/qcmforge/internal/dto"
	"github.com/lshigami/qcmforge/internal/model"
	"github.com/lshigami/qcmforge/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const shareTokenBytes = 24

// InviteService mints and validates share tokens. Tokens are opaque: the
// quiz behind a token is always resolved by store lookup, never by
// parsing the token string.
type InviteService interface {
	// PublishQcm flips a draft quiz to published and mints its invite.
	// Publishing is one-way; a second call fails with ErrStateConflict
	// and leaves status and token untouched.
	PublishQcm(qcmID string) (*dto.PublishResponse, error)

	// FindValidByToken resolves a token to its invite, requiring the
	// invite to be valid right now. Unknown and invalid tokens are
	// indistinguishable to the caller (both ErrNotFound).
	FindValidByToken(token string) (*model.Invite, error)
}

type inviteService struct {
	qcmRepo    repository.QcmRepository
	inviteRepo repository.InviteRepository
	cfg        *config.Config
	db         *gorm.DB
}

func NewInviteService(
	qcmRepo repository.QcmRepository,
	inviteRepo repository.InviteRepository,
	cfg *config.Config,
	db *gorm.DB,
) InviteService {
	return &inviteService{qcmRepo: qcmRepo, inviteRepo: inviteRepo, cfg: cfg, db: db}
}

func (s *inviteService) PublishQcm(qcmID string) (*dto.PublishResponse, error) {
	qcm, err := s.qcmRepo.FindByID(qcmID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: qcm %s", ErrNotFound, qcmID)
		}
		return nil, err
	}
	if qcm.Status != model.QcmStatusDraft {
		return nil, fmt.Errorf("%w: qcm %s is not in draft", ErrStateConflict, qcmID)
	}

	token, err := newShareToken()
	if err != nil {
		return nil, fmt.Errorf("failed to mint share token: %w", err)
	}

	invite := model.Invite{
		QcmID:   qcm.ID,
		Token:   token,
		MaxUses: s.cfg.Invite.MaxUses,
	}
	if s.cfg.Invite.TTLDays > 0 {
		expires := time.Now().UTC().Add(time.Duration(s.cfg.Invite.TTLDays) * 24 * time.Hour)
		invite.ExpiresAt = &expires
	}

	// Status flip and invite creation commit together. The guard on the
	// UPDATE re-checks draft status so a concurrent publish cannot mint
	// two tokens for the same quiz.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Qcm{}).
			Where("id = ? AND status = ?", qcm.ID, model.QcmStatusDraft).
			Updates(map[string]interface{}{"status": model.QcmStatusPublished, "share_token": token})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: qcm %s is not in draft", ErrStateConflict, qcmID)
		}
		return tx.Create(&invite).Error
	})
	if err != nil {
		if errors.Is(err, ErrStateConflict) {
			return nil, err
		}
		log.Error().Err(err).Str("qcmID", qcmID).Msg("PublishQcm: transaction failed")
		return nil, fmt.Errorf("failed to publish qcm: %w", err)
	}

	log.Info().Str("qcmID", qcmID).Msg("Qcm published and invite minted")
	return &dto.PublishResponse{
		ShareURL: fmt.Sprintf("%s/invite?token=%s", ensureScheme(s.cfg.FrontendURL), token),
		Token:    token,
	}, nil
}

func (s *inviteService) FindValidByToken(token string) (*model.Invite, error) {
	invite, err := s.inviteRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid token", ErrNotFound)
		}
		return nil, err
	}
	if !invite.IsValidAt(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: invalid token", ErrNotFound)
	}
	return invite, nil
}

func newShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func ensureScheme(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}
