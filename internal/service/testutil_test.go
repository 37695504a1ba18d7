package service

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lshigami/qcmforge/config"
	"github.com/lshigami/qcmforge/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test and migrates
// the full schema, so every test runs against a fresh store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&model.Qcm{},
		&model.Question{},
		&model.Option{},
		&model.Invite{},
		&model.Attempt{},
		&model.Answer{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		FrontendURL: "http://localhost:3000",
		Invite:      config.Invite{TTLDays: 30, MaxUses: 0},
	}
}

// seedQcm creates a quiz with the given number of questions, each with
// four options where option 0 is the correct one.
func seedQcm(t *testing.T, db *gorm.DB, status string, numQuestions int) *model.Qcm {
	t.Helper()
	qcm := model.Qcm{
		Language:       "en",
		JobDescription: "Backend engineer, Go and SQL",
		Status:         status,
		SkillsJSON:     `["Go","SQL"]`,
	}
	for i := 0; i < numQuestions; i++ {
		q := model.Question{
			Skill: "Go",
			Text:  fmt.Sprintf("Question %d", i+1),
		}
		for j := 0; j < 4; j++ {
			q.Options = append(q.Options, model.Option{
				Text:      fmt.Sprintf("Option %d", j+1),
				IsCorrect: j == 0,
			})
		}
		qcm.Questions = append(qcm.Questions, q)
	}
	if err := db.Create(&qcm).Error; err != nil {
		t.Fatalf("failed to seed qcm: %v", err)
	}
	return &qcm
}

func seedInvite(t *testing.T, db *gorm.DB, qcmID, token string, maxUses int) *model.Invite {
	t.Helper()
	invite := model.Invite{QcmID: qcmID, Token: token, MaxUses: maxUses}
	if err := db.Create(&invite).Error; err != nil {
		t.Fatalf("failed to seed invite: %v", err)
	}
	return &invite
}
