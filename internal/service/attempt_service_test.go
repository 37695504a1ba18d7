package service

import (
	"errors"
	"testing"

	"github.com/lshigami/qcmforge/internal/dto"
	"github.com/lshigami/qcmforge/internal/model"
	"github.com/lshigami/qcmforge/internal/repository"
	"gorm.io/gorm"
)

func newTestAttemptService(db *gorm.DB) AttemptService {
	qcmRepo := repository.NewQcmRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	inviteSvc := NewInviteService(qcmRepo, inviteRepo, newTestConfig(), db)
	return NewAttemptService(qcmRepo, questionRepo, inviteRepo, attemptRepo, answerRepo, inviteSvc, db)
}

func startAttempt(t *testing.T, svc AttemptService, token string) *dto.StartAttemptResponse {
	t.Helper()
	resp, err := svc.Start(dto.StartAttemptRequest{Token: token})
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	return resp
}

func TestStartAttempt(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttemptService(db)
	qcm := seedQcm(t, db, model.QcmStatusPublished, 3)
	seedInvite(t, db, qcm.ID, "tok", 0)

	email := "candidate@example.com"
	resp, err := svc.Start(dto.StartAttemptRequest{Token: "tok", CandidateEmail: &email})
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if resp.AttemptID == "" {
		t.Fatal("expected an attempt id")
	}
	if len(resp.Questions) != 3 {
		t.Errorf("expected 3 questions, got %d", len(resp.Questions))
	}
	for _, q := range resp.Questions {
		if len(q.Options) != 4 {
			t.Errorf("question %s: expected 4 options, got %d", q.ID, len(q.Options))
		}
	}

	var attempt model.Attempt
	if err := db.First(&attempt, "id = ?", resp.AttemptID).Error; err != nil {
		t.Fatalf("attempt row not persisted: %v", err)
	}
	if attempt.CandidateEmail == nil || *attempt.CandidateEmail != email {
		t.Error("candidate email not stored")
	}
	if attempt.Finished() {
		t.Error("new attempt must not be finished")
	}
}

func TestStartUnknownToken(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttemptService(db)

	_, err := svc.Start(dto.StartAttemptRequest{Token: "missing"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStartConsumesCappedInvite(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttemptService(db)
	qcm := seedQcm(t, db, model.QcmStatusPublished, 1)
	invite := seedInvite(t, db, qcm.ID, "tok-single", 1)

	startAttempt(t, svc, "tok-single")

	// Start is deliberately not idempotent: the single use is gone.
	_, err := svc.Start(dto.StartAttemptRequest{Token: "tok-single"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("second start on max_uses=1: expected ErrNotFound, got %v", err)
	}

	reloaded, _ := repository.NewInviteRepository(db).FindByID(invite.ID)
	if reloaded.UsedCount != 1 {
		t.Errorf("used_count = %d, want 1", reloaded.UsedCount)
	}
	var attempts int64
	db.Model(&model.Attempt{}).Where("invite_id = ?", invite.ID).Count(&attempts)
	if attempts != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", attempts)
	}
}

func TestStartUnlimitedInviteDoesNotCount(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttemptService(db)
	qcm := seedQcm(t, db, model.QcmStatusPublished, 1)
	invite := seedInvite(t, db, qcm.ID, "tok-unlimited", 0)

	startAttempt(t, svc, "tok-unlimited")
	startAttempt(t, svc, "tok-unlimited")

	reloaded, _ := repository.NewInviteRepository(db).FindByID(invite.ID)
	if reloaded.UsedCount != 0 {
		t.Errorf("unlimited invite should not track uses, used_count = %d", reloaded.UsedCount)
	}
}

func TestSaveAnswerUpsert(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttemptService(db)
	qcm := seedQcm(t, db, model.QcmStatusPublished, 2)
	seedInvite(t, db, qcm.ID, "tok", 0)
	attempt := startAttempt(t, svc, "tok")

	questions, err := repository.NewQuestionRepository(db).FindByQcmID(qcm.ID)
	if err != nil {
		t.Fatalf("failed to load questions: %v", err)
	}
	q := questions[0]
	wrong, right := q.Options[1], q.Options[0]

	if _, err := svc.SaveAnswer(attempt.AttemptID, dto.SaveAnswerRequest{QuestionID: q.ID, OptionID: wrong.ID}); err != nil {
		t.Fatalf("first SaveAnswer failed: %v", err)
	}
	if _, err := svc.SaveAnswer(attempt.AttemptID, dto.SaveAnswerRequest{QuestionID: q.ID, OptionID: right.ID}); err != nil {
		t.Fatalf("second SaveAnswer failed: %v", err)
	}

	answers, err := repository.NewAnswerRepository(db).FindByAttemptID(attempt.AttemptID)
	if err != nil {
		t.Fatalf("failed to read back answers: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("expected exactly 1 answer per (attempt, question), got %d", len(answers))
	}
	if answers[0].OptionID != right.ID {
		t.Errorf("answer option = %s, want the latest choice %s", answers[0].OptionID, right.ID)
	}
	if !answers[0].Correct {
		t.Error("correctness was not recomputed on overwrite")
	}
}

func TestSaveAnswerRejectsForeignQuestionAndOption(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttemptService(db)
	qcm := seedQcm(t, db, model.QcmStatusPublished, 2)
	other := seedQcm(t, db, model.QcmStatusPublished, 1)
	seedInvite(t, db, qcm.ID, "tok", 0)
	attempt := startAttempt(t, svc, "tok")

	mine, _ := repository.NewQuestionRepository(db).FindByQcmID(qcm.ID)
	theirs, _ := repository.NewQuestionRepository(db).FindByQcmID(other.ID)

	// Question from another quiz.
	_, err := svc.SaveAnswer(attempt.AttemptID, dto.SaveAnswerRequest{
		QuestionID: theirs[0].ID,
		OptionID:   theirs[0].Options[0].ID,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("foreign question: expected ErrInvalidInput, got %v", err)
	}

	// Option belonging to a different question of the same quiz.
	_, err = svc.SaveAnswer(attempt.AttemptID, dto.SaveAnswerRequest{
		QuestionID: mine[0].ID,
		OptionID:   mine[1].Options[0].ID,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("foreign option: expected ErrInvalidInput, got %v", err)
	}

	if answers, _ := repository.NewAnswerRepository(db).FindByAttemptID(attempt.AttemptID); len(answers) != 0 {
		t.Errorf("rejected saves must not write rows, found %d", len(answers))
	}
}

func TestFinishScoring(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttemptService(db)
	qcm := seedQcm(t, db, model.QcmStatusPublished, 10)
	seedInvite(t, db, qcm.ID, "tok", 0)
	attempt := startAttempt(t, svc, "tok")

	questions, _ := repository.NewQuestionRepository(db).FindByQcmID(qcm.ID)

	// 7 correct, 1 wrong, 2 skipped.
	for i := 0; i < 7; i++ {
		if _, err := svc.SaveAnswer(attempt.AttemptID, dto.SaveAnswerRequest{
			QuestionID: questions[i].ID,
			OptionID:   questions[i].Options[0].ID,
		}); err != nil {
			t.Fatalf("SaveAnswer %d failed: %v", i, err)
		}
	}
	if _, err := svc.SaveAnswer(attempt.AttemptID, dto.SaveAnswerRequest{
		QuestionID: questions[7].ID,
		OptionID:   questions[7].Options[2].ID,
	}); err != nil {
		t.Fatalf("wrong SaveAnswer failed: %v", err)
	}

	resp, err := svc.Finish(attempt.AttemptID)
	if err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}
	if resp.Score != 70 {
		t.Errorf("score = %d, want 70", resp.Score)
	}
	if resp.CorrectCount != 7 {
		t.Errorf("correct_count = %d, want 7", resp.CorrectCount)
	}
	if resp.AnsweredCount != 8 {
		t.Errorf("answered_count = %d, want 8", resp.AnsweredCount)
	}
	if resp.TotalQuestions != 10 {
		t.Errorf("total_questions = %d, want 10", resp.TotalQuestions)
	}
	if resp.DurationS < 0 {
		t.Errorf("duration_s = %d, want >= 0", resp.DurationS)
	}
}

func TestFinishTwiceFails(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttemptService(db)
	qcm := seedQcm(t, db, model.QcmStatusPublished, 1)
	seedInvite(t, db, qcm.ID, "tok", 0)
	attempt := startAttempt(t, svc, "tok")

	first, err := svc.Finish(attempt.AttemptID)
	if err != nil {
		t.Fatalf("first Finish failed: %v", err)
	}

	_, err = svc.Finish(attempt.AttemptID)
	if !errors.Is(err, ErrStateConflict) {
		t.Fatalf("second Finish: expected ErrStateConflict, got %v", err)
	}

	var stored model.Attempt
	if err := db.First(&stored, "id = ?", attempt.AttemptID).Error; err != nil {
		t.Fatalf("failed to reload attempt: %v", err)
	}
	if stored.Score == nil || *stored.Score != first.Score {
		t.Error("second finish must leave the first score untouched")
	}
	if stored.DurationS == nil || *stored.DurationS != first.DurationS {
		t.Error("second finish must leave the first duration untouched")
	}
}

func TestAnswerAfterFinishFails(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttemptService(db)
	qcm := seedQcm(t, db, model.QcmStatusPublished, 1)
	seedInvite(t, db, qcm.ID, "tok", 0)
	attempt := startAttempt(t, svc, "tok")

	if _, err := svc.Finish(attempt.AttemptID); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	questions, _ := repository.NewQuestionRepository(db).FindByQcmID(qcm.ID)
	_, err := svc.SaveAnswer(attempt.AttemptID, dto.SaveAnswerRequest{
		QuestionID: questions[0].ID,
		OptionID:   questions[0].Options[0].ID,
	})
	if !errors.Is(err, ErrStateConflict) {
		t.Fatalf("answer after finish: expected ErrStateConflict, got %v", err)
	}
}

func TestFinishEmptyQuizScoresZero(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttemptService(db)
	qcm := seedQcm(t, db, model.QcmStatusPublished, 0)
	seedInvite(t, db, qcm.ID, "tok", 0)
	attempt := startAttempt(t, svc, "tok")

	resp, err := svc.Finish(attempt.AttemptID)
	if err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}
	if resp.Score != 0 || resp.TotalQuestions != 0 {
		t.Errorf("empty quiz: score=%d total=%d, want 0/0", resp.Score, resp.TotalQuestions)
	}
}
