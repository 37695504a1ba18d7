package dto

import "time"

// AdminOptionDTO exposes correctness; admin surface only.
type AdminOptionDTO struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type AdminQuestionDTO struct {
	ID          string           `json:"id"`
	SkillTag    string           `json:"skill_tag"`
	Text        string           `json:"text"`
	Options     []AdminOptionDTO `json:"options"`
	Explanation string           `json:"explanation,omitempty"`
	Locked      bool             `json:"locked"`
	NeedsReview bool             `json:"needs_review,omitempty"`
}

type AdminQcmDTO struct {
	ID         string   `json:"id"`
	Language   string   `json:"language"`
	Status     string   `json:"status"`
	Skills     []string `json:"skills"`
	ShareToken *string  `json:"share_token,omitempty"`
}

type AdminQcmResponse struct {
	Qcm       AdminQcmDTO        `json:"qcm"`
	Questions []AdminQuestionDTO `json:"questions"`
}

type CreateDraftResponse struct {
	QcmID     string             `json:"qcm_id"`
	Skills    []string           `json:"skills"`
	Questions []AdminQuestionDTO `json:"questions"`
}

type RegenerateQuestionResponse struct {
	Question AdminQuestionDTO `json:"question"`
}

type PublishResponse struct {
	ShareURL string `json:"share_url"`
	Token    string `json:"token"`
}

// AttemptSummaryDTO is one row of the per-quiz results listing.
type AttemptSummaryDTO struct {
	ID             string     `json:"id"`
	CandidateEmail *string    `json:"candidate_email,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	Score          *int       `json:"score,omitempty"`
	DurationS      *int       `json:"duration_s,omitempty"`
}

type QcmResultsResponse struct {
	QcmID         string              `json:"qcm_id"`
	AttemptCount  int                 `json:"attempt_count"`
	FinishedCount int                 `json:"finished_count"`
	AverageScore  *float64            `json:"average_score,omitempty"`
	Attempts      []AttemptSummaryDTO `json:"attempts"`
}

// AttemptAnswerDTO pairs a recorded answer with its question and option
// text for admin review.
type AttemptAnswerDTO struct {
	QuestionID   string `json:"question_id"`
	QuestionText string `json:"question_text"`
	SkillTag     string `json:"skill_tag"`
	OptionID     string `json:"option_id"`
	OptionText   string `json:"option_text"`
	Correct      bool   `json:"correct"`
}

type AttemptDetailResponse struct {
	ID             string             `json:"id"`
	QcmID          string             `json:"qcm_id"`
	CandidateEmail *string            `json:"candidate_email,omitempty"`
	StartedAt      time.Time          `json:"started_at"`
	FinishedAt     *time.Time         `json:"finished_at,omitempty"`
	Score          *int               `json:"score,omitempty"`
	DurationS      *int               `json:"duration_s,omitempty"`
	Answers        []AttemptAnswerDTO `json:"answers"`
}
