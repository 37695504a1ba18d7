package dto

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PublicOptionDTO deliberately carries no correctness flag.
type PublicOptionDTO struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PublicQuestionDTO is the candidate-facing question shape: no explanation,
// no correct option.
type PublicQuestionDTO struct {
	ID       string            `json:"id"`
	SkillTag string            `json:"skill_tag"`
	Text     string            `json:"text"`
	Options  []PublicOptionDTO `json:"options"`
}

type PublicQcmDTO struct {
	ID       string `json:"id"`
	Language string `json:"language"`
}

type PublicQcmResponse struct {
	Qcm       PublicQcmDTO        `json:"qcm"`
	Questions []PublicQuestionDTO `json:"questions"`
}

type StartAttemptResponse struct {
	AttemptID string              `json:"attempt_id"`
	StartedAt time.Time           `json:"started_at"`
	Qcm       PublicQcmDTO        `json:"qcm"`
	Questions []PublicQuestionDTO `json:"questions"`
}

type SaveAnswerResponse struct {
	Saved bool `json:"saved"`
}

// FinishAttemptResponse is the final scoring summary. AnsweredCount can be
// lower than TotalQuestions when the candidate skipped questions.
type FinishAttemptResponse struct {
	Score          int `json:"score"`
	CorrectCount   int `json:"correct_count"`
	AnsweredCount  int `json:"answered_count"`
	TotalQuestions int `json:"total_questions"`
	DurationS      int `json:"duration_s"`
}
