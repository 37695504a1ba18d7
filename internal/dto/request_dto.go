package dto

// CreateDraftRequest is the admin request to generate a draft quiz from a
// job description.
type CreateDraftRequest struct {
	JobDescription string `json:"job_description" binding:"required"`
	Language       string `json:"language"`
	NumQuestions   int    `json:"num_questions" binding:"omitempty,min=1,max=30"`
}

// StartAttemptRequest starts a candidate attempt against a share token.
type StartAttemptRequest struct {
	Token          string  `json:"token" binding:"required"`
	CandidateEmail *string `json:"candidate_email" binding:"omitempty,email"`
}

// SaveAnswerRequest records (or overwrites) the chosen option for one
// question of an in-progress attempt.
type SaveAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	OptionID   string `json:"option_id" binding:"required"`
}
