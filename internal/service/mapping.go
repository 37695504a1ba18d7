package service

import (
	"encoding/json"

	"github.com/jinzhu/copier"
	"github.com/lshigami/qcmforge/internal/dto"
	"github.com/lshigami/qcmforge/internal/model"
	"github.com/rs/zerolog/log"
)

func toAdminQuestionDTO(q *model.Question) dto.AdminQuestionDTO {
	out := dto.AdminQuestionDTO{
		ID:          q.ID,
		SkillTag:    q.Skill,
		Text:        q.Text,
		Explanation: q.Explanation,
		Locked:      q.Locked,
		NeedsReview: q.NeedsReview,
	}
	if err := copier.Copy(&out.Options, &q.Options); err != nil {
		log.Error().Err(err).Str("questionID", q.ID).Msg("Failed to copy options to admin DTO")
	}
	return out
}

func toAdminQuestionDTOs(questions []model.Question) []dto.AdminQuestionDTO {
	out := make([]dto.AdminQuestionDTO, 0, len(questions))
	for i := range questions {
		out = append(out, toAdminQuestionDTO(&questions[i]))
	}
	return out
}

func toPublicQuestionDTOs(questions []model.Question) []dto.PublicQuestionDTO {
	out := make([]dto.PublicQuestionDTO, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		pub := dto.PublicQuestionDTO{
			ID:       q.ID,
			SkillTag: q.Skill,
			Text:     q.Text,
		}
		// PublicOptionDTO has no IsCorrect field; copier drops
		// correctness on the way out.
		if err := copier.Copy(&pub.Options, &q.Options); err != nil {
			log.Error().Err(err).Str("questionID", q.ID).Msg("Failed to copy options to public DTO")
		}
		out = append(out, pub)
	}
	return out
}

func decodeSkills(skillsJSON string) []string {
	if skillsJSON == "" {
		return []string{}
	}
	var skills []string
	if err := json.Unmarshal([]byte(skillsJSON), &skills); err != nil {
		log.Warn().Err(err).Msg("Failed to decode stored skills list")
		return []string{}
	}
	return skills
}
