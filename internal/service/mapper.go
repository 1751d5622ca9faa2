package service

import (
	"sort"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/nvalenzuela/selekta/internal/dto"
	"github.com/nvalenzuela/selekta/internal/model"
)

func toQuestionDTO(q *model.Question) *dto.QuestionDTO {
	var out dto.QuestionDTO
	if err := copier.Copy(&out, q); err != nil {
		log.Error().Err(err).Str("questionID", q.ID).Msg("failed to map question to DTO")
	}
	out.CorrectAnswers = []string(q.CorrectAnswers)
	return &out
}

func toTestDTO(t *model.Test) *dto.TestDTO {
	var out dto.TestDTO
	if err := copier.Copy(&out, t); err != nil {
		log.Error().Err(err).Str("testID", t.ID).Msg("failed to map test to DTO")
	}
	out.Questions = make([]dto.QuestionDTO, len(t.Questions))
	for i := range t.Questions {
		out.Questions[i] = *toQuestionDTO(&t.Questions[i])
	}
	return &out
}

func toAnswerDTO(a *model.TestAnswer) *dto.AnswerDTO {
	var out dto.AnswerDTO
	if err := copier.Copy(&out, a); err != nil {
		log.Error().Err(err).Str("answerID", a.ID).Msg("failed to map answer to DTO")
	}
	out.Value = a.Value
	if a.Question.ID != "" {
		out.Question = toQuestionDTO(&a.Question)
	} else {
		out.Question = nil
	}
	return &out
}

// toResponseDTO renders a response with its answers ordered by question
// position when the test's questions are loaded.
func toResponseDTO(r *model.TestResponse) *dto.TestResponseDTO {
	var out dto.TestResponseDTO
	if err := copier.Copy(&out, r); err != nil {
		log.Error().Err(err).Str("responseID", r.ID).Msg("failed to map response to DTO")
	}
	if r.Test.ID != "" {
		out.TestTitle = r.Test.Title
	}

	answers := make([]*model.TestAnswer, len(r.Answers))
	for i := range r.Answers {
		answers[i] = &r.Answers[i]
	}
	if len(r.Test.Questions) > 0 {
		orderByQuestion := make(map[string]int, len(r.Test.Questions))
		for _, q := range r.Test.Questions {
			orderByQuestion[q.ID] = q.Order
		}
		sort.SliceStable(answers, func(i, j int) bool {
			return orderByQuestion[answers[i].QuestionID] < orderByQuestion[answers[j].QuestionID]
		})
	}
	out.Answers = make([]dto.AnswerDTO, len(answers))
	for i, a := range answers {
		out.Answers[i] = *toAnswerDTO(a)
	}
	return &out
}

func toApplicationDTO(wp *model.WorkerProcess) *dto.ApplicationDTO {
	var out dto.ApplicationDTO
	if err := copier.Copy(&out, wp); err != nil {
		log.Error().Err(err).Str("applicationID", wp.ID).Msg("failed to map application to DTO")
	}
	return &out
}
