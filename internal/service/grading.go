package service

import "learning_center_backend/internal/model"

// SubmittedAnswer is one answer as sent by the client.
type SubmittedAnswer struct {
	QuestionIndex       int `json:"questionIndex"`
	SelectedOptionIndex int `json:"selectedOptionIndex"`
}

// Grade scores answers against questions. An answer whose question or
// option index is out of range is dropped: it neither scores nor appears in
// the returned details.
func Grade(questions []model.Question, answers []SubmittedAnswer) (int, []model.AttemptAnswer) {
	score := 0
	details := make([]model.AttemptAnswer, 0, len(answers))
	for _, a := range answers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(questions) {
			continue
		}
		options := questions[a.QuestionIndex].Options
		if a.SelectedOptionIndex < 0 || a.SelectedOptionIndex >= len(options) {
			continue
		}
		correct := options[a.SelectedOptionIndex].IsAnswer
		if correct {
			score++
		}
		details = append(details, model.AttemptAnswer{
			QuestionIndex:       a.QuestionIndex,
			SelectedOptionIndex: a.SelectedOptionIndex,
			Correct:             correct,
		})
	}
	return score, details
}
