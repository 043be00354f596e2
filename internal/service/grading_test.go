package service

import (
	"learning_center_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoQuestions() []model.Question {
	return []model.Question{
		{Title: "Q0", Options: []model.QuestionOption{{Content: "a"}, {Content: "b", IsAnswer: true}}},
		{Title: "Q1", Options: []model.QuestionOption{{Content: "a", IsAnswer: true}, {Content: "b"}}},
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name      string
		answers   []SubmittedAnswer
		wantScore int
		want      []model.AttemptAnswer
	}{
		{
			name:      "one right one wrong",
			answers:   []SubmittedAnswer{{0, 1}, {1, 1}},
			wantScore: 1,
			want:      []model.AttemptAnswer{{QuestionIndex: 0, SelectedOptionIndex: 1, Correct: true}, {QuestionIndex: 1, SelectedOptionIndex: 1, Correct: false}},
		},
		{
			name:      "question out of range is dropped",
			answers:   []SubmittedAnswer{{5, 0}, {1, 0}},
			wantScore: 1,
			want:      []model.AttemptAnswer{{QuestionIndex: 1, SelectedOptionIndex: 0, Correct: true}},
		},
		{
			name:      "option out of range is dropped",
			answers:   []SubmittedAnswer{{0, 2}, {0, -1}},
			wantScore: 0,
			want:      []model.AttemptAnswer{},
		},
		{
			name:      "no answers",
			answers:   nil,
			wantScore: 0,
			want:      []model.AttemptAnswer{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, details := Grade(twoQuestions(), tt.answers)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.want, details)
		})
	}
}
