package dto

import (
	"learning_center_backend/internal/model"
	"learning_center_backend/pkg/hashid"
	"time"
)

type ExamRef struct {
	ID          string          `json:"id"`
	Title       model.Localized `json:"title"`
	Description model.Localized `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Slug        string          `json:"slug"`
}

type ExamAttemptView struct {
	ID          string                `json:"id"`
	User        *UserRef              `json:"user"`
	Score       int                   `json:"score"`
	Answers     []model.AttemptAnswer `json:"answers"`
	SubmittedAt time.Time             `json:"submittedAt"`
}

// OptionView is a question option as seen by a student: without isAnswer.
type OptionView struct {
	Content string `json:"content"`
	Order   int    `json:"order"`
}

type QuestionView struct {
	Title      string       `json:"title"`
	OptionFile string       `json:"optionFile,omitempty"`
	Options    []OptionView `json:"options"`
	Order      int          `json:"order"`
}

type ExamView struct {
	ID          string            `json:"id"`
	Title       model.Localized   `json:"title"`
	Description model.Localized   `json:"description"`
	Content     model.Localized   `json:"content"`
	ImageURL    string            `json:"imageUrl"`
	Slug        string            `json:"slug"`
	CreatedBy   *UserRef          `json:"createdBy"`
	Responsible []UserRef         `json:"responsible"`
	Lessons     []LessonRef       `json:"lessons"`
	Groups      []GroupRef        `json:"groups"`
	Deadline    *time.Time        `json:"deadline"`
	Timer       string            `json:"timer,omitempty"`
	IsActive    bool              `json:"isActive"`
	Questions   interface{}       `json:"questions,omitempty"`
	Attempts    []ExamAttemptView `json:"attempts,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ExamViewMode selects how much of an exam is exposed.
type ExamViewMode int

const (
	// ExamSummary hides the questions.
	ExamSummary ExamViewMode = iota
	// ExamFull includes the questions with their answers.
	ExamFull
	// ExamStudent includes the questions with the answers stripped and
	// hides the attempts of other users.
	ExamStudent
)

func ToExamRefs(exams []model.Exam, codec *hashid.Codec) []ExamRef {
	out := make([]ExamRef, 0, len(exams))
	for _, e := range exams {
		out = append(out, ExamRef{
			ID:          codec.EncodeUint(e.ID),
			Title:       e.Title,
			Description: e.Description,
			ImageURL:    e.ImageURL,
			Slug:        e.Slug,
		})
	}
	return out
}

func ToExamAttemptViews(attempts []model.ExamAttempt, codec *hashid.Codec) []ExamAttemptView {
	out := make([]ExamAttemptView, 0, len(attempts))
	for _, a := range attempts {
		answers := []model.AttemptAnswer(a.Answers)
		if answers == nil {
			answers = []model.AttemptAnswer{}
		}
		out = append(out, ExamAttemptView{
			ID:          codec.EncodeUint(a.ID),
			User:        ToUserRef(a.User, codec),
			Score:       a.Score,
			Answers:     answers,
			SubmittedAt: a.SubmittedAt,
		})
	}
	return out
}

// StripAnswers copies the questions without the isAnswer flags.
func StripAnswers(questions []model.Question) []QuestionView {
	out := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		opts := make([]OptionView, 0, len(q.Options))
		for _, o := range q.Options {
			opts = append(opts, OptionView{Content: o.Content, Order: o.Order})
		}
		out = append(out, QuestionView{
			Title:      q.Title,
			OptionFile: q.OptionFile,
			Options:    opts,
			Order:      q.Order,
		})
	}
	return out
}

func ToExamView(e *model.Exam, codec *hashid.Codec, mode ExamViewMode) ExamView {
	v := ExamView{
		ID:          codec.EncodeUint(e.ID),
		Title:       e.Title,
		Description: e.Description,
		Content:     e.Content,
		ImageURL:    e.ImageURL,
		Slug:        e.Slug,
		CreatedBy:   ToUserRef(e.CreatedBy, codec),
		Responsible: ToUserRefs(e.Responsible, codec),
		Lessons:     ToLessonRefs(e.Lessons, codec),
		Groups:      ToGroupRefs(e.Groups, codec),
		Deadline:    e.Deadline,
		Timer:       e.Timer,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	questions := []model.Question(e.Questions)
	if questions == nil {
		questions = []model.Question{}
	}
	switch mode {
	case ExamFull:
		v.Questions = questions
		v.Attempts = ToExamAttemptViews(e.Attempts, codec)
	case ExamStudent:
		v.Questions = StripAnswers(questions)
	default:
		v.Attempts = ToExamAttemptViews(e.Attempts, codec)
	}
	return v
}

func ToExamViews(exams []model.Exam, codec *hashid.Codec, mode ExamViewMode) []ExamView {
	out := make([]ExamView, 0, len(exams))
	for i := range exams {
		out = append(out, ToExamView(&exams[i], codec, mode))
	}
	return out
}
