package service

import (
	"testing"

	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExamService(t *testing.T) (*ExamService, *model.User, *model.Exam) {
	t.Helper()
	db := openTestDB(t)
	codec := testCodec()

	student := createUser(t, db, "student", "secret1", model.RoleClient)
	exam := &model.Exam{
		Title:       model.Localized{Ro: "Examen final"},
		Description: model.Localized{Ro: "d"},
		Content:     model.Localized{Ro: "c"},
		ImageURL:    "/uploads/private/examen/final/cover.png",
		Slug:        "examen-final",
		CreatedByID: student.ID,
		IsActive:    true,
		Questions:   twoQuestions(),
	}
	require.NoError(t, db.Create(exam).Error)

	svc := NewExamService(
		repository.NewExamRepository(db),
		repository.NewUserRepository(db),
		repository.NewGroupRepository(db),
		repository.NewLessonRepository(db),
		codec,
	)
	return svc, student, exam
}

func TestSubmitRecordsBothSides(t *testing.T) {
	svc, student, exam := newExamService(t)
	in := SubmitInput{
		ExamID:  svc.Codec.EncodeUint(exam.ID),
		Answers: []SubmittedAnswer{{QuestionIndex: 0, SelectedOptionIndex: 1}, {QuestionIndex: 1, SelectedOptionIndex: 0}},
	}

	res, err := svc.Submit(in, student.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 2, res.Total)

	// a second submission is a new attempt, not an overwrite
	_, err = svc.Submit(in, student.ID)
	require.NoError(t, err)

	n, err := svc.ExamRepo.CountAttempts(exam.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	user, err := svc.UserRepo.FindProfile(student.ID)
	require.NoError(t, err)
	require.Len(t, user.ExamAttempts, 2)
	assert.Equal(t, exam.ID, user.ExamAttempts[0].ExamID)
	assert.Equal(t, 2, user.ExamAttempts[1].Score)
}

func TestSubmitOnBehalfOfAnotherUser(t *testing.T) {
	svc, student, exam := newExamService(t)

	res, err := svc.Submit(SubmitInput{
		ExamID:  svc.Codec.EncodeUint(exam.ID),
		UserID:  svc.Codec.EncodeUint(student.ID),
		Answers: []SubmittedAnswer{{QuestionIndex: 0, SelectedOptionIndex: 0}},
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	require.Len(t, res.Details, 1)
	assert.False(t, res.Details[0].Correct)
}

func TestSubmitRejectsUnknownIDs(t *testing.T) {
	svc, student, exam := newExamService(t)

	_, err := svc.Submit(SubmitInput{ExamID: "not-a-token"}, student.ID)
	assert.ErrorIs(t, err, util.ErrInvalidID)

	_, err = svc.Submit(SubmitInput{ExamID: svc.Codec.EncodeUint(exam.ID + 100)}, student.ID)
	require.Error(t, err)
	assert.True(t, util.IsKind(err, util.KindNotFound))
	assert.Equal(t, util.ErrExamOrUserNotFound.Error(), err.Error())
}

func TestExamUpdateLinksLessonsAndGroups(t *testing.T) {
	svc, student, exam := newExamService(t)
	db := svc.ExamRepo.DB
	lesson := createLesson(t, db, "intro", student, true)
	group := createGroup(t, db, "Grupa A", student, []model.User{*student}, nil, nil)
	active := false

	updated, err := svc.Update(exam.ID, ExamInput{
		Title:       model.Localized{Ro: "Examen final"},
		Description: model.Localized{Ro: "d"},
		Content:     model.Localized{Ro: "c"},
		ImageURL:    exam.ImageURL,
		Responsible: []string{svc.Codec.EncodeUint(student.ID)},
		Lessons:     []string{svc.Codec.EncodeUint(lesson.ID)},
		Groups:      []string{svc.Codec.EncodeUint(group.ID)},
		Questions:   twoQuestions(),
		IsActive:    &active,
		Timer:       "30",
	})
	require.NoError(t, err)
	assert.Equal(t, "examen-final", updated.Slug, "own slug is not a collision")
	assert.False(t, updated.IsActive)
	assert.Equal(t, []uint{lesson.ID}, lessonIDs(updated.Lessons))
	assert.Equal(t, []uint{group.ID}, groupIDs(updated.Groups))

	gotLesson, err := repository.NewLessonRepository(db).FindBySlug(lesson.Slug)
	require.NoError(t, err)
	assert.Equal(t, []uint{exam.ID}, examIDs(gotLesson.Exams))

	gotGroup, err := repository.NewGroupRepository(db).FindByID(group.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{exam.ID}, examIDs(gotGroup.Exams))

	_, err = svc.Update(exam.ID, ExamInput{Title: model.Localized{Ro: "x"}, Groups: []string{"not-a-token"}})
	assert.True(t, util.IsKind(err, util.KindBadRequest))
}
