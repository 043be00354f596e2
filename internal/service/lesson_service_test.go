package service

import (
	"testing"

	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLessonService(t *testing.T) (*LessonService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	svc := NewLessonService(
		repository.NewLessonRepository(db),
		repository.NewUserRepository(db),
		repository.NewGroupRepository(db),
		repository.NewExamRepository(db),
		testCodec(),
	)
	return svc, db
}

func lessonInput(title string, creator *model.User, svc *LessonService) LessonInput {
	return LessonInput{
		Title:       model.Localized{Ro: title},
		Description: model.Localized{Ro: "d"},
		Content:     model.Localized{Ro: "c"},
		ImageURL:    "/uploads/private/lectie/intro/cover.png",
		CreatedBy:   svc.Codec.EncodeUint(creator.ID),
		Materials:   []model.Material{{Name: "Fișa", Type: "pdf", URL: "/uploads/private/lectie/intro/fisa.pdf"}},
	}
}

func TestLessonCreateSlugsAndLinks(t *testing.T) {
	svc, db := newLessonService(t)
	admin := createUser(t, db, "teacher", "secret1", model.RoleAdmin)
	group := createGroup(t, db, "Grupa A", admin, nil, nil, nil)

	in := lessonInput("Lecția 1: Sunete", admin, svc)
	in.Groups = []string{svc.Codec.EncodeUint(group.ID)}
	first, err := svc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, "lectia-1-sunete", first.Slug)
	assert.True(t, first.IsActive)
	assert.Equal(t, []uint{group.ID}, groupIDs(first.Groups))
	require.Len(t, first.Materials, 1)

	second, err := svc.Create(lessonInput("Lecția 1: Sunete", admin, svc))
	require.NoError(t, err)
	assert.Equal(t, "lectia-1-sunete-1", second.Slug)

	bad := lessonInput("Lecția 2", admin, svc)
	bad.Examen = []string{"not-a-token"}
	_, err = svc.Create(bad)
	assert.True(t, util.IsKind(err, util.KindBadRequest))
}

func TestLessonUpdateAddsToGroupsAndExams(t *testing.T) {
	svc, db := newLessonService(t)
	admin := createUser(t, db, "teacher", "secret1", model.RoleAdmin)
	lesson := createLesson(t, db, "intro", admin, true)
	kept := createGroup(t, db, "Grupa A", admin, nil, []model.Lesson{*lesson}, nil)
	added := createGroup(t, db, "Grupa B", admin, nil, nil, nil)
	exam := createExam(t, db, "final", admin, true)

	in := lessonInput("Introducere", admin, svc)
	in.Groups = []string{svc.Codec.EncodeUint(added.ID)}
	in.Examen = []string{svc.Codec.EncodeUint(exam.ID)}
	updated, err := svc.Update(lesson.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "introducere", updated.Slug)
	assert.ElementsMatch(t, []uint{kept.ID, added.ID}, groupIDs(updated.Groups), "existing links are kept")
	assert.Equal(t, []uint{exam.ID}, examIDs(updated.Exams))

	gotGroup, err := repository.NewGroupRepository(db).FindByID(added.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{lesson.ID}, lessonIDs(gotGroup.Lessons))

	gotExam, err := repository.NewExamRepository(db).FindBySlug(exam.Slug)
	require.NoError(t, err)
	assert.Equal(t, []uint{lesson.ID}, lessonIDs(gotExam.Lessons))

	// the same update again must not duplicate the links
	_, err = svc.Update(lesson.ID, in)
	require.NoError(t, err)
	var links int64
	require.NoError(t, db.Table("group_lessons").Where("lesson_id = ?", lesson.ID).Count(&links).Error)
	assert.Equal(t, int64(2), links)
}

func TestLessonUpdateAndDeleteUnknownID(t *testing.T) {
	svc, db := newLessonService(t)
	admin := createUser(t, db, "teacher", "secret1", model.RoleAdmin)

	_, err := svc.Update(404, lessonInput("X", admin, svc))
	assert.True(t, util.IsKind(err, util.KindNotFound))
	assert.True(t, util.IsKind(svc.Delete(404), util.KindNotFound))
}

func TestLessonDeleteDetachesGroups(t *testing.T) {
	svc, db := newLessonService(t)
	admin := createUser(t, db, "teacher", "secret1", model.RoleAdmin)
	lesson := createLesson(t, db, "intro", admin, true)
	group := createGroup(t, db, "Grupa A", admin, nil, []model.Lesson{*lesson}, nil)

	require.NoError(t, svc.Delete(lesson.ID))

	gotGroup, err := repository.NewGroupRepository(db).FindByID(group.ID)
	require.NoError(t, err)
	assert.Empty(t, gotGroup.Lessons)
	_, err = svc.GetBySlug("intro")
	assert.True(t, util.IsKind(err, util.KindNotFound))
}
