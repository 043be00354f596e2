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

func newGroupService(t *testing.T) (*GroupService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	svc := NewGroupService(
		repository.NewGroupRepository(db),
		repository.NewUserRepository(db),
		repository.NewLessonRepository(db),
		repository.NewExamRepository(db),
		testCodec(),
	)
	return svc, db
}

func TestGroupCreateResolvesMembers(t *testing.T) {
	svc, db := newGroupService(t)
	admin := createUser(t, db, "teacher", "secret1", model.RoleAdmin)
	student := createUser(t, db, "student", "secret1", model.RoleClient)
	lesson := createLesson(t, db, "intro", admin, true)
	exam := createExam(t, db, "final", admin, true)

	group, err := svc.Create(GroupInput{
		Title:       model.Localized{Ro: "Grupa A"},
		Responsible: []string{svc.Codec.EncodeUint(admin.ID)},
		Users:       []string{svc.Codec.EncodeUint(student.ID)},
		Lessons:     []string{svc.Codec.EncodeUint(lesson.ID)},
		Exams:       []string{svc.Codec.EncodeUint(exam.ID)},
	}, admin.ID)
	require.NoError(t, err)

	assert.Equal(t, admin.ID, group.CreatedByID, "session user is the default creator")
	require.Len(t, group.Users, 1)
	assert.Equal(t, student.ID, group.Users[0].ID)
	require.Len(t, group.Responsible, 1)
	assert.Equal(t, []uint{lesson.ID}, lessonIDs(group.Lessons))
	assert.Equal(t, []uint{exam.ID}, examIDs(group.Exams))

	_, err = svc.Create(GroupInput{
		Title:       model.Localized{Ro: "Grupa B"},
		Responsible: []string{"not-a-token"},
	}, admin.ID)
	assert.True(t, util.IsKind(err, util.KindBadRequest))
}

func TestGroupUpdateReplacesMembers(t *testing.T) {
	svc, db := newGroupService(t)
	admin := createUser(t, db, "teacher", "secret1", model.RoleAdmin)
	first := createLesson(t, db, "intro", admin, true)
	second := createLesson(t, db, "week-2", admin, true)
	group := createGroup(t, db, "Grupa A", admin, nil, []model.Lesson{*first}, nil)

	updated, err := svc.Update(group.ID, GroupInput{
		Title:       model.Localized{Ro: "Grupa A+"},
		Responsible: []string{svc.Codec.EncodeUint(admin.ID)},
		Lessons:     []string{svc.Codec.EncodeUint(second.ID)},
	})
	require.NoError(t, err)

	assert.Equal(t, "Grupa A+", updated.Title.Ro)
	assert.Equal(t, []uint{second.ID}, lessonIDs(updated.Lessons))
	assert.Empty(t, updated.Exams)
}

func TestGroupDeletePullsGroupFromEverything(t *testing.T) {
	svc, db := newGroupService(t)
	admin := createUser(t, db, "teacher", "secret1", model.RoleAdmin)
	student := createUser(t, db, "student", "secret1", model.RoleClient)
	lesson := createLesson(t, db, "intro", admin, true)
	exam := createExam(t, db, "final", admin, true)
	group := createGroup(t, db, "Grupa A", admin, []model.User{*student}, []model.Lesson{*lesson}, []model.Exam{*exam})
	other := createGroup(t, db, "Grupa B", admin, []model.User{*student}, nil, nil)

	require.NoError(t, svc.Delete(group.ID))

	_, err := svc.Get(group.ID)
	assert.True(t, util.IsKind(err, util.KindNotFound))

	user, err := repository.NewUserRepository(db).FindByID(student.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{other.ID}, groupIDs(user.Groups), "other memberships survive")

	gotLesson, err := repository.NewLessonRepository(db).FindBySlug(lesson.Slug)
	require.NoError(t, err)
	assert.Empty(t, gotLesson.Groups)

	gotExam, err := repository.NewExamRepository(db).FindBySlug(exam.Slug)
	require.NoError(t, err)
	assert.Empty(t, gotExam.Groups)

	var links int64
	require.NoError(t, db.Table("group_users").Where("group_id = ?", group.ID).Count(&links).Error)
	assert.Zero(t, links)

	assert.True(t, util.IsKind(svc.Delete(group.ID), util.KindNotFound))
}
