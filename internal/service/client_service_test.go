package service

import (
	"testing"

	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clientFixture struct {
	svc     *ClientService
	admin   *model.User
	student *model.User
}

// newClientFixture puts the student in "Grupa A", which holds the "shared"
// lesson and exam and an inactive "hidden" pair. The "foreign" pair belongs
// to a group the student is not in.
func newClientFixture(t *testing.T) clientFixture {
	t.Helper()
	db := openTestDB(t)
	admin := createUser(t, db, "teacher", "secret1", model.RoleAdmin)
	student := createUser(t, db, "student", "secret1", model.RoleClient)

	shared := createLesson(t, db, "shared", admin, true)
	hidden := createLesson(t, db, "hidden", admin, false)
	foreign := createLesson(t, db, "foreign", admin, true)
	sharedExam := createExam(t, db, "shared-exam", admin, true)
	hiddenExam := createExam(t, db, "hidden-exam", admin, false)
	foreignExam := createExam(t, db, "foreign-exam", admin, true)

	createGroup(t, db, "Grupa A", admin, []model.User{*student},
		[]model.Lesson{*shared, *hidden}, []model.Exam{*sharedExam, *hiddenExam})
	createGroup(t, db, "Grupa B", admin, []model.User{*admin},
		[]model.Lesson{*foreign}, []model.Exam{*foreignExam})

	svc := NewClientService(
		repository.NewUserRepository(db),
		repository.NewLessonRepository(db),
		repository.NewExamRepository(db),
		testCodec(),
	)
	return clientFixture{svc: svc, admin: admin, student: student}
}

func TestClientListsOnlyActiveContentOfOwnGroups(t *testing.T) {
	f := newClientFixture(t)

	lessons, err := f.svc.Lessons(f.student.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "shared", lessons[0].Slug)

	exams, err := f.svc.Exams(f.student.ID)
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, "shared-exam", exams[0].Slug)
}

func TestClientLessonOutsideGroupsIsNotFound(t *testing.T) {
	f := newClientFixture(t)

	view, err := f.svc.Lesson(f.student.ID, false, "shared")
	require.NoError(t, err)
	assert.Equal(t, "shared", view.Slug)

	for _, slug := range []string{"foreign", "hidden", "missing"} {
		_, err := f.svc.Lesson(f.student.ID, false, slug)
		assert.True(t, util.IsKind(err, util.KindNotFound), slug)
	}

	view, err = f.svc.Lesson(f.student.ID, true, "foreign")
	require.NoError(t, err, "admins skip the group check")
	assert.Equal(t, "foreign", view.Slug)
}

func TestClientExamOutsideGroupsIsNotFound(t *testing.T) {
	f := newClientFixture(t)

	view, err := f.svc.Exam(f.student.ID, false, "shared-exam")
	require.NoError(t, err)
	assert.Equal(t, "shared-exam", view.Slug)

	for _, slug := range []string{"foreign-exam", "hidden-exam", "missing"} {
		_, err := f.svc.Exam(f.student.ID, false, slug)
		assert.True(t, util.IsKind(err, util.KindNotFound), slug)
	}

	_, err = f.svc.Exam(f.admin.ID, true, "hidden-exam")
	assert.NoError(t, err, "admins see inactive exams too")
}

func TestClientWithoutGroupsSeesNothing(t *testing.T) {
	f := newClientFixture(t)
	loner := createUser(t, f.svc.UserRepo.DB, "loner", "secret1", model.RoleClient)

	lessons, err := f.svc.Lessons(loner.ID)
	require.NoError(t, err)
	assert.Empty(t, lessons)

	_, err = f.svc.Lesson(loner.ID, false, "shared")
	assert.True(t, util.IsKind(err, util.KindNotFound))
}
