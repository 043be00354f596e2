package service

import (
	"testing"

	"learning_center_backend/internal/model"
	"learning_center_backend/pkg/hashid"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testModels = []interface{}{
	&model.User{},
	&model.Group{},
	&model.Lesson{},
	&model.Exam{},
	&model.ExamAttempt{},
	&model.UserExamAttempt{},
	&model.Course{},
	&model.SubCourse{},
	&model.News{},
	&model.Contact{},
	&model.Homepage{},
	&model.FAQ{},
	&model.AboutUs{},
	&model.StatsLog{},
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(testModels...))
	return db
}

func testCodec() *hashid.Codec {
	return hashid.MustNew("service-test-secret")
}

func createUser(t *testing.T, db *gorm.DB, login, password string, role model.UserRole) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		Login:      login,
		Email:      login + "@example.com",
		Password:   string(hash),
		FirstName:  "Test",
		LastName:   "User",
		Role:       role,
		IsVerified: true,
		IsActive:   true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createLesson(t *testing.T, db *gorm.DB, slug string, creator *model.User, active bool) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{
		Title:       model.Localized{Ro: slug},
		Description: model.Localized{Ro: "d"},
		Content:     model.Localized{Ro: "c"},
		ImageURL:    "/uploads/private/lectie/" + slug + "/cover.png",
		Slug:        slug,
		CreatedByID: creator.ID,
		IsActive:    active,
	}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}

func createExam(t *testing.T, db *gorm.DB, slug string, creator *model.User, active bool) *model.Exam {
	t.Helper()
	exam := &model.Exam{
		Title:       model.Localized{Ro: slug},
		Description: model.Localized{Ro: "d"},
		Content:     model.Localized{Ro: "c"},
		ImageURL:    "/uploads/private/examen/" + slug + "/cover.png",
		Slug:        slug,
		CreatedByID: creator.ID,
		IsActive:    active,
		Questions:   twoQuestions(),
	}
	require.NoError(t, db.Create(exam).Error)
	return exam
}

// createGroup stores a group and its join rows without touching the linked
// records themselves.
func createGroup(t *testing.T, db *gorm.DB, title string, creator *model.User, users []model.User, lessons []model.Lesson, exams []model.Exam) *model.Group {
	t.Helper()
	group := &model.Group{
		Title:       model.Localized{Ro: title},
		CreatedByID: creator.ID,
		Users:       users,
		Lessons:     lessons,
		Exams:       exams,
	}
	require.NoError(t, db.Omit("CreatedBy", "Users.*", "Lessons.*", "Exams.*").Create(group).Error)
	return group
}

func lessonIDs(lessons []model.Lesson) []uint {
	ids := make([]uint, 0, len(lessons))
	for _, l := range lessons {
		ids = append(ids, l.ID)
	}
	return ids
}

func examIDs(exams []model.Exam) []uint {
	ids := make([]uint, 0, len(exams))
	for _, e := range exams {
		ids = append(ids, e.ID)
	}
	return ids
}

func groupIDs(groups []model.Group) []uint {
	ids := make([]uint, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids
}
