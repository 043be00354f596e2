package service

import (
	"testing"

	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func courseInput(title string) CourseInput {
	return CourseInput{
		Title:       model.Localized{Ro: title},
		Description: model.Localized{Ro: "desc"},
		Content:     model.Localized{Ro: "content"},
		ImageURL:    "/uploads/public/course/intro/cover.png",
		Features: model.CourseFeatures{
			Lectures:     "12",
			Quizzes:      "3",
			Duration:     6,
			DurationType: "weeks",
			SkillLevel:   "beginner",
			Language:     "ro",
		},
	}
}

func newCourseService(t *testing.T) *CourseService {
	t.Helper()
	return NewCourseService(repository.NewCourseRepository(openTestDB(t)), testCodec())
}

func TestCourseSlugsAreUnique(t *testing.T) {
	svc := newCourseService(t)

	first, err := svc.Create(courseInput("Intro Course"))
	require.NoError(t, err)
	second, err := svc.Create(courseInput("Intro Course"))
	require.NoError(t, err)

	assert.Equal(t, "intro-course", first.Slug)
	assert.Equal(t, "intro-course-1", second.Slug)

	// updating with the same title keeps the slug
	updated, err := svc.Update(first.ID, courseInput("Intro Course"))
	require.NoError(t, err)
	assert.Equal(t, "intro-course", updated.Slug)
}

func TestSubcoursesFollowParentSlug(t *testing.T) {
	svc := newCourseService(t)

	course, err := svc.Create(courseInput("Phonetics Basics"))
	require.NoError(t, err)

	sub, err := svc.CreateSubCourse(course.Slug, SubCourseInput{
		Title:       model.Localized{Ro: "Module 1"},
		Description: model.Localized{Ro: "d"},
		ImageURL:    "/uploads/public/subcourse/m1/cover.png",
		Price:       decimal.RequireFromString("149.50"),
	})
	require.NoError(t, err)

	_, err = svc.Update(course.ID, courseInput("Advanced Phonetics"))
	require.NoError(t, err)

	detail, err := svc.Detail("advanced-phonetics")
	require.NoError(t, err)
	require.Len(t, detail.Subcourses, 1)
	assert.Equal(t, svc.Codec.EncodeUint(sub.ID), detail.Subcourses[0].ID)
	assert.True(t, decimal.RequireFromString("149.5").Equal(detail.Subcourses[0].Price))

	_, err = svc.Detail("phonetics-basics")
	assert.True(t, util.IsKind(err, util.KindNotFound))
}

func TestSubcourseRejectsNegativePrice(t *testing.T) {
	svc := newCourseService(t)
	course, err := svc.Create(courseInput("Pricing"))
	require.NoError(t, err)

	_, err = svc.CreateSubCourse(course.Slug, SubCourseInput{Price: decimal.NewFromInt(-1)})
	assert.True(t, util.IsKind(err, util.KindBadRequest))

	_, err = svc.CreateSubCourse("missing", SubCourseInput{})
	assert.True(t, util.IsKind(err, util.KindNotFound))
}
