package repository

import (
	"learning_center_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindBySlug(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("slug = ?", slug).First(&course).Error
	return &course, err
}

func (r *CourseRepository) SlugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Course{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) List(offset, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64
	if err := r.DB.Model(&model.Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Order("created_at desc").Scopes(paginate(offset, limit)).Find(&courses).Error
	return courses, total, err
}

// Update saves the course. When the slug changed, subcourses follow it.
func (r *CourseRepository) Update(course *model.Course, oldSlug string) error {
	if err := r.DB.Save(course).Error; err != nil {
		return err
	}
	if oldSlug == "" || oldSlug == course.Slug {
		return nil
	}
	return r.DB.Model(&model.SubCourse{}).
		Where("course_slug = ?", oldSlug).
		Update("course_slug", course.Slug).Error
}

// Delete unlinks the course's subcourses and then removes the course.
func (r *CourseRepository) Delete(course *model.Course) error {
	err := r.DB.Model(&model.SubCourse{}).
		Where("course_slug = ?", course.Slug).
		Update("course_slug", nil).Error
	if err != nil {
		return err
	}
	return r.DB.Unscoped().Delete(course).Error
}

func (r *CourseRepository) CreateSubCourse(sub *model.SubCourse) error {
	return r.DB.Create(sub).Error
}

func (r *CourseRepository) ListSubCourses(courseSlug string, offset, limit int) ([]model.SubCourse, int64, error) {
	var subs []model.SubCourse
	var total int64
	query := r.DB.Model(&model.SubCourse{}).Where("course_slug = ?", courseSlug)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at asc").Scopes(paginate(offset, limit)).Find(&subs).Error
	return subs, total, err
}

func (r *CourseRepository) FindSubCourse(courseSlug string, id uint) (*model.SubCourse, error) {
	var sub model.SubCourse
	err := r.DB.Where("course_slug = ?", courseSlug).First(&sub, id).Error
	return &sub, err
}

func (r *CourseRepository) UpdateSubCourse(sub *model.SubCourse) error {
	return r.DB.Save(sub).Error
}

func (r *CourseRepository) DeleteSubCourse(sub *model.SubCourse) error {
	return r.DB.Unscoped().Delete(sub).Error
}
