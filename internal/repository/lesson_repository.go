package repository

import (
	"learning_center_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) withRelations() *gorm.DB {
	return r.DB.Preload("CreatedBy").Preload("Groups").Preload("Exams")
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Omit("CreatedBy", "Groups.*", "Exams.*").Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) FindBySlug(slug string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.withRelations().Where("slug = ?", slug).First(&lesson).Error
	return &lesson, err
}

func (r *LessonRepository) FindByIDs(ids []uint) ([]model.Lesson, error) {
	return findByIDs[model.Lesson](r.DB, ids)
}

// SlugTaken reports whether slug belongs to a lesson other than excludeID.
func (r *LessonRepository) SlugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Lesson{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *LessonRepository) List(offset, limit int) ([]model.Lesson, int64, error) {
	var lessons []model.Lesson
	var total int64
	if err := r.DB.Model(&model.Lesson{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.withRelations().Order("created_at desc").Scopes(paginate(offset, limit)).Find(&lessons).Error
	return lessons, total, err
}

func (r *LessonRepository) ListAll() ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.withRelations().Order("created_at desc").Find(&lessons).Error
	return lessons, err
}

func inGroups(db *gorm.DB, joinTable, column string, groupIDs []uint) *gorm.DB {
	return db.Table(joinTable).Select(column).Where("group_id IN ?", groupIDs)
}

// ListActiveForGroups returns active lessons attached to any of groupIDs.
func (r *LessonRepository) ListActiveForGroups(groupIDs []uint) ([]model.Lesson, error) {
	lessons := []model.Lesson{}
	if len(groupIDs) == 0 {
		return lessons, nil
	}
	err := r.DB.Preload("Groups").
		Where("is_active = ?", true).
		Where("id IN (?)", inGroups(r.DB, "group_lessons", "lesson_id", groupIDs)).
		Order("created_at desc").
		Find(&lessons).Error
	return lessons, err
}

// SharesGroup reports whether the lesson is attached to any of groupIDs.
func (r *LessonRepository) SharesGroup(lessonID uint, groupIDs []uint) (bool, error) {
	if len(groupIDs) == 0 {
		return false, nil
	}
	var count int64
	err := r.DB.Table("group_lessons").
		Where("lesson_id = ? AND group_id IN ?", lessonID, groupIDs).
		Count(&count).Error
	return count > 0, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Omit(clause.Associations).Save(lesson).Error
}

// AttachTo adds the lesson to the given groups and exams without dropping
// the links it already has.
func (r *LessonRepository) AttachTo(lesson *model.Lesson, groups []model.Group, exams []model.Exam) error {
	if err := appendAssociation(r.DB, lesson, "Groups", groups, len(groups)); err != nil {
		return err
	}
	return appendAssociation(r.DB, lesson, "Exams", exams, len(exams))
}

// Delete pulls the lesson out of exams and groups, then removes it.
func (r *LessonRepository) Delete(lesson *model.Lesson) error {
	for _, name := range []string{"Exams", "Groups"} {
		if err := r.DB.Model(lesson).Association(name).Clear(); err != nil {
			return err
		}
	}
	return r.DB.Unscoped().Delete(lesson).Error
}
