package repository

import (
	"learning_center_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

// ExamRelations are the lists replaced on update.
type ExamRelations struct {
	Responsible []model.User
	Lessons     []model.Lesson
	Groups      []model.Group
}

func attemptUser(db *gorm.DB) *gorm.DB {
	return db.Select("id", "login", "first_name", "last_name", "email")
}

func (r *ExamRepository) withRelations() *gorm.DB {
	return r.DB.
		Preload("CreatedBy").
		Preload("Responsible").
		Preload("Lessons").
		Preload("Groups").
		Preload("Attempts", func(db *gorm.DB) *gorm.DB {
			return db.Order("submitted_at asc")
		}).
		Preload("Attempts.User", attemptUser)
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Omit("CreatedBy", "Responsible.*", "Lessons.*", "Groups.*", "Attempts").Create(exam).Error
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.First(&exam, id).Error
	return &exam, err
}

func (r *ExamRepository) FindBySlug(slug string) (*model.Exam, error) {
	var exam model.Exam
	err := r.withRelations().Where("slug = ?", slug).First(&exam).Error
	return &exam, err
}

func (r *ExamRepository) FindByIDs(ids []uint) ([]model.Exam, error) {
	return findByIDs[model.Exam](r.DB, ids)
}

func (r *ExamRepository) SlugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Exam{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *ExamRepository) List(offset, limit int) ([]model.Exam, int64, error) {
	var exams []model.Exam
	var total int64
	if err := r.DB.Model(&model.Exam{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.withRelations().Order("created_at desc").Scopes(paginate(offset, limit)).Find(&exams).Error
	return exams, total, err
}

func (r *ExamRepository) ListAll() ([]model.Exam, error) {
	var exams []model.Exam
	err := r.withRelations().Order("created_at desc").Find(&exams).Error
	return exams, err
}

// ListWithAttempts pages over the exams that have at least one submission.
func (r *ExamRepository) ListWithAttempts(offset, limit int) ([]model.Exam, int64, error) {
	var exams []model.Exam
	var total int64

	query := r.DB.Model(&model.Exam{}).
		Where("id IN (?)", r.DB.Model(&model.ExamAttempt{}).Select("exam_id"))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Attempts", func(db *gorm.DB) *gorm.DB {
			return db.Order("submitted_at desc")
		}).
		Preload("Attempts.User", attemptUser).
		Order("created_at desc").
		Scopes(paginate(offset, limit)).
		Find(&exams).Error
	return exams, total, err
}

func (r *ExamRepository) ListActiveForGroups(groupIDs []uint) ([]model.Exam, error) {
	exams := []model.Exam{}
	if len(groupIDs) == 0 {
		return exams, nil
	}
	err := r.DB.Preload("Groups").Preload("Lessons").
		Where("is_active = ?", true).
		Where("id IN (?)", inGroups(r.DB, "group_exams", "exam_id", groupIDs)).
		Order("created_at desc").
		Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) SharesGroup(examID uint, groupIDs []uint) (bool, error) {
	if len(groupIDs) == 0 {
		return false, nil
	}
	var count int64
	err := r.DB.Table("group_exams").
		Where("exam_id = ? AND group_id IN ?", examID, groupIDs).
		Count(&count).Error
	return count > 0, err
}

// Update saves the exam columns and replaces responsible, lessons and groups.
func (r *ExamRepository) Update(exam *model.Exam, rel ExamRelations) error {
	if err := r.DB.Omit(clause.Associations).Save(exam).Error; err != nil {
		return err
	}
	if err := replaceAssociation(r.DB, exam, "Responsible", rel.Responsible, len(rel.Responsible)); err != nil {
		return err
	}
	if err := replaceAssociation(r.DB, exam, "Lessons", rel.Lessons, len(rel.Lessons)); err != nil {
		return err
	}
	return replaceAssociation(r.DB, exam, "Groups", rel.Groups, len(rel.Groups))
}

// Delete pulls the exam out of lessons and groups, then removes it together
// with its exam-side attempts.
func (r *ExamRepository) Delete(exam *model.Exam) error {
	for _, name := range []string{"Lessons", "Groups", "Responsible"} {
		if err := r.DB.Model(exam).Association(name).Clear(); err != nil {
			return err
		}
	}
	if err := r.DB.Where("exam_id = ?", exam.ID).Delete(&model.ExamAttempt{}).Error; err != nil {
		return err
	}
	return r.DB.Unscoped().Delete(exam).Error
}

func (r *ExamRepository) AddAttempt(attempt *model.ExamAttempt) error {
	return r.DB.Omit("User").Create(attempt).Error
}

func (r *ExamRepository) CountAttempts(examID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamAttempt{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}
