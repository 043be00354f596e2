package repository

import (
	"learning_center_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

// GroupRelations are the member lists of a group, already resolved to
// existing records.
type GroupRelations struct {
	Users       []model.User
	Responsible []model.User
	Lessons     []model.Lesson
	Exams       []model.Exam
}

func (r *GroupRepository) withRelations() *gorm.DB {
	return r.DB.
		Preload("CreatedBy").
		Preload("Responsible").
		Preload("Users").
		Preload("Lessons").
		Preload("Exams")
}

func (r *GroupRepository) Create(group *model.Group) error {
	return r.DB.Omit("CreatedBy", "Users.*", "Responsible.*", "Lessons.*", "Exams.*").Create(group).Error
}

func (r *GroupRepository) FindByID(id uint) (*model.Group, error) {
	var group model.Group
	err := r.withRelations().First(&group, id).Error
	return &group, err
}

func (r *GroupRepository) FindByIDs(ids []uint) ([]model.Group, error) {
	return findByIDs[model.Group](r.DB, ids)
}

func (r *GroupRepository) List(offset, limit int) ([]model.Group, int64, error) {
	var groups []model.Group
	var total int64
	if err := r.DB.Model(&model.Group{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.withRelations().Order("created_at desc").Scopes(paginate(offset, limit)).Find(&groups).Error
	return groups, total, err
}

func (r *GroupRepository) ListAll() ([]model.Group, error) {
	var groups []model.Group
	err := r.withRelations().Order("created_at desc").Find(&groups).Error
	return groups, err
}

// Update saves the group columns and replaces every relation list.
func (r *GroupRepository) Update(group *model.Group, rel GroupRelations) error {
	if err := r.DB.Omit(clause.Associations).Save(group).Error; err != nil {
		return err
	}
	if err := replaceAssociation(r.DB, group, "Users", rel.Users, len(rel.Users)); err != nil {
		return err
	}
	if err := replaceAssociation(r.DB, group, "Responsible", rel.Responsible, len(rel.Responsible)); err != nil {
		return err
	}
	if err := replaceAssociation(r.DB, group, "Lessons", rel.Lessons, len(rel.Lessons)); err != nil {
		return err
	}
	return replaceAssociation(r.DB, group, "Exams", rel.Exams, len(rel.Exams))
}

// Delete detaches the group from users, lessons and exams one table at a
// time, then removes it. The first failure stops the sequence.
func (r *GroupRepository) Delete(group *model.Group) error {
	for _, name := range []string{"Exams", "Lessons", "Users", "Responsible"} {
		if err := r.DB.Model(group).Association(name).Clear(); err != nil {
			return err
		}
	}
	return r.DB.Unscoped().Delete(group).Error
}
