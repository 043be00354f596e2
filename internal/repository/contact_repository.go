package repository

import (
	"learning_center_backend/internal/model"

	"gorm.io/gorm"
)

type ContactRepository struct {
	DB *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(contact *model.Contact) error {
	return r.DB.Create(contact).Error
}

func (r *ContactRepository) FindByID(id uint) (*model.Contact, error) {
	var contact model.Contact
	err := r.DB.First(&contact, id).Error
	return &contact, err
}

func (r *ContactRepository) List(offset, limit int) ([]model.Contact, int64, error) {
	var contacts []model.Contact
	var total int64
	if err := r.DB.Model(&model.Contact{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Order("created_at desc").Scopes(paginate(offset, limit)).Find(&contacts).Error
	return contacts, total, err
}

func (r *ContactRepository) MarkReplied(id uint) error {
	res := r.DB.Model(&model.Contact{}).Where("id = ?", id).Update("is_reply", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(contact *model.Contact) error {
	return r.DB.Unscoped().Delete(contact).Error
}
