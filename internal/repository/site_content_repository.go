package repository

import (
	"learning_center_backend/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SiteContentRepository stores the homepage, FAQ and about-us singletons.
// Each table holds at most one row; saving upserts it.
type SiteContentRepository struct {
	DB *gorm.DB
}

func NewSiteContentRepository(db *gorm.DB) *SiteContentRepository {
	return &SiteContentRepository{DB: db}
}

// first loads the singleton row into dst. found is false when the table is
// still empty.
func (r *SiteContentRepository) first(dst interface{}) (bool, error) {
	err := r.DB.Order("id asc").First(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *SiteContentRepository) GetHomepage() (*model.Homepage, bool, error) {
	var h model.Homepage
	found, err := r.first(&h)
	return &h, found, err
}

func (r *SiteContentRepository) SaveHomepage(h *model.Homepage) error {
	var current model.Homepage
	found, err := r.first(&current)
	if err != nil {
		return err
	}
	if !found {
		return r.DB.Create(h).Error
	}
	h.BaseModel = current.BaseModel
	return r.DB.Save(h).Error
}

func (r *SiteContentRepository) GetFAQ() (*model.FAQ, bool, error) {
	var f model.FAQ
	found, err := r.first(&f)
	return &f, found, err
}

func (r *SiteContentRepository) SaveFAQ(f *model.FAQ) error {
	var current model.FAQ
	found, err := r.first(&current)
	if err != nil {
		return err
	}
	if !found {
		return r.DB.Create(f).Error
	}
	f.BaseModel = current.BaseModel
	return r.DB.Save(f).Error
}

func (r *SiteContentRepository) GetAboutUs() (*model.AboutUs, bool, error) {
	var a model.AboutUs
	found, err := r.first(&a)
	return &a, found, err
}

func (r *SiteContentRepository) SaveAboutUs(a *model.AboutUs) error {
	var current model.AboutUs
	found, err := r.first(&current)
	if err != nil {
		return err
	}
	if !found {
		return r.DB.Create(a).Error
	}
	a.BaseModel = current.BaseModel
	return r.DB.Save(a).Error
}
