package service

import (
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"

	"gorm.io/datatypes"
)

// ContentService serves the homepage, FAQ and about-us singletons. Reads go
// through the cache; every save drops the cached copy.
type ContentService struct {
	Repo  *repository.SiteContentRepository
	Cache *Cache
}

func NewContentService(repo *repository.SiteContentRepository, cache *Cache) *ContentService {
	return &ContentService{Repo: repo, Cache: cache}
}

type HomepageInput struct {
	Slider    []model.HomepageBlock `json:"slider" binding:"dive"`
	Education []model.HomepageBlock `json:"education" binding:"dive"`
	Info      []model.HomepageBlock `json:"info" binding:"dive"`
}

type AboutUsInput struct {
	Title   model.Localized `json:"title" binding:"required"`
	Context model.Localized `json:"context" binding:"required"`
}

func (s *ContentService) Homepage() (dto.HomepageView, error) {
	var view dto.HomepageView
	if s.Cache.Get(cacheKeyHomepage, &view) {
		return view, nil
	}
	h, _, err := s.Repo.GetHomepage()
	if err != nil {
		return view, err
	}
	view = dto.ToHomepageView(h)
	s.Cache.Set(cacheKeyHomepage, view)
	return view, nil
}

func (s *ContentService) SaveHomepage(in HomepageInput) (dto.HomepageView, error) {
	h := &model.Homepage{
		Slider:    datatypes.JSONSlice[model.HomepageBlock](in.Slider),
		Education: datatypes.JSONSlice[model.HomepageBlock](in.Education),
		Info:      datatypes.JSONSlice[model.HomepageBlock](in.Info),
	}
	if err := s.Repo.SaveHomepage(h); err != nil {
		return dto.HomepageView{}, err
	}
	s.Cache.Invalidate(cacheKeyHomepage)
	return dto.ToHomepageView(h), nil
}

func (s *ContentService) FAQ() ([]model.FAQItem, error) {
	items := []model.FAQItem{}
	if s.Cache.Get(cacheKeyFAQ, &items) {
		return items, nil
	}
	f, found, err := s.Repo.GetFAQ()
	if err != nil {
		return nil, err
	}
	if found && f.Items != nil {
		items = f.Items
	}
	s.Cache.Set(cacheKeyFAQ, items)
	return items, nil
}

func (s *ContentService) SaveFAQ(items []model.FAQItem) ([]model.FAQItem, error) {
	if items == nil {
		items = []model.FAQItem{}
	}
	if err := s.Repo.SaveFAQ(&model.FAQ{Items: items}); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(cacheKeyFAQ)
	return items, nil
}

func (s *ContentService) AboutUs() (dto.AboutUsView, error) {
	var view dto.AboutUsView
	if s.Cache.Get(cacheKeyAboutUs, &view) {
		return view, nil
	}
	a, _, err := s.Repo.GetAboutUs()
	if err != nil {
		return view, err
	}
	view = dto.ToAboutUsView(a)
	s.Cache.Set(cacheKeyAboutUs, view)
	return view, nil
}

func (s *ContentService) SaveAboutUs(in AboutUsInput) (dto.AboutUsView, error) {
	a := &model.AboutUs{Title: in.Title, Context: in.Context}
	if err := s.Repo.SaveAboutUs(a); err != nil {
		return dto.AboutUsView{}, err
	}
	s.Cache.Invalidate(cacheKeyAboutUs)
	return dto.ToAboutUsView(a), nil
}
