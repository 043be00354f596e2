package service

import (
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"strings"

	"gorm.io/datatypes"
)

type NewsService struct {
	NewsRepo *repository.NewsRepository
	Cache    *Cache
	Codec    *hashid.Codec
}

func NewNewsService(newsRepo *repository.NewsRepository, cache *Cache, codec *hashid.Codec) *NewsService {
	return &NewsService{NewsRepo: newsRepo, Cache: cache, Codec: codec}
}

type NewsInput struct {
	Title       model.Localized `json:"title" binding:"required"`
	Description model.Localized `json:"description" binding:"required"`
	Content     model.Localized `json:"content" binding:"required"`
	Tags        []string        `json:"tags" binding:"required,min=1,dive,required"`
	ImageURL    string          `json:"imageUrl" binding:"required"`
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func (s *NewsService) slugFor(title string, excludeID uint) (string, error) {
	return util.UniqueSlug(title, func(candidate string) (bool, error) {
		return s.NewsRepo.SlugTaken(candidate, excludeID)
	})
}

func (s *NewsService) apply(news *model.News, in NewsInput) {
	news.Title = in.Title
	news.Description = in.Description
	news.Content = in.Content
	news.Tags = datatypes.JSONSlice[string](cleanTags(in.Tags))
	news.ImageURL = in.ImageURL
}

// List pages over news. The blog listing passes a nil codec so ids stay
// hidden.
func (s *NewsService) List(filter repository.NewsFilter, p util.Pagination, codec *hashid.Codec) ([]dto.NewsView, int64, error) {
	news, total, err := s.NewsRepo.List(filter, p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToNewsViews(news, codec), total, nil
}

func (s *NewsService) Create(in NewsInput) (*model.News, error) {
	slug, err := s.slugFor(in.Title.Ro, 0)
	if err != nil {
		return nil, err
	}
	news := &model.News{Slug: slug}
	s.apply(news, in)
	if err := s.NewsRepo.Create(news); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(cacheKeyBlogTags)
	return news, nil
}

func (s *NewsService) GetBySlug(slug string) (*model.News, error) {
	news, err := s.NewsRepo.FindBySlug(slug)
	return news, notFoundAs(err, "News not found")
}

func (s *NewsService) Update(id uint, in NewsInput) (*model.News, error) {
	news, err := s.NewsRepo.FindByID(id)
	if err != nil {
		return nil, notFoundAs(err, "News not found")
	}
	if news.Slug, err = s.slugFor(in.Title.Ro, news.ID); err != nil {
		return nil, err
	}
	s.apply(news, in)
	if err := s.NewsRepo.Update(news); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(cacheKeyBlogTags)
	return news, nil
}

func (s *NewsService) Delete(id uint) error {
	news, err := s.NewsRepo.FindByID(id)
	if err != nil {
		return notFoundAs(err, "News not found")
	}
	if err := s.NewsRepo.Delete(news); err != nil {
		return err
	}
	s.Cache.Invalidate(cacheKeyBlogTags)
	return nil
}

// Tags returns the distinct blog tags, served from the cache when possible.
func (s *NewsService) Tags() ([]string, error) {
	var tags []string
	if s.Cache.Get(cacheKeyBlogTags, &tags) {
		return tags, nil
	}
	tags, err := s.NewsRepo.DistinctTags()
	if err != nil {
		return nil, err
	}
	s.Cache.Set(cacheKeyBlogTags, tags)
	return tags, nil
}
