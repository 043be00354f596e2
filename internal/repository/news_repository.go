package repository

import (
	"learning_center_backend/internal/model"
	"sort"

	"gorm.io/gorm"
)

type NewsRepository struct {
	DB *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{DB: db}
}

// NewsFilter matches Title against every language and Tag against the tag
// list, both case-insensitively.
type NewsFilter struct {
	Title string
	Tag   string
}

func (r *NewsRepository) Create(news *model.News) error {
	return r.DB.Create(news).Error
}

func (r *NewsRepository) FindByID(id uint) (*model.News, error) {
	var news model.News
	err := r.DB.First(&news, id).Error
	return &news, err
}

func (r *NewsRepository) FindBySlug(slug string) (*model.News, error) {
	var news model.News
	err := r.DB.Where("slug = ?", slug).First(&news).Error
	return &news, err
}

func (r *NewsRepository) SlugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&model.News{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *NewsRepository) List(filter NewsFilter, offset, limit int) ([]model.News, int64, error) {
	var news []model.News
	var total int64

	query := r.DB.Model(&model.News{})
	if filter.Title != "" {
		query = query.Where(likeClause(r.DB, jsonText(r.DB, "title")), containsPattern(filter.Title))
	}
	if filter.Tag != "" {
		// Tags are stored as a JSON array of strings, so a quoted match
		// hits whole tags only.
		query = query.Where(likeClause(r.DB, jsonText(r.DB, "tags")), containsPattern(`"`+filter.Tag+`"`))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at desc").Scopes(paginate(offset, limit)).Find(&news).Error
	return news, total, err
}

func (r *NewsRepository) Update(news *model.News) error {
	return r.DB.Save(news).Error
}

func (r *NewsRepository) Delete(news *model.News) error {
	return r.DB.Unscoped().Delete(news).Error
}

// DistinctTags returns every tag used by any news item, sorted.
func (r *NewsRepository) DistinctTags() ([]string, error) {
	var rows []model.News
	if err := r.DB.Select("tags").Find(&rows).Error; err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	tags := []string{}
	for _, row := range rows {
		for _, t := range row.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags, nil
}
