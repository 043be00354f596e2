package service

import (
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	Codec      *hashid.Codec
}

func NewCourseService(courseRepo *repository.CourseRepository, codec *hashid.Codec) *CourseService {
	return &CourseService{CourseRepo: courseRepo, Codec: codec}
}

type CourseInput struct {
	Title       model.Localized      `json:"title" binding:"required"`
	Description model.Localized      `json:"description" binding:"required"`
	Content     model.Localized      `json:"content" binding:"required"`
	ImageURL    string               `json:"imageUrl" binding:"required"`
	Features    model.CourseFeatures `json:"features" binding:"required"`
	Alert       []model.CourseAlert  `json:"alert" binding:"dive"`
}

type SubCourseInput struct {
	Title       model.Localized `json:"title" binding:"required"`
	Description model.Localized `json:"description" binding:"required"`
	ImageURL    string          `json:"imageUrl" binding:"required"`
	Price       decimal.Decimal `json:"price"`
}

func (s *CourseService) slugFor(title string, excludeID uint) (string, error) {
	return util.UniqueSlug(title, func(candidate string) (bool, error) {
		return s.CourseRepo.SlugTaken(candidate, excludeID)
	})
}

func (s *CourseService) apply(course *model.Course, in CourseInput) {
	course.Title = in.Title
	course.Description = in.Description
	course.Content = in.Content
	course.ImageURL = in.ImageURL
	course.Features = datatypes.NewJSONType(in.Features)
	course.Alert = datatypes.JSONSlice[model.CourseAlert](in.Alert)
}

func (s *CourseService) List(p util.Pagination) ([]dto.CourseView, int64, error) {
	courses, total, err := s.CourseRepo.List(p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToCourseViews(courses, s.Codec), total, nil
}

func (s *CourseService) Create(in CourseInput) (*model.Course, error) {
	slug, err := s.slugFor(in.Title.Ro, 0)
	if err != nil {
		return nil, err
	}
	course := &model.Course{Slug: slug}
	s.apply(course, in)
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

// Update rewrites the course. A new title moves the slug and the subcourses
// move with it.
func (s *CourseService) Update(id uint, in CourseInput) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, notFoundAs(err, "Course not found")
	}
	oldSlug := course.Slug
	if course.Slug, err = s.slugFor(in.Title.Ro, course.ID); err != nil {
		return nil, err
	}
	s.apply(course, in)
	if err := s.CourseRepo.Update(course, oldSlug); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(id uint) error {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return notFoundAs(err, "Course not found")
	}
	return s.CourseRepo.Delete(course)
}

// Detail returns a course together with every subcourse linked to it.
func (s *CourseService) Detail(slug string) (*dto.CourseDetailView, error) {
	course, err := s.CourseRepo.FindBySlug(slug)
	if err != nil {
		return nil, notFoundAs(err, "Course not found")
	}
	subs, _, err := s.CourseRepo.ListSubCourses(course.Slug, 0, 0)
	if err != nil {
		return nil, err
	}
	return &dto.CourseDetailView{
		Course:     dto.ToCourseView(course, s.Codec),
		Subcourses: dto.ToSubCourseViews(subs, s.Codec),
	}, nil
}

func (s *CourseService) ListSubCourses(courseSlug string, p util.Pagination) ([]dto.SubCourseView, int64, error) {
	subs, total, err := s.CourseRepo.ListSubCourses(courseSlug, p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToSubCourseViews(subs, s.Codec), total, nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return util.NewBadRequest("price must be greater than or equal to 0")
	}
	return nil
}

func (s *CourseService) CreateSubCourse(courseSlug string, in SubCourseInput) (*model.SubCourse, error) {
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindBySlug(courseSlug)
	if err != nil {
		return nil, notFoundAs(err, "Parent course not found")
	}
	slug := course.Slug
	sub := &model.SubCourse{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Price:       in.Price,
		CourseSlug:  &slug,
	}
	if err := s.CourseRepo.CreateSubCourse(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *CourseService) GetSubCourse(courseSlug string, id uint) (*model.SubCourse, error) {
	sub, err := s.CourseRepo.FindSubCourse(courseSlug, id)
	return sub, notFoundAs(err, "Subcourse not found")
}

func (s *CourseService) UpdateSubCourse(courseSlug string, id uint, in SubCourseInput) (*model.SubCourse, error) {
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	sub, err := s.GetSubCourse(courseSlug, id)
	if err != nil {
		return nil, err
	}
	sub.Title = in.Title
	sub.Description = in.Description
	sub.ImageURL = in.ImageURL
	sub.Price = in.Price
	if err := s.CourseRepo.UpdateSubCourse(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *CourseService) DeleteSubCourse(courseSlug string, id uint) error {
	sub, err := s.GetSubCourse(courseSlug, id)
	if err != nil {
		return err
	}
	return s.CourseRepo.DeleteSubCourse(sub)
}
