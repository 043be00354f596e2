package service

import (
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"

	"gorm.io/datatypes"
)

const lessonRelationsInvalid = "One or more group/examen IDs are invalid"

type LessonService struct {
	LessonRepo *repository.LessonRepository
	Codec      *hashid.Codec
	loader     relationLoader
}

func NewLessonService(lessonRepo *repository.LessonRepository, userRepo *repository.UserRepository, groupRepo *repository.GroupRepository, examRepo *repository.ExamRepository, codec *hashid.Codec) *LessonService {
	return &LessonService{
		LessonRepo: lessonRepo,
		Codec:      codec,
		loader: relationLoader{
			Codec:      codec,
			UserRepo:   userRepo,
			GroupRepo:  groupRepo,
			LessonRepo: lessonRepo,
			ExamRepo:   examRepo,
		},
	}
}

type LessonInput struct {
	Title       model.Localized  `json:"title" binding:"required"`
	Description model.Localized  `json:"description" binding:"required"`
	Content     model.Localized  `json:"content" binding:"required"`
	ImageURL    string           `json:"imageUrl" binding:"required"`
	CreatedBy   string           `json:"createdBy" binding:"required"`
	Materials   []model.Material `json:"materials" binding:"dive"`
	Groups      []string         `json:"groups"`
	Examen      []string         `json:"examen"`
	IsActive    *bool            `json:"isActive"`
}

func (s *LessonService) slugFor(title string, excludeID uint) (string, error) {
	return util.UniqueSlug(title, func(candidate string) (bool, error) {
		return s.LessonRepo.SlugTaken(candidate, excludeID)
	})
}

func (s *LessonService) apply(lesson *model.Lesson, in LessonInput) {
	lesson.Title = in.Title
	lesson.Description = in.Description
	lesson.Content = in.Content
	lesson.ImageURL = in.ImageURL
	lesson.Materials = datatypes.JSONSlice[model.Material](in.Materials)
	if in.IsActive != nil {
		lesson.IsActive = *in.IsActive
	}
}

func (s *LessonService) List(p util.Pagination) ([]dto.LessonView, int64, error) {
	lessons, total, err := s.LessonRepo.List(p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToLessonViews(lessons, s.Codec, false), total, nil
}

func (s *LessonService) All() ([]dto.LessonView, error) {
	lessons, err := s.LessonRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return dto.ToLessonViews(lessons, s.Codec, false), nil
}

func (s *LessonService) Create(in LessonInput) (*model.Lesson, error) {
	creatorID, err := s.loader.creator(in.CreatedBy)
	if err != nil {
		return nil, err
	}
	groups, err := s.loader.groups(in.Groups, lessonRelationsInvalid)
	if err != nil {
		return nil, err
	}
	exams, err := s.loader.exams(in.Examen, lessonRelationsInvalid)
	if err != nil {
		return nil, err
	}
	slug, err := s.slugFor(in.Title.Ro, 0)
	if err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		Slug:        slug,
		CreatedByID: creatorID,
		IsActive:    true,
		Groups:      groups,
		Exams:       exams,
	}
	s.apply(lesson, in)
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return s.LessonRepo.FindBySlug(lesson.Slug)
}

func (s *LessonService) GetBySlug(slug string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindBySlug(slug)
	return lesson, notFoundAs(err, "Lesson not found")
}

// Update rewrites the lesson, regenerating its slug, and then adds it to
// the listed groups and exams. Existing links are kept.
func (s *LessonService) Update(id uint, in LessonInput) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		return nil, notFoundAs(err, "Lesson not found")
	}
	if lesson.CreatedByID, err = s.loader.creator(in.CreatedBy); err != nil {
		return nil, err
	}
	groups, err := s.loader.groups(in.Groups, lessonRelationsInvalid)
	if err != nil {
		return nil, err
	}
	exams, err := s.loader.exams(in.Examen, lessonRelationsInvalid)
	if err != nil {
		return nil, err
	}
	if lesson.Slug, err = s.slugFor(in.Title.Ro, lesson.ID); err != nil {
		return nil, err
	}

	s.apply(lesson, in)
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	if err := s.LessonRepo.AttachTo(lesson, groups, exams); err != nil {
		return nil, err
	}
	return s.LessonRepo.FindBySlug(lesson.Slug)
}

func (s *LessonService) Delete(id uint) error {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		return notFoundAs(err, "Lesson not found")
	}
	return s.LessonRepo.Delete(lesson)
}
