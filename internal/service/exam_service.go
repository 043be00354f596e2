package service

import (
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"learning_center_backend/pkg/monitoring"
	"time"

	"gorm.io/datatypes"
)

const examRelationsInvalid = "One or more responsible/lesson/group IDs are invalid"

type ExamService struct {
	ExamRepo *repository.ExamRepository
	UserRepo *repository.UserRepository
	Codec    *hashid.Codec
	loader   relationLoader
	Now      func() time.Time
}

func NewExamService(examRepo *repository.ExamRepository, userRepo *repository.UserRepository, groupRepo *repository.GroupRepository, lessonRepo *repository.LessonRepository, codec *hashid.Codec) *ExamService {
	return &ExamService{
		ExamRepo: examRepo,
		UserRepo: userRepo,
		Codec:    codec,
		loader: relationLoader{
			Codec:      codec,
			UserRepo:   userRepo,
			GroupRepo:  groupRepo,
			LessonRepo: lessonRepo,
			ExamRepo:   examRepo,
		},
		Now: time.Now,
	}
}

type ExamInput struct {
	Title       model.Localized  `json:"title" binding:"required"`
	Description model.Localized  `json:"description" binding:"required"`
	Content     model.Localized  `json:"content" binding:"required"`
	ImageURL    string           `json:"imageUrl" binding:"required"`
	CreatedBy   string           `json:"createdBy" binding:"required"`
	Responsible []string         `json:"responsible" binding:"required,min=1"`
	Lessons     []string         `json:"lessons"`
	Groups      []string         `json:"groups"`
	Questions   []model.Question `json:"questions" binding:"required,min=1,dive"`
	Deadline    *time.Time       `json:"deadline"`
	IsActive    *bool            `json:"isActive"`
	Timer       string           `json:"timer" binding:"max=50"`
}

type SubmitInput struct {
	ExamID  string            `json:"examId" binding:"required"`
	UserID  string            `json:"userId"`
	Answers []SubmittedAnswer `json:"answers" binding:"required"`
}

type SubmitResult struct {
	Success bool                  `json:"success"`
	Score   int                   `json:"score"`
	Total   int                   `json:"total"`
	Details []model.AttemptAnswer `json:"details"`
}

func (s *ExamService) relations(in ExamInput) (repository.ExamRelations, error) {
	var rel repository.ExamRelations
	var err error
	if rel.Responsible, err = s.loader.users(in.Responsible, examRelationsInvalid); err != nil {
		return rel, err
	}
	if rel.Lessons, err = s.loader.lessons(in.Lessons, examRelationsInvalid); err != nil {
		return rel, err
	}
	rel.Groups, err = s.loader.groups(in.Groups, examRelationsInvalid)
	return rel, err
}

func (s *ExamService) slugFor(title string, excludeID uint) (string, error) {
	return util.UniqueSlug(title, func(candidate string) (bool, error) {
		return s.ExamRepo.SlugTaken(candidate, excludeID)
	})
}

func (s *ExamService) apply(exam *model.Exam, in ExamInput) {
	exam.Title = in.Title
	exam.Description = in.Description
	exam.Content = in.Content
	exam.ImageURL = in.ImageURL
	exam.Questions = datatypes.JSONSlice[model.Question](in.Questions)
	exam.Deadline = in.Deadline
	exam.Timer = in.Timer
	if in.IsActive != nil {
		exam.IsActive = *in.IsActive
	}
}

func (s *ExamService) List(p util.Pagination) ([]dto.ExamView, int64, error) {
	exams, total, err := s.ExamRepo.List(p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToExamViews(exams, s.Codec, dto.ExamSummary), total, nil
}

func (s *ExamService) All() ([]dto.ExamView, error) {
	exams, err := s.ExamRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return dto.ToExamViews(exams, s.Codec, dto.ExamSummary), nil
}

func (s *ExamService) Create(in ExamInput) (*model.Exam, error) {
	creatorID, err := s.loader.creator(in.CreatedBy)
	if err != nil {
		return nil, err
	}
	rel, err := s.relations(in)
	if err != nil {
		return nil, err
	}
	slug, err := s.slugFor(in.Title.Ro, 0)
	if err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Slug:        slug,
		CreatedByID: creatorID,
		IsActive:    true,
		Responsible: rel.Responsible,
		Lessons:     rel.Lessons,
		Groups:      rel.Groups,
	}
	s.apply(exam, in)
	if err := s.ExamRepo.Create(exam); err != nil {
		return nil, err
	}
	return s.ExamRepo.FindBySlug(exam.Slug)
}

func (s *ExamService) GetBySlug(slug string) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindBySlug(slug)
	return exam, notFoundAs(err, "Exam not found")
}

// Update regenerates the slug, rewrites the exam and replaces its
// responsible, lesson and group lists.
func (s *ExamService) Update(id uint, in ExamInput) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(id)
	if err != nil {
		return nil, notFoundAs(err, "Exam not found")
	}
	if in.CreatedBy != "" {
		if exam.CreatedByID, err = s.loader.creator(in.CreatedBy); err != nil {
			return nil, err
		}
	}
	rel, err := s.relations(in)
	if err != nil {
		return nil, err
	}
	if exam.Slug, err = s.slugFor(in.Title.Ro, exam.ID); err != nil {
		return nil, err
	}
	s.apply(exam, in)
	if err := s.ExamRepo.Update(exam, rel); err != nil {
		return nil, err
	}
	return s.ExamRepo.FindBySlug(exam.Slug)
}

func (s *ExamService) Delete(id uint) error {
	exam, err := s.ExamRepo.FindByID(id)
	if err != nil {
		return notFoundAs(err, "Exam not found")
	}
	return s.ExamRepo.Delete(exam)
}

// Attempts pages over the exams that have been submitted at least once.
func (s *ExamService) Attempts(p util.Pagination) ([]dto.ExamView, int64, error) {
	exams, total, err := s.ExamRepo.ListWithAttempts(p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToExamViews(exams, s.Codec, dto.ExamSummary), total, nil
}

// Submit grades answers and records the result twice: once in the user's
// history and once on the exam. The writes are independent; the first
// failure is returned.
func (s *ExamService) Submit(in SubmitInput, sessionUserID uint) (*SubmitResult, error) {
	examID, err := s.Codec.DecodeUint(in.ExamID)
	if err != nil {
		return nil, util.ErrInvalidID
	}
	userID := sessionUserID
	if in.UserID != "" {
		if userID, err = s.Codec.DecodeUint(in.UserID); err != nil {
			return nil, util.ErrInvalidID
		}
	}

	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrExamOrUserNotFound.Error())
	}
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return nil, notFoundAs(err, util.ErrExamOrUserNotFound.Error())
	}

	score, details := Grade(exam.Questions, in.Answers)
	now := s.Now()

	if err := s.UserRepo.AddExamAttempt(&model.UserExamAttempt{
		UserID:      userID,
		ExamID:      exam.ID,
		Score:       score,
		Answers:     details,
		SubmittedAt: now,
	}); err != nil {
		return nil, err
	}
	if err := s.ExamRepo.AddAttempt(&model.ExamAttempt{
		ExamID:      exam.ID,
		UserID:      userID,
		Score:       score,
		Answers:     details,
		SubmittedAt: now,
	}); err != nil {
		return nil, err
	}
	monitoring.ExamSubmissions.Inc()

	return &SubmitResult{
		Success: true,
		Score:   score,
		Total:   len(exam.Questions),
		Details: details,
	}, nil
}
