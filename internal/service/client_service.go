package service

import (
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/pkg/hashid"
)

// ClientService serves the student area. Lessons and exams are visible only
// through a shared group; admins see everything.
type ClientService struct {
	UserRepo   *repository.UserRepository
	LessonRepo *repository.LessonRepository
	ExamRepo   *repository.ExamRepository
	Codec      *hashid.Codec
}

func NewClientService(userRepo *repository.UserRepository, lessonRepo *repository.LessonRepository, examRepo *repository.ExamRepository, codec *hashid.Codec) *ClientService {
	return &ClientService{UserRepo: userRepo, LessonRepo: lessonRepo, ExamRepo: examRepo, Codec: codec}
}

func (s *ClientService) sessionUser(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindProfile(userID)
	return user, notFoundAsUser(err)
}

func (s *ClientService) Profile(userID uint) (dto.UserView, error) {
	user, err := s.sessionUser(userID)
	if err != nil {
		return dto.UserView{}, err
	}
	return dto.ToUserView(user, s.Codec), nil
}

func (s *ClientService) Lessons(userID uint) ([]dto.LessonView, error) {
	user, err := s.sessionUser(userID)
	if err != nil {
		return nil, err
	}
	lessons, err := s.LessonRepo.ListActiveForGroups(user.GroupIDs())
	if err != nil {
		return nil, err
	}
	return dto.ToLessonViews(lessons, s.Codec, false), nil
}

func (s *ClientService) Lesson(userID uint, isAdmin bool, slug string) (dto.LessonView, error) {
	lesson, err := s.LessonRepo.FindBySlug(slug)
	if err != nil {
		return dto.LessonView{}, notFoundAs(err, "Lesson not found")
	}
	if !isAdmin {
		user, err := s.sessionUser(userID)
		if err != nil {
			return dto.LessonView{}, err
		}
		ok, err := s.LessonRepo.SharesGroup(lesson.ID, user.GroupIDs())
		if err != nil {
			return dto.LessonView{}, err
		}
		if !ok || !lesson.IsActive {
			return dto.LessonView{}, notFoundAs(errNotVisible, "Lesson not found")
		}
	}
	return dto.ToLessonView(lesson, s.Codec, true), nil
}

func (s *ClientService) Exams(userID uint) ([]dto.ExamView, error) {
	user, err := s.sessionUser(userID)
	if err != nil {
		return nil, err
	}
	exams, err := s.ExamRepo.ListActiveForGroups(user.GroupIDs())
	if err != nil {
		return nil, err
	}
	return dto.ToExamViews(exams, s.Codec, dto.ExamStudent), nil
}

func (s *ClientService) Exam(userID uint, isAdmin bool, slug string) (dto.ExamView, error) {
	exam, err := s.ExamRepo.FindBySlug(slug)
	if err != nil {
		return dto.ExamView{}, notFoundAs(err, "Exam not found")
	}
	if !isAdmin {
		user, err := s.sessionUser(userID)
		if err != nil {
			return dto.ExamView{}, err
		}
		ok, err := s.ExamRepo.SharesGroup(exam.ID, user.GroupIDs())
		if err != nil {
			return dto.ExamView{}, err
		}
		if !ok || !exam.IsActive {
			return dto.ExamView{}, notFoundAs(errNotVisible, "Exam not found")
		}
	}
	return dto.ToExamView(exam, s.Codec, dto.ExamStudent), nil
}
