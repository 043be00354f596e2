package service

import (
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// relationLoader turns lists of id tokens into the records they reference.
// Every token must decode; a list with a bad token fails with msg.
type relationLoader struct {
	Codec      *hashid.Codec
	UserRepo   *repository.UserRepository
	GroupRepo  *repository.GroupRepository
	LessonRepo *repository.LessonRepository
	ExamRepo   *repository.ExamRepository
}

func (l relationLoader) decode(tokens []string, msg string) ([]uint, error) {
	ids, err := l.Codec.DecodeUints(tokens)
	if err != nil {
		return nil, util.NewBadRequest(msg)
	}
	return ids, nil
}

func (l relationLoader) users(tokens []string, msg string) ([]model.User, error) {
	ids, err := l.decode(tokens, msg)
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	return l.UserRepo.FindByIDs(ids)
}

func (l relationLoader) groups(tokens []string, msg string) ([]model.Group, error) {
	ids, err := l.decode(tokens, msg)
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	return l.GroupRepo.FindByIDs(ids)
}

func (l relationLoader) lessons(tokens []string, msg string) ([]model.Lesson, error) {
	ids, err := l.decode(tokens, msg)
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	return l.LessonRepo.FindByIDs(ids)
}

func (l relationLoader) exams(tokens []string, msg string) ([]model.Exam, error) {
	ids, err := l.decode(tokens, msg)
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	return l.ExamRepo.FindByIDs(ids)
}

// creator resolves a createdBy token to an existing user id. An empty token
// yields 0 so callers can fall back to the session user.
func (l relationLoader) creator(token string) (uint, error) {
	if token == "" {
		return 0, nil
	}
	id, err := l.Codec.DecodeUint(token)
	if err != nil {
		return 0, util.NewBadRequest("Invalid createdBy ID")
	}
	if _, err := l.UserRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.NewNotFound("Creator not found")
		}
		return 0, err
	}
	return id, nil
}

// errNotVisible hides records the caller may not see behind a plain 404.
var errNotVisible = gorm.ErrRecordNotFound

func notFoundAs(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.NewNotFound(msg)
	}
	return err
}
