package service

import (
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
)

const groupRelationsInvalid = "One or more user/responsible/lesson/exam IDs are invalid"

type GroupService struct {
	GroupRepo *repository.GroupRepository
	Codec     *hashid.Codec
	loader    relationLoader
}

func NewGroupService(groupRepo *repository.GroupRepository, userRepo *repository.UserRepository, lessonRepo *repository.LessonRepository, examRepo *repository.ExamRepository, codec *hashid.Codec) *GroupService {
	return &GroupService{
		GroupRepo: groupRepo,
		Codec:     codec,
		loader: relationLoader{
			Codec:      codec,
			UserRepo:   userRepo,
			GroupRepo:  groupRepo,
			LessonRepo: lessonRepo,
			ExamRepo:   examRepo,
		},
	}
}

type GroupInput struct {
	Title       model.Localized `json:"title" binding:"required"`
	Responsible []string        `json:"responsible" binding:"required"`
	Users       []string        `json:"users"`
	Lessons     []string        `json:"lessons"`
	Exams       []string        `json:"exams"`
	CreatedBy   string          `json:"createdBy"`
}

func (s *GroupService) relations(in GroupInput) (repository.GroupRelations, error) {
	var rel repository.GroupRelations
	var err error
	if rel.Users, err = s.loader.users(in.Users, groupRelationsInvalid); err != nil {
		return rel, err
	}
	if rel.Responsible, err = s.loader.users(in.Responsible, groupRelationsInvalid); err != nil {
		return rel, err
	}
	if rel.Lessons, err = s.loader.lessons(in.Lessons, groupRelationsInvalid); err != nil {
		return rel, err
	}
	rel.Exams, err = s.loader.exams(in.Exams, groupRelationsInvalid)
	return rel, err
}

func (s *GroupService) List(p util.Pagination) ([]dto.GroupView, int64, error) {
	groups, total, err := s.GroupRepo.List(p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToGroupViews(groups, s.Codec), total, nil
}

func (s *GroupService) All() ([]dto.GroupView, error) {
	groups, err := s.GroupRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return dto.ToGroupViews(groups, s.Codec), nil
}

// Create stores a group. Without createdBy the session user is the creator.
func (s *GroupService) Create(in GroupInput, sessionUserID uint) (*model.Group, error) {
	creatorID, err := s.loader.creator(in.CreatedBy)
	if err != nil {
		return nil, err
	}
	if creatorID == 0 {
		creatorID = sessionUserID
	}
	rel, err := s.relations(in)
	if err != nil {
		return nil, err
	}

	group := &model.Group{
		Title:       in.Title,
		CreatedByID: creatorID,
		Users:       rel.Users,
		Responsible: rel.Responsible,
		Lessons:     rel.Lessons,
		Exams:       rel.Exams,
	}
	if err := s.GroupRepo.Create(group); err != nil {
		return nil, err
	}
	return s.GroupRepo.FindByID(group.ID)
}

func (s *GroupService) Get(id uint) (*model.Group, error) {
	group, err := s.GroupRepo.FindByID(id)
	return group, notFoundAs(err, "Group not found")
}

// Update rewrites the title and replaces every member list.
func (s *GroupService) Update(id uint, in GroupInput) (*model.Group, error) {
	group, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if in.CreatedBy != "" {
		if group.CreatedByID, err = s.loader.creator(in.CreatedBy); err != nil {
			return nil, err
		}
	}
	rel, err := s.relations(in)
	if err != nil {
		return nil, err
	}
	group.Title = in.Title
	group.CreatedBy = nil
	if err := s.GroupRepo.Update(group, rel); err != nil {
		return nil, err
	}
	return s.GroupRepo.FindByID(group.ID)
}

func (s *GroupService) Delete(id uint) error {
	group, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.GroupRepo.Delete(group)
}
