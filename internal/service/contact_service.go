package service

import (
	"context"
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"strings"
)

type ContactService struct {
	ContactRepo *repository.ContactRepository
	Mailer      Mailer
	Codec       *hashid.Codec
}

func NewContactService(contactRepo *repository.ContactRepository, mailer Mailer, codec *hashid.Codec) *ContactService {
	return &ContactService{ContactRepo: contactRepo, Mailer: mailer, Codec: codec}
}

type ContactInput struct {
	FirstName string `json:"firstName" binding:"required,min=2"`
	LastName  string `json:"lastName" binding:"required,min=2"`
	Message   string `json:"message" binding:"required,min=5"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

type ReplyInput struct {
	ContactID string `json:"contactId"`
	Email     string `json:"email" binding:"required,email"`
	FullName  string `json:"fullName" binding:"required,min=2"`
	Subject   string `json:"subject" binding:"required,min=3"`
	Message   string `json:"message" binding:"required,min=5"`
}

func (s *ContactService) Create(in ContactInput) (*model.Contact, error) {
	phone := strings.TrimSpace(in.Phone)
	if !util.IsValidPhone(phone) {
		return nil, util.NewBadRequest("Invalid phone number")
	}
	contact := &model.Contact{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Message:   in.Message,
		Phone:     phone,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
	}
	if err := s.ContactRepo.Create(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) List(p util.Pagination) ([]dto.ContactView, int64, error) {
	contacts, total, err := s.ContactRepo.List(p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToContactViews(contacts, s.Codec), total, nil
}

func (s *ContactService) Delete(id uint) error {
	contact, err := s.ContactRepo.FindByID(id)
	if err != nil {
		return notFoundAs(err, "Contact not found")
	}
	return s.ContactRepo.Delete(contact)
}

// Reply mails an answer. With a contact id the contact is also flagged as
// answered once the mail is out.
func (s *ContactService) Reply(ctx context.Context, in ReplyInput) error {
	var contactID uint
	if in.ContactID != "" {
		id, err := s.Codec.DecodeUint(in.ContactID)
		if err != nil {
			return util.ErrInvalidID
		}
		contactID = id
	}

	err := sendTemplate(ctx, s.Mailer, in.Email, in.Subject, "contact_reply", mailData{
		FullName: in.FullName,
		Message:  in.Message,
	})
	if err != nil {
		return err
	}
	if contactID == 0 {
		return nil
	}
	return notFoundAs(s.ContactRepo.MarkReplied(contactID), "Contact not found")
}
