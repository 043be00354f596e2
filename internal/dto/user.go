// Package dto maps stored entities onto the JSON views returned by the API.
// Every identifier leaves the process in its encoded form.
package dto

import (
	"learning_center_backend/internal/model"
	"learning_center_backend/pkg/hashid"
	"time"
)

type GroupRef struct {
	ID    string          `json:"id"`
	Title model.Localized `json:"title"`
}

type UserRef struct {
	ID        string         `json:"id"`
	Login     string         `json:"login,omitempty"`
	Email     string         `json:"email"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Role      model.UserRole `json:"role,omitempty"`
}

type UserAttemptView struct {
	ID          string                `json:"id"`
	Exam        string                `json:"exam"`
	Score       int                   `json:"score"`
	Answers     []model.AttemptAnswer `json:"answers"`
	SubmittedAt time.Time             `json:"submittedAt"`
}

type UserView struct {
	ID            string            `json:"id"`
	Login         string            `json:"login"`
	Email         string            `json:"email"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Role          model.UserRole    `json:"role"`
	IsVerified    bool              `json:"isVerified"`
	IsTempAccount bool              `json:"isTempAccount"`
	IsActive      bool              `json:"isActive"`
	Groups        []GroupRef        `json:"groups"`
	ExamAttempts  []UserAttemptView `json:"examAttempts"`
	CreatedAt     time.Time         `json:"createdAt"`
}

type GroupIDView struct {
	ID string `json:"id"`
}

// SessionUserView is the user block of the login responses.
type SessionUserView struct {
	ID            string         `json:"id"`
	Email         string         `json:"email"`
	Role          model.UserRole `json:"role"`
	Groups        []GroupIDView  `json:"groups"`
	IsActive      bool           `json:"isActive"`
	IsTempAccount bool           `json:"isTempAccount"`
	IsVerified    bool           `json:"isVerified"`
	Login         string         `json:"login"`
}

func ToGroupRef(g *model.Group, codec *hashid.Codec) GroupRef {
	return GroupRef{ID: codec.EncodeUint(g.ID), Title: g.Title}
}

func ToGroupRefs(groups []model.Group, codec *hashid.Codec) []GroupRef {
	out := make([]GroupRef, 0, len(groups))
	for i := range groups {
		out = append(out, ToGroupRef(&groups[i], codec))
	}
	return out
}

func ToUserRef(u *model.User, codec *hashid.Codec) *UserRef {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &UserRef{
		ID:        codec.EncodeUint(u.ID),
		Login:     u.Login,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

func ToUserRefs(users []model.User, codec *hashid.Codec) []UserRef {
	out := make([]UserRef, 0, len(users))
	for i := range users {
		out = append(out, *ToUserRef(&users[i], codec))
	}
	return out
}

func ToUserAttemptView(a *model.UserExamAttempt, codec *hashid.Codec) UserAttemptView {
	answers := []model.AttemptAnswer(a.Answers)
	if answers == nil {
		answers = []model.AttemptAnswer{}
	}
	return UserAttemptView{
		ID:          codec.EncodeUint(a.ID),
		Exam:        codec.EncodeUint(a.ExamID),
		Score:       a.Score,
		Answers:     answers,
		SubmittedAt: a.SubmittedAt,
	}
}

func ToUserView(u *model.User, codec *hashid.Codec) UserView {
	attempts := make([]UserAttemptView, 0, len(u.ExamAttempts))
	for i := range u.ExamAttempts {
		attempts = append(attempts, ToUserAttemptView(&u.ExamAttempts[i], codec))
	}
	return UserView{
		ID:            codec.EncodeUint(u.ID),
		Login:         u.Login,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		IsVerified:    u.IsVerified,
		IsTempAccount: u.IsTempAccount,
		IsActive:      u.IsActive,
		Groups:        ToGroupRefs(u.Groups, codec),
		ExamAttempts:  attempts,
		CreatedAt:     u.CreatedAt,
	}
}

func ToUserViews(users []model.User, codec *hashid.Codec) []UserView {
	out := make([]UserView, 0, len(users))
	for i := range users {
		out = append(out, ToUserView(&users[i], codec))
	}
	return out
}

func ToSessionUserView(u *model.User, codec *hashid.Codec) SessionUserView {
	groups := make([]GroupIDView, 0, len(u.Groups))
	for _, g := range u.Groups {
		groups = append(groups, GroupIDView{ID: codec.EncodeUint(g.ID)})
	}
	return SessionUserView{
		ID:            codec.EncodeUint(u.ID),
		Email:         u.Email,
		Role:          u.Role,
		Groups:        groups,
		IsActive:      u.IsActive,
		IsTempAccount: u.IsTempAccount,
		IsVerified:    u.IsVerified,
		Login:         u.Login,
	}
}
