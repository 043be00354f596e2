package dto

import (
	"learning_center_backend/internal/model"
	"learning_center_backend/pkg/hashid"
	"time"
)

type GroupView struct {
	ID          string          `json:"id"`
	Title       model.Localized `json:"title"`
	CreatedBy   *UserRef        `json:"createdBy"`
	Responsible []UserRef       `json:"responsible"`
	Users       []UserRef       `json:"users"`
	Lessons     []LessonRef     `json:"lessons"`
	Exams       []ExamRef       `json:"exams"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func ToGroupView(g *model.Group, codec *hashid.Codec) GroupView {
	return GroupView{
		ID:          codec.EncodeUint(g.ID),
		Title:       g.Title,
		CreatedBy:   ToUserRef(g.CreatedBy, codec),
		Responsible: ToUserRefs(g.Responsible, codec),
		Users:       ToUserRefs(g.Users, codec),
		Lessons:     ToLessonRefs(g.Lessons, codec),
		Exams:       ToExamRefs(g.Exams, codec),
		CreatedAt:   g.CreatedAt,
	}
}

func ToGroupViews(groups []model.Group, codec *hashid.Codec) []GroupView {
	out := make([]GroupView, 0, len(groups))
	for i := range groups {
		out = append(out, ToGroupView(&groups[i], codec))
	}
	return out
}
