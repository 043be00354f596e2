package dto

import (
	"learning_center_backend/internal/model"
	"learning_center_backend/pkg/hashid"
	"time"
)

type LessonRef struct {
	ID          string          `json:"id"`
	Title       model.Localized `json:"title"`
	Description model.Localized `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Slug        string          `json:"slug"`
}

type LessonView struct {
	ID          string           `json:"id"`
	Title       model.Localized  `json:"title"`
	Description model.Localized  `json:"description"`
	Content     model.Localized  `json:"content"`
	ImageURL    string           `json:"imageUrl"`
	Slug        string           `json:"slug"`
	IsActive    bool             `json:"isActive"`
	CreatedBy   *UserRef         `json:"createdBy"`
	Groups      []GroupRef       `json:"groups"`
	Examen      []ExamRef        `json:"examen"`
	Materials   []model.Material `json:"materials,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func ToLessonRefs(lessons []model.Lesson, codec *hashid.Codec) []LessonRef {
	out := make([]LessonRef, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, LessonRef{
			ID:          codec.EncodeUint(l.ID),
			Title:       l.Title,
			Description: l.Description,
			ImageURL:    l.ImageURL,
			Slug:        l.Slug,
		})
	}
	return out
}

// ToLessonView maps a lesson. withMaterials controls whether the material
// list is included; collection views leave it out.
func ToLessonView(l *model.Lesson, codec *hashid.Codec, withMaterials bool) LessonView {
	v := LessonView{
		ID:          codec.EncodeUint(l.ID),
		Title:       l.Title,
		Description: l.Description,
		Content:     l.Content,
		ImageURL:    l.ImageURL,
		Slug:        l.Slug,
		IsActive:    l.IsActive,
		CreatedBy:   ToUserRef(l.CreatedBy, codec),
		Groups:      ToGroupRefs(l.Groups, codec),
		Examen:      ToExamRefs(l.Exams, codec),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if withMaterials {
		v.Materials = []model.Material(l.Materials)
		if v.Materials == nil {
			v.Materials = []model.Material{}
		}
	}
	return v
}

func ToLessonViews(lessons []model.Lesson, codec *hashid.Codec, withMaterials bool) []LessonView {
	out := make([]LessonView, 0, len(lessons))
	for i := range lessons {
		out = append(out, ToLessonView(&lessons[i], codec, withMaterials))
	}
	return out
}
