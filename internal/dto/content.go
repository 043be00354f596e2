package dto

import (
	"learning_center_backend/internal/model"
	"learning_center_backend/pkg/hashid"
	"time"

	"github.com/shopspring/decimal"
)

type CourseView struct {
	ID          string               `json:"id"`
	Title       model.Localized      `json:"title"`
	Description model.Localized      `json:"description"`
	Content     model.Localized      `json:"content"`
	ImageURL    string               `json:"imageUrl"`
	Slug        string               `json:"slug"`
	Features    model.CourseFeatures `json:"features"`
	Alert       []model.CourseAlert  `json:"alert"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type SubCourseView struct {
	ID          string          `json:"id"`
	Title       model.Localized `json:"title"`
	Description model.Localized `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Price       decimal.Decimal `json:"price"`
	CourseSlug  *string         `json:"courseSlug"`
}

type CourseDetailView struct {
	Course     CourseView      `json:"course"`
	Subcourses []SubCourseView `json:"subcourses"`
}

// NewsView doubles as the public blog view, which leaves ID empty.
type NewsView struct {
	ID          string          `json:"id,omitempty"`
	Title       model.Localized `json:"title"`
	Description model.Localized `json:"description"`
	Content     model.Localized `json:"content"`
	Tags        []string        `json:"tags"`
	ImageURL    string          `json:"imageUrl"`
	Slug        string          `json:"slug"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type ContactView struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Message   string    `json:"message"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	IsReply   bool      `json:"isReply"`
	CreatedAt time.Time `json:"createdAt"`
}

type StatsLogView struct {
	ID             string    `json:"id"`
	IP             string    `json:"ip"`
	Method         string    `json:"method"`
	URL            string    `json:"url"`
	UserAgent      string    `json:"userAgent"`
	OS             string    `json:"os"`
	Browser        string    `json:"browser"`
	DeviceType     string    `json:"deviceType"`
	Login          string    `json:"login,omitempty"`
	Status         string    `json:"status"`
	AttemptedLogin string    `json:"attemptedLogin,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type HomepageView struct {
	Slider    []model.HomepageBlock `json:"slider"`
	Education []model.HomepageBlock `json:"education"`
	Info      []model.HomepageBlock `json:"info"`
}

type AboutUsView struct {
	Title   model.Localized `json:"title"`
	Context model.Localized `json:"context"`
}

func ToCourseView(c *model.Course, codec *hashid.Codec) CourseView {
	alert := []model.CourseAlert(c.Alert)
	if alert == nil {
		alert = []model.CourseAlert{}
	}
	return CourseView{
		ID:          codec.EncodeUint(c.ID),
		Title:       c.Title,
		Description: c.Description,
		Content:     c.Content,
		ImageURL:    c.ImageURL,
		Slug:        c.Slug,
		Features:    c.Features.Data(),
		Alert:       alert,
		CreatedAt:   c.CreatedAt,
	}
}

func ToCourseViews(courses []model.Course, codec *hashid.Codec) []CourseView {
	out := make([]CourseView, 0, len(courses))
	for i := range courses {
		out = append(out, ToCourseView(&courses[i], codec))
	}
	return out
}

func ToSubCourseView(s *model.SubCourse, codec *hashid.Codec) SubCourseView {
	return SubCourseView{
		ID:          codec.EncodeUint(s.ID),
		Title:       s.Title,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		Price:       s.Price,
		CourseSlug:  s.CourseSlug,
	}
}

func ToSubCourseViews(subs []model.SubCourse, codec *hashid.Codec) []SubCourseView {
	out := make([]SubCourseView, 0, len(subs))
	for i := range subs {
		out = append(out, ToSubCourseView(&subs[i], codec))
	}
	return out
}

// ToNewsView maps a news item. A nil codec produces the blog view without id.
func ToNewsView(n *model.News, codec *hashid.Codec) NewsView {
	tags := []string(n.Tags)
	if tags == nil {
		tags = []string{}
	}
	v := NewsView{
		Title:       n.Title,
		Description: n.Description,
		Content:     n.Content,
		Tags:        tags,
		ImageURL:    n.ImageURL,
		Slug:        n.Slug,
		CreatedAt:   n.CreatedAt,
	}
	if codec != nil {
		v.ID = codec.EncodeUint(n.ID)
	}
	return v
}

func ToNewsViews(news []model.News, codec *hashid.Codec) []NewsView {
	out := make([]NewsView, 0, len(news))
	for i := range news {
		out = append(out, ToNewsView(&news[i], codec))
	}
	return out
}

func ToContactViews(contacts []model.Contact, codec *hashid.Codec) []ContactView {
	out := make([]ContactView, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, ContactView{
			ID:        codec.EncodeUint(c.ID),
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Message:   c.Message,
			Phone:     c.Phone,
			Email:     c.Email,
			IsReply:   c.IsReply,
			CreatedAt: c.CreatedAt,
		})
	}
	return out
}

func ToStatsLogViews(logs []model.StatsLog, codec *hashid.Codec) []StatsLogView {
	out := make([]StatsLogView, 0, len(logs))
	for _, l := range logs {
		out = append(out, StatsLogView{
			ID:             codec.EncodeUint(l.ID),
			IP:             l.IP,
			Method:         l.Method,
			URL:            l.URL,
			UserAgent:      l.UserAgent,
			OS:             l.OS,
			Browser:        l.Browser,
			DeviceType:     l.DeviceType,
			Login:          l.Login,
			Status:         l.Status,
			AttemptedLogin: l.AttemptedLogin,
			CreatedAt:      l.CreatedAt,
		})
	}
	return out
}

func nonNilBlocks(b []model.HomepageBlock) []model.HomepageBlock {
	if b == nil {
		return []model.HomepageBlock{}
	}
	return b
}

func ToHomepageView(h *model.Homepage) HomepageView {
	return HomepageView{
		Slider:    nonNilBlocks(h.Slider),
		Education: nonNilBlocks(h.Education),
		Info:      nonNilBlocks(h.Info),
	}
}

func ToAboutUsView(a *model.AboutUs) AboutUsView {
	return AboutUsView{Title: a.Title, Context: a.Context}
}
