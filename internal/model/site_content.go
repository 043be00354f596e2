package model

import "gorm.io/datatypes"

// HomepageBlock is an entry of the slider, education or info sections.
type HomepageBlock struct {
	Title       Localized `json:"title"`
	Description Localized `json:"description"`
	ImageURL    string    `json:"imageUrl" binding:"required"`
	Link        string    `json:"link,omitempty"`
}

// Homepage, FAQ and AboutUs are singletons: at most one row each.
type Homepage struct {
	BaseModel
	Slider    datatypes.JSONSlice[HomepageBlock] `gorm:"type:json"`
	Education datatypes.JSONSlice[HomepageBlock] `gorm:"type:json"`
	Info      datatypes.JSONSlice[HomepageBlock] `gorm:"type:json"`
}

func (Homepage) TableName() string {
	return "homepages"
}

type FAQItem struct {
	Title    Localized `json:"title"`
	Question Localized `json:"question"`
	Answer   Localized `json:"answer"`
}

type FAQ struct {
	BaseModel
	Items datatypes.JSONSlice[FAQItem] `gorm:"type:json"`
}

func (FAQ) TableName() string {
	return "faqs"
}

type AboutUs struct {
	BaseModel
	Title   Localized
	Context Localized
}

func (AboutUs) TableName() string {
	return "about_us"
}
