package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Languages supported by localized fields. The first one is mandatory.
var Languages = []string{"ro", "ru", "en"}

// Localized holds one text per supported language and is stored as a
// single JSON column. Binding a request that embeds it requires ro.
// swagger:model Localized
type Localized struct {
	Ro string `json:"ro" binding:"required"`
	Ru string `json:"ru,omitempty"`
	En string `json:"en,omitempty"`
}

// HasRequired reports whether the mandatory language is filled in.
func (l Localized) HasRequired() bool {
	return strings.TrimSpace(l.Ro) != ""
}

// Contains does a case-insensitive substring match against every language.
func (l Localized) Contains(q string) bool {
	q = strings.ToLower(q)
	for _, s := range []string{l.Ro, l.Ru, l.En} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func (l Localized) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *Localized) Scan(value interface{}) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		*l = Localized{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("localized: unsupported scan type %T", value)
	}
	if len(b) == 0 {
		*l = Localized{}
		return nil
	}
	return json.Unmarshal(b, l)
}

func (Localized) GormDataType() string {
	return "json"
}

func (Localized) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	}
	return "JSON"
}
