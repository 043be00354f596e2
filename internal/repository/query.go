package repository

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive LIKE pattern for a substring match.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// jsonText exposes a JSON column as plain text so it can be matched with LIKE.
func jsonText(db *gorm.DB, column string) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "CAST(" + column + " AS CHAR)"
	case "postgres":
		return column + "::text"
	}
	return column
}

// likeClause returns "LOWER(expr) LIKE ?" with the escape character spelled
// out for the dialects that need it.
func likeClause(db *gorm.DB, expr string) string {
	clause := "LOWER(" + expr + ") LIKE ?"
	if db.Dialector.Name() == "sqlite" {
		clause += ` ESCAPE '\'`
	}
	return clause
}

// findByIDs loads the records whose primary key is in ids. Unknown ids are
// skipped.
func findByIDs[T any](db *gorm.DB, ids []uint) ([]T, error) {
	out := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	err := db.Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func paginate(offset, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Offset(offset).Limit(limit)
	}
}

// replaceAssociation swaps a many2many list. An empty list clears it.
func replaceAssociation(db *gorm.DB, owner interface{}, name string, values interface{}, n int) error {
	assoc := db.Model(owner).Association(name)
	if n == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values)
}

// appendAssociation adds to a many2many list, skipping pairs that already exist.
func appendAssociation(db *gorm.DB, owner interface{}, name string, values interface{}, n int) error {
	if n == 0 {
		return nil
	}
	return db.Model(owner).Association(name).Append(values)
}
