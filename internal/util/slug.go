package util

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

const fallbackSlug = "item"

// Apostrophes join a word instead of splitting it; underscores separate like
// spaces.
var slugReplacer = strings.NewReplacer("'", "", "’", "", "_", "-")

// Slugify lower-cases and ASCII-folds s and joins alphanumeric runs with '-'.
func Slugify(s string) string {
	out := slug.Make(slugReplacer.Replace(s))
	if out == "" {
		return fallbackSlug
	}
	return out
}

// SlugExists reports whether a slug is already taken by another record.
type SlugExists func(candidate string) (bool, error)

// UniqueSlug tries base, base-1, base-2, ... and returns the first free
// candidate. The check and the later insert are not atomic.
func UniqueSlug(title string, exists SlugExists) (string, error) {
	base := Slugify(title)
	candidate := base
	for i := 1; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// UniqueFileName applies the same search to a file name, keeping the
// extension: photo.png, photo-1.png, photo-2.png.
func UniqueFileName(base, ext string, exists SlugExists) (string, error) {
	ext = strings.ToLower(ext)
	candidate := base + ext
	for i := 1; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
	}
}
