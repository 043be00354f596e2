package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Intro Course", "intro-course"},
		{"  Hello,   World!! ", "hello-world"},
		{"Știință și Tehnică", "stiinta-si-tehnica"},
		{"Привет мир", "privet-mir"},
		{"!!!", "item"},
		{"hello_world", "hello-world"},
		{"__a__b__", "a-b"},
		{"Tom's \"Intro\" Course", "toms-intro-course"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestUniqueSlugTriesSuffixes(t *testing.T) {
	taken := map[string]bool{}
	exists := func(s string) (bool, error) { return taken[s], nil }

	first, err := UniqueSlug("Intro Course", exists)
	require.NoError(t, err)
	assert.Equal(t, "intro-course", first)
	taken[first] = true

	second, err := UniqueSlug("Intro Course", exists)
	require.NoError(t, err)
	assert.Equal(t, "intro-course-1", second)
	taken[second] = true

	third, err := UniqueSlug("Intro Course", exists)
	require.NoError(t, err)
	assert.Equal(t, "intro-course-2", third)
}

func TestUniqueSlugPropagatesLookupError(t *testing.T) {
	boom := errors.New("db down")
	_, err := UniqueSlug("x", func(string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}

func TestUniqueFileName(t *testing.T) {
	taken := map[string]bool{"photo.png": true, "photo-1.png": true}
	name, err := UniqueFileName("photo", ".PNG", func(s string) (bool, error) { return taken[s], nil })
	require.NoError(t, err)
	assert.Equal(t, "photo-2.png", name)
}
