package service

import (
	"testing"

	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilCacheIsANoop(t *testing.T) {
	var nilCache *Cache
	var dst []string
	assert.False(t, nilCache.Get("k", &dst))
	nilCache.Set("k", []string{"a"})
	nilCache.Invalidate("k")

	disabled := NewCache(nil, 0)
	assert.False(t, disabled.Get("k", &dst))
	disabled.Set("k", []string{"a"})
	assert.Nil(t, dst)
}

func TestContentSingletonsWithoutRedis(t *testing.T) {
	svc := NewContentService(repository.NewSiteContentRepository(openTestDB(t)), NewCache(nil, 0))

	faq, err := svc.FAQ()
	require.NoError(t, err)
	assert.NotNil(t, faq)
	assert.Empty(t, faq)

	items := []model.FAQItem{{Question: model.Localized{Ro: "Cum?"}, Answer: model.Localized{Ro: "Așa."}}}
	_, err = svc.SaveFAQ(items)
	require.NoError(t, err)
	_, err = svc.SaveFAQ(append(items, model.FAQItem{Question: model.Localized{Ro: "Când?"}}))
	require.NoError(t, err)

	faq, err = svc.FAQ()
	require.NoError(t, err)
	require.Len(t, faq, 2)
	assert.Equal(t, "Când?", faq[1].Question.Ro)

	_, err = svc.SaveAboutUs(AboutUsInput{Title: model.Localized{Ro: "Despre"}, Context: model.Localized{Ro: "Text"}})
	require.NoError(t, err)
	about, err := svc.AboutUs()
	require.NoError(t, err)
	assert.Equal(t, "Despre", about.Title.Ro)
}

func TestBlogTagsAreDistinctAndSorted(t *testing.T) {
	svc := NewNewsService(repository.NewNewsRepository(openTestDB(t)), NewCache(nil, 0), testCodec())

	for _, in := range []NewsInput{
		{Title: model.Localized{Ro: "Prima"}, Tags: []string{"ro", " events ", "ro"}, ImageURL: "a.png"},
		{Title: model.Localized{Ro: "Prima"}, Tags: []string{"audio"}, ImageURL: "b.png"},
	} {
		_, err := svc.Create(in)
		require.NoError(t, err)
	}

	tags, err := svc.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"audio", "events", "ro"}, tags)

	news, err := svc.GetBySlug("prima-1")
	require.NoError(t, err)
	assert.Equal(t, "b.png", news.ImageURL)
}
