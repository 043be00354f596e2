package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThumbnailOffset(t *testing.T) {
	assert.Equal(t, 1.0, ThumbnailOffset(0))
	assert.Equal(t, 0.75, ThumbnailOffset(1.5))
	assert.Equal(t, 1.0, ThumbnailOffset(120))
}

func TestInspectVideoMissingFile(t *testing.T) {
	_, err := InspectVideo("/nonexistent/clip.mp4")
	assert.Error(t, err)
}
