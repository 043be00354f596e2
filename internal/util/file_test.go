package util

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMimeType(t *testing.T) {
	pdf := bytes.NewReader([]byte("%PDF-1.4\n1 0 obj\n"))
	assert.Equal(t, MimePDF, DetectMimeType(pdf, "image/png"), "content wins over the declared type")

	rest, err := io.ReadAll(pdf)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4\n1 0 obj\n", string(rest), "reader is rewound")

	blob := bytes.NewReader([]byte{0x00, 0x01, 0x02, 0xfe})
	assert.Equal(t, "video/mp2t", DetectMimeType(blob, "video/mp2t"))
	assert.Equal(t, MimeOctetStream, DetectMimeType(bytes.NewReader([]byte{0x00, 0x01}), ""))
}

func TestPathSegments(t *testing.T) {
	for _, bad := range []string{"", ".", "..", "a/b", `a\b`, "x..y"} {
		assert.False(t, IsSafePathSegment(bad), bad)
	}
	assert.True(t, IsSafePathSegment("week-1"))

	assert.True(t, IsValidUploadCategory(ScopePublic, "blog"))
	assert.False(t, IsValidUploadCategory(ScopePublic, "lesson"))
	assert.True(t, HasVideoExtension("Lecture.MP4"))
}
