package util

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectMimeType sniffs the content of an upload. The browser supplied type
// only wins when sniffing finds nothing more specific than a byte stream.
func DetectMimeType(r io.ReadSeeker, declared string) string {
	detected := MimeOctetStream
	if m, err := mimetype.DetectReader(r); err == nil {
		detected = m.String()
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return MimeOctetStream
	}

	if detected == MimeOctetStream && declared != "" {
		return declared
	}
	return detected
}

func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, "video/") || mimeType == "application/x-mpegURL"
}

func HasVideoExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range videoExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// IsValidUploadCategory reports whether category is allowed under scope.
func IsValidUploadCategory(scope, category string) bool {
	for _, c := range UploadCategories[scope] {
		if c == category {
			return true
		}
	}
	return false
}

// IsSafePathSegment rejects empty segments and anything that could walk out
// of the upload tree.
func IsSafePathSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && !strings.Contains(s, "..")
}

// SplitFileName returns the base name and the extension of name.
func SplitFileName(name string) (string, string) {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}
