package util

const DateFormat = "2006-01-02"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimePDF         = "application/pdf"
	MimeHTML        = "text/html; charset=utf-8"
	MimeOctetStream = "application/octet-stream"

	MaxUploadFiles = 100
)

const (
	ScopePublic  = "public"
	ScopePrivate = "private"
)

// UploadCategories lists the folders allowed under each scope.
var UploadCategories = map[string][]string{
	ScopePublic:  {"blog", "course", "subcourse", "homepage"},
	ScopePrivate: {"lesson", "examen", "stats", "user"},
}

var videoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v"}

// Default page sizes per resource.
const (
	DefaultLimit        = 10
	DefaultCourseLimit  = 5
	DefaultNewsLimit    = 5
	DefaultContactLimit = 5
	DefaultStatsLimit   = 20
)

const (
	TokenCookie      = "token"
	OTPLength        = 6
	TempPasswordSize = 5
)
