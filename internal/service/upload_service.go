package service

import (
	"context"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/logger"
	"learning_center_backend/pkg/monitoring"
	"learning_center_backend/pkg/tracing"
	"mime/multipart"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	uploadURLPrefix   = "/uploads/"
	thumbnailSuffix   = "-thumb.jpg"
	fileTypeFolder    = "folder"
	fileTypeFile      = "file"
	errFolderNotFound = "Folder not found"
)

// FileItem is one entry of a folder listing.
type FileItem struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

type UploadedFile struct {
	OriginalName string  `json:"originalName"`
	Name         string  `json:"name"`
	Path         string  `json:"path"`
	Size         int64   `json:"size"`
	MimeType     string  `json:"mimeType"`
	Duration     float64 `json:"duration,omitempty"`
	Thumbnail    string  `json:"thumbnail,omitempty"`
}

type FailedFile struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

type DeleteFilesResult struct {
	Deleted []string     `json:"deleted"`
	Failed  []FailedFile `json:"failed"`
}

// FolderRef addresses one folder of the upload tree.
type FolderRef struct {
	Scope    string
	Category string
	Folder   string
}

func (f FolderRef) validate() error {
	if f.Scope != util.ScopePublic && f.Scope != util.ScopePrivate {
		return util.NewBadRequest("Invalid scope")
	}
	if !util.IsValidUploadCategory(f.Scope, f.Category) {
		return util.NewBadRequest("Invalid category")
	}
	if !util.IsSafePathSegment(f.Folder) {
		return util.NewBadRequest("Invalid folder name")
	}
	return nil
}

func (f FolderRef) key(name ...string) string {
	return joinKey(append([]string{f.Scope, f.Category, f.Folder}, name...)...)
}

// UploadService manages the <scope>/<category>/<folder>/<file> tree on
// whichever storage backend is configured.
type UploadService struct {
	Provider StorageProvider
}

func NewUploadService(provider StorageProvider) *UploadService {
	return &UploadService{Provider: provider}
}

func fileURL(key string) string {
	return uploadURLPrefix + key
}

func (s *UploadService) list(ctx context.Context, dir string) ([]FileItem, error) {
	entries, err := s.Provider.List(ctx, dir)
	if errors.Is(err, ErrStorageNotFound) {
		return nil, util.NewNotFound(errFolderNotFound)
	}
	if err != nil {
		return nil, err
	}
	sortEntries(entries)
	items := make([]FileItem, 0, len(entries))
	for _, e := range entries {
		typ := fileTypeFile
		if e.IsDir {
			typ = fileTypeFolder
		}
		items = append(items, FileItem{Name: e.Name, Type: typ, URL: fileURL(joinKey(dir, e.Name))})
	}
	return items, nil
}

// ListPath lists a folder of a scope given as a slash separated path, e.g.
// "blog/spring". An empty path lists the scope root.
func (s *UploadService) ListPath(ctx context.Context, scope, folder string) ([]FileItem, error) {
	parts := []string{scope}
	for _, seg := range strings.Split(strings.Trim(folder, "/"), "/") {
		if seg == "" {
			continue
		}
		if !util.IsSafePathSegment(seg) {
			return nil, util.NewBadRequest("Invalid folder name")
		}
		parts = append(parts, seg)
	}
	if len(parts) > 1 && !util.IsValidUploadCategory(scope, parts[1]) {
		return nil, util.NewBadRequest("Invalid category")
	}
	return s.list(ctx, joinKey(parts...))
}

// CreateFolder makes a slugified folder and returns its public path.
func (s *UploadService) CreateFolder(ctx context.Context, scope, category, name string) (string, error) {
	ref := FolderRef{Scope: scope, Category: category, Folder: util.Slugify(name)}
	if err := ref.validate(); err != nil {
		return "", err
	}
	exists, err := s.Provider.DirExists(ctx, ref.key())
	if err != nil {
		return "", err
	}
	if exists {
		return "", util.NewBadRequest("Folder already exists")
	}
	if err := s.Provider.MakeDir(ctx, ref.key()); err != nil {
		return "", err
	}
	return fileURL(ref.key()), nil
}

func (s *UploadService) uniqueName(ctx context.Context, ref FolderRef, filename string) (string, error) {
	base, ext := util.SplitFileName(filename)
	return util.UniqueFileName(util.Slugify(base), ext, func(candidate string) (bool, error) {
		return s.Provider.Exists(ctx, ref.key(candidate))
	})
}

// Upload stores every file under ref with a slugified, de-duplicated name.
func (s *UploadService) Upload(ctx context.Context, ref FolderRef, files []*multipart.FileHeader) ([]UploadedFile, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, util.NewBadRequest("No files uploaded")
	}
	if len(files) > util.MaxUploadFiles {
		return nil, util.NewBadRequest("Too many files, at most 100 per request")
	}

	ctx, span := tracing.Start(ctx, "uploads.store",
		attribute.String("upload.folder", ref.key()),
		attribute.Int("upload.files", len(files)),
	)
	defer span.End()

	out := make([]UploadedFile, 0, len(files))
	for _, fh := range files {
		uploaded, err := s.store(ctx, ref, fh)
		if err != nil {
			return out, err
		}
		out = append(out, *uploaded)
	}
	return out, nil
}

func (s *UploadService) store(ctx context.Context, ref FolderRef, fh *multipart.FileHeader) (*UploadedFile, error) {
	name, err := s.uniqueName(ctx, ref, fh.Filename)
	if err != nil {
		return nil, err
	}
	src, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer src.Close()

	mimeType := util.DetectMimeType(src, fh.Header.Get("Content-Type"))
	key := ref.key(name)
	if err := s.Provider.Put(ctx, key, src, fh.Size, mimeType); err != nil {
		return nil, errors.Wrapf(err, "store %s", key)
	}
	monitoring.UploadedBytes.WithLabelValues(ref.Scope).Add(float64(fh.Size))

	uploaded := &UploadedFile{
		OriginalName: fh.Filename,
		Name:         name,
		Path:         fileURL(key),
		Size:         fh.Size,
		MimeType:     mimeType,
	}
	if util.IsVideo(mimeType) || util.HasVideoExtension(name) {
		s.describeVideo(ctx, ref, name, uploaded)
	}
	return uploaded, nil
}

// describeVideo adds duration and a thumbnail. It needs the file on local
// disk and never fails the upload.
func (s *UploadService) describeVideo(ctx context.Context, ref FolderRef, name string, uploaded *UploadedFile) {
	local, ok := s.Provider.(*LocalStorageProvider)
	if !ok {
		return
	}
	_, span := tracing.Start(ctx, "uploads.inspect_video", attribute.String("upload.file", name))
	defer span.End()

	videoPath := local.Path(ref.key(name))
	info, err := util.InspectVideo(videoPath)
	if err != nil {
		logger.Log.Warn("video inspection failed", zap.String("file", name), zap.Error(err))
		return
	}
	uploaded.Duration = info.Duration

	base, _ := util.SplitFileName(name)
	thumbKey := ref.key(base + thumbnailSuffix)
	if err := util.VideoThumbnail(videoPath, local.Path(thumbKey), util.ThumbnailOffset(info.Duration)); err != nil {
		logger.Log.Warn("thumbnail generation failed", zap.String("file", name), zap.Error(err))
		return
	}
	uploaded.Thumbnail = fileURL(thumbKey)
}

func (s *UploadService) DeleteFolder(ctx context.Context, ref FolderRef) error {
	if err := ref.validate(); err != nil {
		return err
	}
	exists, err := s.Provider.DirExists(ctx, ref.key())
	if err != nil {
		return err
	}
	if !exists {
		return util.NewNotFound(errFolderNotFound)
	}
	return s.Provider.RemoveAll(ctx, ref.key())
}

func (s *UploadService) fileKey(ctx context.Context, ref FolderRef, filename string) (string, error) {
	if err := ref.validate(); err != nil {
		return "", err
	}
	if !util.IsSafePathSegment(filename) {
		return "", util.NewBadRequest("Invalid file name")
	}
	key := ref.key(filename)
	exists, err := s.Provider.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", util.NewNotFound("File not found")
	}
	return key, nil
}

func (s *UploadService) DeleteFile(ctx context.Context, ref FolderRef, filename string) error {
	key, err := s.fileKey(ctx, ref, filename)
	if err != nil {
		return err
	}
	return s.Provider.Remove(ctx, key)
}

// DeleteFiles removes each file independently and reports per-file results.
func (s *UploadService) DeleteFiles(ctx context.Context, ref FolderRef, filenames []string) (*DeleteFilesResult, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}
	res := &DeleteFilesResult{Deleted: []string{}, Failed: []FailedFile{}}
	for _, name := range filenames {
		if err := s.DeleteFile(ctx, ref, name); err != nil {
			res.Failed = append(res.Failed, FailedFile{Filename: name, Reason: reason(err)})
			continue
		}
		res.Deleted = append(res.Deleted, name)
	}
	return res, nil
}

func reason(err error) string {
	var appErr *util.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Rename gives a file a new slugified base name and keeps its extension.
func (s *UploadService) Rename(ctx context.Context, ref FolderRef, oldName, newName string) (string, error) {
	key, err := s.fileKey(ctx, ref, oldName)
	if err != nil {
		return "", err
	}
	newBase, _ := util.SplitFileName(newName)
	_, ext := util.SplitFileName(oldName)
	name, err := s.uniqueName(ctx, ref, newBase+ext)
	if err != nil {
		return "", err
	}
	if err := s.Provider.Rename(ctx, key, ref.key(name)); err != nil {
		return "", err
	}
	return name, nil
}

// Open returns a file of scope for streaming. filePath is relative to the
// scope root.
func (s *UploadService) Open(ctx context.Context, scope, filePath string) (*StorageObject, string, error) {
	segments := strings.Split(strings.Trim(filePath, "/"), "/")
	if len(segments) < 2 {
		return nil, "", util.NewNotFound("File not found")
	}
	for _, seg := range segments {
		if !util.IsSafePathSegment(seg) {
			return nil, "", util.NewBadRequest("Invalid file path")
		}
	}
	if !util.IsValidUploadCategory(scope, segments[0]) {
		return nil, "", util.NewNotFound("File not found")
	}
	obj, err := s.Provider.Open(ctx, joinKey(append([]string{scope}, segments...)...))
	if errors.Is(err, ErrStorageNotFound) || os.IsNotExist(err) {
		return nil, "", util.NewNotFound("File not found")
	}
	if err != nil {
		return nil, "", err
	}
	return obj, segments[len(segments)-1], nil
}
