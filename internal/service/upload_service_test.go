package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"learning_center_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeaders builds multipart file headers the way gin hands them to a
// controller.
func fileHeaders(t *testing.T, files map[string]string) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["files"]
}

func newUploadService(t *testing.T) (*UploadService, string) {
	t.Helper()
	root := t.TempDir()
	return NewUploadService(NewLocalStorageProvider(root)), root
}

func TestCreateFolderSlugifiesAndRejectsDuplicates(t *testing.T) {
	svc, root := newUploadService(t)
	ctx := context.Background()

	p, err := svc.CreateFolder(ctx, util.ScopePublic, "blog", "Spring Photos")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/public/blog/spring-photos", p)
	assert.DirExists(t, filepath.Join(root, "public", "blog", "spring-photos"))

	_, err = svc.CreateFolder(ctx, util.ScopePublic, "blog", "spring photos")
	assert.True(t, util.IsKind(err, util.KindBadRequest))

	_, err = svc.CreateFolder(ctx, util.ScopePublic, "lesson", "x1")
	assert.True(t, util.IsKind(err, util.KindBadRequest), "lesson is a private category")
}

func TestUploadDeduplicatesNames(t *testing.T) {
	svc, root := newUploadService(t)
	ctx := context.Background()
	ref := FolderRef{Scope: util.ScopePrivate, Category: "lesson", Folder: "week-1"}

	first, err := svc.Upload(ctx, ref, fileHeaders(t, map[string]string{"Notes Week.PDF": "one"}))
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "notes-week.pdf", first[0].Name)
	assert.Equal(t, "/uploads/private/lesson/week-1/notes-week.pdf", first[0].Path)

	second, err := svc.Upload(ctx, ref, fileHeaders(t, map[string]string{"notes week.pdf": "two"}))
	require.NoError(t, err)
	assert.Equal(t, "notes-week-1.pdf", second[0].Name)

	raw, err := os.ReadFile(filepath.Join(root, "private", "lesson", "week-1", "notes-week-1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(raw))

	items, err := svc.ListPath(ctx, util.ScopePrivate, "lesson/week-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "file", items[0].Type)
}

func TestRenameKeepsExtension(t *testing.T) {
	svc, _ := newUploadService(t)
	ctx := context.Background()
	ref := FolderRef{Scope: util.ScopePublic, Category: "course", Folder: "intro"}

	_, err := svc.Upload(ctx, ref, fileHeaders(t, map[string]string{"cover.png": "img"}))
	require.NoError(t, err)

	name, err := svc.Rename(ctx, ref, "cover.png", "Main Banner.jpg")
	require.NoError(t, err)
	assert.Equal(t, "main-banner.png", name)

	_, err = svc.Rename(ctx, ref, "cover.png", "again")
	assert.True(t, util.IsKind(err, util.KindNotFound))
}

func TestDeleteFilesReportsEachFile(t *testing.T) {
	svc, _ := newUploadService(t)
	ctx := context.Background()
	ref := FolderRef{Scope: util.ScopePublic, Category: "homepage", Folder: "hero"}

	_, err := svc.Upload(ctx, ref, fileHeaders(t, map[string]string{"a.txt": "a", "b.txt": "b"}))
	require.NoError(t, err)

	res, err := svc.DeleteFiles(ctx, ref, []string{"a.txt", "missing.txt", "../b.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, res.Deleted)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, "File not found", res.Failed[0].Reason)
	assert.Equal(t, "Invalid file name", res.Failed[1].Reason)
}

func TestOpenRejectsTraversal(t *testing.T) {
	svc, _ := newUploadService(t)
	ctx := context.Background()
	ref := FolderRef{Scope: util.ScopePublic, Category: "blog", Folder: "news"}

	_, err := svc.Upload(ctx, ref, fileHeaders(t, map[string]string{"post.txt": "hello"}))
	require.NoError(t, err)

	obj, name, err := svc.Open(ctx, util.ScopePublic, "/blog/news/post.txt")
	require.NoError(t, err)
	defer obj.Close()
	assert.Equal(t, "post.txt", name)
	raw, err := io.ReadAll(obj.Content)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(raw))

	_, _, err = svc.Open(ctx, util.ScopePublic, "/blog/../../etc/passwd")
	assert.True(t, util.IsKind(err, util.KindBadRequest))

	_, _, err = svc.Open(ctx, util.ScopePrivate, "/blog/news/post.txt")
	assert.True(t, util.IsKind(err, util.KindNotFound))
}
