package service

import (
	"bytes"
	"context"
	"io"
	"learning_center_backend/internal/config"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/logger"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrStorageNotFound is returned when a file or folder does not exist.
var ErrStorageNotFound = errors.New("storage: not found")

// folderMarker keeps otherwise empty folders alive in object stores.
const folderMarker = ".keep"

// StorageEntry is one child of a folder.
type StorageEntry struct {
	Name  string
	IsDir bool
}

// StorageObject is an opened file ready to be streamed.
type StorageObject struct {
	Content io.ReadSeeker
	ModTime time.Time
	Size    int64
	closer  io.Closer
}

func (o *StorageObject) Close() error {
	if o.closer == nil {
		return nil
	}
	return o.closer.Close()
}

// StorageProvider is a folder tree addressed by slash separated keys such
// as "public/blog/spring/photo.png".
type StorageProvider interface {
	List(ctx context.Context, dir string) ([]StorageEntry, error)
	Exists(ctx context.Context, key string) (bool, error)
	DirExists(ctx context.Context, dir string) (bool, error)
	MakeDir(ctx context.Context, dir string) error
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	RemoveAll(ctx context.Context, dir string) error
	Rename(ctx context.Context, from, to string) error
	Open(ctx context.Context, key string) (*StorageObject, error)
}

// LocalStorageProvider keeps the tree on disk under Root.
type LocalStorageProvider struct {
	Root string
}

func NewLocalStorageProvider(root string) *LocalStorageProvider {
	return &LocalStorageProvider{Root: root}
}

// Path maps a key onto the local filesystem.
func (p *LocalStorageProvider) Path(key string) string {
	return filepath.Join(p.Root, filepath.FromSlash(key))
}

func (p *LocalStorageProvider) List(_ context.Context, dir string) ([]StorageEntry, error) {
	items, err := os.ReadDir(p.Path(dir))
	if os.IsNotExist(err) {
		return nil, ErrStorageNotFound
	}
	if err != nil {
		return nil, err
	}
	entries := make([]StorageEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, StorageEntry{Name: it.Name(), IsDir: it.IsDir()})
	}
	return entries, nil
}

func (p *LocalStorageProvider) Exists(_ context.Context, key string) (bool, error) {
	info, err := os.Stat(p.Path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (p *LocalStorageProvider) DirExists(_ context.Context, dir string) (bool, error) {
	info, err := os.Stat(p.Path(dir))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func (p *LocalStorageProvider) MakeDir(_ context.Context, dir string) error {
	return os.MkdirAll(p.Path(dir), 0755)
}

func (p *LocalStorageProvider) Put(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	dst := p.Path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, reader)
	return err
}

func (p *LocalStorageProvider) Remove(_ context.Context, key string) error {
	err := os.Remove(p.Path(key))
	if os.IsNotExist(err) {
		return ErrStorageNotFound
	}
	return err
}

func (p *LocalStorageProvider) RemoveAll(_ context.Context, dir string) error {
	return os.RemoveAll(p.Path(dir))
}

func (p *LocalStorageProvider) Rename(_ context.Context, from, to string) error {
	return os.Rename(p.Path(from), p.Path(to))
}

func (p *LocalStorageProvider) Open(_ context.Context, key string) (*StorageObject, error) {
	f, err := os.Open(p.Path(key))
	if os.IsNotExist(err) {
		return nil, ErrStorageNotFound
	}
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		f.Close()
		return nil, ErrStorageNotFound
	}
	return &StorageObject{Content: f, ModTime: info.ModTime(), Size: info.Size(), closer: f}, nil
}

// MinioStorageProvider stores the tree as objects of one bucket. Folders
// exist through their marker object.
type MinioStorageProvider struct {
	Bucket string
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Bucket: cfg.MinioBucket, Client: client}, nil
}

func isMinioNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}

func (p *MinioStorageProvider) List(ctx context.Context, dir string) ([]StorageEntry, error) {
	var entries []StorageEntry
	found := false
	for obj := range p.Client.ListObjects(ctx, p.Bucket, minio.ListObjectsOptions{Prefix: dir + "/"}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		found = true
		name := strings.TrimPrefix(obj.Key, dir+"/")
		if name == folderMarker || name == "" {
			continue
		}
		isDir := strings.HasSuffix(name, "/")
		entries = append(entries, StorageEntry{Name: strings.TrimSuffix(name, "/"), IsDir: isDir})
	}
	if !found {
		return nil, ErrStorageNotFound
	}
	return entries, nil
}

func (p *MinioStorageProvider) Exists(ctx context.Context, key string) (bool, error) {
	_, err := p.Client.StatObject(ctx, p.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p *MinioStorageProvider) DirExists(ctx context.Context, dir string) (bool, error) {
	for obj := range p.Client.ListObjects(ctx, p.Bucket, minio.ListObjectsOptions{Prefix: dir + "/", MaxKeys: 1}) {
		if obj.Err != nil {
			return false, obj.Err
		}
		return true, nil
	}
	return false, nil
}

func (p *MinioStorageProvider) MakeDir(ctx context.Context, dir string) error {
	return p.Put(ctx, dir+"/"+folderMarker, bytes.NewReader(nil), 0, util.MimeOctetStream)
}

func (p *MinioStorageProvider) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := p.Client.PutObject(ctx, p.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (p *MinioStorageProvider) Remove(ctx context.Context, key string) error {
	return p.Client.RemoveObject(ctx, p.Bucket, key, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) RemoveAll(ctx context.Context, dir string) error {
	for obj := range p.Client.ListObjects(ctx, p.Bucket, minio.ListObjectsOptions{Prefix: dir + "/", Recursive: true}) {
		if obj.Err != nil {
			return obj.Err
		}
		if err := p.Remove(ctx, obj.Key); err != nil {
			return err
		}
	}
	return nil
}

func (p *MinioStorageProvider) Rename(ctx context.Context, from, to string) error {
	_, err := p.Client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: p.Bucket, Object: to},
		minio.CopySrcOptions{Bucket: p.Bucket, Object: from},
	)
	if err != nil {
		return err
	}
	return p.Remove(ctx, from)
}

func (p *MinioStorageProvider) Open(ctx context.Context, key string) (*StorageObject, error) {
	obj, err := p.Client.GetObject(ctx, p.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if isMinioNotFound(err) {
			return nil, ErrStorageNotFound
		}
		return nil, err
	}
	return &StorageObject{Content: obj, ModTime: info.LastModified, Size: info.Size, closer: obj}, nil
}

// OSSStorageProvider stores the tree in an Aliyun OSS bucket.
type OSSStorageProvider struct {
	Bucket *oss.Bucket
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Bucket: bucket}, nil
}

func (p *OSSStorageProvider) List(_ context.Context, dir string) ([]StorageEntry, error) {
	prefix := dir + "/"
	res, err := p.Bucket.ListObjects(oss.Prefix(prefix), oss.Delimiter("/"))
	if err != nil {
		return nil, err
	}
	if len(res.Objects) == 0 && len(res.CommonPrefixes) == 0 {
		return nil, ErrStorageNotFound
	}
	entries := make([]StorageEntry, 0, len(res.Objects)+len(res.CommonPrefixes))
	for _, cp := range res.CommonPrefixes {
		entries = append(entries, StorageEntry{Name: strings.TrimSuffix(strings.TrimPrefix(cp, prefix), "/"), IsDir: true})
	}
	for _, obj := range res.Objects {
		name := strings.TrimPrefix(obj.Key, prefix)
		if name == folderMarker || name == "" {
			continue
		}
		entries = append(entries, StorageEntry{Name: name})
	}
	return entries, nil
}

func (p *OSSStorageProvider) Exists(_ context.Context, key string) (bool, error) {
	return p.Bucket.IsObjectExist(key)
}

func (p *OSSStorageProvider) DirExists(_ context.Context, dir string) (bool, error) {
	res, err := p.Bucket.ListObjects(oss.Prefix(dir+"/"), oss.MaxKeys(1))
	if err != nil {
		return false, err
	}
	return len(res.Objects) > 0, nil
}

func (p *OSSStorageProvider) MakeDir(ctx context.Context, dir string) error {
	return p.Put(ctx, dir+"/"+folderMarker, bytes.NewReader(nil), 0, util.MimeOctetStream)
}

func (p *OSSStorageProvider) Put(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	return p.Bucket.PutObject(key, reader, oss.ContentType(contentType))
}

func (p *OSSStorageProvider) Remove(_ context.Context, key string) error {
	return p.Bucket.DeleteObject(key)
}

func (p *OSSStorageProvider) RemoveAll(_ context.Context, dir string) error {
	marker := ""
	for {
		res, err := p.Bucket.ListObjects(oss.Prefix(dir+"/"), oss.Marker(marker))
		if err != nil {
			return err
		}
		for _, obj := range res.Objects {
			if err := p.Bucket.DeleteObject(obj.Key); err != nil {
				return err
			}
		}
		if !res.IsTruncated {
			return nil
		}
		marker = res.NextMarker
	}
}

func (p *OSSStorageProvider) Rename(_ context.Context, from, to string) error {
	if _, err := p.Bucket.CopyObject(from, to); err != nil {
		return err
	}
	return p.Bucket.DeleteObject(from)
}

// Open buffers the object in memory: OSS bodies cannot seek, and range
// requests need a seeker.
func (p *OSSStorageProvider) Open(_ context.Context, key string) (*StorageObject, error) {
	exists, err := p.Bucket.IsObjectExist(key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrStorageNotFound
	}
	body, err := p.Bucket.GetObject(key)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	return &StorageObject{Content: bytes.NewReader(data), Size: int64(len(data))}, nil
}

// NewStorageProvider picks the backend named by storage.type and falls back
// to the local disk when a remote backend cannot be configured.
func NewStorageProvider(cfg *config.StorageConfig) StorageProvider {
	switch cfg.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(cfg)
		if err == nil {
			return p
		}
		logger.Log.Error("minio storage unavailable, using local disk", zap.Error(err))
	case util.StorageOSS:
		p, err := NewOSSStorageProvider(cfg)
		if err == nil {
			return p
		}
		logger.Log.Error("oss storage unavailable, using local disk", zap.Error(err))
	}
	return NewLocalStorageProvider(cfg.LocalPath)
}

// joinKey builds a storage key from already validated segments.
func joinKey(parts ...string) string {
	return path.Join(parts...)
}

func sortEntries(entries []StorageEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
}
