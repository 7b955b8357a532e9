// Package minio archives raw record XML documents in S3-compatible object
// storage.
package minio

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/flarelab/combust/internal/config"
	"github.com/flarelab/combust/internal/infrastructure/monitoring/logging"
	"github.com/flarelab/combust/pkg/errors"
)

const xmlContentType = "application/xml"

// ObjectAPI is the subset of the MinIO client the archive needs. GetObject
// returns a plain io.ReadCloser so the API can be faked in tests.
type ObjectAPI interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, name string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucket, name string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	StatObject(ctx context.Context, bucket, name string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucket, name string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// minioAPI adapts *minio.Client to ObjectAPI.
type minioAPI struct {
	*minio.Client
}

func (a minioAPI) GetObject(ctx context.Context, bucket, name string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return a.Client.GetObject(ctx, bucket, name, opts)
}

// ObjectStat summarizes one archived document.
type ObjectStat struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archive is the raw-document store: uploads land here verbatim, keyed by
// their catalog object key.
type Archive interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Stat(ctx context.Context, key string) (ObjectStat, error)
	Remove(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]ObjectStat, error)
}

type recordArchive struct {
	api    ObjectAPI
	bucket string
	log    logging.Logger
}

// NewArchive connects to object storage and ensures the configured bucket
// exists.
func NewArchive(ctx context.Context, cfg config.MinIOConfig, log logging.Logger) (Archive, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStorage, "failed to create object storage client")
	}

	archive := &recordArchive{api: minioAPI{client}, bucket: cfg.Bucket, log: log.Named("archive")}
	if err := archive.ensureBucket(ctx); err != nil {
		return nil, err
	}

	log.Info("connected to object storage",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket),
	)
	return archive, nil
}

// NewArchiveWithAPI builds an Archive over a caller-supplied API, used by
// tests.
func NewArchiveWithAPI(api ObjectAPI, bucket string, log logging.Logger) Archive {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &recordArchive{api: api, bucket: bucket, log: log.Named("archive")}
}

func (a *recordArchive) ensureBucket(ctx context.Context) error {
	exists, err := a.api.BucketExists(ctx, a.bucket)
	if err != nil {
		return errors.Wrap(err, errors.CodeStorage, "failed to check bucket")
	}
	if exists {
		return nil
	}
	if err := a.api.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return errors.Wrap(err, errors.CodeStorage, "failed to create bucket")
	}
	a.log.Info("created bucket", logging.String("bucket", a.bucket))
	return nil
}

func (a *recordArchive) Put(ctx context.Context, key string, data []byte) error {
	_, err := a.api.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: xmlContentType})
	if err != nil {
		return errors.Wrap(err, errors.CodeStorage, "failed to store document")
	}
	a.log.Debug("stored document", logging.String("key", key), logging.Int("bytes", len(data)))
	return nil
}

func (a *recordArchive) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := a.api.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStorage, "failed to open document")
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, errors.New(errors.CodeRecordNotFound, "document not found").WithDetail("key=" + key)
		}
		return nil, errors.Wrap(err, errors.CodeStorage, "failed to read document")
	}
	return data, nil
}

func (a *recordArchive) Stat(ctx context.Context, key string) (ObjectStat, error) {
	info, err := a.api.StatObject(ctx, a.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return ObjectStat{}, errors.New(errors.CodeRecordNotFound, "document not found").WithDetail("key=" + key)
		}
		return ObjectStat{}, errors.Wrap(err, errors.CodeStorage, "failed to stat document")
	}
	return ObjectStat{Key: info.Key, Size: info.Size, LastModified: info.LastModified}, nil
}

func (a *recordArchive) Remove(ctx context.Context, key string) error {
	if err := a.api.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, errors.CodeStorage, "failed to remove document")
	}
	return nil
}

func (a *recordArchive) List(ctx context.Context, prefix string) ([]ObjectStat, error) {
	var stats []ObjectStat
	for info := range a.api.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if info.Err != nil {
			return nil, errors.Wrap(info.Err, errors.CodeStorage, "failed to list documents")
		}
		stats = append(stats, ObjectStat{Key: info.Key, Size: info.Size, LastModified: info.LastModified})
	}
	return stats, nil
}

// isNoSuchKey reports whether err is the storage backend's missing-object
// error.
func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey"
}
