package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// URLScheme prefixes object references accepted as import sources.
const URLScheme = "s3://"

// ObjectRef addresses one object.
type ObjectRef struct {
	Bucket string
	Key    string
}

func (r ObjectRef) String() string {
	return URLScheme + r.Bucket + "/" + r.Key
}

// IsObjectURL reports whether s uses the s3:// scheme.
func IsObjectURL(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), URLScheme)
}

// ParseObjectURL splits "s3://bucket/key" into its parts.
func ParseObjectURL(s string) (ObjectRef, error) {
	if !IsObjectURL(s) {
		return ObjectRef{}, fmt.Errorf("object url %q: missing %s scheme", s, URLScheme)
	}
	rest := s[len(URLScheme):]
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || strings.Trim(key, "/") == "" {
		return ObjectRef{}, fmt.Errorf("object url %q: expected %sbucket/key", s, URLScheme)
	}
	return ObjectRef{Bucket: bucket, Key: strings.TrimPrefix(key, "/")}, nil
}

// EnsureBucket creates bucket if it does not exist yet.
func EnsureBucket(ctx context.Context, client Client, bucket, region string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	return nil
}

// Download opens the referenced object. A missing object is reported as
// ErrObjectNotFound.
func Download(ctx context.Context, client Client, ref ObjectRef) (io.ReadCloser, error) {
	obj, err := client.GetObject(ctx, ref.Bucket, ref.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, classify(ref, err)
	}
	// minio defers the request until the first read; Stat surfaces a missing
	// object before the caller starts decoding.
	if st, ok := obj.(interface{ Stat() (minio.ObjectInfo, error) }); ok {
		if _, err := st.Stat(); err != nil {
			_ = obj.Close()
			return nil, classify(ref, err)
		}
	}
	return obj, nil
}

// ErrObjectNotFound is returned when a referenced object does not exist.
var ErrObjectNotFound = errors.New("object not found")

func classify(ref ObjectRef, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
		return fmt.Errorf("%s: %w", ref, ErrObjectNotFound)
	}
	return fmt.Errorf("get %s: %w", ref, err)
}

// ArchiveKey builds the object key an uploaded file is archived under:
// prefix/2006/01/02/<id>-<base name>.
func ArchiveKey(prefix, filename, id string, at time.Time) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = "upload"
	}
	return path.Join(strings.Trim(prefix, "/"), at.UTC().Format("2006/01/02"), id+"-"+base)
}
