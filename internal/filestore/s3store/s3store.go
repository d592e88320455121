package s3store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"storefront/internal/filestore"
)

const aclPublicRead = "public-read"

// Store keeps objects in a single S3 bucket. Objects are uploaded
// public-read; PublicURL should point at the bucket or a CDN in front of it.
type Store struct {
	filestore.Prefix
	bucket   string
	client   s3iface.S3API
	uploader *s3manager.Uploader
}

func New(sess *session.Session, bucket, publicURL string) *Store {
	return NewWithClient(s3.New(sess), bucket, publicURL)
}

func NewWithClient(client s3iface.S3API, bucket, publicURL string) *Store {
	return &Store{
		Prefix:   filestore.Prefix(publicURL),
		bucket:   bucket,
		client:   client,
		uploader: s3manager.NewUploaderWithClient(client),
	}
}

func (s *Store) Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error) {
	const op = "filestore.s3store.Put"

	key, err := filestore.CleanKey(key)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	cr := &countingReader{r: r}

	_, err = s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        cr,
		ContentType: aws.String(contentType),
		ACL:         aws.String(aclPublicRead),
	})
	if err != nil {
		return 0, fmt.Errorf("%s: can't upload %s: %w", op, key, err)
	}

	return cr.n, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	const op = "filestore.s3store.Open"

	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, fmt.Errorf("%s: %s: %w", op, key, filestore.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out.Body, nil
}

// Remove succeeds for missing keys; S3 does not report them.
func (s *Store) Remove(ctx context.Context, key string) error {
	const op = "filestore.s3store.Remove"

	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) List(ctx context.Context) ([]filestore.Object, error) {
	const op = "filestore.s3store.List"

	var objects []filestore.Object

	err := s.client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, o := range page.Contents {
			objects = append(objects, filestore.Object{
				Key:     aws.StringValue(o.Key),
				Size:    aws.Int64Value(o.Size),
				ModTime: aws.TimeValue(o.LastModified),
			})
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return objects, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
