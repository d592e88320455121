package s3store

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/require"

	"storefront/internal/filestore"
)

type fakeS3 struct {
	s3iface.S3API

	deleted []string
	pages   []*s3.ListObjectsV2Output
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	if aws.StringValue(in.Key) == "present.webp" {
		return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("webp"))}, nil
	}
	return nil, awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil)
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2PagesWithContext(_ aws.Context, _ *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool, _ ...request.Option) error {
	for i, p := range f.pages {
		if !fn(p, i == len(f.pages)-1) {
			break
		}
	}
	return nil
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	modTime := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	client := &fakeS3{
		pages: []*s3.ListObjectsV2Output{
			{Contents: []*s3.Object{{Key: aws.String("a.webp"), Size: aws.Int64(10), LastModified: aws.Time(modTime)}}},
			{Contents: []*s3.Object{{Key: aws.String("b.webp"), Size: aws.Int64(20), LastModified: aws.Time(modTime)}}},
		},
	}

	s := NewWithClient(client, "shop-images", "https://shop-images.s3.amazonaws.com/")

	rc, err := s.Open(ctx, "present.webp")
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	_, err = s.Open(ctx, "missing.webp")
	require.ErrorIs(t, err, filestore.ErrNotFound)

	require.NoError(t, s.Remove(ctx, "a.webp"))
	require.Equal(t, []string{"a.webp"}, client.deleted)

	objects, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []filestore.Object{
		{Key: "a.webp", Size: 10, ModTime: modTime},
		{Key: "b.webp", Size: 20, ModTime: modTime},
	}, objects)

	key, ok := s.Key("https://shop-images.s3.amazonaws.com/b.webp")
	require.True(t, ok)
	require.Equal(t, "b.webp", key)
}

func TestCountingReader(t *testing.T) {
	cr := &countingReader{r: strings.NewReader("twelve bytes")}

	_, err := io.Copy(io.Discard, cr)
	require.NoError(t, err)
	require.Equal(t, int64(12), cr.n)
}
