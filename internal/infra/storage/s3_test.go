package storage

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbemnt/internal/config"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = body
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func newTestStore() (*S3Store, *fakeS3) {
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	return newS3Store(fake, config.StorageConfig{
		Bucket:   "portfolio",
		Endpoint: "http://minio.local:9000/",
	}), fake
}

func TestObjectKeyLayout(t *testing.T) {
	key := ObjectKey(42, ".webp")
	assert.Regexp(t, regexp.MustCompile(`^team_42/[0-9a-f-]{36}\.webp$`), key)
}

func TestPutAndDeleteRoundTrip(t *testing.T) {
	store, fake := newTestStore()
	ctx := context.Background()

	url, err := store.PutImage(ctx, 7, []byte("img"), "image/webp", "webp")
	require.NoError(t, err)
	assert.Regexp(t, `^http://minio\.local:9000/portfolio/team_7/.+\.webp$`, url)
	require.Len(t, fake.objects, 1)

	for key, ct := range fake.types {
		assert.Equal(t, "image/webp", ct, key)
	}

	require.NoError(t, store.DeleteByURL(ctx, url))
	assert.Empty(t, fake.objects)
}

func TestKeyFromURLRejectsForeignURLs(t *testing.T) {
	store, _ := newTestStore()

	for _, raw := range []string{
		"https://elsewhere.test/portfolio/team_1/a.webp",
		"http://minio.local:9000/portfolio/",
		"http://minio.local:9000/portfolio/../secrets",
	} {
		_, err := store.KeyFromURL(raw)
		assert.True(t, errors.Is(err, ErrForeignURL), raw)
	}
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.test", publicBaseURL(config.StorageConfig{PublicBaseURL: "https://cdn.test/"}))
	assert.Equal(t, "https://portfolio.s3.us-east-1.amazonaws.com",
		publicBaseURL(config.StorageConfig{Bucket: "portfolio", Region: "us-east-1"}))
}
