package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		b, _ := io.ReadAll(in.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3ImageStorage_Upload(t *testing.T) {
	putter := &fakePutter{}
	storage := newS3ImageStorage(putter, config.Images{Bucket: "events", PublicURL: "https://cdn.example/"})

	url, err := storage.Upload(context.Background(), "events/e-1/cover image.png", "image/png", 5, strings.NewReader("hello"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example/events/e-1/cover%20image.png", url)
	require.NotNil(t, putter.input)
	assert.Equal(t, "events", *putter.input.Bucket)
	assert.Equal(t, "events/e-1/cover image.png", *putter.input.Key)
	assert.Equal(t, "image/png", *putter.input.ContentType)
	assert.Equal(t, int64(5), *putter.input.ContentLength)
	assert.Equal(t, "hello", putter.body)
}

func TestS3ImageStorage_UploadError(t *testing.T) {
	putter := &fakePutter{err: errors.New("access denied")}
	storage := newS3ImageStorage(putter, config.Images{Bucket: "events", Region: "eu-west-1"})

	_, err := storage.Upload(context.Background(), "k", "image/jpeg", 0, strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	assert.Nil(t, putter.input.ContentLength)
}

func TestImageBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Images
		want string
	}{
		{name: "public url", cfg: config.Images{Bucket: "b", PublicURL: "https://cdn.example"}, want: "https://cdn.example"},
		{name: "custom endpoint", cfg: config.Images{Bucket: "b", Endpoint: "http://localhost:9000/"}, want: "http://localhost:9000/b"},
		{name: "aws", cfg: config.Images{Bucket: "b", Region: "eu-west-1"}, want: "https://b.s3.eu-west-1.amazonaws.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, imageBaseURL(tt.cfg))
		})
	}
}

func TestNewImageStorage_Disabled(t *testing.T) {
	storage, err := NewImageStorage(context.Background(), config.Images{}, logger.Nop())
	require.NoError(t, err)

	_, err = storage.Upload(context.Background(), "k", "image/png", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrImageStorageDisabled)
}

func TestNewImageStorage_Configured(t *testing.T) {
	storage, err := NewImageStorage(context.Background(), config.Images{
		Endpoint:  "http://localhost:9000",
		Region:    "us-east-1",
		Bucket:    "events",
		AccessKey: "minio",
		SecretKey: "minio123",
	}, logger.Nop())
	require.NoError(t, err)

	s3Storage, ok := storage.(*s3ImageStorage)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:9000/events", s3Storage.baseURL)
}

func TestNewStorages_UnknownDriver(t *testing.T) {
	_, err := NewStorages(context.Background(), config.Storage{Driver: "sqlite"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestStorages_ZeroValue(t *testing.T) {
	var s Storages
	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, s.Close())
}
