package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	// Consume the body during the call, like the real client does; the
	// caller closes the underlying file once PutObject returns.
	if params.Body != nil {
		data, err := io.ReadAll(params.Body)
		if err != nil {
			return nil, err
		}
		params.Body = bytes.NewReader(data)
	}
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio-abc.mp3")
	require.NoError(t, os.WriteFile(path, []byte("mp3-bytes"), 0o644))
	return path
}

func TestS3StoreUpload(t *testing.T) {
	client := &fakeS3{}
	store := NewS3Store(client, "my-bucket", "audio", nil)

	err := store.Upload(context.Background(), writeTempAudio(t), "audio-abc.mp3")
	require.NoError(t, err)

	require.NotNil(t, client.input)
	assert.Equal(t, "my-bucket", *client.input.Bucket)
	assert.Equal(t, "audio/audio-abc.mp3", *client.input.Key)
	assert.Equal(t, "audio/mpeg", *client.input.ContentType)

	data, err := io.ReadAll(client.input.Body)
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(data))
}

func TestS3StoreUploadNoPrefix(t *testing.T) {
	client := &fakeS3{}
	store := NewS3Store(client, "my-bucket", "", nil)

	require.NoError(t, store.Upload(context.Background(), writeTempAudio(t), "audio-abc.mp3"))
	assert.Equal(t, "audio-abc.mp3", *client.input.Key)
}

func TestS3StoreUploadError(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	store := NewS3Store(client, "my-bucket", "", nil)

	err := store.Upload(context.Background(), writeTempAudio(t), "audio-abc.mp3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestS3StoreUploadMissingFile(t *testing.T) {
	client := &fakeS3{}
	store := NewS3Store(client, "my-bucket", "", nil)

	err := store.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.mp3"), "nope.mp3")
	require.Error(t, err)
	assert.Nil(t, client.input)
}
