package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	putErr          error
	getErr          error
	removeErr       error
	statErr         error

	madeBucket bool
	objects    map[string][]byte
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{objects: map[string][]byte{}}
}

func (f *fakeAPI) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeAPI) MakeBucket(_ context.Context, _ string, _ minio.MakeBucketOptions) error {
	if f.makeBucketErr != nil {
		return f.makeBucketErr
	}
	f.madeBucket = true
	return nil
}

func (f *fakeAPI) PutObject(_ context.Context, _, object string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[object] = data
	return minio.UploadInfo{Key: object, Size: int64(len(data))}, nil
}

func (f *fakeAPI) GetObject(_ context.Context, _, object string, _ minio.GetObjectOptions) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return io.NopCloser(bytes.NewReader(f.objects[object])), nil
}

func (f *fakeAPI) RemoveObject(_ context.Context, _, object string, _ minio.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.objects, object)
	return nil
}

func (f *fakeAPI) StatObject(_ context.Context, _, object string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if f.statErr != nil {
		return minio.ObjectInfo{}, f.statErr
	}
	if _, ok := f.objects[object]; !ok {
		return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"}
	}
	return minio.ObjectInfo{Key: object}, nil
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket already exists", func(t *testing.T) {
		api := newFakeAPI()
		api.bucketExists = true

		c, err := newClient(ctx, api, "states")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.False(t, api.madeBucket)
	})

	t.Run("creates missing bucket", func(t *testing.T) {
		api := newFakeAPI()

		_, err := newClient(ctx, api, "states")
		require.NoError(t, err)
		assert.True(t, api.madeBucket)
	})

	t.Run("bucket check fails", func(t *testing.T) {
		api := newFakeAPI()
		api.bucketExistsErr = errors.New("connection refused")

		_, err := newClient(ctx, api, "states")
		require.Error(t, err)
	})

	t.Run("bucket creation fails", func(t *testing.T) {
		api := newFakeAPI()
		api.makeBucketErr = errors.New("access denied")

		_, err := newClient(ctx, api, "states")
		require.Error(t, err)
	})
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores artifact", func(t *testing.T) {
		api := newFakeAPI()
		api.bucketExists = true
		c, err := newClient(ctx, api, "states")
		require.NoError(t, err)

		err = c.Upload(ctx, "ranges/abc/terraform.tfstate", bytes.NewReader([]byte(`{"version":4}`)))
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"version":4}`), api.objects["ranges/abc/terraform.tfstate"])
	})

	t.Run("put fails", func(t *testing.T) {
		api := newFakeAPI()
		api.bucketExists = true
		c, err := newClient(ctx, api, "states")
		require.NoError(t, err)

		api.putErr = errors.New("disk full")
		err = c.Upload(ctx, "key", bytes.NewReader(nil))
		require.Error(t, err)
	})
}

func TestClient_Download(t *testing.T) {
	ctx := context.Background()

	api := newFakeAPI()
	api.bucketExists = true
	c, err := newClient(ctx, api, "states")
	require.NoError(t, err)

	api.objects["key"] = []byte("state")

	rc, err := c.Download(ctx, "key")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("state"), data)
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	api := newFakeAPI()
	api.bucketExists = true
	c, err := newClient(ctx, api, "states")
	require.NoError(t, err)

	api.objects["key"] = []byte("state")

	err = c.Delete(ctx, "key")
	require.NoError(t, err)
	assert.NotContains(t, api.objects, "key")
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()

	t.Run("present", func(t *testing.T) {
		api := newFakeAPI()
		api.bucketExists = true
		c, err := newClient(ctx, api, "states")
		require.NoError(t, err)

		api.objects["key"] = []byte("state")

		exists, err := c.Exists(ctx, "key")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("absent", func(t *testing.T) {
		api := newFakeAPI()
		api.bucketExists = true
		c, err := newClient(ctx, api, "states")
		require.NoError(t, err)

		exists, err := c.Exists(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("stat fails", func(t *testing.T) {
		api := newFakeAPI()
		api.bucketExists = true
		c, err := newClient(ctx, api, "states")
		require.NoError(t, err)

		api.statErr = errors.New("timeout")

		_, err = c.Exists(ctx, "key")
		require.Error(t, err)
	})
}
