package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeMediaHost 记录调用并可注入失败
type fakeMediaHost struct {
	uploads   int
	deletes   []string
	deleteErr error
}

func (f *fakeMediaHost) Upload(ctx context.Context, filename string, content []byte) (*MediaAsset, error) {
	f.uploads++
	return &MediaAsset{
		ID:          "asset-1",
		URL:         "https://media.example/asset-1.png",
		Bytes:       int64(len(content)),
		ContentType: "image/png",
	}, nil
}

func (f *fakeMediaHost) Delete(ctx context.Context, assetID string) error {
	f.deletes = append(f.deletes, assetID)
	return f.deleteErr
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestGalleryUploadPersistsMetadata(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	host := &fakeMediaHost{}
	svc := NewGalleryService(gdb, host)

	content := encodePNG(t, 20, 10)
	img, err := svc.Upload(context.Background(), "tenant-gal", "photo.png", "image/png", content, GalleryInput{
		Caption:  "  Sunset over the ridge ",
		Location: "Dolomites",
	})
	require.NoError(t, err)
	require.Equal(t, 1, host.uploads)

	require.Equal(t, "asset-1", img.MediaID)
	require.Equal(t, "https://media.example/asset-1.png", img.URL)
	require.Equal(t, "Sunset over the ridge", img.Caption)
	require.Equal(t, "Dolomites", img.Location)
	require.Equal(t, int64(len(content)), img.Bytes)
	require.Equal(t, 20, img.ImageWidth)
	require.Equal(t, 10, img.ImageHeight)

	images, err := svc.List("tenant-gal")
	require.NoError(t, err)
	require.Len(t, images, 1)
}

func TestGalleryUploadRejectsBadContent(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewGalleryService(gdb, &fakeMediaHost{})

	_, err := svc.Upload(context.Background(), "tenant-size", "empty.png", "image/png", nil, GalleryInput{})
	require.ErrorIs(t, err, ErrImageEmpty)

	huge := make([]byte, maxGalleryImageBytes+1)
	_, err = svc.Upload(context.Background(), "tenant-size", "huge.png", "image/png", huge, GalleryInput{})
	require.ErrorIs(t, err, ErrImageTooLarge)
}

func TestGalleryDeleteSurvivesRemoteFailure(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	host := &fakeMediaHost{deleteErr: errors.New("host unreachable")}
	svc := NewGalleryService(gdb, host)

	img, err := svc.Upload(context.Background(), "tenant-del", "photo.png", "image/png", encodePNG(t, 4, 4), GalleryInput{})
	require.NoError(t, err)

	// 远程删除失败也要移除本地记录
	require.NoError(t, svc.Delete(context.Background(), "tenant-del", img.ID))
	require.Equal(t, []string{"asset-1"}, host.deletes)

	_, err = svc.Get("tenant-del", img.ID)
	require.ErrorIs(t, err, ErrImageNotFound)
}

func TestGalleryUpdateMetadata(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewGalleryService(gdb, &fakeMediaHost{})

	img, err := svc.Upload(context.Background(), "tenant-meta", "photo.png", "image/png", encodePNG(t, 4, 4), GalleryInput{
		Caption: "before",
	})
	require.NoError(t, err)

	updated, err := svc.Update("tenant-meta", img.ID, GalleryInput{Caption: "after", Location: "Banff"})
	require.NoError(t, err)
	require.Equal(t, "after", updated.Caption)
	require.Equal(t, "Banff", updated.Location)

	_, err = svc.Update("tenant-meta", img.ID+999, GalleryInput{})
	require.ErrorIs(t, err, ErrImageNotFound)
}
