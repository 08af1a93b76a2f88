package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddock-dev/paddock/app/services"
	"github.com/paddock-dev/paddock/pkg/storage"
	"github.com/paddock-dev/paddock/pkg/testkit"
)

func TestUpload_NoBackendSkips(t *testing.T) {
	storage.Reset()
	svc := services.NewMediaService()

	file := testkit.FileHeader(t, "photo.jpg", "jpeg-bytes")
	url := svc.Upload(context.Background(), file)
	assert.Empty(t, url)
}

func TestUpload_NilFileSkips(t *testing.T) {
	testkit.NewFakeDisk(t)
	svc := services.NewMediaService()

	assert.Empty(t, svc.Upload(context.Background(), nil))
}

func TestUpload_StoresAndReturnsURL(t *testing.T) {
	disk := testkit.NewFakeDisk(t)
	svc := services.NewMediaService()

	file := testkit.FileHeader(t, "photo.jpg", "jpeg-bytes")
	url := svc.Upload(context.Background(), file)

	require.NotEmpty(t, url)
	assert.True(t, strings.HasPrefix(url, "https://fake.storage.test/"), url)
	assert.Equal(t, 1, disk.Len())

	object := strings.TrimPrefix(url, "https://fake.storage.test/")
	data, err := disk.Get(context.Background(), object)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestUpload_DistinctNamesForSameFilename(t *testing.T) {
	disk := testkit.NewFakeDisk(t)
	svc := services.NewMediaService()

	first := svc.Upload(context.Background(), testkit.FileHeader(t, "photo.jpg", "one"))
	second := svc.Upload(context.Background(), testkit.FileHeader(t, "photo.jpg", "two"))

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, disk.Len())
}

func TestUpload_BackendFailureReturnsEmpty(t *testing.T) {
	disk := testkit.NewFakeDisk(t)
	disk.FailPut = true
	svc := services.NewMediaService()

	url := svc.Upload(context.Background(), testkit.FileHeader(t, "photo.jpg", "jpeg-bytes"))
	assert.Empty(t, url)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":            "photo.jpg",
		"my photo!.jpg":        "my_photo_.jpg",
		"../../etc/passwd":     "passwd",
		`C:\horses\mare.png`:   "mare.png",
		"weird..name...jpg":    "weird.name.jpg",
		"комета.jpg":           "jpg",
		"...":                  "upload",
		"":                     "upload",
	}

	for in, want := range cases {
		assert.Equal(t, want, services.SanitizeFilename(in), "input %q", in)
	}
}
