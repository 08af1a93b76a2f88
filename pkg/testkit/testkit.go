// Package testkit holds the shared fixtures used across the service and
// controller tests: an isolated in-memory database, request builders, and a
// fake storage disk.
package testkit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/paddock-dev/paddock/app/models"
	"github.com/paddock-dev/paddock/pkg/cache"
	"github.com/paddock-dev/paddock/pkg/storage"
)

var dbSeq atomic.Int64

// NewDB opens a fresh in-memory sqlite database with the full schema applied.
// Each call gets its own database, so tests never share state. The cache is
// reset to the in-process driver at the same time.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	cache.UseMemory()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open test database")

	err = db.AutoMigrate(&models.User{}, &models.Horse{}, &models.Order{})
	require.NoError(t, err, "migrate test database")

	return db
}

// FormRequest builds an application/x-www-form-urlencoded request. A non-empty
// token is attached as a bearer header.
func FormRequest(method, target, token string, fields map[string]string) *http.Request {
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}

	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// MultipartRequest builds a multipart/form-data request with optional file
// parts. Keys of files are field names, values are literal file contents
// uploaded under the name "upload.jpg".
func MultipartRequest(t *testing.T, method, target, token string, fields, files map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, content := range files {
		part, err := mw.CreateFormFile(field, "upload.jpg")
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// FileHeader builds a real multipart file header for service-level tests,
// carrying the given filename and contents.
func FileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() }) //nolint:errcheck

	return form.File["image"][0]
}

// FakeDisk is an in-memory storage.Disk. Set FailPut to make uploads error,
// which exercises the degraded no-media path.
type FakeDisk struct {
	mu      sync.Mutex
	objects map[string][]byte

	FailPut bool
}

// NewFakeDisk registers a fresh fake disk as the default storage backend and
// restores the previous configuration when the test finishes.
func NewFakeDisk(t *testing.T) *FakeDisk {
	t.Helper()

	d := &FakeDisk{objects: make(map[string][]byte)}
	storage.RegisterDisk("fake", d)
	t.Cleanup(storage.Reset)
	return d
}

func (d *FakeDisk) EnsureStore(ctx context.Context) error { return nil }

func (d *FakeDisk) PutStream(ctx context.Context, path string, r io.Reader) error {
	if d.FailPut {
		return fmt.Errorf("fake disk: put %s: unavailable", path)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.objects[path] = data
	return nil
}

func (d *FakeDisk) Get(ctx context.Context, path string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, ok := d.objects[path]
	if !ok {
		return nil, fmt.Errorf("fake disk: %s not found", path)
	}
	return data, nil
}

func (d *FakeDisk) Exists(ctx context.Context, path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.objects[path]
	return ok
}

func (d *FakeDisk) Delete(ctx context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.objects, path)
	return nil
}

func (d *FakeDisk) URL(path string) string {
	return "https://fake.storage.test/" + path
}

// Len reports how many objects the disk holds.
func (d *FakeDisk) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.objects)
}
