package services

import (
	"context"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paddock-dev/paddock/pkg/logger"
	"github.com/paddock-dev/paddock/pkg/metrics"
	"github.com/paddock-dev/paddock/pkg/storage"
)

// MediaService uploads listing images to the configured object store.
//
// Upload never fails the caller: a missing file, an unconfigured backend or
// a transport error all degrade to "no media" (empty URL). Backend failures
// are logged so operators can see them.
type MediaService struct{}

func NewMediaService() *MediaService {
	return &MediaService{}
}

// uploadTimeout bounds one synchronous upload against a slow backend.
const uploadTimeout = 30 * time.Second

// Upload stores the file and returns its durable public URL, or "" when
// there is nothing to store or the backend is unusable.
func (s *MediaService) Upload(ctx context.Context, file *multipart.FileHeader) string {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	log := logger.WithCtx(ctx)

	if file == nil || file.Filename == "" {
		metrics.MediaUploads.WithLabelValues("skipped").Inc()
		return ""
	}

	disk := storage.Default()
	if disk == nil {
		log.Debug("media: storage not configured, skipping upload")
		metrics.MediaUploads.WithLabelValues("skipped").Inc()
		return ""
	}

	src, err := file.Open()
	if err != nil {
		log.Error("media: open upload", "filename", file.Filename, "error", err)
		metrics.MediaUploads.WithLabelValues("failed").Inc()
		return ""
	}
	defer src.Close()

	if err := disk.EnsureStore(ctx); err != nil {
		log.Error("media: ensure store", "error", err)
		metrics.MediaUploads.WithLabelValues("failed").Inc()
		return ""
	}

	// Random prefix keeps distinct uploads of like-named files apart.
	name := uuid.NewString() + "_" + SanitizeFilename(file.Filename)

	if err := disk.PutStream(ctx, name, src); err != nil {
		log.Error("media: upload", "object", name, "error", err)
		metrics.MediaUploads.WithLabelValues("failed").Inc()
		return ""
	}

	metrics.MediaUploads.WithLabelValues("stored").Inc()
	return disk.URL(name)
}

var (
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)
	dotRuns     = regexp.MustCompile(`\.{2,}`)
)

// SanitizeFilename reduces an untrusted filename to a safe object name:
// path separators and shell-hostile characters become underscores, dot runs
// collapse, and an empty result falls back to "upload".
func SanitizeFilename(name string) string {
	// Strip any client-supplied directory components.
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}

	name = unsafeChars.ReplaceAllString(name, "_")
	name = dotRuns.ReplaceAllString(name, ".")
	name = strings.Trim(name, "._")

	if name == "" {
		return "upload"
	}
	return name
}
