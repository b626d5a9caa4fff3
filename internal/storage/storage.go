package storage

import (
	"context"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/remixrite/remix-ledger/internal/domain"
)

// Artifact is an opaque blob to be stored
type Artifact struct {
	Name string
	Data []byte
	// ContentType is detected from Data when empty
	ContentType string
}

// UploadOptions carries the descriptive key-values attached to a stored artifact
type UploadOptions struct {
	KeyValues map[string]string
}

// UploadResult describes where an artifact was stored
type UploadResult struct {
	URL         string
	ContentHash string
	Size        int64
	ContentType string
}

// Uploader stores artifacts and returns a retrievable URL
//
//go:generate mockgen -source=storage.go -destination=../mocks/uploader.go -package=mocks -mock_names=Uploader=MockUploader
type Uploader interface {
	Upload(ctx context.Context, artifact Artifact, opts UploadOptions) (*UploadResult, error)
}

// DetectContentType returns the MIME type of data
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

// DetectMediaKind walks the detected MIME hierarchy and reports whether data is audio or video
func DetectMediaKind(data []byte) (domain.MediaKind, bool) {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		switch {
		case strings.HasPrefix(m.String(), "audio/"):
			return domain.MediaKindAudio, true
		case strings.HasPrefix(m.String(), "video/"):
			return domain.MediaKindVideo, true
		}
	}
	return "", false
}

func contentTypeOf(a Artifact) string {
	if a.ContentType != "" {
		return a.ContentType
	}
	return DetectContentType(a.Data)
}
