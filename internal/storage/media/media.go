// Package media stores uploaded files in S3 compatible object storage and keeps
// the rules that decide which uploads are accepted.
package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
)

// Kind is the class of an uploaded file.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

const (
	MaxImageSize int64 = 1 << 20
	MaxVideoSize int64 = 50 << 20
)

var allowedTypes = map[Kind]map[string]bool{
	KindImage: {"image/jpeg": true, "image/png": true, "image/gif": true, "image/webp": true},
	KindVideo: {"video/mp4": true, "video/x-msvideo": true, "video/x-matroska": true},
}

// Ref is the stored address of an uploaded object.
type Ref struct {
	URL          string `json:"url" bson:"url"`
	PublicID     string `json:"publicId" bson:"publicId"`
	ResourceType string `json:"resourceType" bson:"resourceType"`
}

// IsZero reports an empty reference.
func (r Ref) IsZero() bool {
	return r.PublicID == "" && r.URL == ""
}

// LocalFile is an accepted upload waiting in the temporary directory.
type LocalFile struct {
	Path         string
	OriginalName string
	ContentType  string
	Size         int64
	Kind         Kind
	// Duration in seconds, probed for MP4 videos only
	Duration float64
}

// RemoveResult is the outcome of a deletion; deletions never fail the caller.
type RemoveResult struct {
	PublicID string
	Err      error
}

// OK reports a successful deletion.
func (r RemoveResult) OK() bool {
	return r.Err == nil
}

// Log records a failed deletion against the given module.
func (r RemoveResult) Log(module string) {
	if r.Err != nil {
		logger.WithModule(module).WithError(r.Err).WithField("public_id", r.PublicID).Warn("Media cleanup failed")
	}
}

// CheckUpload validates the declared content type and size of a file of kind.
func CheckUpload(kind Kind, field, contentType string, size int64) error {
	types, ok := allowedTypes[kind]
	if !ok {
		return fmt.Errorf("media: unknown kind %q", kind)
	}

	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !types[contentType] {
		return common.NewError(common.ErrCodeValidationFile,
			fmt.Sprintf("%s must be one of %s", field, strings.Join(sortedTypes(types), ", ")),
			common.StatusBadRequest, nil)
	}

	limit := MaxImageSize
	if kind == KindVideo {
		limit = MaxVideoSize
	}
	if size > limit {
		return common.NewError(common.ErrCodeValidationFile,
			fmt.Sprintf("%s exceeds the %d MB limit", field, limit>>20),
			common.StatusPayloadTooLarge, nil)
	}
	return nil
}

func sortedTypes(types map[string]bool) []string {
	out := make([]string, 0, len(types))
	for t := range types {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// TempPath returns a fresh path in dir keeping the extension of originalName.
func TempPath(dir, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return filepath.Join(dir, uuid.NewString()+ext)
}

// Cleanup removes temporary files, ignoring files already gone.
func Cleanup(files ...*LocalFile) {
	for _, f := range files {
		if f == nil || f.Path == "" {
			continue
		}
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.WithModule("media").WithError(err).WithField("path", f.Path).Warn("Failed to remove temporary upload")
		}
	}
}
