package middleware

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"

	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
	"github.com/Dhairyash-1/videotube-api/internal/storage/media"
)

const localUploads = "uploads"

// UploadField declares one accepted multipart file field.
type UploadField struct {
	Name     string
	Label    string // used in error messages, defaults to Name
	Kind     media.Kind
	Required bool
}

func (f UploadField) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// UploadMiddleware validates the declared file fields, saves accepted files to tmpDir
// and exposes them through UploadedFile. Files left behind by the handler are removed
// once the request completes.
func UploadMiddleware(tmpDir string, fields ...UploadField) fiber.Handler {
	return func(c fiber.Ctx) error {
		files := make(map[string]*media.LocalFile, len(fields))
		defer func() {
			for _, f := range files {
				media.Cleanup(f)
			}
		}()

		isMultipart := strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
		for _, field := range fields {
			var file *media.LocalFile
			if isMultipart {
				var err error
				file, err = receive(c, tmpDir, field)
				if err != nil {
					return basehdl.WriteError(c, err)
				}
			}
			if file == nil {
				if field.Required {
					return basehdl.WriteError(c, common.BadRequest(field.label()+" file is required"))
				}
				continue
			}
			files[field.Name] = file
		}

		c.Locals(localUploads, files)
		return c.Next()
	}
}

func receive(c fiber.Ctx, tmpDir string, field UploadField) (*media.LocalFile, error) {
	header, err := c.FormFile(field.Name)
	if errors.Is(err, fasthttp.ErrMissingFile) || (err == nil && header == nil) {
		return nil, nil
	}
	if err != nil {
		logger.WithRequest(c).WithError(err).Debug("Unreadable multipart form")
		return nil, common.BadRequest("Invalid multipart form data")
	}

	contentType := header.Header.Get(fiber.HeaderContentType)
	if err := media.CheckUpload(field.Kind, field.label(), contentType, header.Size); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, common.Internal("Failed to prepare upload directory", err)
	}
	path := media.TempPath(tmpDir, header.Filename)
	if err := c.SaveFile(header, path); err != nil {
		return nil, common.Internal(fmt.Sprintf("Failed to receive %s", field.label()), err)
	}

	file := &media.LocalFile{
		Path:         path,
		OriginalName: header.Filename,
		ContentType:  contentType,
		Size:         header.Size,
		Kind:         field.Kind,
	}
	if field.Kind == media.KindVideo {
		duration, err := media.ProbeDuration(path, contentType)
		if err != nil {
			logger.WithRequest(c).WithError(err).Debug("Could not read video duration")
			media.Cleanup(file)
			return nil, common.BadRequest(fmt.Sprintf("Could not read the duration of %s", field.label()))
		}
		file.Duration = duration
	}
	return file, nil
}

// UploadedFile returns the file received for field, nil when it was not sent.
func UploadedFile(c fiber.Ctx, field string) *media.LocalFile {
	files, ok := c.Locals(localUploads).(map[string]*media.LocalFile)
	if !ok {
		return nil
	}
	return files[field]
}
