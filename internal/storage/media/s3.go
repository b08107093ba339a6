package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
)

// Config describes the bucket uploads go to.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // S3 compatible services, path-style addressing
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	KeyPrefix       string
	// UploadRPS bounds outbound storage calls; 0 disables the throttle.
	UploadRPS float64
}

type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type objectDeleter interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store uploads media to an S3 compatible bucket.
type S3Store struct {
	uploader objectUploader
	deleter  objectDeleter
	limiter  *rate.Limiter
	bucket   string
	prefix   string
	baseURL  string
	now      func() time.Time
}

// NewS3Store builds a store from cfg. Credentials fall back to the default AWS chain
// when no static keys are configured.
func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("media: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	return newStore(cfg, uploader, client), nil
}

func newStore(cfg Config, up objectUploader, del objectDeleter) *S3Store {
	limit := rate.Inf
	burst := 1
	if cfg.UploadRPS > 0 {
		limit = rate.Limit(cfg.UploadRPS)
		if b := int(cfg.UploadRPS); b > 1 {
			burst = b
		}
	}

	return &S3Store{
		uploader: up,
		deleter:  del,
		limiter:  rate.NewLimiter(limit, burst),
		bucket:   cfg.Bucket,
		prefix:   strings.Trim(cfg.KeyPrefix, "/"),
		baseURL:  publicBaseURL(cfg),
		now:      time.Now,
	}
}

func publicBaseURL(cfg Config) string {
	if base := strings.TrimSuffix(strings.TrimSpace(cfg.PublicBaseURL), "/"); base != "" {
		return base
	}
	if endpoint := strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/"); endpoint != "" {
		return endpoint + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// ObjectKey builds <prefix>/<kind>/<yyyy>/<mm>/<uuid><ext>.
func ObjectKey(prefix string, kind Kind, originalName string, now time.Time) string {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	return path.Join(prefix, string(kind), now.UTC().Format("2006/01"), name)
}

// Store uploads file and returns its reference. The temporary file is removed on every path.
func (s *S3Store) Store(ctx context.Context, file *LocalFile) (Ref, error) {
	if file == nil {
		return Ref{}, common.ErrUploadFailed
	}
	defer Cleanup(file)

	log := logger.WithContext(ctx).WithField("module", "media")

	if err := s.limiter.Wait(ctx); err != nil {
		return Ref{}, common.NewError(common.ErrCodeStorage, common.ErrUploadFailed.Error(), common.StatusInternalServerError, err)
	}

	f, err := os.Open(file.Path)
	if err != nil {
		log.WithError(err).WithField("path", file.Path).Error("Temporary upload is missing")
		return Ref{}, common.NewError(common.ErrCodeStorage, common.ErrUploadFailed.Error(), common.StatusInternalServerError, err)
	}
	defer f.Close()

	key := ObjectKey(s.prefix, file.Kind, file.OriginalName, s.now())
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		log.WithError(err).WithField("key", key).Error("Upload to object storage failed")
		return Ref{}, common.NewError(common.ErrCodeStorage, common.ErrUploadFailed.Error(), common.StatusInternalServerError, err)
	}

	log.WithFields(map[string]interface{}{
		"key":  key,
		"size": file.Size,
	}).Debug("Stored media")

	return Ref{
		URL:          s.baseURL + "/" + key,
		PublicID:     key,
		ResourceType: string(file.Kind),
	}, nil
}

// Remove deletes the object behind ref. Empty references are a no-op.
func (s *S3Store) Remove(ctx context.Context, ref Ref) RemoveResult {
	result := RemoveResult{PublicID: ref.PublicID}
	if ref.PublicID == "" {
		return result
	}

	if err := s.limiter.Wait(ctx); err != nil {
		result.Err = err
		return result
	}

	_, err := s.deleter.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref.PublicID),
	})
	if err != nil {
		result.Err = fmt.Errorf("delete %s: %w", ref.PublicID, err)
	}
	return result
}
