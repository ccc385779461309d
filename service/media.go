// file: service/media.go

package service

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"
	appconfig "vidtube-api/config"
	"vidtube-api/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// IMediaUploader defines the contract for the media host. Upload stores the
// local temp file and returns its public URL. A missing local path yields
// ("", nil) so optional files degrade to "no image" without an error.
// The local file is removed whether or not the upload succeeds.
type IMediaUploader interface {
	Upload(ctx context.Context, localFilePath string) (string, error)
}

// S3MediaUploader implements IMediaUploader against S3-compatible storage.
type S3MediaUploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3MediaUploader builds the uploader from the loaded AppConfig.
func NewS3MediaUploader() (*S3MediaUploader, error) {
	cfg := appconfig.AppConfig.Media

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load media storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3MediaUploader{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func storageKey(localFilePath string) string {
	d := time.Now()
	return fmt.Sprintf("media/%d/%02d/%v%s", d.Year(), int(d.Month()), uuid.New(), filepath.Ext(localFilePath))
}

// Upload pushes the local file to the bucket and returns its public URL.
func (u *S3MediaUploader) Upload(ctx context.Context, localFilePath string) (string, error) {
	if localFilePath == "" {
		return "", nil
	}
	defer os.Remove(localFilePath)

	file, err := os.Open(localFilePath)
	if err != nil {
		logger.Log.WithError(err).WithField("path", localFilePath).Error("Failed to open local file for upload")
		return "", err
	}
	defer file.Close()

	key := storageKey(localFilePath)
	contentType := mime.TypeByExtension(filepath.Ext(localFilePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Log.WithError(err).WithField("key", key).Error("Failed to upload file to media storage")
		return "", err
	}

	url := fmt.Sprintf("%s/%s", u.publicBaseURL, key)
	logger.Log.WithField("url", url).Info("File uploaded to media storage")
	return url, nil
}
