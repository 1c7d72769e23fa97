// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mzansithrift/thriftstore-backend/internal/config"
)

// StorageService stores uploaded media on S3 when AWS credentials are
// configured, otherwise on the local filesystem under the upload dir.
type StorageService struct {
	s3Client *s3.S3
	cfg      *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

var (
	allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	allowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".webm"}
)

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Local-disk storage for development.
		for _, dir := range []string{"images", "videos", "profiles"} {
			if err := os.MkdirAll(filepath.Join(cfg.Upload.Dir, dir), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create upload dir: %w", err)
			}
		}
		return &StorageService{cfg: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{s3Client: s3.New(sess), cfg: cfg}, nil
}

// ClassifyFile returns the media kind and subdirectory for a filename,
// or ErrInvalidMediaType when the extension is on neither allow-list.
func ClassifyFile(filename string) (mediaKind, subdir, mimeType string, err error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedImageExtensions {
		if ext == allowed {
			return "image", "images", "image/" + strings.TrimPrefix(ext, "."), nil
		}
	}
	for _, allowed := range allowedVideoExtensions {
		if ext == allowed {
			return "video", "videos", "video/" + strings.TrimPrefix(ext, "."), nil
		}
	}
	return "", "", "", ErrInvalidMediaType
}

// SaveFile persists one multipart file under a generated unique name.
func (s *StorageService) SaveFile(file multipart.File, header *multipart.FileHeader, subdir string) (*UploadResult, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	_, _, mimeType, err := ClassifyFile(header.Filename)
	if err != nil {
		return nil, err
	}

	// uuid prefix makes filename collisions practically impossible
	uniqueName := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(header.Filename))
	key := filepath.ToSlash(filepath.Join(subdir, uniqueName))

	if s.s3Client != nil {
		return s.uploadToS3(fileBytes, key, header.Filename, mimeType)
	}
	return s.uploadToLocal(fileBytes, key, header.Filename, mimeType)
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, originalName, mimeType string) (*UploadResult, error) {
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(mimeType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.AWS.S3Bucket, s.cfg.AWS.Region, key)
	if s.cfg.AWS.CloudFrontURL != "" {
		url = fmt.Sprintf("%s/%s", strings.TrimSuffix(s.cfg.AWS.CloudFrontURL, "/"), key)
	}

	return &UploadResult{
		URL:      url,
		Key:      key,
		FileName: originalName,
		Size:     int64(len(fileBytes)),
		MimeType: mimeType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, originalName, mimeType string) (*UploadResult, error) {
	path := filepath.Join(s.cfg.Upload.Dir, filepath.FromSlash(key))
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL:      fmt.Sprintf("%s/%s", strings.TrimSuffix(s.cfg.Upload.BaseURL, "/"), key),
		Key:      key,
		FileName: originalName,
		Size:     int64(len(fileBytes)),
		MimeType: mimeType,
	}, nil
}

// DeleteFile removes a stored object. Callers treat failure as
// non-fatal; the database record wins over the blob.
func (s *StorageService) DeleteFile(key string) error {
	if s.s3Client != nil {
		_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.AWS.S3Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return fmt.Errorf("failed to delete file from S3: %w", err)
		}
		return nil
	}

	path := filepath.Join(s.cfg.Upload.Dir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// KeyFromURL strips the serving prefix back off a stored file URL.
func (s *StorageService) KeyFromURL(fileURL string) string {
	prefix := strings.TrimSuffix(s.cfg.Upload.BaseURL, "/") + "/"
	if strings.HasPrefix(fileURL, prefix) {
		return strings.TrimPrefix(fileURL, prefix)
	}
	if idx := strings.Index(fileURL, ".amazonaws.com/"); idx >= 0 {
		return fileURL[idx+len(".amazonaws.com/"):]
	}
	logrus.WithField("url", fileURL).Warn("Could not derive storage key from URL")
	return fileURL
}
