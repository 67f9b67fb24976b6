package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/forkful/recipebook-backend/config"
)

// ImageStore abstracts where recipe images live. Save returns the public
// path for the stored object.
type ImageStore interface {
	Save(ctx context.Context, data []byte, key, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}

// ImageService validates uploaded payloads and hands them to the
// configured store.
type ImageService struct {
	store ImageStore
}

func NewImageService(store ImageStore) *ImageService {
	return &ImageService{store: store}
}

// StoreRecipeImage rejects payloads that do not decode as an image, then
// stores the bytes under a fresh name and returns its public path.
func (s *ImageService) StoreRecipeImage(ctx context.Context, data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotAnImage
	}

	key := fmt.Sprintf("uploads/recipe/%s.%s", uuid.New().String(), format)
	return s.store.Save(ctx, data, key, "image/"+format)
}

// Remove deletes a previously stored image. Failures are logged, not
// surfaced: the owning record is already gone or being replaced.
func (s *ImageService) Remove(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.store.Delete(ctx, path); err != nil {
		log.Printf("failed to delete image %s: %v", path, err)
	}
}

// LocalImageStore keeps images on the local filesystem under a media
// directory, served at baseURL.
type LocalImageStore struct {
	dir     string
	baseURL string
}

func NewLocalImageStore(dir, baseURL string) *LocalImageStore {
	return &LocalImageStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *LocalImageStore) Save(ctx context.Context, data []byte, key, contentType string) (string, error) {
	full := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *LocalImageStore) Delete(ctx context.Context, path string) error {
	key := strings.TrimPrefix(path, s.baseURL+"/")
	return os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
}

// S3ImageStore uploads images to an S3 bucket with public-read URLs.
type S3ImageStore struct {
	cfg *config.S3Config
}

func NewS3ImageStore(cfg *config.S3Config) *S3ImageStore {
	return &S3ImageStore{cfg: cfg}
}

func (s *S3ImageStore) Save(ctx context.Context, data []byte, key, contentType string) (string, error) {
	_, err := s.cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.cfg.BucketName, key), nil
}

func (s *S3ImageStore) Delete(ctx context.Context, path string) error {
	prefix := fmt.Sprintf("https://%s.s3.amazonaws.com/", s.cfg.BucketName)
	key := strings.TrimPrefix(path, prefix)
	_, err := s.cfg.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.BucketName),
		Key:    aws.String(key),
	})
	return err
}
