// Package objectstore uploads finished artifacts to Cloudflare R2 through
// its S3-compatible API.
package objectstore

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/kwonth211/podcastify/internal/config"
	"github.com/kwonth211/podcastify/internal/ports"
)

// R2Store uploads files to an R2 bucket and derives their public URLs.
type R2Store struct {
	client *s3.Client
	cfg    config.StorageConfig
	logger *slog.Logger
}

var _ ports.ArtifactStore = (*R2Store)(nil)

// NewR2Store builds an S3 client pointed at the R2 endpoint with static
// credentials.
func NewR2Store(cfg config.StorageConfig, logger *slog.Logger) *R2Store {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(cfg.Endpoint),
		Region:       "auto",
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	})
	return &R2Store{client: client, cfg: cfg, logger: logger}
}

// Upload stores the local file under the given key and returns its public
// URL. The content type is derived from the file extension.
func (r *R2Store) Upload(ctx context.Context, localPath, key string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.cfg.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(ContentTypeFor(localPath)),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	publicURL := PublicURL(r.cfg, key)
	if r.logger != nil {
		r.logger.Info("artifact uploaded", "bucket", r.cfg.Bucket, "key", key, "url", publicURL)
	}
	return publicURL, nil
}

// PublicURL derives the readable URL for an uploaded key: custom domain if
// configured, else the r2.dev subdomain, else one constructed from the
// account id embedded in the endpoint.
func PublicURL(cfg config.StorageConfig, key string) string {
	encoded := url.PathEscape(key)

	if cfg.CustomDomain != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(cfg.CustomDomain, "/"), cfg.Bucket, encoded)
	}
	if cfg.DevSubdomain != "" {
		// The r2.dev subdomain addresses keys directly, without the bucket.
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.DevSubdomain, "/"), encoded)
	}

	account := cfg.Endpoint
	if idx := strings.Index(account, "//"); idx >= 0 {
		account = account[idx+2:]
	}
	if idx := strings.Index(account, "."); idx >= 0 {
		account = account[:idx]
	}
	return fmt.Sprintf("https://%s.%s.r2.dev/%s", cfg.Bucket, account, encoded)
}

// ContentTypeFor maps an artifact filename to its upload content type.
func ContentTypeFor(name string) string {
	switch filepath.Ext(name) {
	case ".mp3":
		return "audio/mpeg"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
