package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	m "mutest.dev/pkg/mutest/internal/model"
)

// ObjectStoreConfig locates the S3-compatible bucket reports are mirrored to.
type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// Validate checks that the configuration can reach a bucket.
func (c ObjectStoreConfig) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("endpoint is required")
	}

	if strings.Contains(c.Endpoint, "://") {
		return fmt.Errorf("endpoint must not include scheme: %q", c.Endpoint)
	}

	if strings.TrimSpace(c.AccessKey) == "" {
		return errors.New("access key is required")
	}

	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("secret key is required")
	}

	if strings.TrimSpace(c.Bucket) == "" {
		return errors.New("bucket is required")
	}

	return nil
}

type objectReportSink struct {
	client *minio.Client
	cfg    ObjectStoreConfig
}

// NewObjectReportSink connects to the object store and creates the bucket
// when it does not exist yet.
func NewObjectReportSink(ctx context.Context, cfg ObjectStoreConfig) (ReportSink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket exists: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("make bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &objectReportSink{client: client, cfg: cfg}, nil
}

func (s *objectReportSink) Name() string {
	return "object-store"
}

func (s *objectReportSink) Publish(ctx context.Context, key string, _ m.MethodReport, data []byte) error {
	objectKey := path.Join(s.cfg.Prefix, key)

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectKey, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("put %s: %w", objectKey, err)
	}

	return nil
}

func (s *objectReportSink) Close() error {
	return nil
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
