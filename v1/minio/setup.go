package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/trek/v1/logger"
	"github.com/Aleph-Alpha/trek/v1/observability"
	"github.com/Aleph-Alpha/trek/v1/result"
	"github.com/Aleph-Alpha/trek/v1/spanrecord"
)

// Exporter stores every exported span as one object in a MinIO bucket.
type Exporter struct {
	cfg      Config
	client   objectPutter
	encoder  spanrecord.Encoder
	observer observability.Observer
	logger   logger.Logger

	// uploads runs at most MaxConcurrentUploads uploads.
	uploads  *errgroup.Group
	inflight result.Tracker

	// mu orders admission of new uploads against Shutdown.
	mu     sync.RWMutex
	closed bool

	shutdownOnce sync.Once
	shutdown     *result.Result
}

// NewExporter connects to MinIO, validates the credentials against the
// configured bucket and creates the bucket if allowed.
//
// Example:
//
//	exp, err := minio.NewExporter(minio.Config{
//	    Connection: minio.ConnectionConfig{
//	        Endpoint:             "localhost:9000",
//	        AccessKeyID:          "minioadmin",
//	        SecretAccessKey:      "minioadmin",
//	        BucketName:           "spans",
//	        AccessBucketCreation: true,
//	    },
//	})
func NewExporter(cfg Config) (*Exporter, error) {
	cfg = cfg.withDefaults()
	enc, err := spanrecord.NewEncoder(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	client, err := connectToMinio(cfg)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := ensureBucketExists(timeoutCtx, client, cfg.Connection); err != nil {
		return nil, err
	}

	return newExporter(cfg, enc, client), nil
}

func newExporter(cfg Config, enc spanrecord.Encoder, client objectPutter) *Exporter {
	uploads := &errgroup.Group{}
	uploads.SetLimit(cfg.MaxConcurrentUploads)
	return &Exporter{
		cfg:     cfg,
		client:  client,
		encoder: enc,
		uploads: uploads,
	}
}

// WithObserver attaches an observer that is notified once per upload.
func (e *Exporter) WithObserver(observer observability.Observer) *Exporter {
	e.observer = observer
	return e
}

// WithLogger sets the logger used for lifecycle events.
func (e *Exporter) WithLogger(log logger.Logger) *Exporter {
	e.logger = log
	return e
}

func connectToMinio(cfg Config) (*minio.Client, error) {
	if cfg.Connection.Endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint cannot be empty", ErrConnectionFailed)
	}

	client, err := minio.New(cfg.Connection.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Connection.AccessKeyID, cfg.Connection.SecretAccessKey, ""),
		Secure: cfg.Connection.UseSSL,
		Region: cfg.Connection.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return client, nil
}

// ensureBucketExists checks the configured bucket, which also validates the
// credentials, and creates it when AccessBucketCreation is set.
func ensureBucketExists(ctx context.Context, client *minio.Client, cfg ConnectionConfig) error {
	if cfg.BucketName == "" {
		return fmt.Errorf("%w: bucket name is empty", ErrBucketMissing)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return fmt.Errorf("%w: failed to check bucket %v: %w", ErrConnectionFailed, cfg.BucketName, err)
	}
	if exists {
		return nil
	}
	if !cfg.AccessBucketCreation {
		return fmt.Errorf("%w: %v", ErrBucketMissing, cfg.BucketName)
	}

	err = client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region})
	if err != nil {
		// Another instance may have created it in the meantime.
		if exists, existsErr := client.BucketExists(ctx, cfg.BucketName); existsErr == nil && exists {
			return nil
		}
		return fmt.Errorf("failed to create bucket %v: %w", cfg.BucketName, err)
	}
	return nil
}
