package minio

import (
	"time"

	"github.com/Aleph-Alpha/trek/v1/spanrecord"
)

const (
	// DefaultObjectPrefix is prepended to every object key.
	DefaultObjectPrefix = "spans"

	// DefaultMaxConcurrentUploads bounds the uploads in flight at once.
	DefaultMaxConcurrentUploads = 64

	// DefaultUploadTimeout bounds a single upload.
	DefaultUploadTimeout = 30 * time.Second
)

// Config defines the configuration of the MinIO span exporter.
type Config struct {
	Connection ConnectionConfig `yaml:"connection"`

	// ObjectPrefix is prepended to every object key
	ObjectPrefix string `yaml:"object_prefix" envconfig:"MINIO_OBJECT_PREFIX"`

	// Encoding selects the object format. Defaults to JSON records.
	Encoding spanrecord.Encoding `yaml:"encoding" envconfig:"MINIO_ENCODING"`

	// MaxConcurrentUploads bounds the uploads in flight. Spans exported while
	// the limit is reached fail with ErrTooManyUploads instead of waiting.
	MaxConcurrentUploads int `yaml:"max_concurrent_uploads" envconfig:"MINIO_MAX_CONCURRENT_UPLOADS"`

	// UploadTimeout bounds a single upload
	UploadTimeout time.Duration `yaml:"upload_timeout" envconfig:"MINIO_UPLOAD_TIMEOUT"`
}

// ConnectionConfig contains MinIO server connection details.
type ConnectionConfig struct {
	Endpoint        string `yaml:"endpoint" envconfig:"MINIO_ENDPOINT"` // e.g. "localhost:9000"
	AccessKeyID     string `yaml:"access_key_id" envconfig:"MINIO_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" envconfig:"MINIO_SECRET_ACCESS_KEY"`
	UseSSL          bool   `yaml:"use_ssl" envconfig:"MINIO_USE_SSL"`
	BucketName      string `yaml:"bucket_name" envconfig:"MINIO_BUCKET_NAME"`
	Region          string `yaml:"region" envconfig:"MINIO_REGION"`

	// AccessBucketCreation creates the bucket on start when it does not exist
	AccessBucketCreation bool `yaml:"access_bucket_creation" envconfig:"MINIO_ACCESS_BUCKET_CREATION"`
}

func (c Config) withDefaults() Config {
	if c.ObjectPrefix == "" {
		c.ObjectPrefix = DefaultObjectPrefix
	}
	if c.MaxConcurrentUploads <= 0 {
		c.MaxConcurrentUploads = DefaultMaxConcurrentUploads
	}
	if c.UploadTimeout <= 0 {
		c.UploadTimeout = DefaultUploadTimeout
	}
	return c
}
