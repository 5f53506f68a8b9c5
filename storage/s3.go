package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/groundfi/address-registry/interfaces"
	"github.com/groundfi/address-registry/manifest"
)

// S3Source reads manifests from Amazon S3 or compatible services.
// Objects are keyed <prefix>/<environment>.hcl.
type S3Source struct {
	client      s3iface.S3API
	bucketName  string
	prefix      string
	log         *slog.Logger
	locationURI string
}

// NewS3Source creates a new S3 manifest source.
// Without accessKey and secretKey the bucket is read anonymously.
func NewS3Source(bucketName, prefix, region, endpoint, accessKey, secretKey string, log *slog.Logger) (*S3Source, error) {
	prefix = strings.Trim(prefix, "/")

	uri := fmt.Sprintf("s3://%s/%s?region=%s", bucketName, prefix, region)
	if endpoint != "" {
		uri += fmt.Sprintf("&endpoint=%s", endpoint)
	}

	cfg := aws.Config{
		Region: aws.String(region),
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	if accessKey != "" && secretKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(accessKey, secretKey, "")
	} else {
		cfg.Credentials = credentials.AnonymousCredentials
	}

	sess, err := session.NewSession(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return newS3Source(s3.New(sess), bucketName, prefix, uri, log), nil
}

func newS3Source(client s3iface.S3API, bucketName, prefix, uri string, log *slog.Logger) *S3Source {
	return &S3Source{
		client:      client,
		bucketName:  bucketName,
		prefix:      prefix,
		log:         log,
		locationURI: uri,
	}
}

// Fetch retrieves the manifest object of env.
// Returns ErrManifestNotFound if the object doesn't exist.
func (s *S3Source) Fetch(ctx context.Context, env interfaces.Environment) ([]byte, error) {
	start := time.Now()
	key := s.objectKey(env)

	result, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && (aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == "NotFound") {
			s.log.Debug("Manifest not found in S3",
				slog.String("bucket", s.bucketName),
				slog.String("key", key),
				slog.Duration("duration", time.Since(start)))
			return nil, fmt.Errorf("%w: s3://%s/%s", interfaces.ErrManifestNotFound, s.bucketName, key)
		}

		s.log.Error("Failed to get object from S3",
			slog.String("bucket", s.bucketName),
			slog.String("key", key),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	s.log.Debug("Fetched manifest from S3",
		slog.String("bucket", s.bucketName),
		slog.String("key", key),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// Available checks if the bucket is accessible.
func (s *S3Source) Available(ctx context.Context) bool {
	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	})
	if err != nil {
		s.log.Warn("S3 source unavailable",
			slog.String("bucket", s.bucketName),
			"err", err)
		return false
	}
	return true
}

// Name returns a unique identifier for this source.
func (s *S3Source) Name() string {
	return fmt.Sprintf("s3-%s", s.bucketName)
}

// LocationURI returns the URI that identifies this source.
func (s *S3Source) LocationURI() string {
	return s.locationURI
}

func (s *S3Source) objectKey(env interfaces.Environment) string {
	if s.prefix == "" {
		return manifest.FileName(env)
	}
	return path.Join(s.prefix, manifest.FileName(env))
}
