package builtin

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/AccelByte/extend-churn-dataset/pkg/export"
	"github.com/AccelByte/extend-churn-dataset/pkg/sink"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

const (
	// S3SinkType is the type of the object storage sink
	S3SinkType = "s3"
)

// ObjectUploader puts one object into a bucket.
// *s3.Client implements it.
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds the object storage connection parameters.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Client creates an S3 client. A custom endpoint selects path-style addressing
// for S3-compatible stores.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load s3 config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3Sink uploads every table as a delimited object.
type S3Sink struct {
	config   sink.SinkConfig
	uploader ObjectUploader
	bucket   string
	prefix   string
}

// NewS3Sink creates a new object storage sink. The bucket and prefix parameters
// override the defaults.
func NewS3Sink(config sink.SinkConfig, uploader ObjectUploader, defaultBucket, defaultPrefix string) (*S3Sink, error) {
	if uploader == nil {
		return nil, fmt.Errorf("%w: s3 sink %s needs an s3 client", sink.ErrMissingDependency, config.ID)
	}

	bucket := config.GetParameterString("bucket", defaultBucket)
	if bucket == "" {
		return nil, fmt.Errorf("%w: s3 sink %s needs a bucket", sink.ErrInvalidConfig, config.ID)
	}
	prefix := strings.Trim(config.GetParameterString("prefix", defaultPrefix), "/")

	logrus.Infof("creating s3 sink: bucket=%s, prefix=%s", bucket, prefix)

	return &S3Sink{
		config:   config,
		uploader: uploader,
		bucket:   bucket,
		prefix:   prefix,
	}, nil
}

// ID returns the sink identifier.
func (s *S3Sink) ID() string {
	return s.config.ID
}

// Name returns the sink name.
func (s *S3Sink) Name() string {
	return "Object Storage"
}

// Config returns the sink configuration.
func (s *S3Sink) Config() sink.SinkConfig {
	return s.config
}

// ObjectKey returns the key of a table file under the run folder.
func (s *S3Sink) ObjectKey(out *dataset.Output, fileName string) string {
	run := fmt.Sprintf("%s_seed-%d", out.ReferenceTime.UTC().Format("20060102"), out.Seed)
	return path.Join(s.prefix, run, fileName)
}

// Write encodes and uploads the eight tables.
func (s *S3Sink) Write(ctx context.Context, out *dataset.Output) (map[string]int, error) {
	rows := make(map[string]int)

	for _, t := range export.Tables(out) {
		body, err := export.Encode(t)
		if err != nil {
			return rows, err
		}

		key := s.ObjectKey(out, t.FileName())
		_, err = s.uploader.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("text/csv"),
		})
		if err != nil {
			return rows, fmt.Errorf("failed to upload %s: %w", key, err)
		}

		rows[t.Name] = t.Len
		logrus.Debugf("uploaded %d rows to s3://%s/%s", t.Len, s.bucket, key)
	}

	return rows, nil
}
