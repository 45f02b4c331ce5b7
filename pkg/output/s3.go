package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// DefaultUploadTimeout bounds a single upload
const DefaultUploadTimeout = 10 * time.Second

// S3API is the part of the S3 client used for uploads
type S3API interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Config holds the connection settings for an S3-compatible store
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

// S3Writer uploads PNG images to a bucket
type S3Writer struct {
	client  S3API
	bucket  string
	prefix  string
	Timeout time.Duration
}

// NewS3Writer creates a writer with a path-style client and static
// credentials
func NewS3Writer(cfg S3Config) (*S3Writer, error) {
	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3WriterWithClient(s3.New(sess), cfg.Bucket, cfg.Prefix), nil
}

// NewS3WriterWithClient creates a writer around an existing client
func NewS3WriterWithClient(client S3API, bucket, prefix string) *S3Writer {
	return &S3Writer{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		Timeout: DefaultUploadTimeout,
	}
}

// Key returns the object key for an image name
func (sw *S3Writer) Key(name string) string {
	if sw.prefix == "" {
		return name
	}
	return path.Join(sw.prefix, name)
}

// Write implements Writer
func (sw *S3Writer) Write(ctx context.Context, name string, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, sw.Timeout)
	defer cancel()

	key := sw.Key(name)
	size := int64(len(data))
	_, err = sw.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(sw.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("Uploaded %s to S3 (%d bytes)", key, size)
	return nil
}
