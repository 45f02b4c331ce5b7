package output

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
)

// MockS3 records uploads
type MockS3 struct {
	inputs   []*s3.PutObjectInput
	bodies   [][]byte
	deadline bool
	err      error
}

func (m *MockS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	_, m.deadline = ctx.Deadline()
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	m.inputs = append(m.inputs, input)
	m.bodies = append(m.bodies, body)
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Writer_Write(t *testing.T) {
	mock := &MockS3{}
	sw := NewS3WriterWithClient(mock, "renders", "frames/run1")

	if err := sw.Write(context.Background(), FrameName(3), testImage(2, 2, color.RGBA{0, 255, 0, 255})); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if len(mock.inputs) != 1 {
		t.Fatalf("Expected one upload, got %d", len(mock.inputs))
	}

	input := mock.inputs[0]
	if aws.StringValue(input.Bucket) != "renders" {
		t.Errorf("Unexpected bucket %q", aws.StringValue(input.Bucket))
	}
	if aws.StringValue(input.Key) != "frames/run1/output_3.png" {
		t.Errorf("Unexpected key %q", aws.StringValue(input.Key))
	}
	if aws.StringValue(input.ContentType) != "image/png" {
		t.Errorf("Unexpected content type %q", aws.StringValue(input.ContentType))
	}
	if aws.Int64Value(input.ContentLength) != int64(len(mock.bodies[0])) {
		t.Errorf("Content length %d does not match body %d", aws.Int64Value(input.ContentLength), len(mock.bodies[0]))
	}
	if _, err := png.Decode(bytes.NewReader(mock.bodies[0])); err != nil {
		t.Errorf("Uploaded body is not a PNG: %v", err)
	}
	if !mock.deadline {
		t.Error("Upload should run with a timeout")
	}
}

func TestS3Writer_Key(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "output_1.png"},
		{"renders", "renders/output_1.png"},
		{"renders/", "renders/output_1.png"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			sw := NewS3WriterWithClient(&MockS3{}, "bucket", tt.prefix)
			if got := sw.Key("output_1.png"); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestS3Writer_Error(t *testing.T) {
	mock := &MockS3{err: errors.New("access denied")}
	sw := NewS3WriterWithClient(mock, "renders", "")

	err := sw.Write(context.Background(), "x.png", testImage(1, 1, color.RGBA{}))
	if err == nil || !strings.Contains(err.Error(), "x.png") || !errors.Is(err, mock.err) {
		t.Errorf("Expected wrapped upload error naming the key, got %v", err)
	}
}

func TestNewS3Writer(t *testing.T) {
	sw, err := NewS3Writer(S3Config{
		Bucket:    "renders",
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
	})
	if err != nil {
		t.Fatalf("NewS3Writer failed: %v", err)
	}
	if sw.Timeout != DefaultUploadTimeout {
		t.Errorf("Expected default timeout, got %v", sw.Timeout)
	}
}
