package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"nurture-backend/internal/shared/storage/object"
)

type fakeClient struct {
	put     *s3.PutObjectInput
	body    []byte
	getErr  error
	getBody string
}

func (f *fakeClient) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = in
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.getBody))}, nil
}

func TestApplyPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "empty prefix", prefix: "", key: "abc/file.png", want: "abc/file.png"},
		{name: "prefix", prefix: "avatars", key: "abc/file.png", want: "avatars/abc/file.png"},
		{name: "leading slash key", prefix: "avatars", key: "/abc/file.png", want: "avatars/abc/file.png"},
		{name: "empty key", prefix: "avatars", key: "", want: "avatars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyPrefix(normalizePrefix(tt.prefix), tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestSaveUploadsUnderPrefix(t *testing.T) {
	client := &fakeClient{}
	store := newWithClient(client, "bucket", "/avatars/")

	payload := []byte("\x89PNG\r\n\x1a\nrest-of-image")
	obj, err := store.Save(context.Background(), "user-1", "me.png", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if client.put == nil {
		t.Fatalf("expected PutObject call")
	}
	if got := *client.put.Key; got != "avatars/"+obj.Key {
		t.Fatalf("unexpected object key %q for storage key %q", got, obj.Key)
	}
	if client.put.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected AES256 encryption")
	}
	if obj.MimeType != "image/png" || *client.put.ContentType != "image/png" {
		t.Fatalf("unexpected content type %q", obj.MimeType)
	}
	if obj.SizeBytes != int64(len(payload)) || !bytes.Equal(client.body, payload) {
		t.Fatalf("body mismatch: size=%d", obj.SizeBytes)
	}
}

func TestOpenMapsMissingKey(t *testing.T) {
	client := &fakeClient{getErr: &s3types.NoSuchKey{}}
	store := newWithClient(client, "bucket", "")

	if _, err := store.Open(context.Background(), "k"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
