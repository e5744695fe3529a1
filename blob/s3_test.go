package blob

import (
	"context"
	"os"
	"strings"
	"testing"
)

func newTestS3BlobStore(t *testing.T) *S3BlobStore {
	bucket := os.Getenv("S3_TEST_BUCKET")
	region := os.Getenv("S3_TEST_REGION")
	if bucket == "" || region == "" {
		t.Skip("S3_TEST_BUCKET or S3_TEST_REGION not set")
	}
	store, err := NewS3BlobStore(context.Background(), bucket, region)
	if err != nil {
		t.Fatalf("NewS3BlobStore failed: %v", err)
	}
	return store
}

func TestS3BlobStore_RoundTrip(t *testing.T) {
	store := newTestS3BlobStore(t)
	url, err := store.Put(context.Background(), []byte("export"), "text/html", "doc.html")
	if err != nil {
		t.Errorf("Put failed: %v", err)
	}
	if _, err := store.Get(context.Background(), url); err != nil {
		t.Errorf("Get failed: %v", err)
	}
}

func TestNewS3BlobStore_ValidationErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := NewS3BlobStore(ctx, "", "us-west-2"); err == nil {
		t.Error("NewS3BlobStore with empty bucket should fail")
	}
	if _, err := NewS3BlobStore(ctx, "test-bucket", ""); err == nil {
		t.Error("NewS3BlobStore with empty region should fail")
	}

	_, err := NewS3BlobStore(ctx, "", "")
	if err == nil {
		t.Fatal("NewS3BlobStore with empty bucket and region should fail")
	}
	if !strings.Contains(err.Error(), "bucket and region must be non-empty") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestS3BlobStore_GetInvalidURL(t *testing.T) {
	// URL parsing happens before any AWS call, so a nil client is fine here.
	store := &S3BlobStore{bucket: "test-bucket", region: "us-west-2"}
	ctx := context.Background()

	for _, url := range []string{"", "not-an-s3-url", "http://example.com/file.txt", "s3://"} {
		if _, err := store.Get(ctx, url); err == nil {
			t.Errorf("expected error for invalid URL %q", url)
		}
	}
}

func TestS3BlobStore_GetBucketMismatch(t *testing.T) {
	store := &S3BlobStore{bucket: "test-bucket", region: "us-west-2"}
	_, err := store.Get(context.Background(), "s3://other-bucket/key.txt")
	if err == nil {
		t.Error("expected error for bucket mismatch")
	}
}
