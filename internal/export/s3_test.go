package export

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeBucket answers the HEAD and PUT object requests of a path-style S3 client.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string]string
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch r.Method {
	case http.MethodHead:
		if _, ok := b.objects[r.URL.Path]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		b.objects[r.URL.Path] = string(body)
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3Exporter_Export(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]string{"/photos/exports/taken.jpg": "old"}}
	server := httptest.NewServer(bucket)
	t.Cleanup(server.Close)

	ctx := context.Background()
	e, err := NewS3Exporter(ctx, S3Options{
		Bucket:    "photos",
		Prefix:    "/exports/",
		Region:    "us-east-1",
		Endpoint:  server.URL,
		PathStyle: true,
		AccessKey: "test",
		SecretKey: "test",
	})
	if err != nil {
		t.Fatalf("NewS3Exporter() error = %v", err)
	}

	location, err := e.Export(ctx, "a.jpg", strings.NewReader("photo bytes"), 11)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if location != "s3://photos/exports/a.jpg" {
		t.Errorf("location = %q", location)
	}

	location, err = e.Export(ctx, "taken.jpg", strings.NewReader("new"), 3)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if location != "s3://photos/exports/taken-1.jpg" {
		t.Errorf("location = %q, want suffixed key", location)
	}

	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	if !strings.Contains(bucket.objects["/photos/exports/a.jpg"], "photo bytes") {
		t.Errorf("uploaded body = %q", bucket.objects["/photos/exports/a.jpg"])
	}
	if bucket.objects["/photos/exports/taken.jpg"] != "old" {
		t.Error("existing object was overwritten")
	}
}

func TestNewS3Exporter_RequiresBucket(t *testing.T) {
	if _, err := NewS3Exporter(context.Background(), S3Options{}); err == nil {
		t.Error("NewS3Exporter() accepted an empty bucket")
	}
}
