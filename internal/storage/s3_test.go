package storage

import (
	"context"
	"testing"

	"menuhub/pkg/utils"
)

func TestNewS3ClientRequiresEndpoint(t *testing.T) {
	if _, err := NewS3Client(context.Background(), utils.StorageConfig{Bucket: "menu-images"}); err == nil {
		t.Fatal("expected error without endpoint")
	}
}

func TestPublicURL(t *testing.T) {
	c, err := NewS3Client(context.Background(), utils.StorageConfig{
		Endpoint:  "https://project.supabase.co/storage/v1/s3",
		Region:    "auto",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "menu-images",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	want := "https://project.supabase.co/storage/v1/s3/menu-images/menu-items/a.jpg"
	if got := c.PublicURL("menu-items/a.jpg"); got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}

	c.baseURL = "https://cdn.example.com"
	if got := c.PublicURL("k.png"); got != "https://cdn.example.com/k.png" {
		t.Fatalf("unexpected url %q", got)
	}
}
