package photo

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"menuhub/pkg/models"
)

// ObjectUploader stores one object and returns its public URL.
type ObjectUploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Uploader struct {
	store     ObjectUploader
	dir       string
	keyPrefix string
	log       *zap.Logger
}

// NewUploader reads photos from dir and stores them under keyPrefix.
func NewUploader(store ObjectUploader, dir, keyPrefix string, log *zap.Logger) *Uploader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Uploader{store: store, dir: dir, keyPrefix: strings.Trim(keyPrefix, "/"), log: log}
}

// ObjectKey is stable for a filename, so re-uploading overwrites the same object.
func (u *Uploader) ObjectKey(filename string) string {
	sum := sha1.Sum([]byte(filename))
	key := hex.EncodeToString(sum[:]) + strings.ToLower(filepath.Ext(filename))
	if u.keyPrefix == "" {
		return key
	}
	return u.keyPrefix + "/" + key
}

type UploadReport struct {
	Photos    int      `json:"photos"`
	Uploaded  int      `json:"uploaded"`
	Failed    int      `json:"failed"`
	Items     int      `json:"items_updated"`
	FailedFor []string `json:"failed_photos"`
}

// UploadAll uploads every distinct matched photo once and points the items
// at the public URL. A failed photo is logged and its items keep the local path.
func (u *Uploader) UploadAll(ctx context.Context, items []models.ConsolidatedItem) ([]models.ConsolidatedItem, UploadReport) {
	var rep UploadReport
	urls := make(map[string]string)
	failed := make(map[string]bool)

	out := make([]models.ConsolidatedItem, len(items))
	for i, it := range items {
		out[i] = it
		if it.ImageFilename == nil || *it.ImageFilename == "" {
			continue
		}
		name := *it.ImageFilename

		url, done := urls[name]
		if !done && !failed[name] {
			rep.Photos++
			var err error
			url, err = u.uploadOne(ctx, name)
			if err != nil {
				u.log.Warn("photo upload failed", zap.String("photo", name), zap.Error(err))
				failed[name] = true
				rep.Failed++
				rep.FailedFor = append(rep.FailedFor, name)
				continue
			}
			urls[name] = url
			rep.Uploaded++
		}
		if failed[name] {
			continue
		}

		link := url
		out[i].Image = &link
		rep.Items++
	}
	return out, rep
}

func (u *Uploader) uploadOne(ctx context.Context, filename string) (string, error) {
	f, err := os.Open(filepath.Join(u.dir, filename))
	if err != nil {
		return "", fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	key := u.ObjectKey(filename)
	url, err := u.store.Upload(ctx, key, f, mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))))
	if err != nil {
		return "", err
	}
	u.log.Debug("photo uploaded", zap.String("photo", filename), zap.String("key", key))
	return url, nil
}
