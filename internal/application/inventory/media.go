package inventory

import "context"

// UploadInput describes a media payload to store.
// An empty Key asks the store to assign a fresh key; a non-empty Key
// addresses an existing object so a re-upload overwrites it.
type UploadInput struct {
	Data        []byte
	ContentType string
	Folder      string
	Key         string
	Overwrite   bool
	Invalidate  bool
}

// UploadResult holds the outcome of a media upload
type UploadResult struct {
	PublicURL string
	Key       string
}

// MediaStore defines the interface for image hosting operations.
// It is implemented by the infrastructure layer (S3-compatible storage).
type MediaStore interface {
	// Upload stores a media payload and returns its stable public URL.
	// When in.Key is set and in.Overwrite is true, any object previously
	// stored under that key is replaced and cached copies invalidated.
	Upload(ctx context.Context, in UploadInput) (UploadResult, error)
}
