package blob

import "io"

// BlobStorage holds uploaded image bytes outside the relational store.
// Attach persists the file for the given photo and returns the URL under
// which it can be fetched.
type BlobStorage interface {
	Attach(photoID string, file io.Reader, filename, contentType string) (string, error)
}
