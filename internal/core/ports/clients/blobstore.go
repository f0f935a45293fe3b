package clients

import "context"

// Blobstore stores generated report files and hands back fetchable URLs.
type Blobstore interface {
	// Upload stores content under key and returns a URL the summary email
	// can link to.
	Upload(ctx context.Context, key, contentType string, content []byte) (string, error)
}
