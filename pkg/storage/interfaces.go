package storage

import "context"

// ObjectStore stores exported files under a key.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	// PublicURL is empty when the bucket has no public URL.
	PublicURL(key string) string
}
