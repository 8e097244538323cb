// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// ImageStore persists receipt images by object key.
type ImageStore interface {
	// Put stores the image under key.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get loads the image stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
}
