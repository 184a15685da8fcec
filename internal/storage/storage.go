package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ObjectReader defines read access to an object storage provider.
type ObjectReader interface {
	// GetObject opens the object for reading. An empty bucket means the
	// provider's default bucket. The caller closes the returned reader.
	GetObject(ctx context.Context, bucket, objectKey string) (io.ReadCloser, error)
}

// Error constants for storage layer
var (
	ErrObjectNotFound   = errors.New("object not found in storage")
	ErrNoObjectStorage  = errors.New("object storage is not configured")
	ErrInvalidObjectURI = errors.New("invalid object uri, expected s3://bucket/key")
)

const s3Scheme = "s3://"

// Opener opens documents by location: either a local file path or an
// s3://bucket/key URI.
type Opener struct {
	objects ObjectReader
}

// NewOpener returns an Opener. objects may be nil, in which case only local
// paths can be opened.
func NewOpener(objects ObjectReader) *Opener {
	return &Opener{objects: objects}
}

func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !strings.HasPrefix(location, s3Scheme) {
		f, err := os.Open(location)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%s: %w", location, ErrObjectNotFound)
			}
			return nil, err
		}
		return f, nil
	}

	bucket, key, err := ParseS3URI(location)
	if err != nil {
		return nil, err
	}
	if o.objects == nil {
		return nil, ErrNoObjectStorage
	}
	return o.objects.GetObject(ctx, bucket, key)
}

// ParseS3URI splits s3://bucket/key. The bucket may be empty (s3:///key) to
// use the configured default bucket.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, s3Scheme)
	if !ok {
		return "", "", ErrInvalidObjectURI
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || key == "" {
		return "", "", ErrInvalidObjectURI
	}
	return bucket, key, nil
}
