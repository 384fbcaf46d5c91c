package ports

import "context"

// PayloadFetcher downloads a single-file tool payload to destPath.
type PayloadFetcher interface {
	Fetch(ctx context.Context, url string, destPath string) error
}
