package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	apperrors "github.com/olusolaa/forge-deploy-automator/internal/errors"
)

// Fetcher downloads single-file tool payloads over HTTP GET. No timeout is
// imposed; the pipeline is synchronous and a hung transfer hangs the run.
type Fetcher struct {
	client *http.Client
}

func New(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client}
}

func (f *Fetcher) Fetch(ctx context.Context, url string, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDownloadFailed, "building request for "+url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDownloadFailed, "fetching "+url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.New(apperrors.CodeDownloadFailed,
			fmt.Sprintf("unexpected status %d fetching %s", resp.StatusCode, url))
	}

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDownloadFailed, "creating "+destPath)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDownloadFailed, "writing "+destPath)
	}
	return nil
}
