package httpclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aalvaropc/nip05/internal/domain"
	"github.com/aalvaropc/nip05/internal/ports"
)

// Fetcher is the net/http backed DocumentFetcher.
type Fetcher struct {
	exec   *Executor
	logger *slog.Logger
}

type FetcherOption func(*Fetcher)

func WithLogger(l *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

func NewFetcher(exec *Executor, opts ...FetcherOption) *Fetcher {
	if exec == nil {
		exec = NewExecutor()
	}
	f := &Fetcher{
		exec:   exec,
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ ports.DocumentFetcher = (*Fetcher)(nil)

// Fetch performs a single GET. Transport failures, non-2xx statuses and
// bodies over the executor limit are all reported as KindNetwork.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	const op = "httpclient.fetch"

	req, err := BuildRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	resp, err := f.exec.Do(ctx, req)
	if err != nil {
		f.logger.Debug("fetch.failed", "url", url, "class", domain.ClassifyNetworkError(err), "duration", resp.Duration, "err", err)
		return nil, &domain.OpError{Op: op, Kind: domain.KindNetwork, Path: url, Err: fmt.Errorf("%w: %w", domain.ErrNetwork, err)}
	}

	f.logger.Debug("fetch.done", "url", url, "status", resp.Status, "bytes", len(resp.BodyBytes), "duration", resp.Duration)

	if resp.Status < 200 || resp.Status > 299 {
		statusErr := &domain.HTTPStatusError{StatusCode: resp.Status, Status: resp.StatusText}
		return nil, &domain.OpError{Op: op, Kind: domain.KindNetwork, Path: url, Err: fmt.Errorf("%w: %w", domain.ErrNetwork, statusErr)}
	}
	if resp.Truncated {
		return nil, &domain.OpError{Op: op, Kind: domain.KindNetwork, Path: url, Err: fmt.Errorf("%w: response body exceeds %d bytes", domain.ErrNetwork, f.exec.maxBodyBytes)}
	}

	return resp.BodyBytes, nil
}
