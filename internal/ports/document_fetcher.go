package ports

import "context"

// DocumentFetcher retrieves the raw body served at an identity endpoint URL.
// Implementations return an error for transport failures and non-2xx
// responses; the body is only returned on success.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a plain function to DocumentFetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}
