package httpclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/aalvaropc/nip05/internal/buildinfo"
	"github.com/aalvaropc/nip05/internal/domain"
)

// BuildRequest builds the GET request for an identity endpoint URL.
func BuildRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, domain.NewOpError("httpclient.build", domain.KindNetwork, domain.ErrInvalidDomain)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, domain.NewOpError("httpclient.build", domain.KindNetwork, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	return req, nil
}
