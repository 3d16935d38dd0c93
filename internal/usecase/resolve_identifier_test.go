package usecase

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/nip05/internal/domain"
	"github.com/aalvaropc/nip05/internal/infra/httpclient"
	"github.com/aalvaropc/nip05/internal/ports"
)

const (
	jackHex  = "3bf0c63fcb93463407af97a5e5ee64fa883d107ef9e558472c4eb9aaaefa459d"
	jackNPub = "npub180cvv07tjdrrgpa0j7j7tmnyl2yr6yr7l8j4s3evf6u64th6gkwsyjh6w6"
)

// stubFetcher returns a fixed body/error pair and records requested URLs.
type stubFetcher struct {
	body []byte
	err  error
	urls []string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	s.urls = append(s.urls, url)
	return s.body, s.err
}

type stubEncoder struct {
	out string
	err error
}

func (s stubEncoder) Encode(string) (string, error) { return s.out, s.err }

func TestResolveIdentifier_Success(t *testing.T) {
	f := &stubFetcher{body: []byte(`{"names":{"bob":"` + jackHex + `"},"relays":{"` + jackHex + `":["wss://relay.example.com"]}}`)}
	uc := NewResolveIdentifier(f)

	res, err := uc.Execute(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.NPub != jackNPub {
		t.Fatalf("expected %s, got %s", jackNPub, res.NPub)
	}
	if res.PublicKeyHex != jackHex {
		t.Fatalf("unexpected hex %s", res.PublicKeyHex)
	}
	if res.Identifier != (domain.Identifier{LocalPart: "bob", Domain: "example.com"}) {
		t.Fatalf("unexpected identifier %+v", res.Identifier)
	}
	if len(res.Relays) != 1 || res.Relays[0] != "wss://relay.example.com" {
		t.Fatalf("unexpected relays %v", res.Relays)
	}
	if len(f.urls) != 1 || f.urls[0] != "https://example.com/.well-known/nostr.json?name=bob" {
		t.Fatalf("expected exactly one fetch of the identity endpoint, got %v", f.urls)
	}
}

func TestResolveIdentifier_BareDomainPolicies(t *testing.T) {
	f := &stubFetcher{body: []byte(`{"names":{"_":"` + jackHex + `"}}`)}

	res, err := NewResolveIdentifier(f).Execute(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("default policy: unexpected error: %v", err)
	}
	if res.Identifier.LocalPart != "_" || res.NPub != jackNPub {
		t.Fatalf("default policy: unexpected result %+v", res)
	}

	f.urls = nil
	_, err = NewResolveIdentifier(f, WithPolicy(domain.PolicyRequireName)).Execute(context.Background(), "example.com")
	if !domain.IsKind(err, domain.KindMissingLocalPart) {
		t.Fatalf("require-name policy: expected missing_local_part, got %v", err)
	}
	if len(f.urls) != 0 {
		t.Fatalf("parse failure must not fetch, got %v", f.urls)
	}
}

func TestResolveIdentifier_ParseErrorsSkipFetch(t *testing.T) {
	for _, q := range []string{"", "@@@"} {
		f := &stubFetcher{}
		_, err := NewResolveIdentifier(f).Execute(context.Background(), q)
		kind, ok := domain.KindOf(err)
		if !ok || domain.StageOf(kind) != domain.StageParse {
			t.Errorf("Execute(%q): expected parse error, got %v", q, err)
		}
		if len(f.urls) != 0 {
			t.Errorf("Execute(%q): expected no fetch", q)
		}
	}
}

func TestResolveIdentifier_NameNotFound(t *testing.T) {
	f := &stubFetcher{body: []byte(`{"names":{"alice":"` + jackHex + `"}}`)}

	_, err := NewResolveIdentifier(f).Execute(context.Background(), "bob@example.com")
	if !domain.IsKind(err, domain.KindNameNotFound) {
		t.Fatalf("expected name_not_found, got %v", err)
	}
}

func TestResolveIdentifier_SchemaError(t *testing.T) {
	f := &stubFetcher{body: []byte(`<html></html>`)}

	_, err := NewResolveIdentifier(f).Execute(context.Background(), "bob@example.com")
	if !domain.IsKind(err, domain.KindSchema) {
		t.Fatalf("expected schema, got %v", err)
	}
}

func TestResolveIdentifier_PlainFetchErrorBecomesNetwork(t *testing.T) {
	root := errors.New("connection refused")
	f := &stubFetcher{err: root}

	_, err := NewResolveIdentifier(f).Execute(context.Background(), "bob@example.com")
	if !domain.IsKind(err, domain.KindNetwork) {
		t.Fatalf("expected network, got %v", err)
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected cause to be preserved")
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) || oe.Path != "https://example.com/.well-known/nostr.json?name=bob" {
		t.Fatalf("expected url on error, got %+v", oe)
	}
}

func TestResolveIdentifier_FetcherOpErrorPropagatesUnchanged(t *testing.T) {
	orig := &domain.OpError{Op: "httpclient.fetch", Kind: domain.KindNetwork, Err: domain.ErrNetwork}
	f := &stubFetcher{err: orig}

	_, err := NewResolveIdentifier(f).Execute(context.Background(), "bob@example.com")
	if err != orig {
		t.Fatalf("expected fetcher error unchanged, got %v", err)
	}
}

func TestResolveIdentifier_EncodeErrors(t *testing.T) {
	cases := []struct {
		key  string
		kind domain.ErrorKind
	}{
		{"not-hex", domain.KindInvalidHex},
		{"ab", domain.KindInvalidPublicKey},
	}
	for _, c := range cases {
		f := &stubFetcher{body: []byte(`{"names":{"bob":"` + c.key + `"}}`)}
		_, err := NewResolveIdentifier(f).Execute(context.Background(), "bob@example.com")
		if !domain.IsKind(err, c.kind) {
			t.Errorf("key %q: expected %s, got %v", c.key, c.kind, err)
		}
	}
}

func TestResolveIdentifier_CustomEncoder(t *testing.T) {
	f := &stubFetcher{body: []byte(`{"names":{"bob":"` + jackHex + `"}}`)}
	uc := NewResolveIdentifier(f, WithEncoder(stubEncoder{out: "npub1custom"}))

	res, err := uc.Execute(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.NPub != "npub1custom" {
		t.Fatalf("expected injected encoder output, got %s", res.NPub)
	}
}

func TestResolveIdentifier_StopsOnContextCancel(t *testing.T) {
	f := &stubFetcher{body: []byte(`{"names":{"bob":"` + jackHex + `"}}`)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewResolveIdentifier(f).Execute(ctx, "bob@example.com")
	if !domain.IsKind(err, domain.KindNetwork) {
		t.Fatalf("expected network, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(f.urls) != 0 {
		t.Fatalf("expected 0 fetcher calls, got %d", len(f.urls))
	}
}

// Integration: real Fetcher against an httptest TLS server, routing the
// identity endpoint host to the test server.
func TestResolveIdentifier_WithHTTPFetcher(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != domain.WellKnownPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("name") {
		case "bob":
			_, _ = w.Write([]byte(`{"names":{"bob":"` + jackHex + `"}}`))
		default:
			_, _ = w.Write([]byte(`{"names":{}}`))
		}
	}))
	defer srv.Close()

	client := srv.Client()
	tr := client.Transport.(*http.Transport).Clone()
	addr := strings.TrimPrefix(srv.URL, "https://")
	tr.DialContext = func(ctx context.Context, network, _ string) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, network, addr)
	}
	tr.TLSClientConfig.InsecureSkipVerify = true
	client.Transport = tr

	fetcher := httpclient.NewFetcher(httpclient.NewExecutor(httpclient.WithClient(client), httpclient.WithTimeout(5*time.Second)))
	uc := NewResolveIdentifier(fetcher)

	res, err := uc.Execute(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.NPub != jackNPub {
		t.Fatalf("expected %s, got %s", jackNPub, res.NPub)
	}

	_, err = uc.Execute(context.Background(), "alice@example.com")
	if !domain.IsKind(err, domain.KindNameNotFound) {
		t.Fatalf("expected name_not_found, got %v", err)
	}
}

var _ ports.DocumentFetcher = (*stubFetcher)(nil)
