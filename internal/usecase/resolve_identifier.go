package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/nip05/internal/domain"
	"github.com/aalvaropc/nip05/internal/ports"
	"github.com/aalvaropc/nip05/internal/usecase/npub"
	"github.com/aalvaropc/nip05/internal/usecase/wellknown"
)

// ResolveIdentifier runs parse -> fetch -> encode for one query.
type ResolveIdentifier struct {
	fetcher ports.DocumentFetcher
	encoder ports.KeyEncoder
	policy  domain.BareDomainPolicy
	logger  *slog.Logger
}

type ResolveOption func(*ResolveIdentifier)

// WithPolicy selects how queries without "@" are treated.
func WithPolicy(p domain.BareDomainPolicy) ResolveOption {
	return func(uc *ResolveIdentifier) { uc.policy = p }
}

func WithEncoder(enc ports.KeyEncoder) ResolveOption {
	return func(uc *ResolveIdentifier) {
		if enc != nil {
			uc.encoder = enc
		}
	}
}

func WithLogger(l *slog.Logger) ResolveOption {
	return func(uc *ResolveIdentifier) {
		if l != nil {
			uc.logger = l
		}
	}
}

func NewResolveIdentifier(f ports.DocumentFetcher, opts ...ResolveOption) *ResolveIdentifier {
	uc := &ResolveIdentifier{
		fetcher: f,
		encoder: npub.Encoder{},
		policy:  domain.PolicyDefaultName,
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute resolves query to its npub. Errors from any stage are returned
// as-is and no partial Resolution is produced.
func (uc *ResolveIdentifier) Execute(ctx context.Context, query string) (domain.Resolution, error) {
	start := time.Now()

	id, err := domain.ParseQuery(query, uc.policy)
	if err != nil {
		uc.logger.Debug("resolve.parse_failed", "query", query, "policy", uc.policy.String(), "err", err)
		return domain.Resolution{}, err
	}
	uc.logger.Debug("resolve.parsed", "local_part", id.LocalPart, "domain", id.Domain)

	doc, err := ResolveKey(ctx, uc.fetcher, id)
	if err != nil {
		uc.logger.Debug("resolve.fetch_failed", "identifier", id.String(), "err", err)
		return domain.Resolution{}, err
	}
	uc.logger.Debug("resolve.lookup", "identifier", id.String(), "pubkey", doc.PublicKeyHex, "relays", len(doc.Relays))

	encoded, err := uc.encoder.Encode(doc.PublicKeyHex)
	if err != nil {
		uc.logger.Debug("encode.failed", "pubkey", doc.PublicKeyHex, "err", err)
		return domain.Resolution{}, err
	}

	res := domain.Resolution{
		Identifier:   id,
		PublicKeyHex: doc.PublicKeyHex,
		NPub:         encoded,
		Relays:       doc.Relays,
		Duration:     time.Since(start),
	}
	uc.logger.Info("resolve.done", "identifier", id.String(), "npub", encoded, "duration", res.Duration)
	return res, nil
}

// ResolveKey performs the single fetch for id and looks its local part up in
// the returned document.
func ResolveKey(ctx context.Context, f ports.DocumentFetcher, id domain.Identifier) (domain.WellKnownDocument, error) {
	const op = "usecase.resolve_key"

	if err := ctx.Err(); err != nil {
		return domain.WellKnownDocument{}, domain.NewOpError(op, domain.KindNetwork, err)
	}

	target := id.WellKnownURL()
	body, err := f.Fetch(ctx, target)
	if err != nil {
		if _, ok := domain.KindOf(err); ok {
			return domain.WellKnownDocument{}, err
		}
		oe := domain.NewOpError(op, domain.KindNetwork, err)
		oe.Path = target
		return domain.WellKnownDocument{}, oe
	}

	return wellknown.Lookup(body, id.LocalPart)
}
