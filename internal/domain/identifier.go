package domain

import (
	"errors"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// DefaultLocalPart is the name used when a query carries only a domain.
const DefaultLocalPart = "_"

// WellKnownPath is the identity endpoint served by every domain.
const WellKnownPath = "/.well-known/nostr.json"

// BareDomainPolicy decides what a query without "@" resolves to.
type BareDomainPolicy int

const (
	// PolicyDefaultName maps "example.com" to "_@example.com".
	PolicyDefaultName BareDomainPolicy = iota
	// PolicyRequireName rejects queries without an explicit local part.
	PolicyRequireName
)

func (p BareDomainPolicy) String() string {
	switch p {
	case PolicyDefaultName:
		return "default-name"
	case PolicyRequireName:
		return "require-name"
	default:
		return "unknown"
	}
}

// Identifier is a validated local-part/domain pair.
type Identifier struct {
	LocalPart string
	Domain    string
}

func (id Identifier) String() string {
	return id.LocalPart + "@" + id.Domain
}

// WellKnownURL returns the identity endpoint URL for id, with the local part
// percent-encoded as the "name" query parameter.
func (id Identifier) WellKnownURL() string {
	u := url.URL{
		Scheme:   "https",
		Host:     id.Domain,
		Path:     WellKnownPath,
		RawQuery: url.Values{"name": []string{id.LocalPart}}.Encode(),
	}
	return u.String()
}

// Underscores are allowed in labels, as URL host parsers do.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(false),
	idna.Transitional(false),
	idna.BidiRule(),
)

// ParseQuery turns user input into an Identifier.
//
// Accepted forms are "local@domain" and, depending on policy, a bare
// "domain". The local part is limited to [a-z0-9-_.]; the domain must be a
// plain host name (no userinfo, port, path, query or IP literal) and is
// returned lowercased and punycode-encoded.
func ParseQuery(query string, policy BareDomainPolicy) (Identifier, error) {
	const op = "domain.parse_query"

	q := strings.TrimSpace(query)
	if q == "" {
		return Identifier{}, NewOpError(op, KindNoMatch, errors.New("empty query"))
	}

	local, host, hasAt := strings.Cut(q, "@")
	if !hasAt {
		host = q
		switch policy {
		case PolicyRequireName:
			return Identifier{}, NewOpError(op, KindMissingLocalPart, nil)
		default:
			local = DefaultLocalPart
		}
	} else if !validLocalPart(local) {
		return Identifier{}, NewOpError(op, KindNoMatch, nil)
	}

	if host == "" {
		return Identifier{}, NewOpError(op, KindMissingDomain, nil)
	}

	normalized, err := normalizeHost(host)
	if err != nil {
		return Identifier{}, NewOpError(op, KindInvalidDomain, err)
	}

	return Identifier{LocalPart: local, Domain: normalized}, nil
}

func validLocalPart(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		default:
			return false
		}
	}
	return true
}

func normalizeHost(candidate string) (string, error) {
	// port, query and fragment delimiters are rejected even when empty
	if strings.ContainsAny(candidate, ":?#") {
		return "", errors.New("domain must be a bare host name")
	}

	u, err := url.Parse("https://" + candidate)
	if err != nil {
		return "", err
	}
	if u.User != nil {
		return "", errors.New("domain must be a bare host name")
	}
	if u.Path != "" && u.Path != "/" {
		return "", errors.New("domain must not contain a path")
	}

	host := u.Hostname()
	if host == "" {
		return "", errors.New("empty host")
	}
	if strings.HasPrefix(u.Host, "[") || net.ParseIP(host) != nil {
		return "", errors.New("ip addresses are not domains")
	}

	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return "", errors.New("empty host")
	}

	ascii, err := hostProfile.ToASCII(host)
	if err != nil {
		return "", err
	}
	return ascii, nil
}
