package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNoMatch          = errors.New("query does not match local-part@domain")
	ErrMissingLocalPart = errors.New("missing local part")
	ErrMissingDomain    = errors.New("missing domain")
	ErrInvalidDomain    = errors.New("invalid domain")
	ErrNetwork          = errors.New("network error")
	ErrSchema           = errors.New("unexpected response shape")
	ErrNameNotFound     = errors.New("name not found")
	ErrInvalidHex       = errors.New("invalid hex")
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrEncoding         = errors.New("encoding error")
	ErrNotFound         = errors.New("not found")
	ErrInvalidConfig    = errors.New("invalid config")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNoMatch          ErrorKind = "no_match"
	KindMissingLocalPart ErrorKind = "missing_local_part"
	KindMissingDomain    ErrorKind = "missing_domain"
	KindInvalidDomain    ErrorKind = "invalid_domain"

	KindNetwork      ErrorKind = "network"
	KindSchema       ErrorKind = "schema"
	KindNameNotFound ErrorKind = "name_not_found"

	KindInvalidHex       ErrorKind = "invalid_hex"
	KindInvalidPublicKey ErrorKind = "invalid_public_key"
	KindEncoding         ErrorKind = "encoding"

	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
)

// Stage names the pipeline step an error kind belongs to.
type Stage string

const (
	StageParse   Stage = "parse"
	StageResolve Stage = "resolve"
	StageEncode  Stage = "encode"
	StageConfig  Stage = "config"
)

// StageOf maps a kind to its pipeline stage.
func StageOf(kind ErrorKind) Stage {
	switch kind {
	case KindNoMatch, KindMissingLocalPart, KindMissingDomain, KindInvalidDomain:
		return StageParse
	case KindNetwork, KindSchema, KindNameNotFound:
		return StageResolve
	case KindInvalidHex, KindInvalidPublicKey, KindEncoding:
		return StageEncode
	default:
		return StageConfig
	}
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path or URL
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewOpError builds an OpError whose cause chain always contains the sentinel
// for kind, so errors.Is works for both the sentinel and the detail.
func NewOpError(op string, kind ErrorKind, detail error) *OpError {
	sentinel := sentinelFor(kind)
	var err error
	switch {
	case detail == nil:
		err = sentinel
	case sentinel == nil || errors.Is(detail, sentinel):
		err = detail
	default:
		err = fmt.Errorf("%w: %w", sentinel, detail)
	}
	return &OpError{Op: op, Kind: kind, Err: err}
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost OpError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind, true
	}
	return "", false
}

func sentinelFor(kind ErrorKind) error {
	switch kind {
	case KindNoMatch:
		return ErrNoMatch
	case KindMissingLocalPart:
		return ErrMissingLocalPart
	case KindMissingDomain:
		return ErrMissingDomain
	case KindInvalidDomain:
		return ErrInvalidDomain
	case KindNetwork:
		return ErrNetwork
	case KindSchema:
		return ErrSchema
	case KindNameNotFound:
		return ErrNameNotFound
	case KindInvalidHex:
		return ErrInvalidHex
	case KindInvalidPublicKey:
		return ErrInvalidPublicKey
	case KindEncoding:
		return ErrEncoding
	case KindNotFound:
		return ErrNotFound
	case KindInvalidConfig:
		return ErrInvalidConfig
	default:
		return nil
	}
}
