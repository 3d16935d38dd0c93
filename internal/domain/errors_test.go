package domain

import (
	"errors"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := NewOpError("resolve.fetch", KindNetwork, root)

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected errors.Is to match sentinel")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindNetwork {
		t.Fatalf("expected kind %s", KindNetwork)
	}
}

func TestNewOpErrorWithoutDetailUsesSentinel(t *testing.T) {
	err := NewOpError("domain.parse_query", KindMissingDomain, nil)
	if !errors.Is(err, ErrMissingDomain) {
		t.Fatalf("expected sentinel in chain, got %v", err)
	}
	if err.Error() != "domain.parse_query: missing_domain: missing domain" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestNewOpErrorDoesNotDoubleWrapSentinel(t *testing.T) {
	err := NewOpError("x", KindSchema, ErrSchema)
	if err.Err != ErrSchema {
		t.Fatalf("expected sentinel as direct cause, got %v", err.Err)
	}
}

func TestIsKindForOpError(t *testing.T) {
	err := &OpError{
		Op:   "config.load",
		Kind: KindInvalidConfig,
	}

	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected IsKind to match op error")
	}
	if IsKind(errors.New("plain"), KindInvalidConfig) {
		t.Fatalf("plain errors have no kind")
	}
}

func TestStageOf(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		want Stage
	}{
		{KindNoMatch, StageParse},
		{KindMissingLocalPart, StageParse},
		{KindMissingDomain, StageParse},
		{KindInvalidDomain, StageParse},
		{KindNetwork, StageResolve},
		{KindSchema, StageResolve},
		{KindNameNotFound, StageResolve},
		{KindInvalidHex, StageEncode},
		{KindInvalidPublicKey, StageEncode},
		{KindEncoding, StageEncode},
		{KindInvalidConfig, StageConfig},
	}
	for _, c := range cases {
		if got := StageOf(c.kind); got != c.want {
			t.Errorf("StageOf(%s) = %s, want %s", c.kind, got, c.want)
		}
	}
}

func TestOpErrorNilReceiver(t *testing.T) {
	var e *OpError
	if e.Error() != "<nil>" {
		t.Fatalf("expected <nil>")
	}
	if e.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}
