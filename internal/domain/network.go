package domain

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
)

// NetworkFailure is a finer classification inside KindNetwork.
type NetworkFailure string

const (
	NetworkUnknown  NetworkFailure = "unknown"
	NetworkTimeout  NetworkFailure = "timeout"
	NetworkCanceled NetworkFailure = "canceled"
	NetworkDNS      NetworkFailure = "dns"
	NetworkConn     NetworkFailure = "connection"
	NetworkTLS      NetworkFailure = "tls"
	NetworkHTTP     NetworkFailure = "http"
)

// HTTPStatusError reports a response outside the 2xx range.
type HTTPStatusError struct {
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	if e.Status != "" {
		return "unexpected status " + e.Status
	}
	return "unexpected status"
}

// ClassifyNetworkError buckets transport errors for diagnostics.
func ClassifyNetworkError(err error) NetworkFailure {
	if err == nil {
		return NetworkUnknown
	}

	var se *HTTPStatusError
	if errors.As(err, &se) {
		return NetworkHTTP
	}
	if errors.Is(err, context.Canceled) {
		return NetworkCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NetworkTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NetworkDNS
	}

	var (
		certErr     *tls.CertificateVerificationError
		unknownAuth x509.UnknownAuthorityError
		hostErr     x509.HostnameError
		recordErr   tls.RecordHeaderError
	)
	if errors.As(err, &certErr) || errors.As(err, &unknownAuth) || errors.As(err, &hostErr) || errors.As(err, &recordErr) {
		return NetworkTLS
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return NetworkTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return NetworkConn
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return NetworkConn
	}

	return NetworkUnknown
}
