package diagnostic

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"
)

const redactedKey = "[REDACTED]"

// apiErrorBody is the vendor's error envelope: {"error":{"message":"..."}}.
type apiErrorBody struct {
	Error *struct {
		Message *string `json:"message"`
	} `json:"error"`
}

// errorMessage pulls error.message out of a response body, or returns fallback
// when the body is not that shape.
func errorMessage(body []byte, fallback string) string {
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fallback
	}
	if parsed.Error == nil || parsed.Error.Message == nil {
		return fallback
	}
	return *parsed.Error.Message
}

// isQuotaExhausted reports whether a 400 error message is really a quota
// failure. The vendor signals this only through the message text.
func isQuotaExhausted(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "quota")
}

type transportFailure int

const (
	transportUnexpected transportFailure = iota
	transportTimeout
	transportConnection
)

func classifyTransportError(err error) transportFailure {
	if errors.Is(err, context.DeadlineExceeded) {
		return transportTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return transportTimeout
	}

	var (
		opErr   *net.OpError
		dnsErr  *net.DNSError
		certErr *tls.CertificateVerificationError
	)
	switch {
	case errors.As(err, &opErr), errors.As(err, &dnsErr), errors.As(err, &certErr):
		return transportConnection
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return transportConnection
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return transportConnection
	}
	return transportUnexpected
}

// redact scrubs the credential from text. net/http errors quote the request
// URL, which carries the key as a query parameter.
func redact(text, key string) string {
	if key == "" {
		return text
	}
	text = strings.ReplaceAll(text, key, redactedKey)
	if escaped := url.QueryEscape(key); escaped != key {
		text = strings.ReplaceAll(text, escaped, redactedKey)
	}
	return text
}
