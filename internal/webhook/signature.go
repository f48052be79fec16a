package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// SignatureHeader carries the HMAC digest of the raw webhook body.
const SignatureHeader = "X-Hub-Signature-256"

// ErrMissingSignature is returned when a secret is configured but the
// request carries no signature header.
var ErrMissingSignature = errors.New("missing webhook signature")

// ErrInvalidSignature is returned when the signature does not match the
// request body.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// ValidateSignature checks the HMAC-SHA256 signature over the raw, unparsed
// request body. The expected header value is the hex digest prefixed with
// "sha256=". An empty secret disables verification entirely; that mode is
// only acceptable for local and test deployments.
func ValidateSignature(secret string, body []byte, signature string) error {
	if secret == "" {
		return nil
	}
	if signature == "" {
		return ErrMissingSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
