package auth

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"
)

// KeyImportError reports that a stored public key blob could not be turned
// into usable EC key material. It is always fatal at startup.
type KeyImportError struct {
	Reason string
	Cause  error
}

func (e *KeyImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("auth: import public key: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("auth: import public key: %s", e.Reason)
}

func (e *KeyImportError) Unwrap() error { return e.Cause }

// ImportPublicKey decodes a base64 string into raw bytes and imports them as
// an elliptic-curve public key in SPKI (SubjectPublicKeyInfo) encoding.
func ImportPublicKey(encoded string) (*ecdsa.PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &KeyImportError{Reason: "decode base64", Cause: err}
	}

	parsed, err := x509.ParsePKIXPublicKey(raw)
	if err != nil {
		return nil, &KeyImportError{Reason: "parse SPKI key material", Cause: err}
	}

	key, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return nil, &KeyImportError{Reason: fmt.Sprintf("expected EC public key, got %T", parsed)}
	}
	return key, nil
}
