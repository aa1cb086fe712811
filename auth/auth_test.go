package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func generateKey(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	spki, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("marshal SPKI: %v", err)
	}
	return priv, base64.StdEncoding.EncodeToString(spki)
}

func signToken(t *testing.T, priv *ecdsa.PrivateKey, claims *Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(priv)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func baseClaims(issuer string, issuedAgo time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-issuedAgo)),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		TenantID: "tenant-a",
	}
}

func TestImportPublicKey(t *testing.T) {
	_, encoded := generateKey(t)
	key, err := ImportPublicKey(encoded)
	if err != nil {
		t.Fatalf("ImportPublicKey: %v", err)
	}
	if key == nil {
		t.Fatal("expected key")
	}
}

func TestImportPublicKeyBadBase64(t *testing.T) {
	_, err := ImportPublicKey("not-base-64!!!")
	var kie *KeyImportError
	if !errors.As(err, &kie) {
		t.Fatalf("expected KeyImportError, got %v", err)
	}
}

func TestImportPublicKeyNotSPKI(t *testing.T) {
	_, err := ImportPublicKey(base64.StdEncoding.EncodeToString([]byte("garbage bytes")))
	var kie *KeyImportError
	if !errors.As(err, &kie) {
		t.Fatalf("expected KeyImportError, got %v", err)
	}
}

func TestImportPublicKeyWrongAlgorithm(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	spki, err := x509.MarshalPKIXPublicKey(&rsaKey.PublicKey)
	if err != nil {
		t.Fatalf("marshal SPKI: %v", err)
	}

	_, err = ImportPublicKey(base64.StdEncoding.EncodeToString(spki))
	var kie *KeyImportError
	if !errors.As(err, &kie) {
		t.Fatalf("expected KeyImportError for RSA key, got %v", err)
	}
}

func TestNewPolicyRequiresIssuerAndKey(t *testing.T) {
	priv, _ := generateKey(t)
	if _, err := NewPolicy(&priv.PublicKey, "", 0); err == nil {
		t.Error("expected error for empty issuer")
	}
	if _, err := NewPolicy(nil, "iss", 0); err == nil {
		t.Error("expected error for nil key")
	}
}

func TestVerifyValidToken(t *testing.T) {
	priv, encoded := generateKey(t)
	key, _ := ImportPublicKey(encoded)
	policy, err := NewPolicy(key, "my-issuer", 5*time.Minute)
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}

	token := signToken(t, priv, baseClaims("my-issuer", 2*time.Minute))
	claims, err := policy.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.TenantID != "tenant-a" {
		t.Errorf("unexpected tenant: %s", claims.TenantID)
	}
	if claims.Subject != "user-1" {
		t.Errorf("unexpected subject: %s", claims.Subject)
	}
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	priv, encoded := generateKey(t)
	key, _ := ImportPublicKey(encoded)
	policy, _ := NewPolicy(key, "my-issuer", 5*time.Minute)

	// Signature is valid, issuer is not.
	token := signToken(t, priv, baseClaims("other-issuer", 2*time.Minute))
	if _, err := policy.Verify(token); err == nil {
		t.Fatal("expected rejection for wrong issuer")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	_, encoded := generateKey(t)
	key, _ := ImportPublicKey(encoded)
	policy, _ := NewPolicy(key, "my-issuer", 0)

	otherPriv, _ := generateKey(t)
	token := signToken(t, otherPriv, baseClaims("my-issuer", 0))
	if _, err := policy.Verify(token); err == nil {
		t.Fatal("expected rejection for wrong signing key")
	}
}

func TestVerifyClockSkew(t *testing.T) {
	priv, encoded := generateKey(t)
	key, _ := ImportPublicKey(encoded)
	policy, _ := NewPolicy(key, "my-issuer", 5*time.Minute)

	// Expired 2 minutes ago but within the 5-minute leeway.
	now := time.Now()
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "my-issuer",
		ExpiresAt: jwt.NewNumericDate(now.Add(-2 * time.Minute)),
	}}
	if _, err := policy.Verify(signToken(t, priv, claims)); err != nil {
		t.Fatalf("token within leeway rejected: %v", err)
	}

	// Expired well beyond the leeway.
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(-10 * time.Minute))
	if _, err := policy.Verify(signToken(t, priv, claims)); err == nil {
		t.Fatal("expected rejection beyond leeway")
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	_, encoded := generateKey(t)
	key, _ := ImportPublicKey(encoded)
	policy, _ := NewPolicy(key, "my-issuer", 0)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, baseClaims("my-issuer", 0)).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("build unsigned token: %v", err)
	}
	if _, err := policy.Verify(unsigned); err == nil {
		t.Fatal("expected rejection of alg=none token")
	}
}

func TestClaimsContextRoundTrip(t *testing.T) {
	claims := &Claims{TenantID: "tenant-b", Roles: []string{"admin"}}
	ctx := ContextWithClaims(context.Background(), claims)

	got, ok := ClaimsFromContext(ctx)
	if !ok || got.TenantID != "tenant-b" {
		t.Fatalf("expected claims in context, got %v %v", got, ok)
	}
	if !got.HasRole("admin") || got.HasRole("viewer") {
		t.Error("HasRole mismatch")
	}

	if _, ok := ClaimsFromContext(context.Background()); ok {
		t.Error("expected no claims in empty context")
	}
}
