// Package auth turns a stored elliptic-curve public key into an enforced
// bearer-token validation policy.
//
// The verification key is distributed as a base64-encoded SubjectPublicKeyInfo
// blob. ImportPublicKey decodes it at startup; any malformed key material is a
// KeyImportError and must abort the process rather than degrade to
// unauthenticated mode. The resulting TokenValidationPolicy validates token
// signatures and the issuer claim. Audience validation is deliberately
// disabled: a product instance trusts every token signed by its configured
// issuer across all of its endpoints, so tokens are not audience-scoped.
// Validated tokens are never cached; every request is verified in full.
package auth
