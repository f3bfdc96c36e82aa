// Package payment holds the provider-facing signing primitives shared by the
// payment use case. Nothing here performs I/O.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature reports whether signature is the lowercase-hex
// HMAC-SHA256 of "orderID|paymentID" under secret. The "|" delimiter and
// field order match the provider's own signing scheme and must not change.
//
// The comparison is constant time and byte exact: the computed digest is
// lowercase, so an uppercase-hex signature does not match even when it
// decodes to the same bytes. This mirrors the provider's checkout flow,
// which always hands back lowercase hex.
//
// The function fails closed: empty key material, empty inputs or non-hex
// garbage all yield false, never an error or panic, so callers cannot
// distinguish "verification failed" from "verification errored".
func VerifySignature(orderID, paymentID, signature string, secret []byte) bool {
	if len(secret) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
