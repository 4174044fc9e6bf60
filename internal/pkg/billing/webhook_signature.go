package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// VerifyWebhookSignature checks the provider's signature header against the
// raw payload. Providers that sign with HMAC-SHA256 send the hex digest;
// providers that only send a static access token are matched verbatim.
func VerifyWebhookSignature(payload []byte, signatureHeader, webhookSecret string) bool {
	sig := strings.TrimSpace(signatureHeader)
	secret := strings.TrimSpace(webhookSecret)
	if sig == "" || secret == "" {
		return false
	}

	if decodedSig, err := hex.DecodeString(strings.ToLower(sig)); err == nil {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(payload)
		if hmac.Equal(mac.Sum(nil), decodedSig) {
			return true
		}
	}

	// Access-token style header used by providers without payload signing.
	return subtle.ConstantTimeCompare([]byte(sig), []byte(secret)) == 1
}
