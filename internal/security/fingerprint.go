// Package security provides content fingerprints for dashboard snapshots.
package security

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Fingerprint returns the Keccak-256 hash of the canonical JSON encoding of payload.
// Identical payloads always yield identical fingerprints.
func Fingerprint(payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}
	return crypto.Keccak256Hash(data).Hex(), nil
}

// ETag wraps a fingerprint as a strong HTTP entity tag.
func ETag(fingerprint string) string {
	return `"` + fingerprint + `"`
}

// MatchesETag reports whether an If-None-Match header value matches the fingerprint.
func MatchesETag(header, fingerprint string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == ETag(fingerprint) {
			return true
		}
	}
	return false
}

// Verify recomputes the fingerprint of payload and compares it with want.
func Verify(payload interface{}, want string) (bool, error) {
	got, err := Fingerprint(payload)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(got, want), nil
}
