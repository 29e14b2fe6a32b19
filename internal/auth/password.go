package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialFormat tags how a stored credential is encoded. Early deployments
// stored passwords in cleartext; those rows are upgraded in place on the
// first successful verify.
type CredentialFormat int

const (
	CredentialFormatHashed CredentialFormat = iota
	CredentialFormatLegacyPlaintext
)

// DetectCredentialFormat classifies a stored credential by its bcrypt marker.
func DetectCredentialFormat(stored string) CredentialFormat {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return CredentialFormatHashed
	}
	return CredentialFormatLegacyPlaintext
}

// HashPassword hashes a plaintext password with the configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a candidate against the stored credential. It returns
// whether the candidate matched and whether the stored value is a legacy
// plaintext credential that the caller must re-hash and persist.
func VerifyPassword(stored, candidate string) (ok bool, needsUpgrade bool) {
	switch DetectCredentialFormat(stored) {
	case CredentialFormatHashed:
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil, false
	default:
		if subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1 {
			return true, true
		}
		return false, false
	}
}
