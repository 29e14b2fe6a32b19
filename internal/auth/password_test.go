package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerify_Success(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret!", 10)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}
	if hash == "s3cret!" {
		t.Fatal("hash must not equal the plaintext")
	}

	ok, needsUpgrade := VerifyPassword(hash, "s3cret!")
	if !ok {
		t.Fatal("expected verify to succeed")
	}
	if needsUpgrade {
		t.Fatal("hashed credential must not request an upgrade")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct", 10)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, _ := VerifyPassword(hash, "incorrect")
	if ok {
		t.Fatal("expected verify to fail for wrong password")
	}
}

func TestVerify_LegacyPlaintext(t *testing.T) {
	t.Parallel()

	ok, needsUpgrade := VerifyPassword("legacy-password", "legacy-password")
	if !ok {
		t.Fatal("expected legacy plaintext match to succeed")
	}
	if !needsUpgrade {
		t.Fatal("legacy match must request an upgrade")
	}

	// Mismatches of any length, including prefixes of the stored value,
	// must fail without requesting an upgrade.
	for _, candidate := range []string{"something-else", "legacy", "legacy-password-x", ""} {
		ok, needsUpgrade = VerifyPassword("legacy-password", candidate)
		if ok {
			t.Fatalf("expected legacy mismatch to fail for %q", candidate)
		}
		if needsUpgrade {
			t.Fatalf("failed verify must not request an upgrade for %q", candidate)
		}
	}
}

func TestDetectCredentialFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stored string
		want   CredentialFormat
	}{
		{"$2a$10$abcdefghijklmnopqrstuv", CredentialFormatHashed},
		{"$2b$12$abcdefghijklmnopqrstuv", CredentialFormatHashed},
		{"$2y$12$abcdefghijklmnopqrstuv", CredentialFormatHashed},
		{"plaintext", CredentialFormatLegacyPlaintext},
		{"", CredentialFormatLegacyPlaintext},
		{"$1$md5crypt", CredentialFormatLegacyPlaintext},
	}
	for _, tc := range tests {
		if got := DetectCredentialFormat(tc.stored); got != tc.want {
			t.Errorf("DetectCredentialFormat(%q) = %v, want %v", tc.stored, got, tc.want)
		}
	}
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw", 0)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	ok, _ := VerifyPassword(hash, "pw")
	if !ok {
		t.Fatal("expected verify to succeed")
	}
}
