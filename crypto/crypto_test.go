// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	crypto := NewCrypto()
	password := "testpassword123"

	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "" {
		t.Error("Hash should not be empty")
	}

	if strings.Contains(hash, password) {
		t.Error("Hash should not contain the plaintext password")
	}

	hash2, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("Second HashPassword failed: %v", err)
	}

	if hash == hash2 {
		t.Error("Two hashes of same password should be different (due to salt)")
	}
}

func TestVerifyPassword(t *testing.T) {
	crypto := NewCrypto()
	password := "testpassword123"
	wrongPassword := "wrongpassword"

	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	err = crypto.VerifyPassword(password, hash)
	if err != nil {
		t.Errorf("VerifyPassword failed for correct password: %v", err)
	}

	err = crypto.VerifyPassword(wrongPassword, hash)
	if err == nil {
		t.Error("VerifyPassword should fail for wrong password")
	}

	err = crypto.VerifyPassword(password, "invalid-hash")
	if err == nil {
		t.Error("VerifyPassword should fail for invalid hash")
	}
}

func TestGenerateRandomString(t *testing.T) {
	token, err := GenerateRandomString("", 32, "hex")
	if err != nil {
		t.Fatalf("GenerateRandomString failed: %v", err)
	}

	if len(token) != 64 {
		t.Errorf("Expected 64 hex characters for 32 random bytes, got %d", len(token))
	}

	token2, err := GenerateRandomString("", 32, "hex")
	if err != nil {
		t.Fatalf("Second GenerateRandomString failed: %v", err)
	}

	if token == token2 {
		t.Error("Two generated secrets should be different")
	}

	prefixed, err := GenerateRandomString("prt_", 16, "hex")
	if err != nil {
		t.Fatalf("GenerateRandomString with prefix failed: %v", err)
	}

	if !strings.HasPrefix(prefixed, "prt_") {
		t.Errorf("Expected prefix prt_, got %s", prefixed)
	}

	_, err = GenerateRandomString("", 16, "base32")
	if err == nil {
		t.Error("GenerateRandomString should fail for unsupported encoding")
	}
}
