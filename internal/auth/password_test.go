package auth

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hashed == "hunter22" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hashed, "hunter22") {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword(hashed, "wrong") {
		t.Fatal("expected mismatched password to fail")
	}
}
