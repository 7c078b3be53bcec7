package services

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	password := "Str0ng!Pass"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == password {
		t.Fatal("hash equals the plain password")
	}
	if !strings.Contains(hash, "$") {
		t.Fatalf("hash %q missing salt separator", hash)
	}

	ok, err := VerifyPassword(hash, password)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if !ok {
		t.Error("correct password did not verify")
	}

	ok, err = VerifyPassword(hash, "wrong-password1!")
	if err != nil {
		t.Fatalf("VerifyPassword() with wrong password error = %v", err)
	}
	if ok {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	h1, err := HashPassword("Str0ng!Pass")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("Str0ng!Pass")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}

func TestHashPasswordRejectsWeakInput(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Error("HashPassword() accepted a weak password")
	}
}
