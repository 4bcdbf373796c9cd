package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := IssueToken(42, "alice@example.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	claims, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("userID mismatch: got %d want 42", userID)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}
}

func TestVerifyToken_Deterministic(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tok, err := IssueToken(7, "bob@example.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	first, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatalf("first VerifyToken error: %v", err)
	}
	second, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatalf("second VerifyToken error: %v", err)
	}
	if first.Subject != second.Subject || first.Email != second.Email {
		t.Fatalf("claims differ between verifications: %+v vs %+v", first, second)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := IssueToken(1, "u@example.com", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = VerifyToken(tok, secret)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken(1, "u@example.com", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = VerifyToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := VerifyToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestVerifyToken_WrongSigningMethod(t *testing.T) {
	t.Parallel()

	// An alg:none token must never verify, whatever the payload says.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "1"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := VerifyToken(signed, []byte("secret")); err == nil {
		t.Fatalf("expected error for none-signed token, got nil")
	}
}

func TestVerifyToken_EmptySubject(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	_, err = VerifyToken(signed, secret)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for empty subject, got %v", err)
	}
}

func TestClaims_UserID_Invalid(t *testing.T) {
	t.Parallel()

	for _, subject := range []string{"", "abc", "0", "-5"} {
		claims := &Claims{}
		claims.Subject = subject
		if _, err := claims.UserID(); err == nil {
			t.Fatalf("expected error for subject %q, got nil", subject)
		}
	}
}
