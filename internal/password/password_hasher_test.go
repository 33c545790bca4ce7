package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("charge-it-up")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if err := h.Compare(hash, "charge-it-up"); err != nil {
		t.Fatalf("Compare rejected matching password: %v", err)
	}
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Fatal("Compare accepted wrong password")
	}
}

func TestHashRejectsBadInput(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	if _, err := h.Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("empty: err = %v, want ErrEmptyPassword", err)
	}
	if _, err := h.Hash(strings.Repeat("x", 73)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("long: err = %v, want ErrPasswordTooLong", err)
	}
}

func TestCostOutOfRangeFallsBack(t *testing.T) {
	if h := NewBcryptHasher(-1); h.cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want %d", h.cost, bcrypt.DefaultCost)
	}
	if h := NewBcryptHasher(bcrypt.MaxCost + 1); h.cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want %d", h.cost, bcrypt.DefaultCost)
	}
}
