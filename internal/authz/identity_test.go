package authz

import (
	"errors"
	"testing"
)

func TestDecodeIdentityAcceptsValidSnapshot(t *testing.T) {
	raw := []byte(`{"id":3,"username":"alice","roles":["user"],"locked":false}`)
	identity, err := DecodeIdentity(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if identity.Username != "alice" || len(identity.Roles) != 1 {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestDecodeIdentityAllowsEmptyRoles(t *testing.T) {
	raw := []byte(`{"id":3,"username":"alice","roles":[],"locked":false}`)
	if _, err := DecodeIdentity(raw); err != nil {
		t.Fatalf("empty roles are valid, resolution substitutes guest: %v", err)
	}
}

func TestDecodeIdentityRejectsUnknownFields(t *testing.T) {
	raw := []byte(`{"id":3,"username":"alice","roles":["user"],"passwordHash":"x"}`)
	_, err := DecodeIdentity(raw)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for unknown field, got %v", err)
	}
}

func TestDecodeIdentityRejectsMissingUsername(t *testing.T) {
	raw := []byte(`{"id":3,"roles":["user"]}`)
	_, err := DecodeIdentity(raw)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "Username" {
		t.Fatalf("expected Username field in error, got %q", validationErr.Field)
	}
}

func TestDecodeIdentityRejectsEmptyRoleName(t *testing.T) {
	raw := []byte(`{"id":3,"username":"alice","roles":[""]}`)
	if _, err := DecodeIdentity(raw); err == nil {
		t.Fatal("expected empty role name to be rejected")
	}
}

func TestValidateIdentityRejectsNegativeID(t *testing.T) {
	err := ValidateIdentity(Identity{ID: -1, Username: "alice"})
	if err == nil {
		t.Fatal("expected negative id to be rejected")
	}
}
