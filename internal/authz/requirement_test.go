package authz

import (
	"errors"
	"testing"
)

func TestExtractPrefersOperationScope(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterGroup("pref", Require(PermPrefWrite)); err != nil {
		t.Fatalf("register group: %v", err)
	}
	if err := reg.RegisterOperation("pref.get", Require(PermPrefRead)); err != nil {
		t.Fatalf("register operation: %v", err)
	}
	reg.Freeze()

	req, err := reg.Extract("pref.get")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(req.Permissions) != 1 || req.Permissions[0] != PermPrefRead {
		t.Fatalf("expected operation-scope requirement, got %v", req.Permissions)
	}
}

func TestExtractFallsBackToGroupScope(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterGroup("pref", Require(PermPrefWrite)); err != nil {
		t.Fatalf("register group: %v", err)
	}
	reg.Freeze()

	req, err := reg.Extract("pref.set")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(req.Permissions) != 1 || req.Permissions[0] != PermPrefWrite {
		t.Fatalf("expected group-scope requirement, got %v", req.Permissions)
	}
}

func TestExtractUndeclaredOperationFailsClosed(t *testing.T) {
	reg := NewRegistry()
	reg.Freeze()

	_, err := reg.Extract("images.upload")
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extractionErr.Operation != "images.upload" {
		t.Fatalf("unexpected operation in error: %q", extractionErr.Operation)
	}
}

func TestRegisterRejectsUnknownPermission(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterOperation("x.y", Require(Permission("made.up"))); err == nil {
		t.Fatal("expected registration of unknown permission to fail")
	}
}

func TestRegisterRejectsZeroValueRequirement(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterOperation("x.y", Requirement{}); err == nil {
		t.Fatal("expected zero-value requirement to be rejected")
	}
}

func TestRegisterRejectsNoAuthWithPermissions(t *testing.T) {
	reg := NewRegistry()
	req := Requirement{NoAuth: true, Permissions: []Permission{PermImageView}, declared: true}
	if err := reg.RegisterOperation("x.y", req); err == nil {
		t.Fatal("expected no-auth marker with permissions to be rejected")
	}
}

func TestRegisterAfterFreezeFails(t *testing.T) {
	reg := NewRegistry()
	reg.Freeze()
	if err := reg.RegisterOperation("x.y", Require(PermImageView)); err == nil {
		t.Fatal("expected registration after freeze to fail")
	}
	if err := reg.RegisterGroup("x", Require(PermImageView)); err == nil {
		t.Fatal("expected group registration after freeze to fail")
	}
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterOperation("x.y", Require(PermImageView)); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if err := reg.RegisterOperation("x.y", Require(PermImageUpload)); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestEmptyRequirementIsDistinctFromUndeclared(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterOperation("x.y", Require()); err != nil {
		t.Fatalf("register empty requirement: %v", err)
	}
	reg.Freeze()

	req, err := reg.Extract("x.y")
	if err != nil {
		t.Fatalf("an empty requirement is declared, extraction must succeed: %v", err)
	}
	if req.NoAuth || len(req.Permissions) != 0 {
		t.Fatalf("unexpected requirement: %+v", req)
	}
}
