package authz

import (
	"bytes"
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// GuestUsername is the reserved username for unauthenticated principals.
const GuestUsername = "guest"

// Identity is a validated snapshot of an authenticated (or guest) account.
// It deliberately carries no password hash; hashes never leave the
// user-store boundary except for the credential check itself.
type Identity struct {
	ID       int64    `json:"id" validate:"gte=0"`
	Username string   `json:"username" validate:"required"`
	Roles    []string `json:"roles" validate:"omitempty,dive,required"`
	Locked   bool     `json:"locked"`
}

// Guest returns the implicit identity used when no token is presented.
func Guest() Identity {
	return Identity{Username: GuestUsername, Roles: []string{"guest"}}
}

var identityValidate = validator.New()

// ValidateIdentity checks a typed identity against the schema.
func ValidateIdentity(identity Identity) error {
	if err := identityValidate.Struct(identity); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return &ValidationError{Field: errs[0].Field(), Reason: errs[0].Tag()}
		}
		return &ValidationError{Reason: err.Error()}
	}
	return nil
}

// DecodeIdentity reconstitutes an identity from raw JSON with a closed
// schema: unknown fields are rejected, then the typed value is validated.
func DecodeIdentity(raw []byte) (Identity, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var identity Identity
	if err := dec.Decode(&identity); err != nil {
		return Identity{}, &ValidationError{Reason: err.Error()}
	}
	if err := ValidateIdentity(identity); err != nil {
		return Identity{}, err
	}
	return identity, nil
}
