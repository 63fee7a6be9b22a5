package pref

import "errors"

// Key is an enumerated system preference key. The key space is closed:
// unknown keys are rejected, never stored.
type Key string

const (
	KeyEnableRegister Key = "enable_register"
	KeyHostMessage    Key = "host_message"
	KeyUploadMaxMB    Key = "upload_max_mb"
	KeyKeepOriginal   Key = "keep_original"
)

// ErrUnknownKey indicates a preference key outside the enumeration.
var ErrUnknownKey = errors.New("pref: unknown preference key")

var defaults = map[Key]string{
	KeyEnableRegister: "true",
	KeyHostMessage:    "",
	KeyUploadMaxMB:    "32",
	KeyKeepOriginal:   "false",
}

// ParseKey validates a raw key against the enumeration.
func ParseKey(raw string) (Key, error) {
	key := Key(raw)
	if _, ok := defaults[key]; !ok {
		return "", ErrUnknownKey
	}
	return key, nil
}

// Default returns the built-in value for a key.
func Default(key Key) string {
	return defaults[key]
}

// Preference is a stored key/value pair.
type Preference struct {
	Key   Key    `json:"key"`
	Value string `json:"value"`
}
