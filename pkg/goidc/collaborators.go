package goidc

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/luikyv/go-oidc-grants/internal/strutil"
)

// HandleFunc generates the opaque handle returned to callers when a grant is
// created. Handles must be unpredictable and unique.
type HandleFunc func() (string, error)

// RandomHandle is the default [HandleFunc]. It returns [HandleLength] random
// bytes encoded as upper case hex.
func RandomHandle() (string, error) {
	return strutil.RandomHex(HandleLength)
}

// UUIDHandle generates version 4 UUIDs as handles.
func UUIDHandle() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Serializer converts grant payloads to and from the opaque string kept in
// [PersistedGrant.Data].
type Serializer interface {
	Serialize(v any) (string, error)
	Deserialize(data string, v any) error
}

// JSONSerializer is the default [Serializer].
type JSONSerializer struct{}

func (JSONSerializer) Serialize(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (JSONSerializer) Deserialize(data string, v any) error {
	return json.Unmarshal([]byte(data), v)
}

// GrantMeta holds the owner information attached to a grant. It is only
// used to filter grants, never to identify them.
type GrantMeta struct {
	ClientID    string
	SubjectID   string
	SessionID   string
	Description string
}
