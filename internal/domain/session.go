package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Credential is what the technician types on the login screen.
// It is never persisted.
type Credential struct {
	Identifier string `json:"username"`
	Secret     string `json:"password"`
}

// Role of the authenticated user.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
	RoleManager    Role = "manager"
)

// ParseRole returns the role for s, or false when s is not a known role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleAdmin, RoleTechnician, RoleManager:
		return r, true
	}
	return "", false
}

// UserRecord is the normalized identity cached after login.
type UserRecord struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Avatar            string `json:"avatar,omitempty"`
	Role              Role   `json:"role"`
	OrganizationLabel string `json:"filial"`
	Location          string `json:"location,omitempty"`
}

// Session is the persisted login outcome.
// AccessToken is never empty for a stored session.
type Session struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	User         UserRecord `json:"user"`
}

// StorageKey names one of the persisted session entries.
type StorageKey string

const (
	KeyAccessToken  StorageKey = "token"
	KeyRefreshToken StorageKey = "refreshToken"
	KeyUser         StorageKey = "user"
)

// SessionKeys lists every key owned by the token store.
var SessionKeys = []StorageKey{KeyAccessToken, KeyRefreshToken, KeyUser}

// FlexString decodes a JSON string or number into a string.
// Backends send ids both as 42 and "42".
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(b))
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }
