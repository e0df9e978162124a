package domain

// ============================================================
// Auth: request / response bodies shared by client and mock backend
// ============================================================

// RefreshRequest is the body for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse is what the refresh endpoint returns. Older backends
// answer with "token", newer ones with "accessToken".
type RefreshResponse struct {
	Token        string `json:"token,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	SnakeToken   string `json:"access_token,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// AccessTokenValue returns the first non-empty token field.
func (r *RefreshResponse) AccessTokenValue() string {
	switch {
	case r.AccessToken != "":
		return r.AccessToken
	case r.SnakeToken != "":
		return r.SnakeToken
	default:
		return r.Token
	}
}

// VerifyResponse is the body of GET /auth/verify.
type VerifyResponse struct {
	Valid bool       `json:"valid"`
	User  UserRecord `json:"user"`
}
