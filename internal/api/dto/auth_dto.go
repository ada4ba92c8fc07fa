package dto

// TokenObtainRequest payload.
type TokenObtainRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenRefreshRequest payload.
type TokenRefreshRequest struct {
	Refresh string `json:"refresh"`
}

// TokenResponse carries issued tokens. Refresh is omitted when only access was renewed.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}
