package models

import "time"

// TokenTypeBearer — тип токена, который возвращается клиенту.
const TokenTypeBearer = "Bearer"

// TokenRead — ответ на успешную аутентификацию.
type TokenRead struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // Время жизни токена в секундах
	TokenType   string `json:"token_type"`
}

// NewTokenRead формирует ответ с токеном и его временем жизни.
func NewTokenRead(accessToken string, ttl time.Duration) TokenRead {
	return TokenRead{
		AccessToken: accessToken,
		ExpiresIn:   int(ttl / time.Second),
		TokenType:   TokenTypeBearer,
	}
}

// Credentials — данные формы входа (OAuth2 password flow): в username передаётся email.
// Остальные поля формы OAuth2 принимаются, но не используются.
type Credentials struct {
	Username     string `form:"username" validate:"required"`
	Password     string `form:"password" validate:"required"`
	GrantType    string `form:"grant_type"`
	Scope        string `form:"scope"`
	ClientID     string `form:"client_id"`
	ClientSecret string `form:"client_secret"`
}
