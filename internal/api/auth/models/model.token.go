package models

// TokenPair là cặp access/refresh token trả về khi đăng nhập hoặc refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult là kết quả đăng nhập: thông tin user kèm cặp token.
type LoginResult struct {
	User   User      `json:"user"`
	Tokens TokenPair `json:"tokens"`
}
