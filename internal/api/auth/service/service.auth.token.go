// Package authsvc - service người dùng và token.
package authsvc

import (
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "vidtube/internal/api/auth/models"
	"vidtube/internal/common"
	"vidtube/internal/global"
)

// CreateTokenPair sinh cặp access/refresh token cho user.
// Access token mang id + username, refresh token chỉ mang id.
func CreateTokenPair(user *models.User) (*models.TokenPair, error) {
	cfg := global.ServerConfig
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"id":       user.ID.Hex(),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Duration(cfg.AccessTokenExpiry) * time.Second).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(cfg.AccessTokenSecret))
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			"Lỗi tạo access token",
			common.StatusInternalServerError,
			err,
		)
	}

	refreshClaims := jwt.MapClaims{
		"id":  user.ID.Hex(),
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(cfg.RefreshTokenExpiry) * time.Second).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(cfg.RefreshTokenSecret))
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			"Lỗi tạo refresh token",
			common.StatusInternalServerError,
			err,
		)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ParseRefreshToken validate refresh token và trả về user ID trong claims.
func ParseRefreshToken(tokenString string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(global.ServerConfig.RefreshTokenSecret), nil
	})
	if err != nil {
		if vErr, ok := err.(*jwt.ValidationError); ok && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return primitive.NilObjectID, common.ErrTokenExpired
		}
		return primitive.NilObjectID, common.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}

	idStr, ok := claims["id"].(string)
	if !ok || !primitive.IsValidObjectID(idStr) {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return primitive.ObjectIDFromHex(idStr)
}
