package middleware

import (
	"context"
	"strings"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/global"
)

// AuthMiddleware xác thực access token từ header Authorization (Bearer) hoặc cookie accessToken.
// Token hợp lệ thì set user_id vào Locals cho các handler phía sau.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		userID, err := parseAccessToken(tokenString)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		// Token còn hạn nhưng tài khoản đã bị xóa thì không cho qua
		if !userExists(c.Context(), userID) {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthToken,
				"Tài khoản gắn với token không còn tồn tại",
				common.StatusUnauthorized,
				nil,
			))
			return nil
		}

		c.Locals("user_id", userID.Hex())
		return c.Next()
	}
}

// OptionalAuthMiddleware xác thực token nếu có, không chặn request khi thiếu/sai token.
// Dùng cho các route public nhưng có hành vi khác khi user đăng nhập (ví dụ: đếm view).
func OptionalAuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return c.Next()
		}

		userID, err := parseAccessToken(tokenString)
		if err == nil && userExists(c.Context(), userID) {
			c.Locals("user_id", userID.Hex())
		}
		return c.Next()
	}
}

// userExists kiểm tra user của token còn trong database không.
func userExists(ctx context.Context, userID primitive.ObjectID) bool {
	users, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return false
	}
	count, err := users.CountDocuments(ctx, bson.M{"_id": userID})
	return err == nil && count > 0
}

// extractToken lấy token từ header Authorization hoặc cookie accessToken.
func extractToken(c fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies("accessToken")
}

// parseAccessToken validate access token và trả về user ID trong claims.
func parseAccessToken(tokenString string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(global.ServerConfig.AccessTokenSecret), nil
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

	userID, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return userID, nil
}
