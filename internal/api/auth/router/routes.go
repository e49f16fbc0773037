// Package router đăng ký các route thuộc domain Auth: đăng ký, đăng nhập, token, hồ sơ.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "vidtube/internal/api/auth/handler"
	"vidtube/internal/api/middleware"
	apirouter "vidtube/internal/api/router"
)

// Register đăng ký tất cả route auth lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	authHandler, err := authhdl.NewAuthHandler()
	if err != nil {
		return fmt.Errorf("create auth handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()

	// Route public
	v1.Post("/auth/register", authHandler.Register)
	v1.Post("/auth/login", authHandler.Login)
	v1.Post("/auth/refresh-token", authHandler.RefreshToken)

	// Route yêu cầu đăng nhập
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/logout", []fiber.Handler{authMiddleware}, authHandler.Logout)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "GET", "/me", []fiber.Handler{authMiddleware}, authHandler.Me)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/change-password", []fiber.Handler{authMiddleware}, authHandler.ChangePassword)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "PATCH", "/profile", []fiber.Handler{authMiddleware}, authHandler.UpdateProfile)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "PATCH", "/avatar", []fiber.Handler{authMiddleware}, authHandler.UpdateAvatar)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "PATCH", "/cover-image", []fiber.Handler{authMiddleware}, authHandler.UpdateCoverImage)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "GET", "/watch-history", []fiber.Handler{authMiddleware}, authHandler.WatchHistory)

	return nil
}
