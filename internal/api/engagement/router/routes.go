// Package router đăng ký các route thuộc domain Engagement (like, subscription).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	engagementhdl "vidtube/internal/api/engagement/handler"
	"vidtube/internal/api/middleware"
	apirouter "vidtube/internal/api/router"
)

// Register đăng ký tất cả route engagement lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	engagementHandler, err := engagementhdl.NewEngagementHandler()
	if err != nil {
		return fmt.Errorf("create engagement handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()

	// Mọi thao tác like đều cần đăng nhập
	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "POST", "/video/:id", []fiber.Handler{authMiddleware}, engagementHandler.ToggleLikeVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "POST", "/comment/:id", nil, engagementHandler.ToggleLikeComment)
	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "POST", "/tweet/:id", nil, engagementHandler.ToggleLikeTweet)
	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "GET", "/videos", nil, engagementHandler.LikedVideos)

	// Danh sách người đăng ký xem được công khai, toggle cần đăng nhập.
	// Group "/subscriptions" dùng optional auth, handler toggle tự chặn.
	optionalAuth := middleware.OptionalAuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", "GET", "/channel/:id", []fiber.Handler{optionalAuth}, engagementHandler.ChannelSubscribers)
	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", "POST", "/channel/:id", nil, engagementHandler.ToggleSubscription)
	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", "GET", "/me", nil, engagementHandler.SubscribedChannels)

	return nil
}
