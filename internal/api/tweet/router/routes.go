// Package router đăng ký các route thuộc domain Tweet.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"vidtube/internal/api/middleware"
	apirouter "vidtube/internal/api/router"
	tweethdl "vidtube/internal/api/tweet/handler"
)

// Register đăng ký tất cả route tweet lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	tweetHandler, err := tweethdl.NewTweetHandler()
	if err != nil {
		return fmt.Errorf("create tweet handler: %w", err)
	}

	// Đọc tweet không cần đăng nhập, các thao tác ghi chặn trong handler
	optionalAuth := middleware.OptionalAuthMiddleware()

	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "GET", "/user/:userId", []fiber.Handler{optionalAuth}, tweetHandler.ListByUser)
	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "POST", "", nil, tweetHandler.Add)
	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "PATCH", "/:id", nil, tweetHandler.Edit)
	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "DELETE", "/:id", nil, tweetHandler.Delete)

	// Bề mặt quản trị chỉ đọc trên tweet của chính mình; xóa phải qua
	// domain Delete để dọn like kèm theo.
	r.RegisterCRUDRoutes(v1, "/manage/tweets", tweetHandler, apirouter.ReadOnlyConfig)

	return nil
}
