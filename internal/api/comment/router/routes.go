// Package router đăng ký các route thuộc domain Comment.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	commenthdl "vidtube/internal/api/comment/handler"
	"vidtube/internal/api/middleware"
	apirouter "vidtube/internal/api/router"
)

// Register đăng ký tất cả route comment lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	commentHandler, err := commenthdl.NewCommentHandler()
	if err != nil {
		return fmt.Errorf("create comment handler: %w", err)
	}

	// Đọc bình luận không cần đăng nhập, các thao tác ghi chặn trong handler
	optionalAuth := middleware.OptionalAuthMiddleware()

	apirouter.RegisterRouteWithMiddleware(v1, "/comments", "GET", "/video/:videoId", []fiber.Handler{optionalAuth}, commentHandler.ListByVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/comments", "POST", "/video/:videoId", nil, commentHandler.Add)
	apirouter.RegisterRouteWithMiddleware(v1, "/comments", "PATCH", "/:id", nil, commentHandler.Edit)
	apirouter.RegisterRouteWithMiddleware(v1, "/comments", "DELETE", "/:id", nil, commentHandler.Delete)

	// Bề mặt quản trị chỉ đọc trên bình luận của chính mình; xóa phải qua
	// domain Delete để dọn like kèm theo.
	r.RegisterCRUDRoutes(v1, "/manage/comments", commentHandler, apirouter.ReadOnlyConfig)

	return nil
}
