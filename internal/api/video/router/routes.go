// Package router đăng ký các route thuộc domain Video: upload, feed, view, xóa dây chuyền.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"vidtube/internal/api/middleware"
	apirouter "vidtube/internal/api/router"
	videohdl "vidtube/internal/api/video/handler"
)

// Register đăng ký tất cả route video lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	videoHandler, err := videohdl.NewVideoHandler()
	if err != nil {
		return fmt.Errorf("create video handler: %w", err)
	}

	// Một group duy nhất với optional auth: middleware group trong Fiber v3 áp
	// dụng theo prefix nên không thể trộn hai middleware trên cùng "/videos".
	// Feed và chi tiết xem được không cần đăng nhập; các handler ghi dữ liệu
	// tự chặn request chưa xác thực qua RequireUserID.
	optionalAuth := middleware.OptionalAuthMiddleware()

	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "GET", "", []fiber.Handler{optionalAuth}, videoHandler.Feed)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "GET", "/:id", []fiber.Handler{optionalAuth}, videoHandler.Detail)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "POST", "", nil, videoHandler.Upload)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "PATCH", "/:id", nil, videoHandler.UpdateMetadata)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "PATCH", "/:id/thumbnail", nil, videoHandler.UpdateThumbnail)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "PATCH", "/:id/toggle-publish", nil, videoHandler.TogglePublish)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "DELETE", "/:id", nil, videoHandler.Delete)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "POST", "/:id/views", nil, videoHandler.RecordView)

	// Bề mặt quản trị chỉ đọc: truy vấn tự do (filter / sort / phân trang) trên
	// video của chính mình. Ghi phải đi qua upload và xóa dây chuyền ở trên —
	// CRUD tổng quát không biết dọn file storage và tham chiếu.
	r.RegisterCRUDRoutes(v1, "/manage/videos", videoHandler, apirouter.ReadOnlyConfig)

	return nil
}
