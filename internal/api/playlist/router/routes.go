// Package router đăng ký các route thuộc domain Playlist.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"vidtube/internal/api/middleware"
	playlisthdl "vidtube/internal/api/playlist/handler"
	apirouter "vidtube/internal/api/router"
)

// Register đăng ký tất cả route playlist lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	playlistHandler, err := playlisthdl.NewPlaylistHandler()
	if err != nil {
		return fmt.Errorf("create playlist handler: %w", err)
	}

	// Đọc playlist không cần đăng nhập, các thao tác ghi chặn trong handler
	optionalAuth := middleware.OptionalAuthMiddleware()

	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "GET", "/user/:userId", []fiber.Handler{optionalAuth}, playlistHandler.ListByUser)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "GET", "/:id", nil, playlistHandler.Detail)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "POST", "", nil, playlistHandler.Create)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "PATCH", "/:id", nil, playlistHandler.Update)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "PATCH", "/:id/videos/:videoId", nil, playlistHandler.AddVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "DELETE", "/:id/videos/:videoId", nil, playlistHandler.RemoveVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "DELETE", "/:id", nil, playlistHandler.Delete)

	// Bề mặt quản trị CRUD đầy đủ: insert gán owner từ token, update/delete
	// kiểm tra quyền sở hữu, và không collection nào tham chiếu tới playlists
	// nên xóa qua đây không để lại tham chiếu mồ côi. Thêm / rút video vẫn
	// phải qua hai route ở trên để giữ phần tử không trùng.
	r.RegisterCRUDRoutes(v1, "/manage/playlists", playlistHandler, apirouter.ReadWriteConfig)

	return nil
}
