// Package router đăng ký các route thuộc domain Dashboard.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	dashboardhdl "vidtube/internal/api/dashboard/handler"
	"vidtube/internal/api/middleware"
	apirouter "vidtube/internal/api/router"
)

// Register đăng ký tất cả route dashboard lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	dashboardHandler, err := dashboardhdl.NewDashboardHandler()
	if err != nil {
		return fmt.Errorf("create dashboard handler: %w", err)
	}

	// Hồ sơ kênh xem được công khai, thống kê quản trị chặn trong handler
	optionalAuth := middleware.OptionalAuthMiddleware()

	apirouter.RegisterRouteWithMiddleware(v1, "/channels", "GET", "/:username", []fiber.Handler{optionalAuth}, dashboardHandler.ChannelProfile)
	apirouter.RegisterRouteWithMiddleware(v1, "/dashboard", "GET", "/stats", []fiber.Handler{optionalAuth}, dashboardHandler.ChannelStats)
	apirouter.RegisterRouteWithMiddleware(v1, "/dashboard", "GET", "/videos", nil, dashboardHandler.ChannelVideos)

	return nil
}
