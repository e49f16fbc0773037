// Package dashboardhdl - handler cho domain dashboard (hồ sơ kênh, thống kê).
package dashboardhdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"

	basehdl "vidtube/internal/api/base/handler"
	dashboardsvc "vidtube/internal/api/dashboard/service"
)

// DashboardHandler xử lý các request thống kê và hồ sơ kênh
type DashboardHandler struct {
	DashboardService *dashboardsvc.DashboardService
}

// NewDashboardHandler tạo mới DashboardHandler
func NewDashboardHandler() (*DashboardHandler, error) {
	dashboardService, err := dashboardsvc.NewDashboardService()
	if err != nil {
		return nil, fmt.Errorf("create dashboard service: %w", err)
	}
	return &DashboardHandler{DashboardService: dashboardService}, nil
}

// ChannelProfile trả về hồ sơ công khai của một kênh theo username.
// Request đã xác thực thì kèm trạng thái đăng ký của viewer.
func (h *DashboardHandler) ChannelProfile(c fiber.Ctx) error {
	return basehdl.Safe(c, func() error {
		data, err := h.DashboardService.GetChannelProfile(c.Context(), c.Params("username"), basehdl.GetUserID(c))
		basehdl.Respond(c, data, err)
		return nil
	})
}

// ChannelStats trả về số liệu tổng hợp của kênh đang đăng nhập.
func (h *DashboardHandler) ChannelStats(c fiber.Ctx) error {
	return basehdl.Safe(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			basehdl.Respond(c, nil, err)
			return nil
		}

		stats, err := h.DashboardService.GetChannelStats(c.Context(), userID)
		basehdl.Respond(c, stats, err)
		return nil
	})
}

// ChannelVideos trả về video của kênh đang đăng nhập, kể cả chưa publish.
func (h *DashboardHandler) ChannelVideos(c fiber.Ctx) error {
	return basehdl.Safe(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			basehdl.Respond(c, nil, err)
			return nil
		}

		page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

		data, err := h.DashboardService.GetChannelVideos(c.Context(), userID, page, limit)
		basehdl.Respond(c, data, err)
		return nil
	})
}
