// Package engagementhdl - handler cho domain engagement (like, subscription).
package engagementhdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "vidtube/internal/api/base/handler"
	engagementsvc "vidtube/internal/api/engagement/service"
	"vidtube/internal/common"
)

// EngagementHandler xử lý các request toggle like / subscription và danh sách đi kèm
type EngagementHandler struct {
	EngagementService *engagementsvc.EngagementService
}

// NewEngagementHandler tạo mới EngagementHandler
func NewEngagementHandler() (*EngagementHandler, error) {
	engagementService, err := engagementsvc.NewEngagementService()
	if err != nil {
		return nil, fmt.Errorf("create engagement service: %w", err)
	}
	return &EngagementHandler{EngagementService: engagementService}, nil
}

// ToggleLikeVideo đảo like trên một video.
func (h *EngagementHandler) ToggleLikeVideo(c fiber.Ctx) error {
	return h.toggle(c, engagementsvc.KindVideo)
}

// ToggleLikeComment đảo like trên một bình luận.
func (h *EngagementHandler) ToggleLikeComment(c fiber.Ctx) error {
	return h.toggle(c, engagementsvc.KindComment)
}

// ToggleLikeTweet đảo like trên một tweet.
func (h *EngagementHandler) ToggleLikeTweet(c fiber.Ctx) error {
	return h.toggle(c, engagementsvc.KindTweet)
}

// ToggleSubscription đảo trạng thái đăng ký một kênh.
func (h *EngagementHandler) ToggleSubscription(c fiber.Ctx) error {
	return h.toggle(c, engagementsvc.KindChannel)
}

func (h *EngagementHandler) toggle(c fiber.Ctx, kind engagementsvc.ToggleKind) error {
	return basehdl.Safe(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			basehdl.Respond(c, nil, err)
			return nil
		}

		targetID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			basehdl.Respond(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"ID không hợp lệ",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		result, err := engagementsvc.Toggle(c.Context(), kind, targetID, userID)
		basehdl.Respond(c, result, err)
		return nil
	})
}

// LikedVideos trả về các video user đang đăng nhập đã like.
func (h *EngagementHandler) LikedVideos(c fiber.Ctx) error {
	return basehdl.Safe(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			basehdl.Respond(c, nil, err)
			return nil
		}

		page, limit := parsePaging(c)
		data, err := h.EngagementService.GetLikedVideos(c.Context(), userID, page, limit)
		basehdl.Respond(c, data, err)
		return nil
	})
}

// ChannelSubscribers trả về danh sách người đăng ký một kênh.
func (h *EngagementHandler) ChannelSubscribers(c fiber.Ctx) error {
	return basehdl.Safe(c, func() error {
		channelID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			basehdl.Respond(c, nil, common.ErrInvalidFormat)
			return nil
		}

		page, limit := parsePaging(c)
		data, err := h.EngagementService.GetChannelSubscribers(c.Context(), channelID, page, limit)
		basehdl.Respond(c, data, err)
		return nil
	})
}

// SubscribedChannels trả về các kênh user đang đăng nhập theo dõi.
func (h *EngagementHandler) SubscribedChannels(c fiber.Ctx) error {
	return basehdl.Safe(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			basehdl.Respond(c, nil, err)
			return nil
		}

		page, limit := parsePaging(c)
		data, err := h.EngagementService.GetSubscribedChannels(c.Context(), userID, page, limit)
		basehdl.Respond(c, data, err)
		return nil
	})
}

func parsePaging(c fiber.Ctx) (int64, int64) {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	return page, limit
}
