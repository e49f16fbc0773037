// Package tweethdl - handler cho domain tweet.
package tweethdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "vidtube/internal/api/base/handler"
	tweetdto "vidtube/internal/api/tweet/dto"
	models "vidtube/internal/api/tweet/models"
	tweetsvc "vidtube/internal/api/tweet/service"
	"vidtube/internal/common"
)

// TweetHandler xử lý các request liên quan đến tweet
type TweetHandler struct {
	*basehdl.BaseHandler[models.Tweet, tweetdto.TweetCreateInput, tweetdto.TweetUpdateInput]
	TweetService *tweetsvc.TweetService
}

// NewTweetHandler tạo mới TweetHandler
func NewTweetHandler() (*TweetHandler, error) {
	tweetService, err := tweetsvc.NewTweetService()
	if err != nil {
		return nil, fmt.Errorf("create tweet service: %w", err)
	}
	hdl := &TweetHandler{TweetService: tweetService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Tweet, tweetdto.TweetCreateInput, tweetdto.TweetUpdateInput](tweetService.BaseServiceMongoImpl)
	hdl.OwnerField = "owner"
	return hdl, nil
}

// Add tạo tweet mới.
func (h *TweetHandler) Add(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input tweetdto.TweetCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		tweet, err := h.TweetService.Add(c.Context(), userID, input.Content)
		h.HandleResponse(c, tweet, err)
		return nil
	})
}

// ListByUser trả về tweet của một kênh (join chủ kênh, phân trang).
func (h *TweetHandler) ListByUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, err := primitive.ObjectIDFromHex(c.Params("userId"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"ID kênh không hợp lệ",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

		data, err := h.TweetService.GetUserTweets(c.Context(), ownerID, page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Edit sửa nội dung tweet (chỉ chủ sở hữu).
func (h *TweetHandler) Edit(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		tweetID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		var input tweetdto.TweetUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		tweet, err := h.TweetService.EditContent(c.Context(), tweetID, userID, input.Content)
		h.HandleResponse(c, tweet, err)
		return nil
	})
}

// Delete xóa tweet (chỉ chủ sở hữu).
func (h *TweetHandler) Delete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		tweetID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		err = h.TweetService.Delete(c.Context(), tweetID, userID)
		h.HandleResponse(c, nil, err)
		return nil
	})
}
