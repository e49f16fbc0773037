// Package commenthdl - handler cho domain comment.
package commenthdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "vidtube/internal/api/base/handler"
	commentdto "vidtube/internal/api/comment/dto"
	models "vidtube/internal/api/comment/models"
	commentsvc "vidtube/internal/api/comment/service"
	"vidtube/internal/common"
)

// CommentHandler xử lý các request liên quan đến bình luận
type CommentHandler struct {
	*basehdl.BaseHandler[models.Comment, commentdto.CommentCreateInput, commentdto.CommentUpdateInput]
	CommentService *commentsvc.CommentService
}

// NewCommentHandler tạo mới CommentHandler
func NewCommentHandler() (*CommentHandler, error) {
	commentService, err := commentsvc.NewCommentService()
	if err != nil {
		return nil, fmt.Errorf("create comment service: %w", err)
	}
	hdl := &CommentHandler{CommentService: commentService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Comment, commentdto.CommentCreateInput, commentdto.CommentUpdateInput](commentService.BaseServiceMongoImpl)
	hdl.OwnerField = "owner"
	return hdl, nil
}

// ListByVideo trả về bình luận của một video (join người viết, phân trang).
func (h *CommentHandler) ListByVideo(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		videoID, err := parseObjectIDParam(c, "videoId", "ID video không hợp lệ")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

		data, err := h.CommentService.GetVideoComments(c.Context(), videoID, page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Add thêm bình luận mới vào video.
func (h *CommentHandler) Add(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		videoID, err := parseObjectIDParam(c, "videoId", "ID video không hợp lệ")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input commentdto.CommentCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		comment, err := h.CommentService.Add(c.Context(), videoID, userID, input.Content)
		h.HandleResponse(c, comment, err)
		return nil
	})
}

// Edit sửa nội dung bình luận (chỉ người viết).
func (h *CommentHandler) Edit(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		commentID, err := parseObjectIDParam(c, "id", "ID bình luận không hợp lệ")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input commentdto.CommentUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		comment, err := h.CommentService.EditContent(c.Context(), commentID, userID, input.Content)
		h.HandleResponse(c, comment, err)
		return nil
	})
}

// Delete xóa bình luận (chỉ người viết).
func (h *CommentHandler) Delete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		commentID, err := parseObjectIDParam(c, "id", "ID bình luận không hợp lệ")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.CommentService.Delete(c.Context(), commentID, userID)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// parseObjectIDParam đọc một param path thành ObjectID với thông báo lỗi riêng.
func parseObjectIDParam(c fiber.Ctx, name, errMsg string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			errMsg,
			common.StatusBadRequest,
			err,
		)
	}
	return id, nil
}
