// Package videohdl - handler cho domain video (upload, feed, view, xóa dây chuyền).
package videohdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "vidtube/internal/api/base/handler"
	videodto "vidtube/internal/api/video/dto"
	models "vidtube/internal/api/video/models"
	videosvc "vidtube/internal/api/video/service"
	"vidtube/internal/common"
)

// VideoHandler xử lý các request liên quan đến video
type VideoHandler struct {
	*basehdl.BaseHandler[models.Video, videodto.VideoCreateInput, videodto.VideoUpdateInput]
	VideoService *videosvc.VideoService
}

// NewVideoHandler tạo mới VideoHandler
func NewVideoHandler() (*VideoHandler, error) {
	videoService, err := videosvc.NewVideoService()
	if err != nil {
		return nil, fmt.Errorf("create video service: %w", err)
	}
	hdl := &VideoHandler{VideoService: videoService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Video, videodto.VideoCreateInput, videodto.VideoUpdateInput](videoService.BaseServiceMongoImpl)
	hdl.OwnerField = "owner"
	return hdl, nil
}

// Upload tạo video mới: metadata trong form, file ở field "videoFile" và "thumbnail".
func (h *VideoHandler) Upload(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input videodto.VideoCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		duration, _ := strconv.ParseFloat(c.FormValue("duration"), 64)

		videoUpload, videoClose, err := openFormFile(c, "videoFile", true)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		defer videoClose()

		thumbUpload, thumbClose, err := openFormFile(c, "thumbnail", false)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if thumbClose != nil {
			defer thumbClose()
		}

		video, err := h.VideoService.CreateWithAssets(c.Context(), userID, input.Title, input.Description, duration, videoUpload, thumbUpload)
		h.HandleResponse(c, video, err)
		return nil
	})
}

// Feed trả về danh sách video đã publish, có tìm kiếm / sắp xếp / phân trang.
func (h *VideoHandler) Feed(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var query videodto.VideoFeedQuery
		if err := c.Bind().Query(&query); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		viewerID := basehdl.GetUserID(c)
		var ownerFilter primitive.ObjectID
		if query.OnlyOwner {
			ownerFilter = viewerID
		} else if query.OwnerID != "" {
			parsed, err := primitive.ObjectIDFromHex(query.OwnerID)
			if err != nil {
				h.HandleResponse(c, nil, common.ErrInvalidFormat)
				return nil
			}
			ownerFilter = parsed
		}

		data, err := h.VideoService.GetFeed(c.Context(), query.Query, query.SortBy, query.SortType, ownerFilter, viewerID, query.Page, query.Limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Detail trả về một video kèm thông tin chủ kênh.
// Video chưa publish chỉ chủ sở hữu xem được.
func (h *VideoHandler) Detail(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		videoID, err := parseVideoID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.VideoService.GetByID(c.Context(), videoID, basehdl.GetUserID(c))
		h.HandleResponse(c, data, err)
		return nil
	})
}

// UpdateMetadata cập nhật title/description của video (chỉ chủ sở hữu).
func (h *VideoHandler) UpdateMetadata(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		videoID, err := parseVideoID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input videodto.VideoUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		video, err := h.VideoService.UpdateMetadata(c.Context(), videoID, userID, input.Title, input.Description)
		h.HandleResponse(c, video, err)
		return nil
	})
}

// UpdateThumbnail thay thumbnail của video (multipart field "thumbnail", chỉ chủ sở hữu).
func (h *VideoHandler) UpdateThumbnail(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		videoID, err := parseVideoID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		upload, closeFn, err := openFormFile(c, "thumbnail", true)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		defer closeFn()

		video, err := h.VideoService.UpdateThumbnail(c.Context(), videoID, userID, upload)
		h.HandleResponse(c, video, err)
		return nil
	})
}

// TogglePublish đảo trạng thái publish của video (chỉ chủ sở hữu).
func (h *VideoHandler) TogglePublish(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		videoID, err := parseVideoID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		video, err := h.VideoService.TogglePublishStatus(c.Context(), videoID, userID)
		h.HandleResponse(c, video, err)
		return nil
	})
}

// Delete xóa video dây chuyền: file trên storage, document và mọi tham chiếu.
func (h *VideoHandler) Delete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		videoID, err := parseVideoID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.VideoService.DeleteCascade(c.Context(), videoID, userID)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// RecordView ghi nhận một lượt xem của user đang đăng nhập.
func (h *VideoHandler) RecordView(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		videoID, err := parseVideoID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.VideoService.RecordView(c.Context(), videoID, userID)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// parseVideoID đọc param :id thành ObjectID.
func parseVideoID(c fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			"ID video không hợp lệ",
			common.StatusBadRequest,
			err,
		)
	}
	return id, nil
}

// openFormFile mở một file trong multipart request thành UploadInput.
// required=false thì thiếu file trả về (nil, nil, nil).
func openFormFile(c fiber.Ctx, field string, required bool) (*videosvc.UploadInput, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if !required {
			return nil, nil, nil
		}
		return nil, nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Thiếu file upload ở field '%s'", field),
			common.StatusBadRequest,
			err,
		)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, common.ErrInvalidFormat
	}

	upload := &videosvc.UploadInput{
		Reader:      file,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}
	return upload, func() { _ = file.Close() }, nil
}
