// Package playlisthdl - handler cho domain playlist.
package playlisthdl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "vidtube/internal/api/base/handler"
	playlistdto "vidtube/internal/api/playlist/dto"
	models "vidtube/internal/api/playlist/models"
	playlistsvc "vidtube/internal/api/playlist/service"
	"vidtube/internal/common"
)

// PlaylistHandler xử lý các request liên quan đến playlist
type PlaylistHandler struct {
	*basehdl.BaseHandler[models.Playlist, playlistdto.PlaylistCreateInput, playlistdto.PlaylistUpdateInput]
	PlaylistService *playlistsvc.PlaylistService
}

// NewPlaylistHandler tạo mới PlaylistHandler
func NewPlaylistHandler() (*PlaylistHandler, error) {
	playlistService, err := playlistsvc.NewPlaylistService()
	if err != nil {
		return nil, fmt.Errorf("create playlist service: %w", err)
	}
	hdl := &PlaylistHandler{PlaylistService: playlistService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Playlist, playlistdto.PlaylistCreateInput, playlistdto.PlaylistUpdateInput](playlistService.BaseServiceMongoImpl)
	hdl.OwnerField = "owner"
	return hdl, nil
}

// Create tạo playlist mới.
func (h *PlaylistHandler) Create(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input playlistdto.PlaylistCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		playlist, err := h.PlaylistService.Create(c.Context(), userID, input.Name, input.Description)
		h.HandleResponse(c, playlist, err)
		return nil
	})
}

// ListByUser trả về playlist của một user kèm số video.
func (h *PlaylistHandler) ListByUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, err := parseID(c, "userId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

		data, err := h.PlaylistService.GetUserPlaylists(c.Context(), ownerID, page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Detail trả về một playlist kèm danh sách video đã join.
func (h *PlaylistHandler) Detail(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		playlistID, err := parseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.PlaylistService.GetDetail(c.Context(), playlistID)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Update cập nhật tên / mô tả playlist (chỉ chủ sở hữu).
func (h *PlaylistHandler) Update(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		playlistID, err := parseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input playlistdto.PlaylistUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		playlist, err := h.PlaylistService.UpdateMeta(c.Context(), playlistID, userID, input.Name, input.Description)
		h.HandleResponse(c, playlist, err)
		return nil
	})
}

// AddVideo thêm video vào playlist (chỉ chủ sở hữu, không tạo phần tử trùng).
func (h *PlaylistHandler) AddVideo(c fiber.Ctx) error {
	return h.changeVideo(c, h.PlaylistService.AddVideo)
}

// RemoveVideo rút video khỏi playlist (chỉ chủ sở hữu).
func (h *PlaylistHandler) RemoveVideo(c fiber.Ctx) error {
	return h.changeVideo(c, h.PlaylistService.RemoveVideo)
}

func (h *PlaylistHandler) changeVideo(c fiber.Ctx, op func(ctx context.Context, playlistID, ownerID, videoID primitive.ObjectID) (bool, error)) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		playlistID, err := parseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videoID, err := parseID(c, "videoId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		changed, err := op(c.Context(), playlistID, userID, videoID)
		h.HandleResponse(c, fiber.Map{"changed": changed}, err)
		return nil
	})
}

// Delete xóa playlist (chỉ chủ sở hữu).
func (h *PlaylistHandler) Delete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		playlistID, err := parseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.PlaylistService.Delete(c.Context(), playlistID, userID)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// parseID đọc một param path thành ObjectID.
func parseID(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			"ID không hợp lệ",
			common.StatusBadRequest,
			err,
		)
	}
	return id, nil
}
