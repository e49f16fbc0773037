// Package authhdl - handler cho domain auth (đăng ký, đăng nhập, token, hồ sơ).
package authhdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"

	authdto "vidtube/internal/api/auth/dto"
	models "vidtube/internal/api/auth/models"
	authsvc "vidtube/internal/api/auth/service"
	basehdl "vidtube/internal/api/base/handler"
	"vidtube/internal/common"
)

// AuthHandler xử lý các request liên quan đến tài khoản người dùng
type AuthHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserRegisterInput, authdto.UserUpdateInput]
	UserService *authsvc.UserService
}

// NewAuthHandler tạo mới AuthHandler
func NewAuthHandler() (*AuthHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("create user service: %w", err)
	}
	hdl := &AuthHandler{UserService: userService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.User, authdto.UserRegisterInput, authdto.UserUpdateInput](userService.BaseServiceMongoImpl)
	return hdl, nil
}

// Register đăng ký tài khoản mới.
func (h *AuthHandler) Register(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserRegisterInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.UserService.Register(c.Context(), &input)
		h.HandleResponse(c, user, err)
		return nil
	})
}

// Login đăng nhập bằng username hoặc email, trả về user kèm cặp token.
// Token cũng được set vào cookie httpOnly.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserLoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.UserService.Login(c.Context(), &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		setTokenCookies(c, result.Tokens.AccessToken, result.Tokens.RefreshToken)
		h.HandleResponse(c, result, nil)
		return nil
	})
}

// RefreshToken cấp cặp token mới từ refresh token (body hoặc cookie).
func (h *AuthHandler) RefreshToken(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.RefreshTokenInput
		// Body rỗng vẫn hợp lệ khi token nằm trong cookie
		_ = h.ParseRequestBody(c, &input)
		if input.RefreshToken == "" {
			input.RefreshToken = c.Cookies("refreshToken")
		}

		tokens, err := h.UserService.RefreshTokens(c.Context(), input.RefreshToken)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		setTokenCookies(c, tokens.AccessToken, tokens.RefreshToken)
		h.HandleResponse(c, tokens, nil)
		return nil
	})
}

// Logout đăng xuất: thu hồi refresh token và xóa cookie.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.UserService.Logout(c.Context(), userID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		clearTokenCookies(c)
		h.HandleResponse(c, nil, nil)
		return nil
	})
}

// Me trả về thông tin user đang đăng nhập.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.UserService.FindOneById(c.Context(), userID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user.Password = ""
		user.RefreshToken = ""
		h.HandleResponse(c, user, nil)
		return nil
	})
}

// ChangePassword đổi mật khẩu của user đang đăng nhập.
func (h *AuthHandler) ChangePassword(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input authdto.ChangePasswordInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.UserService.ChangePassword(c.Context(), userID, &input)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// UpdateProfile cập nhật fullName/email của user đang đăng nhập.
func (h *AuthHandler) UpdateProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input authdto.UpdateProfileInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.UserService.UpdateProfile(c.Context(), userID, &input)
		h.HandleResponse(c, user, err)
		return nil
	})
}

// UpdateAvatar upload avatar mới (multipart field "avatar").
func (h *AuthHandler) UpdateAvatar(c fiber.Ctx) error {
	return h.uploadImage(c, "avatar")
}

// UpdateCoverImage upload ảnh bìa mới (multipart field "coverImage").
func (h *AuthHandler) UpdateCoverImage(c fiber.Ctx) error {
	return h.uploadImage(c, "coverImage")
}

func (h *AuthHandler) uploadImage(c fiber.Ctx, field string) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		fileHeader, err := c.FormFile(field)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Thiếu file upload ở field '%s'", field),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		file, err := fileHeader.Open()
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		defer file.Close()

		contentType := fileHeader.Header.Get("Content-Type")
		var user models.User
		if field == "avatar" {
			user, err = h.UserService.UpdateAvatar(c.Context(), userID, file, fileHeader.Filename, contentType)
		} else {
			user, err = h.UserService.UpdateCoverImage(c.Context(), userID, file, fileHeader.Filename, contentType)
		}
		h.HandleResponse(c, user, err)
		return nil
	})
}

// WatchHistory trả về lịch sử xem của user đang đăng nhập (join video, phân trang).
func (h *AuthHandler) WatchHistory(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := basehdl.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

		data, err := h.UserService.GetWatchHistory(c.Context(), userID, page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// setTokenCookies set cặp token vào cookie httpOnly.
func setTokenCookies(c fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "accessToken",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// clearTokenCookies xóa cookie token khi logout.
func clearTokenCookies(c fiber.Ctx) {
	c.ClearCookie("accessToken")
	c.ClearCookie("refreshToken")
}
