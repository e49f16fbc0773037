// Package dto - các cấu trúc nhận dữ liệu request thuộc domain playlist.
package dto

// PlaylistCreateInput dữ liệu tạo playlist mới.
type PlaylistCreateInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100,no_xss"`
	Description string `json:"description" validate:"omitempty,max=1000,no_xss"`
}

// PlaylistUpdateInput dữ liệu cập nhật tên / mô tả playlist.
type PlaylistUpdateInput struct {
	Name        string `json:"name" validate:"omitempty,min=1,max=100,no_xss"`
	Description string `json:"description" validate:"omitempty,max=1000,no_xss"`
}
