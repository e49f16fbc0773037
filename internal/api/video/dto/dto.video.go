// Package dto - các cấu trúc nhận dữ liệu request thuộc domain video.
package dto

// VideoCreateInput dữ liệu tạo video (metadata, file nằm trong multipart).
type VideoCreateInput struct {
	Title       string `json:"title" form:"title" validate:"required,min=1,max=200,no_xss"`
	Description string `json:"description" form:"description" validate:"omitempty,max=5000,no_xss"`
}

// VideoUpdateInput dữ liệu cập nhật metadata video.
type VideoUpdateInput struct {
	Title       string `json:"title" validate:"omitempty,min=1,max=200,no_xss"`
	Description string `json:"description" validate:"omitempty,max=5000,no_xss"`
}

// VideoFeedQuery các tham số truy vấn feed video.
type VideoFeedQuery struct {
	Page      int64  `query:"page"`
	Limit     int64  `query:"limit"`
	Query     string `query:"query"`     // Từ khóa tìm kiếm trên title/description
	SortBy    string `query:"sortBy"`    // Field sắp xếp (createdAt, views, duration)
	SortType  string `query:"sortType"`  // asc | desc
	OwnerID   string `query:"userId"`    // Lọc theo kênh
	OnlyOwner bool   `query:"onlyOwner"` // Chỉ video của chính mình (kể cả chưa publish)
}
