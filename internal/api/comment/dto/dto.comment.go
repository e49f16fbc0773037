// Package dto - các cấu trúc nhận dữ liệu request thuộc domain comment.
package dto

// CommentCreateInput dữ liệu thêm bình luận vào một video.
type CommentCreateInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000,no_xss"`
}

// CommentUpdateInput dữ liệu sửa nội dung bình luận.
type CommentUpdateInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000,no_xss"`
}
