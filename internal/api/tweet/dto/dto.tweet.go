// Package dto - các cấu trúc nhận dữ liệu request thuộc domain tweet.
package dto

// TweetCreateInput dữ liệu tạo tweet mới.
type TweetCreateInput struct {
	Content string `json:"content" validate:"required,min=1,max=500,no_xss"`
}

// TweetUpdateInput dữ liệu sửa nội dung tweet.
type TweetUpdateInput struct {
	Content string `json:"content" validate:"required,min=1,max=500,no_xss"`
}
