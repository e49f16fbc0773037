// Package dto - các cấu trúc nhận dữ liệu request thuộc domain auth.
package dto

// UserRegisterInput dữ liệu đăng ký tài khoản mới.
type UserRegisterInput struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required,min=1,max=100,no_xss"`
	Password string `json:"password" validate:"required,strong_password"`
}

// UserLoginInput dữ liệu đăng nhập. Cho phép đăng nhập bằng username hoặc email.
type UserLoginInput struct {
	Username string `json:"username" validate:"omitempty,username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenInput dữ liệu làm mới cặp token. Token cũng có thể lấy từ cookie.
type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"omitempty"`
}

// ChangePasswordInput dữ liệu đổi mật khẩu.
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}

// UpdateProfileInput dữ liệu cập nhật thông tin cá nhân.
type UpdateProfileInput struct {
	FullName string `json:"fullName" validate:"omitempty,min=1,max=100,no_xss"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// UserUpdateInput dùng cho route CRUD chung (admin).
type UserUpdateInput struct {
	FullName string `json:"fullName" validate:"omitempty,min=1,max=100,no_xss"`
	Email    string `json:"email" validate:"omitempty,email"`
}
