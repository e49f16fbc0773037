// Package global - Test các custom validator đăng ký qua InitValidator.
package global

import (
	"testing"
)

type xssInput struct {
	Content string `validate:"no_xss"`
}

type passwordInput struct {
	Password string `validate:"strong_password"`
}

type usernameInput struct {
	Username string `validate:"username"`
}

func TestValidateNoXSS(t *testing.T) {
	InitValidator()

	hopLe := []string{
		"Video rất hay, cảm ơn bạn!",
		"Hướng dẫn dùng script trong Linux", // chữ "script" đơn thuần không bị chặn
		"",
	}
	for _, v := range hopLe {
		if err := Validate.Struct(xssInput{Content: v}); err != nil {
			t.Errorf("no_xss từ chối nội dung hợp lệ %q: %v", v, err)
		}
	}

	nguyHiem := []string{
		"<script>alert(1)</script>",
		"nhấn vào đây javascript:alert(1)",
		"<img src=x onerror=alert(1)>",
		"<IFRAME src='http://evil'>",
		"lấy document.cookie gửi đi",
	}
	for _, v := range nguyHiem {
		if err := Validate.Struct(xssInput{Content: v}); err == nil {
			t.Errorf("no_xss phải từ chối nội dung nguy hiểm %q", v)
		}
	}
}

func TestValidateStrongPassword(t *testing.T) {
	InitValidator()

	hopLe := []string{"Abcdef12", "abcdef1!", "ABCDEF1!", "MậtKhẩu9@"}
	for _, v := range hopLe {
		if err := Validate.Struct(passwordInput{Password: v}); err != nil {
			t.Errorf("strong_password từ chối mật khẩu hợp lệ %q: %v", v, err)
		}
	}

	yeu := []string{
		"abc12",    // quá ngắn
		"abcdefgh", // chỉ 1 điều kiện
		"abcdefg1", // chỉ 2 điều kiện
		"12345678",
	}
	for _, v := range yeu {
		if err := Validate.Struct(passwordInput{Password: v}); err == nil {
			t.Errorf("strong_password phải từ chối mật khẩu yếu %q", v)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	InitValidator()

	hopLe := []string{"abc", "nguoi_dung.123", "kenh.video_01"}
	for _, v := range hopLe {
		if err := Validate.Struct(usernameInput{Username: v}); err != nil {
			t.Errorf("username từ chối giá trị hợp lệ %q: %v", v, err)
		}
	}

	khongHopLe := []string{
		"ab",          // quá ngắn
		"NguoiDung",   // chữ hoa
		"user name",   // khoảng trắng
		"user@domain", // ký tự đặc biệt
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", // 31 ký tự
	}
	for _, v := range khongHopLe {
		if err := Validate.Struct(usernameInput{Username: v}); err == nil {
			t.Errorf("username phải từ chối giá trị không hợp lệ %q", v)
		}
	}
}
