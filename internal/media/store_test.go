// Package media - Test sinh key asset và store trong bộ nhớ.
package media

import (
	"context"
	"strings"
	"testing"
)

func TestNewAssetKey(t *testing.T) {
	key := NewAssetKey("videos", "Clip Demo.MP4")
	if !strings.HasPrefix(key, "videos/") {
		t.Errorf("Key = %q, muốn bắt đầu bằng 'videos/'", key)
	}
	if !strings.HasSuffix(key, ".mp4") {
		t.Errorf("Key = %q, phần mở rộng phải được chuyển về chữ thường", key)
	}
	if strings.Contains(key, " ") {
		t.Errorf("Key = %q, không được chứa tên file gốc", key)
	}
}

func TestNewAssetKey_DuyNhat(t *testing.T) {
	a := NewAssetKey("thumbnails", "a.jpg")
	b := NewAssetKey("thumbnails", "a.jpg")
	if a == b {
		t.Errorf("Hai key sinh từ cùng một file phải khác nhau, cùng nhận %q", a)
	}
}

func TestNewAssetKey_PrefixCoDauGach(t *testing.T) {
	key := NewAssetKey("/videos/", "a.webm")
	if strings.HasPrefix(key, "/") {
		t.Errorf("Key = %q, prefix phải được trim dấu gạch chéo", key)
	}
}

func TestKeyFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://bucket.s3.amazonaws.com/videos/abc-123.mp4", "videos/abc-123.mp4"},
		{"https://cdn.example.com/a/b/thumbnails/xyz.jpg", "thumbnails/xyz.jpg"},
		{"videos/abc.mp4", "videos/abc.mp4"},
		{"abc.mp4", "abc.mp4"},
	}
	for _, c := range cases {
		if got := KeyFromURL(c.url); got != c.want {
			t.Errorf("KeyFromURL(%q) = %q, muốn %q", c.url, got, c.want)
		}
	}
}

func TestMemoryStore_UploadDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	url, err := store.Upload(ctx, "videos/test.mp4", strings.NewReader("nội dung video"), "video/mp4")
	if err != nil {
		t.Fatalf("Upload lỗi: %v", err)
	}
	if url == "" {
		t.Fatal("Upload phải trả về URL khác rỗng")
	}
	if !store.Has("videos/test.mp4") {
		t.Error("Store phải chứa key vừa upload")
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, muốn 1", store.Len())
	}

	if err := store.Delete(ctx, "videos/test.mp4"); err != nil {
		t.Fatalf("Delete lỗi: %v", err)
	}
	if store.Has("videos/test.mp4") {
		t.Error("Key phải biến mất sau Delete")
	}
}

func TestMemoryStore_DeleteKeyKhongTonTai(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Delete(context.Background(), "videos/khong-co.mp4"); err != nil {
		t.Errorf("Xóa key không tồn tại không được coi là lỗi, nhận: %v", err)
	}
}
