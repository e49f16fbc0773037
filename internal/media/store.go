// Package media cung cấp lớp lưu trữ file media (video, thumbnail, avatar)
// phía sau một interface chung để service không phụ thuộc vào backend cụ thể.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Store là interface lưu trữ media. Implementation chính là S3Store,
// MemoryStore dùng cho test.
type Store interface {
	// Upload đẩy nội dung lên storage và trả về URL public của asset
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)

	// Delete xóa asset theo key. Xóa key không tồn tại không coi là lỗi.
	Delete(ctx context.Context, key string) error
}

// NewAssetKey sinh key duy nhất cho asset theo dạng <prefix>/<uuid><ext>
// Ví dụ: videos/3f2c...-.mp4, thumbnails/9a1b....jpg
func NewAssetKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s%s", strings.Trim(prefix, "/"), uuid.NewString(), ext)
}

// KeyFromURL tách key của asset từ URL public.
// URL có dạng <base>/<prefix>/<uuid><ext>; key là 2 segment cuối.
func KeyFromURL(rawURL string) string {
	trimmed := strings.Trim(rawURL, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return trimmed
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
